package variablepay

import "github.com/shopspring/decimal"

type DivisionRequest struct {
	Division    string          `json:"division" binding:"required"`
	Target      decimal.Decimal `json:"target"`
	Achievement decimal.Decimal `json:"achievement"`
	Percentage  decimal.Decimal `json:"percentage"`
}

type UpsertAssignmentRequest struct {
	Year      int               `json:"year" binding:"required,min=2000,max=2100"`
	Month     string            `json:"month" binding:"required"`
	Divisions []DivisionRequest `json:"variable_pay" binding:"dive"`
}

type DivisionResponse struct {
	Division    string          `json:"division"`
	Target      decimal.Decimal `json:"target"`
	Achievement decimal.Decimal `json:"achievement"`
	Percentage  decimal.Decimal `json:"percentage"`
}

type AssignmentResponse struct {
	ID              string             `json:"id"`
	CompanyID       string             `json:"company_id"`
	Year            int                `json:"year"`
	Month           string             `json:"month"`
	TotalPercentage decimal.Decimal    `json:"total_percentage"`
	Divisions       []DivisionResponse `json:"variable_pay"`
}
