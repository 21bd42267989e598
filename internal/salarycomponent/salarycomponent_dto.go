package salarycomponent

import "github.com/shopspring/decimal"

type MonthAmountRequest struct {
	Month  string          `json:"month" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

type UpsertSalaryComponentRequest struct {
	Name                 string               `json:"name" binding:"required,max=140"`
	Abbreviation         string               `json:"abbreviation" binding:"max=20"`
	Type                 string               `json:"type" binding:"required,oneof=Earning Deduction"`
	IsSpecial            bool                 `json:"is_special"`
	EmployerContribution bool                 `json:"employer_contribution"`
	DependsOnPaymentDays *bool                `json:"depends_on_payment_days"`
	Months               []MonthAmountRequest `json:"months" binding:"dive"`
}

type ComponentFilter struct {
	Type string
}

type MonthAmountResponse struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

type SalaryComponentResponse struct {
	ID                   string                `json:"id"`
	CompanyID            string                `json:"company_id"`
	Name                 string                `json:"name"`
	Abbreviation         string                `json:"abbreviation"`
	Type                 string                `json:"type"`
	IsSpecial            bool                  `json:"is_special"`
	EmployerContribution bool                  `json:"employer_contribution"`
	DependsOnPaymentDays bool                  `json:"depends_on_payment_days"`
	Months               []MonthAmountResponse `json:"months,omitempty"`
}
