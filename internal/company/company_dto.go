package company

import "time"

type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required"`
	Abbreviation string `json:"abbreviation" binding:"required,max=20"`
	Email        string `json:"email" binding:"omitempty,email"`
	BankName     string `json:"bank_name"`
}

type UpdateCompanyRequest struct {
	Name                 string  `json:"name"`
	Email                string  `json:"email" binding:"omitempty,email"`
	BankName             *string `json:"bank_name"`
	DefaultHolidayListID *string `json:"default_holiday_list_id"`
	IsActive             *bool   `json:"is_active"`
}

type CompanyResponse struct {
	ID                   string `json:"id"`
	Name                 string `json:"name"`
	Abbreviation         string `json:"abbreviation"`
	Email                string `json:"email"`
	BankName             string `json:"bank_name"`
	DefaultHolidayListID string `json:"default_holiday_list_id,omitempty"`
	IsActive             bool   `json:"is_active"`
}

type UpsertCompanyRegistrationRequest struct {
	Type     RegistrationType `json:"type" binding:"required"`
	Number   string           `json:"number" binding:"required"`
	IssuedAt *time.Time       `json:"issued_at,omitempty"`
}

type CompanyRegistrationResponse struct {
	ID        string           `json:"id"`
	Type      RegistrationType `json:"type"`
	Number    string           `json:"number"`
	IssuedAt  *time.Time       `json:"issued_at,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
