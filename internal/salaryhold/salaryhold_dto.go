package salaryhold

import "github.com/shopspring/decimal"

type CreateHoldRequest struct {
	Employee   string `json:"employee" binding:"required"`
	SalarySlip string `json:"salary_slip"`
	Year       int    `json:"year" binding:"required,min=2000,max=2100"`
	Month      string `json:"month" binding:"required"`
	HoldDate   string `json:"hold_date" binding:"required"`
	HoldReason string `json:"hold_reason" binding:"required"`
}

// Field release sengaja tidak memakai binding:"required" supaya pesan
// validasinya sama dengan form release.
type ReleaseRequest struct {
	ReleaseDate   string `json:"release_date"`
	ReleaseReason string `json:"release_reason"`
}

type HoldFilter struct {
	Employee string
	Status   string
}

type HoldResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Employee      string  `json:"employee"`
	EmployeeName  string  `json:"employee_name"`
	Department    string  `json:"department"`
	Designation   string  `json:"designation"`
	Branch        string  `json:"branch"`
	SalarySlip    *string `json:"salary_slip,omitempty"`
	Year          int     `json:"year"`
	Month         string  `json:"month"`
	HoldDate      string  `json:"hold_date"`
	HoldReason    string  `json:"hold_reason"`
	Status        string  `json:"status"`
	DocStatus     string  `json:"docstatus"`
	ReleaseDate   *string `json:"release_date,omitempty"`
	ReleaseReason *string `json:"release_reason,omitempty"`
	AmendedFrom   *string `json:"amended_from,omitempty"`
}

// HoldStatus kosong (ID "") berarti employee tidak sedang di-hold.
type HoldStatus struct {
	ID         string `json:"name,omitempty"`
	HoldDate   string `json:"hold_date,omitempty"`
	HoldReason string `json:"hold_reason,omitempty"`
}

type HoldStatusArgs struct {
	Employee string `json:"employee" binding:"required"`
}

type SlipsArgs struct {
	Employee string `json:"employee" binding:"required"`
	Month    string `json:"month"`
	Year     int    `json:"year"`
}

type SlipOption struct {
	ID        string          `json:"name"`
	Status    string          `json:"status_label"`
	NetSalary decimal.Decimal `json:"net_salary"`
	StartDate string          `json:"start_date"`
	EndDate   string          `json:"end_date"`
	OnHold    bool            `json:"on_hold"`
}
