package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type RowRequest struct {
	SalaryComponentID string          `json:"salary_component" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
}

type UpsertStructureRequest struct {
	Name       string       `json:"name" binding:"required,max=140"`
	IsActive   *bool        `json:"is_active"`
	Earnings   []RowRequest `json:"earnings" binding:"dive"`
	Deductions []RowRequest `json:"deductions" binding:"dive"`
}

type CreateAssignmentRequest struct {
	Employee          string `json:"employee" binding:"required"`
	SalaryStructureID string `json:"salary_structure" binding:"required"`
	FromDate          string `json:"from_date" binding:"required"`
}

// UpdateAssignmentRequest mengubah nominal baris yang sudah tersalin.
type UpdateAssignmentRequest struct {
	FromDate   string       `json:"from_date"`
	Earnings   []RowRequest `json:"earnings" binding:"dive"`
	Deductions []RowRequest `json:"deductions" binding:"dive"`
}

type AssignmentFilter struct {
	Employee  string
	Structure string
}

type RowResponse struct {
	SalaryComponentID    string          `json:"salary_component"`
	ComponentName        string          `json:"component_name"`
	Abbreviation         string          `json:"abbreviation"`
	EmployerContribution bool            `json:"employer_contribution"`
	DependsOnPaymentDays bool            `json:"depends_on_payment_days"`
	Amount               decimal.Decimal `json:"amount"`
}

type StructureResponse struct {
	ID         string        `json:"id"`
	CompanyID  string        `json:"company_id"`
	Name       string        `json:"name"`
	IsActive   bool          `json:"is_active"`
	Earnings   []RowResponse `json:"earnings"`
	Deductions []RowResponse `json:"deductions"`
}

type Totals struct {
	TotalEarnings             decimal.Decimal `json:"total_earnings"`
	TotalDeductions           decimal.Decimal `json:"total_deductions"`
	TotalEmployerContribution decimal.Decimal `json:"total_employer_contribution"`
	GrossPay                  decimal.Decimal `json:"gross_pay"`
	NetInHand                 decimal.Decimal `json:"net_in_hand"`
	CTC                       decimal.Decimal `json:"ctc"`
}

type AssignmentResponse struct {
	ID                string        `json:"id"`
	CompanyID         string        `json:"company_id"`
	Employee          string        `json:"employee"`
	EmployeeName      string        `json:"employee_name"`
	SalaryStructureID string        `json:"salary_structure"`
	FromDate          string        `json:"from_date"`
	Earnings          []RowResponse `json:"earnings"`
	Deductions        []RowResponse `json:"deductions"`
	Totals            Totals        `json:"totals"`
}

// ResolvedRow adalah baris komponen siap pakai untuk salary slip.
type ResolvedRow struct {
	SalaryComponentID    uuid.UUID
	ComponentName        string
	Abbreviation         string
	EmployerContribution bool
	DependsOnPaymentDays bool
	Amount               decimal.Decimal
}

type Resolved struct {
	AssignmentID      uuid.UUID
	SalaryStructureID uuid.UUID
	FromDate          time.Time
	Earnings          []ResolvedRow
	Deductions        []ResolvedRow
}
