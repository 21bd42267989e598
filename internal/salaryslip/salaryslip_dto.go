package salaryslip

import "github.com/shopspring/decimal"

type GenerateRequest struct {
	Employee string `json:"employee" binding:"required"`
	Year     int    `json:"year" binding:"required,min=2000,max=2100"`
	Month    string `json:"month" binding:"required"`
}

// BulkGenerateArgs adalah argumen salary_slip.bulk_generate dan POST /salary-slips/bulk-generate.
type BulkGenerateArgs struct {
	Company   string   `json:"company"`
	Year      int      `json:"year" binding:"required,min=2000,max=2100"`
	Month     string   `json:"month" binding:"required"`
	Employees []string `json:"employees"`
}

type BulkGenerateResult struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

type EligibilityArgs struct {
	Company string `json:"company"`
	Year    int    `json:"year" binding:"required,min=2000,max=2100"`
	Month   string `json:"month" binding:"required"`
}

type EligibleEmployee struct {
	Employee     string `json:"employee"`
	EmployeeName string `json:"employee_name"`
	Department   string `json:"department"`
	Designation  string `json:"designation"`
}

type SkippedEmployee struct {
	Employee     string   `json:"employee"`
	EmployeeName string   `json:"employee_name"`
	Reasons      []string `json:"reasons"`
}

type EligibilityResult struct {
	Eligible []EligibleEmployee `json:"eligible"`
	Skipped  []SkippedEmployee  `json:"skipped"`
}

type RowAmount struct {
	SalaryComponentID string          `json:"salary_component" binding:"required"`
	Amount            decimal.Decimal `json:"amount"`
}

type UpdateSlipRequest struct {
	Earnings   []RowAmount `json:"earnings" binding:"dive"`
	Deductions []RowAmount `json:"deductions" binding:"dive"`
}

type PrintBulkRequest struct {
	SalarySlips []string `json:"salary_slips"`
}

type SlipFilter struct {
	Company  string
	Employee string
	Status   string
	Year     int
	Month    string
}

type RowResponse struct {
	SalaryComponentID    string          `json:"salary_component"`
	ComponentName        string          `json:"component_name"`
	Abbreviation         string          `json:"abbreviation"`
	EmployerContribution bool            `json:"employer_contribution"`
	DependsOnPaymentDays bool            `json:"depends_on_payment_days"`
	Amount               decimal.Decimal `json:"amount"`
}

type SalarySlipResponse struct {
	ID                        string          `json:"id"`
	CompanyID                 string          `json:"company_id"`
	Employee                  string          `json:"employee"`
	EmployeeName              string          `json:"employee_name"`
	Department                string          `json:"department"`
	Designation               string          `json:"designation"`
	StartDate                 string          `json:"start_date"`
	EndDate                   string          `json:"end_date"`
	Status                    string          `json:"status"`
	WorkingDays               int             `json:"working_days"`
	PaymentDays               decimal.Decimal `json:"payment_days"`
	PresentDays               int             `json:"present_days"`
	AbsentDays                int             `json:"absent_days"`
	HalfDays                  int             `json:"half_days"`
	LWPDays                   int             `json:"lwp_days"`
	Holidays                  int             `json:"holidays"`
	WeeklyOffs                int             `json:"weekly_offs"`
	VariablePayPercentage     decimal.Decimal `json:"variable_pay_percentage"`
	Earnings                  []RowResponse   `json:"earnings"`
	Deductions                []RowResponse   `json:"deductions"`
	TotalEarnings             decimal.Decimal `json:"total_earnings"`
	TotalDeductions           decimal.Decimal `json:"total_deductions"`
	TotalEmployerContribution decimal.Decimal `json:"total_employer_contribution"`
	NetSalary                 decimal.Decimal `json:"net_salary"`
	OnHold                    bool            `json:"on_hold"`
	HoldReason                *string         `json:"hold_reason,omitempty"`
	ReleaseReason             *string         `json:"release_reason,omitempty"`
	HasPayslip                bool            `json:"has_payslip"`
}

type ChartDataset struct {
	Name      string `json:"name"`
	Values    []int  `json:"values"`
	ChartType string `json:"chartType"`
}

type StatusChart struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

// SkipFlags mengelompokkan alasan skip untuk tampilan dialog bulk generate.
type SkipFlags struct {
	NoSalaryStructure bool `json:"no_salary_structure"`
	NoVariablePay     bool `json:"no_variable_pay"`
	DuplicateSlip     bool `json:"duplicate_slip"`
	NoAttendance      bool `json:"no_attendance"`
}
