package register

const (
	KindPF             = "provident-fund"
	KindESI            = "esi"
	KindLWF            = "labour-welfare-fund"
	KindProfessionalTx = "professional-tax"
	KindRetention      = "retention-deposit"
	KindBankAdvice     = "bank-advice"
	KindSalarySummary  = "salary-summary"
	KindVariablePay    = "variable-pay"
	KindEducation      = "educational-allowance"
	KindChecklist      = "transaction-checklist"

	BankHome      = "Home"
	BankDifferent = "Different"
)

type Args struct {
	Company  string `form:"company_id"`
	Category string `form:"category"`
	Year     int    `form:"year" binding:"required,min=2000,max=2100"`
	Month    string `form:"month" binding:"required"`
	BankType string `form:"bank_type"`
}

type Column struct {
	Key     string `json:"fieldname"`
	Label   string `json:"label"`
	Numeric bool   `json:"numeric"`
}

type Row map[string]any

// Table adalah bentuk umum semua register; Total selalu diisi, juga saat Rows kosong.
type Table struct {
	Name    string   `json:"name"`
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
	Total   Row      `json:"total"`
}
