package salaryslip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
	StatusCancelled = "Cancelled"

	SectionEarnings   = "earnings"
	SectionDeductions = "deductions"
)

type SalarySlip struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;not null;index:idx_salary_slip_company_period"`
	CompanyLinkID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_salary_slip_link_period,where:status <> 'Cancelled'"`
	Link          *LinkRef  `gorm:"foreignKey:CompanyLinkID;references:ID"`

	// Periode selalu satu bulan penuh.
	StartDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_salary_slip_link_period,where:status <> 'Cancelled';index:idx_salary_slip_company_period"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Status    string    `gorm:"type:varchar(12);not null;default:'Draft';index"`

	SalaryStructureID *uuid.UUID `gorm:"type:uuid"`
	AssignmentID      *uuid.UUID `gorm:"type:uuid"`

	WorkingDays int             `gorm:"not null;default:0"`
	PaymentDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	PresentDays int             `gorm:"not null;default:0"`
	AbsentDays  int             `gorm:"not null;default:0"`
	HalfDays    int             `gorm:"not null;default:0"`
	LWPDays     int             `gorm:"column:lwp_days;not null;default:0"`
	Holidays    int             `gorm:"not null;default:0"`
	WeeklyOffs  int             `gorm:"not null;default:0"`

	VariablePayPercentage decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	TotalEarnings             decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalDeductions           decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	TotalEmployerContribution decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	NetSalary                 decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`

	OnHold        bool    `gorm:"not null;default:false"`
	HoldReason    *string `gorm:"type:text"`
	ReleaseReason *string `gorm:"type:text"`

	PayslipKey         *string    `gorm:"type:text"`
	PayslipURL         *string    `gorm:"type:text"`
	PayslipGeneratedAt *time.Time `gorm:"index"`
	SubmittedAt        *time.Time
	SubmittedBy        *string `gorm:"type:varchar(64)"`

	Rows []SlipRow `gorm:"foreignKey:SalarySlipID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (SalarySlip) TableName() string {
	return "salary_slips"
}

type SlipRow struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalarySlipID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Section              string          `gorm:"type:varchar(12);not null"`
	SalaryComponentID    uuid.UUID       `gorm:"type:uuid;not null"`
	ComponentName        string          `gorm:"type:varchar(140);not null"`
	Abbreviation         string          `gorm:"type:varchar(20)"`
	EmployerContribution bool            `gorm:"not null;default:false"`
	DependsOnPaymentDays bool            `gorm:"not null;default:true"`
	Idx                  int             `gorm:"not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
}

func (SlipRow) TableName() string {
	return "salary_slip_rows"
}

type LinkRef struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string
	CompanyID     uuid.UUID `gorm:"type:uuid"`
	EmployeeID    uuid.UUID `gorm:"type:uuid"`
	FullName      string
	Designation   string
	Department    string
	Division      string
	Branch        string
	DateOfJoining *time.Time
	LeftDate      *time.Time
	IsActive      bool
}

func (LinkRef) TableName() string {
	return "company_links"
}

// CompanyCount adalah satu batang grafik status salary slip.
type CompanyCount struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Total       int    `json:"total"`
	Submitted   int    `json:"submitted"`
	Draft       int    `json:"draft"`
}
