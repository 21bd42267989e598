package salarycomponent

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TypeEarning   = "Earning"
	TypeDeduction = "Deduction"
)

type SalaryComponent struct {
	ID                   uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_salary_component_company_name"`
	Name                 string         `gorm:"type:varchar(140);not null;uniqueIndex:uq_salary_component_company_name"`
	Abbreviation         string         `gorm:"type:varchar(20)"`
	Type                 string         `gorm:"type:varchar(20);not null;index"`
	IsSpecial            bool           `gorm:"not null;default:false"`
	EmployerContribution bool           `gorm:"not null;default:false"`
	DependsOnPaymentDays bool           `gorm:"not null;default:true"`
	Months               []SpecialMonth `gorm:"foreignKey:SalaryComponentID;constraint:OnDelete:CASCADE"`
	CreatedAt            time.Time      `gorm:"autoCreateTime"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime"`
	DeletedAt            gorm.DeletedAt `gorm:"index"`
}

func (SalaryComponent) TableName() string {
	return "salary_components"
}

// SpecialMonth menyimpan nominal per bulan untuk komponen spesial.
type SpecialMonth struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalaryComponentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_special_month"`
	Month             string          `gorm:"type:varchar(12);not null;uniqueIndex:uq_special_month"`
	Position          int             `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
}

func (SpecialMonth) TableName() string {
	return "salary_component_months"
}
