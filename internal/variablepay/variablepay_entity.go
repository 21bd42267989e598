package variablepay

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Assignment adalah persentase variable pay per division untuk satu bulan.
type Assignment struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_variable_pay_company_period"`
	Year      int            `gorm:"not null;uniqueIndex:uq_variable_pay_company_period"`
	Month     string         `gorm:"type:varchar(12);not null;uniqueIndex:uq_variable_pay_company_period"`
	Rows      []DivisionRow  `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Assignment) TableName() string {
	return "variable_pay_assignments"
}

type DivisionRow struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Division     string          `gorm:"type:varchar(120);not null"`
	Target       decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Achievement  decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Percentage   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	Idx          int             `gorm:"not null"`
}

func (DivisionRow) TableName() string {
	return "variable_pay_divisions"
}
