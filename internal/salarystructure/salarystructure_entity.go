package salarystructure

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	SectionEarnings   = "earnings"
	SectionDeductions = "deductions"

	componentEarning   = "Earning"
	componentDeduction = "Deduction"
)

type SalaryStructure struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CompanyID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:uq_salary_structure_company_name"`
	Name      string         `gorm:"type:varchar(140);not null;uniqueIndex:uq_salary_structure_company_name"`
	IsActive  bool           `gorm:"not null;default:true"`
	Rows      []StructureRow `gorm:"foreignKey:SalaryStructureID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SalaryStructure) TableName() string {
	return "salary_structures"
}

type StructureRow struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalaryStructureID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_structure_row_component"`
	Section           string          `gorm:"type:varchar(12);not null;uniqueIndex:uq_structure_row_component"`
	SalaryComponentID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:uq_structure_row_component"`
	Idx               int             `gorm:"not null"`
	Amount            decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
	Component         *ComponentRef   `gorm:"foreignKey:SalaryComponentID;references:ID"`
}

func (StructureRow) TableName() string {
	return "salary_structure_rows"
}

// Assignment mengikat salary structure ke satu company link mulai FromDate.
// Baris disalin dari structure saat dibuat dan nominalnya boleh diubah.
type Assignment struct {
	ID                        uuid.UUID        `gorm:"type:uuid;primaryKey"`
	CompanyID                 uuid.UUID        `gorm:"type:uuid;not null;index"`
	CompanyLinkID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:uq_assignment_link_from"`
	SalaryStructureID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	FromDate                  time.Time        `gorm:"type:date;not null;uniqueIndex:uq_assignment_link_from"`
	TotalEarnings             decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	TotalDeductions           decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	TotalEmployerContribution decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	GrossPay                  decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	NetInHand                 decimal.Decimal  `gorm:"type:numeric(18,2);not null;default:0"`
	CTC                       decimal.Decimal  `gorm:"column:ctc;type:numeric(18,2);not null;default:0"`
	Rows                      []AssignmentRow  `gorm:"foreignKey:AssignmentID;constraint:OnDelete:CASCADE"`
	Link                      *LinkRef         `gorm:"foreignKey:CompanyLinkID;references:ID"`
	Structure                 *SalaryStructure `gorm:"foreignKey:SalaryStructureID;references:ID"`
	CreatedAt                 time.Time        `gorm:"autoCreateTime"`
	UpdatedAt                 time.Time        `gorm:"autoUpdateTime"`
	DeletedAt                 gorm.DeletedAt   `gorm:"index"`
}

func (Assignment) TableName() string {
	return "salary_structure_assignments"
}

// AssignmentRow menyimpan salinan atribut komponen supaya slip tetap konsisten
// walau master komponen berubah.
type AssignmentRow struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AssignmentID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Section              string          `gorm:"type:varchar(12);not null"`
	SalaryComponentID    uuid.UUID       `gorm:"type:uuid;not null"`
	ComponentName        string          `gorm:"type:varchar(140);not null"`
	Abbreviation         string          `gorm:"type:varchar(20)"`
	EmployerContribution bool            `gorm:"not null;default:false"`
	DependsOnPaymentDays bool            `gorm:"not null;default:true"`
	Idx                  int             `gorm:"not null"`
	Amount               decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0"`
}

func (AssignmentRow) TableName() string {
	return "salary_structure_assignment_rows"
}

type ComponentRef struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID            uuid.UUID `gorm:"type:uuid"`
	Name                 string
	Abbreviation         string
	Type                 string
	EmployerContribution bool
	DependsOnPaymentDays bool
}

func (ComponentRef) TableName() string {
	return "salary_components"
}

type LinkRef struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string
	CompanyID uuid.UUID `gorm:"type:uuid"`
	FullName  string
	Division  string
	IsActive  bool
}

func (LinkRef) TableName() string {
	return "company_links"
}
