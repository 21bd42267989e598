package salaryhold

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusOnHold    = "On Hold"
	StatusReleased  = "Released"
	StatusWasOnHold = "Was On Hold"

	DocDraft     = "Draft"
	DocSubmitted = "Submitted"
	DocCancelled = "Cancelled"
)

type SalaryHold struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	CompanyLinkID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:uq_salary_hold_active_link,where:status = 'On Hold' AND doc_status = 'Submitted' AND deleted_at IS NULL"`
	Link          *LinkRef   `gorm:"foreignKey:CompanyLinkID;references:ID"`
	SalarySlipID  *uuid.UUID `gorm:"type:uuid;index"`

	Year  int    `gorm:"not null"`
	Month string `gorm:"type:varchar(12);not null"`

	HoldDate   time.Time `gorm:"type:date;not null"`
	HoldReason string    `gorm:"type:text;not null"`
	Status     string    `gorm:"type:varchar(12);not null;default:'On Hold';index"`
	DocStatus  string    `gorm:"type:varchar(12);not null;default:'Draft'"`

	ReleaseDate   *time.Time `gorm:"type:date"`
	ReleaseReason *string    `gorm:"type:text"`
	AmendedFromID *uuid.UUID `gorm:"type:uuid"`
	CreatedBy     *string    `gorm:"type:varchar(64)"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (SalaryHold) TableName() string {
	return "employee_salary_holds"
}

type LinkRef struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string
	CompanyID   uuid.UUID `gorm:"type:uuid"`
	FullName    string
	Department  string
	Designation string
	Branch      string
	IsActive    bool
}

func (LinkRef) TableName() string {
	return "company_links"
}

// SlipRef hanya membaca dan menandai kolom hold pada salary slip.
type SlipRef struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyLinkID uuid.UUID `gorm:"type:uuid"`
	StartDate     time.Time
	EndDate       time.Time
	Status        string
	NetSalary     decimal.Decimal
	OnHold        bool
	HoldReason    *string
	ReleaseReason *string
}

func (SlipRef) TableName() string {
	return "salary_slips"
}
