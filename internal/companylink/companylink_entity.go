package companylink

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyLink adalah penempatan employee di satu company. Link aktif bernama
// sama dengan kode employee; link lama diarsipkan sebagai "<kode>-N".
type CompanyLink struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name          string         `gorm:"type:varchar(60);not null;uniqueIndex:uq_company_link_name"`
	EmployeeID    uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:uq_company_link_active_employee,where:is_active = true AND deleted_at IS NULL"`
	CompanyID     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CategoryID    *uuid.UUID     `gorm:"type:uuid"`
	FullName      string         `gorm:"type:varchar(220);not null"`
	Designation   string         `gorm:"type:varchar(120)"`
	Department    string         `gorm:"type:varchar(120)"`
	Division      string         `gorm:"type:varchar(120);index"`
	Branch        string         `gorm:"type:varchar(120)"`
	WeeklyOff     string         `gorm:"type:varchar(120)"`
	DateOfJoining *time.Time     `gorm:"type:date"`
	LeftDate      *time.Time     `gorm:"type:date"`
	IsActive      bool           `gorm:"not null;default:true"`
	CreatedAt     time.Time      `gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime"`
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (CompanyLink) TableName() string {
	return "company_links"
}

// EmployeeRef adalah kolom employees yang dibutuhkan untuk membuat link.
type EmployeeRef struct {
	ID            uuid.UUID
	EmployeeCode  string
	FullName      string
	AadhaarNumber *string
}

// OptionRow adalah hasil join company_links + employees untuk pilihan employee.
type OptionRow struct {
	LinkID        uuid.UUID `gorm:"column:link_id"`
	EmployeeCode  string    `gorm:"column:employee_code"`
	FullName      string    `gorm:"column:full_name"`
	CompanyID     uuid.UUID `gorm:"column:company_id"`
	AadhaarNumber *string   `gorm:"column:aadhaar_number"`
	WeeklyOff     string    `gorm:"column:weekly_off"`
}

type TimelineRow struct {
	Name          string     `gorm:"column:name"`
	CompanyID     uuid.UUID  `gorm:"column:company_id"`
	CompanyName   string     `gorm:"column:company_name"`
	Designation   string     `gorm:"column:designation"`
	DateOfJoining *time.Time `gorm:"column:date_of_joining"`
	LeftDate      *time.Time `gorm:"column:left_date"`
	IsActive      bool       `gorm:"column:is_active"`
}
