package employee

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee adalah data pribadi yang tidak bergantung company. Penempatan di
// company ada di company_links.
type Employee struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeCode  string     `gorm:"type:varchar(30);not null;uniqueIndex:uq_employee_code"`
	FirstName     string     `gorm:"type:varchar(100);not null"`
	LastName      string     `gorm:"type:varchar(100)"`
	FullName      string     `gorm:"type:varchar(220);not null;index"`
	AadhaarNumber *string    `gorm:"type:varchar(12);uniqueIndex:uq_employee_aadhaar"`
	DateOfBirth   *time.Time `gorm:"type:date"`
	Gender        string     `gorm:"type:varchar(10)"`
	BankName      string     `gorm:"type:varchar(150)"`
	BankAccountNo string     `gorm:"type:varchar(40)"`
	IFSCCode      string     `gorm:"type:varchar(11)"`
	PFNumber      string     `gorm:"type:varchar(40)"`
	UANNumber     string     `gorm:"type:varchar(12)"`
	ESICNumber    string     `gorm:"type:varchar(20)"`
	ImageURL      string     `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (Employee) TableName() string {
	return "employees"
}

// DisplayName mengikuti format pilihan employee di UI: "Nama (Aadhaar)".
func (e Employee) DisplayName() string {
	name := e.FullName
	if name == "" {
		name = e.EmployeeCode
	}
	if e.AadhaarNumber != nil && *e.AadhaarNumber != "" {
		name += " (" + *e.AadhaarNumber + ")"
	}
	return name
}

func buildFullName(first, last string) string {
	return strings.TrimSpace(strings.TrimSpace(first) + " " + strings.TrimSpace(last))
}
