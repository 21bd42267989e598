package attendance

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	StatusPresent      = "Present"
	StatusAbsent       = "Absent"
	StatusHalfDay      = "Half Day"
	StatusLWP          = "LWP"
	StatusHoliday      = "Holiday"
	StatusWeeklyOff    = "Weekly Off"
	StatusOnLeave      = "On Leave"
	StatusWorkFromHome = "Work From Home"
)

var validStatuses = map[string]bool{
	StatusPresent:      true,
	StatusAbsent:       true,
	StatusHalfDay:      true,
	StatusLWP:          true,
	StatusHoliday:      true,
	StatusWeeklyOff:    true,
	StatusOnLeave:      true,
	StatusWorkFromHome: true,
}

func ValidStatus(status string) bool {
	return validStatuses[status]
}

type Attendance struct {
	ID             uuid.UUID      `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyLinkID  uuid.UUID      `gorm:"column:company_link_id;type:uuid;not null;uniqueIndex:uq_attendance_link_date"`
	CompanyID      uuid.UUID      `gorm:"column:company_id;type:uuid;not null;index"`
	AttendanceDate time.Time      `gorm:"column:attendance_date;type:date;not null;uniqueIndex:uq_attendance_link_date"`
	Status         string         `gorm:"column:status;type:varchar(20);not null"`
	Remarks        *string        `gorm:"column:remarks;type:text"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at;index"`
	Link           *LinkRef       `gorm:"foreignKey:CompanyLinkID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

// LinkRef adalah kolom company_links yang dibutuhkan untuk validasi absensi.
type LinkRef struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Name          string     `gorm:"column:name"`
	CompanyID     uuid.UUID  `gorm:"column:company_id"`
	EmployeeID    uuid.UUID  `gorm:"column:employee_id"`
	FullName      string     `gorm:"column:full_name"`
	WeeklyOff     string     `gorm:"column:weekly_off"`
	DateOfJoining *time.Time `gorm:"column:date_of_joining"`
	IsActive      bool       `gorm:"column:is_active"`
}

func (LinkRef) TableName() string {
	return "company_links"
}

type StatusCount struct {
	Status string `gorm:"column:status"`
	Total  int    `gorm:"column:total"`
}

// ReportRecord adalah satu baris absensi beserta identitas link untuk laporan bulanan.
type ReportRecord struct {
	CompanyLinkID  string
	EmployeeCode   string
	EmployeeName   string
	AttendanceDate time.Time
	Status         string
}
