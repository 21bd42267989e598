package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin = "SUPERADMIN"
	RoleAdmin      = "ADMIN"
	RoleHRManager  = "HR_MANAGER"
	RoleHRUser     = "HR_USER"
	RolePayroll    = "PAYROLL"
	RoleEmployee   = "EMPLOYEE"
)

// roleRank: makin kecil makin tinggi. Role di luar daftar dianggap paling rendah.
var roleRank = map[string]int{
	RoleSuperAdmin: 1,
	RoleAdmin:      2,
	RoleHRManager:  3,
	RoleHRUser:     4,
	RolePayroll:    5,
	RoleEmployee:   6,
}

// User adalah akun login HR. Satu user punya satu company default;
// company lain diberikan lewat user_company_permissions.
type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EmployeeID  *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Name        string     `gorm:"type:varchar(255);not null"`
	Email       string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Password    string     `gorm:"type:varchar(255);not null"`
	Role        string     `gorm:"type:varchar(50);not null;default:'EMPLOYEE'"`
	IsActive    bool       `gorm:"default:true"`
	LastLoginAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "users" }

func (u User) EmployeeIDString() string {
	if u.EmployeeID == nil || *u.EmployeeID == uuid.Nil {
		return ""
	}
	return u.EmployeeID.String()
}

// EffectiveRole memilih role tertinggi dari role employee di company default;
// kalau employee tidak punya role, pakai kolom users.role.
func EffectiveRole(fallback string, employeeRoles []string) string {
	best, bestRank := "", 0
	for _, r := range employeeRoles {
		r = strings.ToUpper(strings.TrimSpace(r))
		if r == "" {
			continue
		}
		rank, ok := roleRank[r]
		if !ok {
			rank = 99
		}
		if best == "" || rank < bestRank {
			best, bestRank = r, rank
		}
	}
	if best != "" {
		return best
	}
	if fallback = strings.ToUpper(strings.TrimSpace(fallback)); fallback != "" {
		return fallback
	}
	return RoleEmployee
}
