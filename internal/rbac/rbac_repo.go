package rbac

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error)
	GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error)
	GetPermittedCompanies(ctx context.Context, userID string) ([]string, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

type EmployeeRoleRow struct {
	EmployeeID string
	RoleID     string
}

type RolePermissionRow struct {
	RoleID   string
	Resource string
	Action   string
}

func (r *repository) GetEmployeeRoles(ctx context.Context, companyID string) ([]EmployeeRoleRow, error) {
	var rows []EmployeeRoleRow
	err := r.db.WithContext(ctx).
		Table("employee_roles er").
		Select("er.employee_id::text AS employee_id, er.role_id::text AS role_id").
		Joins("JOIN roles ON roles.id = er.role_id").
		Where("roles.company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) GetRolePermissions(ctx context.Context, companyID string) ([]RolePermissionRow, error) {
	var rows []RolePermissionRow
	err := r.db.WithContext(ctx).
		Table("role_permissions rp").
		Select("rp.role_id::text AS role_id, p.resource, p.action").
		Joins("JOIN roles ON roles.id = rp.role_id").
		Joins("JOIN permissions p ON p.id = rp.permission_id").
		Where("roles.company_id = ?", companyID).
		Scan(&rows).Error
	return rows, err
}

// GetPermittedCompanies membaca company tambahan yang boleh diakses user
// (selain company default di token), mis. HR grup yang mengelola beberapa PT.
func (r *repository) GetPermittedCompanies(ctx context.Context, userID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("user_company_permissions").
		Where("user_id = ?", userID).
		Order("company_id").
		Pluck("company_id", &ids).Error
	return ids, err
}
