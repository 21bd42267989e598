package companylink

import (
	"context"
	"database/sql"
	"errors"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

const optionColumns = `cl.id AS link_id, e.employee_code, cl.full_name, cl.company_id, e.aadhaar_number, cl.weekly_off`

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, link *CompanyLink) error
	Update(ctx context.Context, link *CompanyLink) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*CompanyLink, error)
	FindAll(ctx context.Context, companyIDs []string, filter LinkFilter) ([]CompanyLink, error)
	// FindActiveByEmployee mengembalikan nil tanpa error bila tidak ada link aktif.
	FindActiveByEmployee(ctx context.Context, employeeID string) (*CompanyLink, error)
	FindByName(ctx context.Context, name string) (*CompanyLink, error)
	FindByEmployee(ctx context.Context, employeeID string) ([]CompanyLink, error)
	FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error)
	Timeline(ctx context.Context, employeeID string) ([]TimelineRow, error)
	ActiveOptions(ctx context.Context, companyID string) ([]OptionRow, error)
	Search(ctx context.Context, companyIDs []string, term string, limit int) ([]OptionRow, error)
	UpdateFullName(ctx context.Context, employeeID, fullName string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbutil.Conn(ctx, r.db, r.tx)
}

func (r *repository) Create(ctx context.Context, link *CompanyLink) error {
	return r.conn(ctx).Create(link).Error
}

func (r *repository) Update(ctx context.Context, link *CompanyLink) error {
	return r.conn(ctx).Save(link).Error
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*CompanyLink, error) {
	var link CompanyLink
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		First(&link, "id = ?", id).Error
	return &link, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, filter LinkFilter) ([]CompanyLink, error) {
	var links []CompanyLink
	q := r.conn(ctx).Scopes(tenant.ScopeCompanies("company_id", companyIDs))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.CompanyID != "" {
		q = q.Where("company_id = ?", filter.CompanyID)
	}
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("full_name ASC").Find(&links).Error
	return links, err
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID string) (*CompanyLink, error) {
	var link CompanyLink
	err := r.conn(ctx).
		Where("employee_id = ? AND is_active = ?", employeeID, true).
		First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) FindByName(ctx context.Context, name string) (*CompanyLink, error) {
	var link CompanyLink
	err := r.conn(ctx).Where("name = ?", name).First(&link).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) FindByEmployee(ctx context.Context, employeeID string) ([]CompanyLink, error) {
	var links []CompanyLink
	err := r.conn(ctx).Where("employee_id = ?", employeeID).Find(&links).Error
	return links, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.conn(ctx).
		Table("employees").
		Select("id, employee_code, full_name, aadhaar_number").
		Where("id = ? AND deleted_at IS NULL", employeeID).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

func (r *repository) Timeline(ctx context.Context, employeeID string) ([]TimelineRow, error) {
	var rows []TimelineRow
	err := r.conn(ctx).
		Table("company_links AS cl").
		Select("cl.name, cl.company_id, c.name AS company_name, cl.designation, cl.date_of_joining, cl.left_date, cl.is_active").
		Joins("LEFT JOIN companies c ON c.id = cl.company_id").
		Where("cl.employee_id = ? AND cl.deleted_at IS NULL", employeeID).
		Order("CASE WHEN cl.is_active THEN 0 ELSE 1 END").
		Order("COALESCE(cl.date_of_joining, DATE '1900-01-01') DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ActiveOptions(ctx context.Context, companyID string) ([]OptionRow, error) {
	var rows []OptionRow
	err := r.conn(ctx).
		Table("company_links AS cl").
		Select(optionColumns).
		Joins("JOIN employees e ON e.id = cl.employee_id").
		Where("cl.company_id = ?", companyID).
		Where("cl.is_active = ? AND cl.deleted_at IS NULL", true).
		Order("cl.full_name ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) Search(ctx context.Context, companyIDs []string, term string, limit int) ([]OptionRow, error) {
	var rows []OptionRow
	like := "%" + term + "%"
	err := r.conn(ctx).
		Table("company_links AS cl").
		Select(optionColumns).
		Joins("JOIN employees e ON e.id = cl.employee_id").
		Scopes(tenant.ScopeCompanies("cl.company_id", companyIDs)).
		Where("cl.is_active = ? AND cl.deleted_at IS NULL", true).
		Where(
			r.db.Where("cl.full_name ILIKE ?", like).
				Or("e.employee_code ILIKE ?", like).
				Or("e.first_name ILIKE ?", like).
				Or("e.last_name ILIKE ?", like).
				Or("e.aadhaar_number ILIKE ?", like),
		).
		Order("e.first_name ASC, e.last_name ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *repository) UpdateFullName(ctx context.Context, employeeID, fullName string) error {
	return r.conn(ctx).
		Model(&CompanyLink{}).
		Where("employee_id = ?", employeeID).
		Update("full_name", fullName).Error
}
