package salarycomponent

import (
	"context"
	"database/sql"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	Update(ctx context.Context, component *SalaryComponent) error
	ReplaceMonths(ctx context.Context, componentID string, months []SpecialMonth) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*SalaryComponent, error)
	FindAll(ctx context.Context, companyIDs []string, filter ComponentFilter) ([]SalaryComponent, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).Omit("Months").Create(component).Error
}

func (r *repository) Update(ctx context.Context, component *SalaryComponent) error {
	return r.conn(ctx).Omit("Months").Save(component).Error
}

func (r *repository) ReplaceMonths(ctx context.Context, componentID string, months []SpecialMonth) error {
	if err := r.conn(ctx).Where("salary_component_id = ?", componentID).Delete(&SpecialMonth{}).Error; err != nil {
		return err
	}
	if len(months) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&months).Error
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Months", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&component, "id = ?", id).Error
	return &component, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, filter ComponentFilter) ([]SalaryComponent, error) {
	var components []SalaryComponent
	q := r.conn(ctx).Scopes(tenant.ScopeCompanies("company_id", companyIDs))
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	err := q.Order("type ASC, name ASC").Find(&components).Error
	return components, err
}

func (r *repository) Delete(ctx context.Context, companyIDs []string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&SalaryComponent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
