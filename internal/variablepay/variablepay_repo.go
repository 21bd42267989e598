package variablepay

import (
	"context"
	"database/sql"
	"errors"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, assignment *Assignment) error
	Update(ctx context.Context, assignment *Assignment) error
	ReplaceRows(ctx context.Context, assignmentID string, rows []DivisionRow) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*Assignment, error)
	FindAll(ctx context.Context, companyIDs []string, year int) ([]Assignment, error)
	// FindByPeriod mengembalikan nil, nil jika belum ada assignment.
	FindByPeriod(ctx context.Context, companyID string, year int, month string) (*Assignment, error)
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

func (r *repository) Create(ctx context.Context, assignment *Assignment) error {
	return r.conn(ctx).Omit("Rows").Create(assignment).Error
}

func (r *repository) Update(ctx context.Context, assignment *Assignment) error {
	return r.conn(ctx).Omit("Rows").Save(assignment).Error
}

func (r *repository) ReplaceRows(ctx context.Context, assignmentID string, rows []DivisionRow) error {
	if err := r.conn(ctx).Where("assignment_id = ?", assignmentID).Delete(&DivisionRow{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&rows).Error
}

func withRows(db *gorm.DB) *gorm.DB {
	return db.Preload("Rows", func(db *gorm.DB) *gorm.DB {
		return db.Order("idx ASC")
	})
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*Assignment, error) {
	var assignment Assignment
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs), withRows).
		First(&assignment, "id = ?", id).Error
	return &assignment, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, year int) ([]Assignment, error) {
	var assignments []Assignment
	q := r.conn(ctx).Scopes(tenant.ScopeCompanies("company_id", companyIDs), withRows)
	if year > 0 {
		q = q.Where("year = ?", year)
	}
	err := q.Order("year DESC, created_at DESC").Find(&assignments).Error
	return assignments, err
}

func (r *repository) FindByPeriod(ctx context.Context, companyID string, year int, month string) (*Assignment, error) {
	var assignment Assignment
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID), withRows).
		Where("year = ? AND month = ?", year, month).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) Delete(ctx context.Context, companyIDs []string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&Assignment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
