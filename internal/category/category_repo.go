package category

import (
	"context"
	"database/sql"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, cat *Category) error
	FindAllByCompany(ctx context.Context, companyID string) ([]Category, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Category, error)
	Update(ctx context.Context, cat *Category) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) Create(ctx context.Context, cat *Category) error {
	return dbutil.Conn(ctx, r.db, r.tx).Create(cat).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Category, error) {
	var cats []Category
	err := dbutil.Conn(ctx, r.db, r.tx).
		Scopes(tenant.Scope(companyID)).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*Category, error) {
	var cat Category
	err := dbutil.Conn(ctx, r.db, r.tx).
		Scopes(tenant.Scope(companyID)).
		First(&cat, "id = ?", id).Error
	return &cat, err
}

func (r *repository) Update(ctx context.Context, cat *Category) error {
	return dbutil.Conn(ctx, r.db, r.tx).Save(cat).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	res := dbutil.Conn(ctx, r.db, r.tx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Category{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
