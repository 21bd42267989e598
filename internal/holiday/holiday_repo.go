package holiday

import (
	"context"
	"database/sql"
	"time"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, list *HolidayList) error
	Update(ctx context.Context, list *HolidayList) error
	ReplaceHolidays(ctx context.Context, listID string, holidays []Holiday) error
	FindAllByCompanies(ctx context.Context, companyIDs []string) ([]HolidayList, error)
	FindByID(ctx context.Context, companyIDs []string, id string) (*HolidayList, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
	FindHolidaysBetween(ctx context.Context, listID string, from, to time.Time) ([]Holiday, error)
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

func (r *repository) Create(ctx context.Context, list *HolidayList) error {
	return r.conn(ctx).Omit("Holidays").Create(list).Error
}

func (r *repository) Update(ctx context.Context, list *HolidayList) error {
	return r.conn(ctx).Omit("Holidays").Save(list).Error
}

func (r *repository) ReplaceHolidays(ctx context.Context, listID string, holidays []Holiday) error {
	if err := r.conn(ctx).Where("holiday_list_id = ?", listID).Delete(&Holiday{}).Error; err != nil {
		return err
	}
	if len(holidays) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&holidays).Error
}

func (r *repository) FindAllByCompanies(ctx context.Context, companyIDs []string) ([]HolidayList, error) {
	var lists []HolidayList
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Order("from_date DESC").
		Find(&lists).Error
	return lists, err
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*HolidayList, error) {
	var list HolidayList
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Holidays", func(db *gorm.DB) *gorm.DB {
			return db.Order("holiday_date ASC")
		}).
		First(&list, "id = ?", id).Error
	return &list, err
}

func (r *repository) Delete(ctx context.Context, companyIDs []string, id string) error {
	res := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&HolidayList{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindHolidaysBetween(ctx context.Context, listID string, from, to time.Time) ([]Holiday, error) {
	var holidays []Holiday
	err := r.conn(ctx).
		Where("holiday_list_id = ?", listID).
		Where("holiday_date BETWEEN ? AND ?", from, to).
		Order("holiday_date ASC").
		Find(&holidays).Error
	return holidays, err
}
