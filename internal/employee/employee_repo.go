package employee

import (
	"context"
	"database/sql"
	"fmt"

	"saral-hr/internal/shared/dbutil"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAll(ctx context.Context, filter ListFilter) ([]Employee, error)
	FindByID(ctx context.Context, id string) (*Employee, error)
	FindByIDs(ctx context.Context, ids []string) ([]Employee, error)
	Update(ctx context.Context, empl *Employee) error
	Delete(ctx context.Context, id string) error
	CountLinks(ctx context.Context, id string) (int64, error)
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return dbutil.Conn(ctx, r.db, r.tx).Create(empl).Error
}

var employeeSortColumns = map[string]string{
	"name":   "LOWER(first_name) %[1]s, LOWER(last_name) %[1]s",
	"code":   "employee_code %[1]s",
	"joined": "created_at %[1]s",
}

func (r *repository) FindAll(ctx context.Context, filter ListFilter) ([]Employee, error) {
	q := dbutil.Conn(ctx, r.db, r.tx)
	if filter.Q != "" {
		like := "%" + filter.Q + "%"
		q = q.Where(
			"full_name ILIKE ? OR employee_code ILIKE ? OR aadhaar_number LIKE ?",
			like, like, filter.Q+"%",
		)
	}

	order, ok := employeeSortColumns[filter.SortBy]
	if !ok {
		order = employeeSortColumns["name"]
	}
	dir := "ASC"
	if filter.SortDir == "desc" {
		dir = "DESC"
	}

	var empls []Employee
	err := q.Order(fmt.Sprintf(order, dir)).Find(&empls).Error
	return empls, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Employee, error) {
	var empl Employee
	err := dbutil.Conn(ctx, r.db, r.tx).First(&empl, "id = ?", id).Error
	return &empl, err
}

func (r *repository) FindByIDs(ctx context.Context, ids []string) ([]Employee, error) {
	var empls []Employee
	if len(ids) == 0 {
		return empls, nil
	}
	err := dbutil.Conn(ctx, r.db, r.tx).Where("id IN ?", ids).Find(&empls).Error
	return empls, err
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return dbutil.Conn(ctx, r.db, r.tx).Save(empl).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := dbutil.Conn(ctx, r.db, r.tx).Delete(&Employee{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountLinks(ctx context.Context, id string) (int64, error) {
	var total int64
	err := dbutil.Conn(ctx, r.db, r.tx).
		Table("company_links").
		Where("employee_id = ?", id).
		Where("deleted_at IS NULL").
		Count(&total).Error
	return total, err
}
