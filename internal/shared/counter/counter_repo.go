package counter

import (
	"context"
	"database/sql"
	"fmt"

	"saral-hr/internal/shared/dbutil"

	"gorm.io/gorm"
)

const (
	TypeEmployeeCode = "employee_code"
	TypeSalarySlip   = "salary_slip"
	TypeSalaryHold   = "salary_hold"
	TypeLinkArchive  = "company_link_archive"
)

// GlobalScope dipakai untuk counter yang tidak terikat satu company (kode employee).
const GlobalScope = "00000000-0000-0000-0000-000000000000"

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
	NextSeries(ctx context.Context, companyID, counterType, prefix string) (string, error)
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

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var nextValue int64

	// UPSERT atomik supaya aman dari race condition per company/type
	err := dbutil.Conn(ctx, r.db, r.tx).Raw(`
		INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (company_id, counter_type) DO UPDATE
		SET last_value = company_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, companyID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}

// NextSeries formats the next counter value as a document number, e.g. "SAL-SLIP-000042".
func (r *repository) NextSeries(ctx context.Context, companyID, counterType, prefix string) (string, error) {
	next, err := r.GetNextValue(ctx, companyID, counterType)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%06d", prefix, next), nil
}
