package salaryhold

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, hold *SalaryHold) error
	Update(ctx context.Context, hold *SalaryHold) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*SalaryHold, error)
	FindAll(ctx context.Context, companyIDs []string, filter HoldFilter) ([]SalaryHold, error)
	// FindActive mengembalikan hold submitted berstatus On Hold selain excludeID, nil jika tidak ada.
	FindActive(ctx context.Context, linkID, excludeID string) (*SalaryHold, error)

	FindLink(ctx context.Context, linkID string) (*LinkRef, error)
	FindSlip(ctx context.Context, slipID string) (*SlipRef, error)
	FindSlips(ctx context.Context, linkID string, start *time.Time) ([]SlipRef, error)
	SetSlipHold(ctx context.Context, slipID string, onHold bool, holdReason, releaseReason *string) error
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

func (r *repository) Create(ctx context.Context, hold *SalaryHold) error {
	return r.conn(ctx).Omit("Link").Create(hold).Error
}

func (r *repository) Update(ctx context.Context, hold *SalaryHold) error {
	return r.conn(ctx).Omit("Link").Save(hold).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&SalaryHold{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*SalaryHold, error) {
	var hold SalaryHold
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Link").
		First(&hold, "id = ?", id).Error
	return &hold, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, filter HoldFilter) ([]SalaryHold, error) {
	var holds []SalaryHold
	q := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Preload("Link")
	if filter.Employee != "" {
		q = q.Where("company_link_id = ?", filter.Employee)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("hold_date DESC, created_at DESC").Find(&holds).Error
	return holds, err
}

func (r *repository) FindActive(ctx context.Context, linkID, excludeID string) (*SalaryHold, error) {
	var hold SalaryHold
	q := r.conn(ctx).
		Where("company_link_id = ?", linkID).
		Where("status = ? AND doc_status = ?", StatusOnHold, DocSubmitted)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Order("hold_date DESC").First(&hold).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hold, nil
}

func (r *repository) FindLink(ctx context.Context, linkID string) (*LinkRef, error) {
	var link LinkRef
	err := r.conn(ctx).
		Where("deleted_at IS NULL").
		First(&link, "id = ?", linkID).Error
	return &link, err
}

func (r *repository) FindSlip(ctx context.Context, slipID string) (*SlipRef, error) {
	var slip SlipRef
	err := r.conn(ctx).First(&slip, "id = ?", slipID).Error
	return &slip, err
}

func (r *repository) FindSlips(ctx context.Context, linkID string, start *time.Time) ([]SlipRef, error) {
	var slips []SlipRef
	q := r.conn(ctx).
		Where("company_link_id = ?", linkID).
		Where("status IN ?", []string{"Draft", "Submitted"})
	if start != nil {
		q = q.Where("start_date = ?", *start)
	}
	err := q.Order("updated_at DESC").Find(&slips).Error
	return slips, err
}

// SetSlipHold hanya menyentuh slip Draft atau Submitted.
func (r *repository) SetSlipHold(ctx context.Context, slipID string, onHold bool, holdReason, releaseReason *string) error {
	return r.conn(ctx).
		Model(&SlipRef{}).
		Where("id = ? AND status IN ?", slipID, []string{"Draft", "Submitted"}).
		Updates(map[string]any{
			"on_hold":        onHold,
			"hold_reason":    holdReason,
			"release_reason": releaseReason,
		}).Error
}
