package salaryslip

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
	Create(ctx context.Context, slip *SalarySlip) error
	Update(ctx context.Context, slip *SalarySlip) error
	ReplaceRows(ctx context.Context, slipID string, rows []SlipRow) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*SalarySlip, error)
	// FindForRender tidak memakai scope tenant, hanya untuk consumer internal.
	FindForRender(ctx context.Context, id string) (*SalarySlip, error)
	FindByIDs(ctx context.Context, companyIDs []string, ids []string) ([]SalarySlip, error)
	FindAll(ctx context.Context, companyIDs []string, filter SlipFilter, start *time.Time) ([]SalarySlip, error)
	// FindActive mengembalikan slip non-cancelled untuk link dan periode, nil jika tidak ada.
	FindActive(ctx context.Context, linkID string, start time.Time) (*SalarySlip, error)
	SlipLinks(ctx context.Context, companyID string, start time.Time) (map[string]bool, error)
	SetPayslip(ctx context.Context, id, key, url string, at time.Time) error

	FindLink(ctx context.Context, linkID string) (*LinkRef, error)
	PayrollLinks(ctx context.Context, companyID string, start, end time.Time) ([]LinkRef, error)
	CountForChart(ctx context.Context, companyID string, start, end time.Time) (CompanyCount, error)
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

func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Rows", func(db *gorm.DB) *gorm.DB {
			return db.Order("section DESC, idx ASC")
		}).
		Preload("Link")
}

func (r *repository) Create(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Omit("Rows", "Link").Create(slip).Error
}

func (r *repository) Update(ctx context.Context, slip *SalarySlip) error {
	return r.conn(ctx).Omit("Rows", "Link").Save(slip).Error
}

func (r *repository) ReplaceRows(ctx context.Context, slipID string, rows []SlipRow) error {
	if err := r.conn(ctx).Where("salary_slip_id = ?", slipID).Delete(&SlipRow{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.conn(ctx).Create(&rows).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&SalarySlip{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs), withDetails).
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindForRender(ctx context.Context, id string) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(withDetails).
		First(&slip, "id = ?", id).Error
	return &slip, err
}

func (r *repository) FindByIDs(ctx context.Context, companyIDs []string, ids []string) ([]SalarySlip, error) {
	var slips []SalarySlip
	err := r.conn(ctx).
		Scopes(tenant.ScopeCompanies("company_id", companyIDs), withDetails).
		Where("id IN ?", ids).
		Order("start_date ASC, created_at ASC").
		Find(&slips).Error
	return slips, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, filter SlipFilter, start *time.Time) ([]SalarySlip, error) {
	var slips []SalarySlip
	q := r.conn(ctx).Scopes(tenant.ScopeCompanies("company_id", companyIDs), withDetails)
	if filter.Company != "" {
		q = q.Where("company_id = ?", filter.Company)
	}
	if filter.Employee != "" {
		q = q.Where("company_link_id = ?", filter.Employee)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if start != nil {
		q = q.Where("start_date = ?", *start)
	}
	err := q.Order("start_date DESC, created_at DESC").Find(&slips).Error
	return slips, err
}

func (r *repository) FindActive(ctx context.Context, linkID string, start time.Time) (*SalarySlip, error) {
	var slip SalarySlip
	err := r.conn(ctx).
		Scopes(withDetails).
		Where("company_link_id = ? AND start_date = ?", linkID, start).
		Where("status <> ?", StatusCancelled).
		First(&slip).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &slip, nil
}

func (r *repository) SlipLinks(ctx context.Context, companyID string, start time.Time) (map[string]bool, error) {
	var ids []string
	err := r.conn(ctx).
		Model(&SalarySlip{}).
		Scopes(tenant.Scope(companyID)).
		Where("start_date = ? AND status <> ?", start, StatusCancelled).
		Pluck("company_link_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

func (r *repository) SetPayslip(ctx context.Context, id, key, url string, at time.Time) error {
	return r.conn(ctx).
		Model(&SalarySlip{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payslip_key":          key,
			"payslip_url":          url,
			"payslip_generated_at": at,
		}).Error
}

func (r *repository) FindLink(ctx context.Context, linkID string) (*LinkRef, error) {
	var link LinkRef
	err := r.conn(ctx).
		Where("deleted_at IS NULL").
		First(&link, "id = ?", linkID).Error
	return &link, err
}

// PayrollLinks adalah link yang bekerja di company pada periode tersebut:
// sudah bergabung sebelum akhir periode dan belum keluar sebelum awal periode.
func (r *repository) PayrollLinks(ctx context.Context, companyID string, start, end time.Time) ([]LinkRef, error) {
	var links []LinkRef
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL").
		Where("date_of_joining IS NULL OR date_of_joining <= ?", end).
		Where("left_date IS NULL OR left_date >= ?", start).
		Order("full_name ASC").
		Find(&links).Error
	return links, err
}

func (r *repository) CountForChart(ctx context.Context, companyID string, start, end time.Time) (CompanyCount, error) {
	count := CompanyCount{CompanyID: companyID}

	err := r.conn(ctx).
		Table("companies").
		Select("name").
		Where("id = ?", companyID).
		Scan(&count.CompanyName).Error
	if err != nil {
		return count, err
	}

	var total int64
	err = r.conn(ctx).
		Model(&LinkRef{}).
		Scopes(tenant.Scope(companyID)).
		Where("deleted_at IS NULL AND is_active = ?", true).
		Count(&total).Error
	if err != nil {
		return count, err
	}
	count.Total = int(total)

	var rows []struct {
		Status string
		Cnt    int
	}
	err = r.conn(ctx).
		Model(&SalarySlip{}).
		Select("status, COUNT(DISTINCT company_link_id) AS cnt").
		Scopes(tenant.Scope(companyID)).
		Where("start_date >= ? AND end_date <= ?", start, end).
		Where("status IN ?", []string{StatusDraft, StatusSubmitted}).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return count, err
	}
	for _, row := range rows {
		switch row.Status {
		case StatusSubmitted:
			count.Submitted = row.Cnt
		case StatusDraft:
			count.Draft = row.Cnt
		}
	}
	return count, nil
}
