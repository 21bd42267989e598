package attendance

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"saral-hr/internal/shared/dbutil"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindLink(ctx context.Context, linkID string) (*LinkRef, error)
	Create(ctx context.Context, a *Attendance) error
	// Upsert menulis status baru; baris (link, tanggal) yang sudah ada di-update.
	Upsert(ctx context.Context, a *Attendance) error
	Update(ctx context.Context, a *Attendance) error
	Delete(ctx context.Context, companyIDs []string, id string) error
	FindByID(ctx context.Context, companyIDs []string, id string) (*Attendance, error)
	// FindByLinkAndDate mengembalikan nil tanpa error bila belum ada.
	FindByLinkAndDate(ctx context.Context, linkID string, date time.Time) (*Attendance, error)
	FindBetween(ctx context.Context, linkID string, from, to time.Time) ([]Attendance, error)
	FindAll(ctx context.Context, companyIDs []string, filter AttendanceFilter) ([]Attendance, error)
	CountByStatus(ctx context.Context, linkID string, from, to time.Time) ([]StatusCount, error)
	FindForReport(ctx context.Context, companyID, categoryID string, linkIDs []string, from, to time.Time) ([]ReportRecord, error)
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

func (r *repository) FindLink(ctx context.Context, linkID string) (*LinkRef, error) {
	var link LinkRef
	err := r.conn(ctx).
		Where("deleted_at IS NULL").
		First(&link, "id = ?", linkID).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *repository) Create(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Create(a).Error
}

func (r *repository) Upsert(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_link_id"}, {Name: "attendance_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at", "deleted_at"}),
		}).
		Create(a).Error
}

func (r *repository) Update(ctx context.Context, a *Attendance) error {
	return r.conn(ctx).Save(a).Error
}

func (r *repository) Delete(ctx context.Context, companyIDs []string, id string) error {
	// hapus permanen supaya tanggal yang sama bisa diisi ulang
	res := r.conn(ctx).
		Unscoped().
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		Delete(&Attendance{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindByID(ctx context.Context, companyIDs []string, id string) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Preload("Link").
		Scopes(tenant.ScopeCompanies("company_id", companyIDs)).
		First(&a, "id = ?", id).Error
	return &a, err
}

func (r *repository) FindByLinkAndDate(ctx context.Context, linkID string, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.conn(ctx).
		Where("company_link_id = ?", linkID).
		Where("attendance_date = ?", period.FormatDate(date)).
		First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindBetween(ctx context.Context, linkID string, from, to time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.conn(ctx).
		Where("company_link_id = ?", linkID).
		Where("attendance_date BETWEEN ? AND ?", period.FormatDate(from), period.FormatDate(to)).
		Order("attendance_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAll(ctx context.Context, companyIDs []string, filter AttendanceFilter) ([]Attendance, error) {
	var rows []Attendance
	q := r.conn(ctx).
		Preload("Link").
		Scopes(tenant.ScopeCompanies("company_id", companyIDs))
	if filter.Employee != "" {
		q = q.Where("company_link_id = ?", filter.Employee)
	}
	if filter.From != "" {
		q = q.Where("attendance_date >= ?", filter.From)
	}
	if filter.To != "" {
		q = q.Where("attendance_date <= ?", filter.To)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("attendance_date DESC").Find(&rows).Error
	return rows, err
}

func (r *repository) CountByStatus(ctx context.Context, linkID string, from, to time.Time) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.conn(ctx).
		Model(&Attendance{}).
		Select("status, COUNT(*) AS total").
		Where("company_link_id = ?", linkID).
		Where("attendance_date BETWEEN ? AND ?", period.FormatDate(from), period.FormatDate(to)).
		Group("status").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindForReport(ctx context.Context, companyID, categoryID string, linkIDs []string, from, to time.Time) ([]ReportRecord, error) {
	var rows []ReportRecord
	q := r.conn(ctx).
		Table("attendances AS a").
		Select("a.company_link_id, cl.name AS employee_code, cl.full_name AS employee_name, a.attendance_date, a.status").
		Joins("JOIN company_links cl ON cl.id = a.company_link_id").
		Where("a.deleted_at IS NULL").
		Where("a.company_id = ?", companyID).
		Where("a.attendance_date BETWEEN ? AND ?", period.FormatDate(from), period.FormatDate(to))
	if categoryID != "" {
		q = q.Where("cl.category_id = ?", categoryID)
	}
	if len(linkIDs) > 0 {
		q = q.Where("a.company_link_id IN ?", linkIDs)
	}
	err := q.Order("cl.full_name ASC, a.company_link_id ASC, a.attendance_date ASC").
		Scan(&rows).Error
	return rows, err
}
