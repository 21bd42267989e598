package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/events"
	"saral-hr/internal/messaging/kafka"
	"saral-hr/internal/shared/apperror"
	"saral-hr/internal/shared/contextutil"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	displayLayout    = "02-01-2006"
	monthLayout      = "2006-01"
	noneSavedMessage = "No attendance record could be saved"
	eventBatchSaved  = "attendance.batch_saved"
	aggregateType    = "company_link"
)

type Service interface {
	Create(ctx context.Context, companyIDs []string, req SaveAttendanceRequest) (AttendanceResponse, error)
	MarkSingle(ctx context.Context, companyIDs []string, req SaveAttendanceRequest) (AttendanceResponse, error)
	Update(ctx context.Context, companyIDs []string, id string, req UpdateAttendanceRequest) (AttendanceResponse, error)
	Delete(ctx context.Context, companyIDs []string, id string) error
	GetAll(ctx context.Context, companyIDs []string, filter AttendanceFilter) ([]AttendanceResponse, error)
	GetBetweenDates(ctx context.Context, companyIDs []string, linkID string, from, to time.Time) (map[string]string, error)
	SaveBatch(ctx context.Context, companyIDs []string, records []BatchRecord) (BatchResult, error)
	MarkBulk(ctx context.Context, companyIDs []string, req MarkBulkRequest) (MarkBulkResult, error)
	UnmarkedDays(ctx context.Context, companyIDs []string, linkID string, year int, month time.Month, excludeWeekends bool) ([]string, error)
	SummaryFor(ctx context.Context, companyIDs []string, linkID string, from, to time.Time) (Summary, error)
	// Summary tanpa cek izin, dipakai payroll.
	Summary(ctx context.Context, linkID string, from, to time.Time) (Summary, error)
	MonthlyReport(ctx context.Context, companyIDs []string, filter MonthlyReportFilter) (MonthlyReport, error)
	ExportMonthlyReport(ctx context.Context, companyIDs []string, filter MonthlyReportFilter) ([]byte, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("attendance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, logger: l}
}

func (s *service) Create(ctx context.Context, companyIDs []string, req SaveAttendanceRequest) (AttendanceResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	date, err := period.ParseDate(req.AttendanceDate)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create attendance begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := s.permittedLink(ctx, qtx, companyIDs, req.Employee)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if err := validate(link, date, req.Status, today()); err != nil {
		return AttendanceResponse{}, err
	}

	existing, err := qtx.FindByLinkAndDate(ctx, req.Employee, date)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if existing != nil {
		return AttendanceResponse{}, attendanceerrors.DuplicateAttendance(link.Name, date.Format(displayLayout))
	}

	row := newAttendance(link, date, req.Status)
	row.Remarks = req.Remarks
	if err := qtx.Create(ctx, row); err != nil {
		s.logger.Error("create attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := s.emitSaved(ctx, tx, link, []time.Time{date}, 1); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("commit failed", zap.String("request_id", rid), zap.Error(err))
		return AttendanceResponse{}, err
	}
	row.Link = link
	return mapToResponse(*row), nil
}

// MarkSingle membuat atau mengubah status satu tanggal. Hari libur mingguan
// employee tidak bisa diisi.
func (s *service) MarkSingle(ctx context.Context, companyIDs []string, req SaveAttendanceRequest) (AttendanceResponse, error) {
	date, err := period.ParseDate(req.AttendanceDate)
	if err != nil {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidDate
	}
	if !ValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := s.permittedLink(ctx, qtx, companyIDs, req.Employee)
	if err != nil {
		return AttendanceResponse{}, err
	}
	if offDays, _ := period.ParseWeekdays(link.WeeklyOff); offDays[date.Weekday()] {
		return AttendanceResponse{}, attendanceerrors.WeeklyOff(date.Weekday().String())
	}

	row, err := qtx.FindByLinkAndDate(ctx, req.Employee, date)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row != nil {
		row.Status = req.Status
		if req.Remarks != nil {
			row.Remarks = req.Remarks
		}
		err = qtx.Update(ctx, row)
	} else {
		row = newAttendance(link, date, req.Status)
		row.Remarks = req.Remarks
		err = qtx.Create(ctx, row)
	}
	if err != nil {
		s.logger.Error("mark attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if err := s.emitSaved(ctx, tx, link, []time.Time{date}, 1); err != nil {
		return AttendanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	row.Link = link
	return mapToResponse(*row), nil
}

func (s *service) Update(ctx context.Context, companyIDs []string, id string, req UpdateAttendanceRequest) (AttendanceResponse, error) {
	if !ValidStatus(req.Status) {
		return AttendanceResponse{}, attendanceerrors.ErrInvalidStatus
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update attendance begin tx failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	row, err := qtx.FindByID(ctx, companyIDs, id)
	if err != nil {
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.Status != StatusOnLeave && req.Status != StatusOnLeave && row.AttendanceDate.After(today()) {
		return AttendanceResponse{}, attendanceerrors.FutureDate(row.AttendanceDate.Format(displayLayout))
	}

	row.Status = req.Status
	row.Remarks = req.Remarks
	if err := qtx.Update(ctx, row); err != nil {
		s.logger.Error("update attendance persist failed", zap.Error(err))
		return AttendanceResponse{}, mapRepositoryError(err)
	}
	if row.Link != nil {
		if err := s.emitSaved(ctx, tx, row.Link, []time.Time{row.AttendanceDate}, 1); err != nil {
			return AttendanceResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update attendance commit failed", zap.Error(err))
		return AttendanceResponse{}, err
	}
	return mapToResponse(*row), nil
}

func (s *service) Delete(ctx context.Context, companyIDs []string, id string) error {
	if err := s.repo.Delete(ctx, companyIDs, id); err != nil {
		return mapRepositoryError(err)
	}
	s.logger.Info("delete attendance success", zap.String("attendance_id", id))
	return nil
}

func (s *service) GetAll(ctx context.Context, companyIDs []string, filter AttendanceFilter) ([]AttendanceResponse, error) {
	rows, err := s.repo.FindAll(ctx, companyIDs, filter)
	if err != nil {
		s.logger.Error("get all attendance failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	res := make([]AttendanceResponse, len(rows))
	for i, r := range rows {
		res[i] = mapToResponse(r)
	}
	return res, nil
}

// GetBetweenDates mengembalikan map tanggal ISO -> status untuk satu link.
func (s *service) GetBetweenDates(ctx context.Context, companyIDs []string, linkID string, from, to time.Time) (map[string]string, error) {
	if to.Before(from) {
		return nil, attendanceerrors.ErrInvalidDateRange
	}
	if _, err := s.permittedLink(ctx, s.repo, companyIDs, linkID); err != nil {
		return nil, err
	}

	rows, err := s.repo.FindBetween(ctx, linkID, from, to)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[period.FormatDate(r.AttendanceDate)] = r.Status
	}
	return out, nil
}

// SaveBatch menyimpan baris grid dalam satu transaksi. Kesalahan per baris
// dikumpulkan di Errors; bila tidak ada satu pun yang tersimpan transaksi
// dibatalkan.
func (s *service) SaveBatch(ctx context.Context, companyIDs []string, records []BatchRecord) (BatchResult, error) {
	rid := contextutil.GetRequestID(ctx)
	if len(records) == 0 {
		return BatchResult{}, attendanceerrors.ErrNoRecords
	}
	s.logger.Debug("save attendance batch requested",
		zap.String("request_id", rid),
		zap.Int("records", len(records)),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("save batch begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return BatchResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := today()
	links := map[string]*LinkRef{}
	touched := map[string][]time.Time{}
	var order []string
	result := BatchResult{}

	for _, rec := range records {
		link, ok := links[rec.Employee]
		if !ok {
			if _, err := uuid.Parse(rec.Employee); err == nil {
				link, err = qtx.FindLink(ctx, rec.Employee)
				if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
					return BatchResult{}, err
				}
			}
			links[rec.Employee] = link
		}
		if link == nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error for %s on %s: %s",
				rec.Employee, rec.AttendanceDate, attendanceerrors.ErrEmployeeNotFound.Message))
			continue
		}
		if !tenant.Allows(companyIDs, link.CompanyID.String()) {
			result.Errors = append(result.Errors, fmt.Sprintf("Not permitted for %s on %s", rec.Employee, rec.AttendanceDate))
			continue
		}

		date, err := period.ParseDate(rec.AttendanceDate)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error for %s on %s: %s",
				rec.Employee, rec.AttendanceDate, attendanceerrors.ErrInvalidDate.Message))
			continue
		}
		if err := validate(link, date, rec.Status, now); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Error for %s on %s: %s", rec.Employee, rec.AttendanceDate, messageOf(err)))
			continue
		}

		if err := qtx.Upsert(ctx, newAttendance(link, date, rec.Status)); err != nil {
			s.logger.Error("save batch upsert failed",
				zap.String("request_id", rid),
				zap.String("company_link_id", rec.Employee),
				zap.Error(err),
			)
			return BatchResult{}, mapRepositoryError(err)
		}
		if _, seen := touched[rec.Employee]; !seen {
			order = append(order, rec.Employee)
		}
		touched[rec.Employee] = append(touched[rec.Employee], date)
		result.SavedCount++
	}

	if result.SavedCount == 0 {
		s.logger.Warn("save batch stored nothing",
			zap.String("request_id", rid),
			zap.Int("errors", len(result.Errors)),
		)
		result.Error = noneSavedMessage
		return result, nil
	}

	for _, linkID := range order {
		if err := s.emitSaved(ctx, tx, links[linkID], touched[linkID], len(touched[linkID])); err != nil {
			return BatchResult{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("save batch commit failed", zap.String("request_id", rid), zap.Error(err))
		return BatchResult{}, err
	}

	result.Success = true
	s.logger.Info("save attendance batch success",
		zap.String("request_id", rid),
		zap.Int("saved", result.SavedCount),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// MarkBulk mengisi status yang sama untuk banyak tanggal. Tanggal yang sudah
// tercatat dilewati, tidak ditimpa.
func (s *service) MarkBulk(ctx context.Context, companyIDs []string, req MarkBulkRequest) (MarkBulkResult, error) {
	if len(req.Dates) == 0 {
		return MarkBulkResult{}, attendanceerrors.ErrNoDates
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark bulk begin tx failed", zap.Error(err))
		return MarkBulkResult{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	link, err := s.permittedLink(ctx, qtx, companyIDs, req.Employee)
	if err != nil {
		return MarkBulkResult{}, err
	}

	now := today()
	result := MarkBulkResult{Total: len(req.Dates)}
	var created []time.Time
	for _, raw := range req.Dates {
		date, err := period.ParseDate(raw)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", raw, attendanceerrors.ErrInvalidDate.Message))
			continue
		}

		existing, err := qtx.FindByLinkAndDate(ctx, req.Employee, date)
		if err != nil {
			return MarkBulkResult{}, mapRepositoryError(err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		if err := validate(link, date, req.Status, now); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %s", raw, messageOf(err)))
			continue
		}
		if err := qtx.Create(ctx, newAttendance(link, date, req.Status)); err != nil {
			return MarkBulkResult{}, mapRepositoryError(err)
		}
		created = append(created, date)
	}
	result.Created = len(created)

	if len(created) > 0 {
		if err := s.emitSaved(ctx, tx, link, created, len(created)); err != nil {
			return MarkBulkResult{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("mark bulk commit failed", zap.Error(err))
		return MarkBulkResult{}, err
	}

	s.logger.Info("mark bulk attendance done",
		zap.String("company_link_id", req.Employee),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
	)
	return result, nil
}

// UnmarkedDays mengembalikan tanggal dalam bulan yang belum punya absensi.
// excludeWeekends membuang Sabtu dan Minggu.
func (s *service) UnmarkedDays(ctx context.Context, companyIDs []string, linkID string, year int, month time.Month, excludeWeekends bool) ([]string, error) {
	if _, err := s.permittedLink(ctx, s.repo, companyIDs, linkID); err != nil {
		return nil, err
	}

	from := period.MonthStart(year, month)
	to := period.MonthEnd(year, month)
	rows, err := s.repo.FindBetween(ctx, linkID, from, to)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	marked := make(map[string]bool, len(rows))
	for _, r := range rows {
		marked[period.FormatDate(r.AttendanceDate)] = true
	}

	out := make([]string, 0)
	for _, d := range period.Days(from, to) {
		key := period.FormatDate(d)
		if marked[key] {
			continue
		}
		if excludeWeekends && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday) {
			continue
		}
		out = append(out, key)
	}
	return out, nil
}

func (s *service) SummaryFor(ctx context.Context, companyIDs []string, linkID string, from, to time.Time) (Summary, error) {
	if _, err := s.permittedLink(ctx, s.repo, companyIDs, linkID); err != nil {
		return Summary{}, err
	}
	return s.Summary(ctx, linkID, from, to)
}

func (s *service) Summary(ctx context.Context, linkID string, from, to time.Time) (Summary, error) {
	if to.Before(from) {
		return Summary{}, attendanceerrors.ErrInvalidDateRange
	}
	counts, err := s.repo.CountByStatus(ctx, linkID, from, to)
	if err != nil {
		s.logger.Error("attendance summary failed", zap.String("company_link_id", linkID), zap.Error(err))
		return Summary{}, mapRepositoryError(err)
	}
	return summarize(counts), nil
}

func (s *service) permittedLink(ctx context.Context, repo Repository, companyIDs []string, linkID string) (*LinkRef, error) {
	if _, err := uuid.Parse(linkID); err != nil {
		return nil, attendanceerrors.ErrEmployeeNotFound
	}
	link, err := repo.FindLink(ctx, linkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, attendanceerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	if !tenant.Allows(companyIDs, link.CompanyID.String()) {
		return nil, attendanceerrors.ErrForbidden
	}
	return link, nil
}

func (s *service) emitSaved(ctx context.Context, tx *sql.Tx, link *LinkRef, dates []time.Time, saved int) error {
	if s.outbox == nil {
		return nil
	}
	rid := contextutil.GetRequestID(ctx)
	event := events.AttendanceBatchSavedEvent{
		EventType:     eventBatchSaved,
		RequestID:     rid,
		CompanyID:     link.CompanyID.String(),
		CompanyLinkID: link.ID.String(),
		Months:        monthsOf(dates),
		SavedCount:    saved,
		OccurredAt:    time.Now().UTC(),
	}
	ev, err := kafka.NewOutboxEvent(rid, aggregateType, link.ID.String(), event.EventType, events.AttendanceBatchSavedTopic, event)
	if err != nil {
		s.logger.Error("build attendance outbox event failed", zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, ev); err != nil {
		s.logger.Error("attendance outbox persist failed",
			zap.String("company_link_id", link.ID.String()),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validate(link *LinkRef, date time.Time, status string, today time.Time) error {
	if !ValidStatus(status) {
		return attendanceerrors.ErrInvalidStatus
	}
	if !link.IsActive {
		return attendanceerrors.InactiveEmployee(link.Name)
	}
	if status != StatusOnLeave && date.After(today) {
		return attendanceerrors.FutureDate(date.Format(displayLayout))
	}
	if link.DateOfJoining != nil && date.Before(period.Truncate(*link.DateOfJoining)) {
		return attendanceerrors.BeforeJoining(date.Format(displayLayout), link.DateOfJoining.Format(displayLayout))
	}
	return nil
}

func messageOf(err error) string {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func summarize(counts []StatusCount) Summary {
	var sum Summary
	for _, c := range counts {
		sum.AttendanceCount += c.Total
		switch c.Status {
		case StatusPresent, StatusWorkFromHome, StatusOnLeave:
			sum.Present += c.Total
		case StatusAbsent:
			sum.Absent += c.Total
		case StatusHalfDay:
			sum.HalfDay += c.Total
		case StatusLWP:
			sum.LWP += c.Total
		case StatusHoliday:
			sum.Holiday += c.Total
		case StatusWeeklyOff:
			sum.WeeklyOff += c.Total
		}
	}
	return sum
}

func monthsOf(dates []time.Time) []string {
	seen := map[string]bool{}
	out := make([]string, 0, 1)
	for _, d := range dates {
		m := d.Format(monthLayout)
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	sort.Strings(out)
	return out
}

func today() time.Time {
	return period.Truncate(time.Now())
}

func newAttendance(link *LinkRef, date time.Time, status string) *Attendance {
	return &Attendance{
		ID:             uuid.New(),
		CompanyLinkID:  link.ID,
		CompanyID:      link.CompanyID,
		AttendanceDate: date,
		Status:         status,
	}
}

func mapToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:             a.ID.String(),
		Employee:       a.CompanyLinkID.String(),
		CompanyID:      a.CompanyID.String(),
		AttendanceDate: period.FormatDate(a.AttendanceDate),
		Status:         a.Status,
		Remarks:        a.Remarks,
	}
	if a.Link != nil {
		resp.EmployeeName = a.Link.FullName
	}
	return resp
}
