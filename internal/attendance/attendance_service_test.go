package attendance_test

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"saral-hr/internal/attendance"
	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/events"
	"saral-hr/internal/messaging/kafka"
	"saral-hr/internal/shared/period"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type fakeRepo struct {
	links    map[string]*attendance.LinkRef
	rows     map[string]attendance.Attendance
	counts   []attendance.StatusCount
	upsertFn func(ctx context.Context, a *attendance.Attendance) error

	report         []attendance.ReportRecord
	reportCategory string
	reportFrom     time.Time
	reportTo       time.Time
}

func newFakeRepo(links ...*attendance.LinkRef) *fakeRepo {
	f := &fakeRepo{links: map[string]*attendance.LinkRef{}, rows: map[string]attendance.Attendance{}}
	for _, l := range links {
		f.links[l.ID.String()] = l
	}
	return f
}

func key(linkID uuid.UUID, d time.Time) string {
	return linkID.String() + "|" + period.FormatDate(d)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) attendance.Repository { return f }

func (f *fakeRepo) FindLink(ctx context.Context, linkID string) (*attendance.LinkRef, error) {
	l, ok := f.links[linkID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return l, nil
}

func (f *fakeRepo) Create(ctx context.Context, a *attendance.Attendance) error {
	f.rows[key(a.CompanyLinkID, a.AttendanceDate)] = *a
	return nil
}

func (f *fakeRepo) Upsert(ctx context.Context, a *attendance.Attendance) error {
	if f.upsertFn != nil {
		return f.upsertFn(ctx, a)
	}
	f.rows[key(a.CompanyLinkID, a.AttendanceDate)] = *a
	return nil
}

func (f *fakeRepo) Update(ctx context.Context, a *attendance.Attendance) error {
	f.rows[key(a.CompanyLinkID, a.AttendanceDate)] = *a
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, companyIDs []string, id string) error {
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, companyIDs []string, id string) (*attendance.Attendance, error) {
	for _, r := range f.rows {
		if r.ID.String() == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepo) FindByLinkAndDate(ctx context.Context, linkID string, date time.Time) (*attendance.Attendance, error) {
	r, ok := f.rows[key(uuid.MustParse(linkID), date)]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeRepo) FindBetween(ctx context.Context, linkID string, from, to time.Time) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, r := range f.rows {
		if r.CompanyLinkID.String() == linkID && !r.AttendanceDate.Before(from) && !r.AttendanceDate.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) FindAll(ctx context.Context, companyIDs []string, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeRepo) CountByStatus(ctx context.Context, linkID string, from, to time.Time) ([]attendance.StatusCount, error) {
	return f.counts, nil
}

func (f *fakeRepo) FindForReport(ctx context.Context, companyID, categoryID string, linkIDs []string, from, to time.Time) ([]attendance.ReportRecord, error) {
	f.reportCategory, f.reportFrom, f.reportTo = categoryID, from, to
	return f.report, nil
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
}

func (f *fakeOutbox) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutbox) Create(ctx context.Context, event kafka.OutboxEvent) error {
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutbox) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutbox) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutbox) MarkFailed(ctx context.Context, id string, reason string) error { return nil }

func (f *fakeOutbox) PurgeSent(ctx context.Context, before time.Time) (int64, error) { return 0, nil }

func newService(t *testing.T, repo *fakeRepo) (attendance.Service, sqlmock.Sqlmock, *fakeOutbox) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	outbox := &fakeOutbox{}
	return attendance.NewService(db, repo, outbox), mock, outbox
}

func activeLink(companyID uuid.UUID) *attendance.LinkRef {
	doj := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return &attendance.LinkRef{
		ID:            uuid.New(),
		Name:          "HR-EMP-000001",
		CompanyID:     companyID,
		FullName:      "Asha Rao",
		WeeklyOff:     "Sunday",
		DateOfJoining: &doj,
		IsActive:      true,
	}
}

func TestService_SaveBatch(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	otherCompany := uuid.New()
	link := activeLink(companyID)
	foreign := activeLink(otherCompany)

	t.Run("saves valid rows and reports the rest", func(t *testing.T) {
		repo := newFakeRepo(link, foreign)
		svc, mock, outbox := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.SaveBatch(ctx, []string{companyID.String()}, []attendance.BatchRecord{
			{Employee: link.ID.String(), AttendanceDate: "2025-01-06", Status: "Present"},
			{Employee: link.ID.String(), AttendanceDate: "2025-02-03", Status: "Absent"},
			{Employee: link.ID.String(), AttendanceDate: "2024-01-01", Status: "Present"},
			{Employee: link.ID.String(), AttendanceDate: "2999-01-01", Status: "Present"},
			{Employee: link.ID.String(), AttendanceDate: "2999-01-02", Status: "On Leave"},
			{Employee: link.ID.String(), AttendanceDate: "2025-01-07", Status: "Sick"},
			{Employee: foreign.ID.String(), AttendanceDate: "2025-01-06", Status: "Present"},
		})
		require.NoError(t, err)
		assert.True(t, res.Success)
		assert.Equal(t, 3, res.SavedCount)
		require.Len(t, res.Errors, 4)
		assert.Contains(t, res.Errors[0], "cannot be before employee's joining date 15-01-2024")
		assert.Contains(t, res.Errors[1], "Attendance cannot be marked for future dates: 01-01-2999")
		assert.Contains(t, res.Errors[2], "Invalid attendance status")
		assert.Equal(t, "Not permitted for "+foreign.ID.String()+" on 2025-01-06", res.Errors[3])

		require.Len(t, outbox.created, 1)
		ev := outbox.created[0]
		assert.Equal(t, events.AttendanceBatchSavedTopic, ev.Topic)
		var payload events.AttendanceBatchSavedEvent
		require.NoError(t, json.Unmarshal(ev.Payload, &payload))
		assert.Equal(t, link.ID.String(), payload.CompanyLinkID)
		assert.Equal(t, []string{"2025-01", "2025-02", "2999-01"}, payload.Months)
		assert.Equal(t, 3, payload.SavedCount)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("existing row is overwritten", func(t *testing.T) {
		repo := newFakeRepo(link)
		date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
		repo.rows[key(link.ID, date)] = attendance.Attendance{ID: uuid.New(), CompanyLinkID: link.ID, AttendanceDate: date, Status: "Absent"}
		svc, mock, _ := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectCommit()

		res, err := svc.SaveBatch(ctx, []string{companyID.String()}, []attendance.BatchRecord{
			{Employee: link.ID.String(), AttendanceDate: "2025-01-06", Status: "Present"},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, res.SavedCount)
		assert.Equal(t, "Present", repo.rows[key(link.ID, date)].Status)
	})

	t.Run("rolls back when nothing saved", func(t *testing.T) {
		inactive := activeLink(companyID)
		inactive.IsActive = false
		repo := newFakeRepo(inactive)
		svc, mock, outbox := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		res, err := svc.SaveBatch(ctx, []string{companyID.String()}, []attendance.BatchRecord{
			{Employee: inactive.ID.String(), AttendanceDate: "2025-01-06", Status: "Present"},
			{Employee: uuid.NewString(), AttendanceDate: "2025-01-06", Status: "Present"},
		})
		require.NoError(t, err)
		assert.False(t, res.Success)
		assert.Zero(t, res.SavedCount)
		assert.Equal(t, "No attendance record could be saved", res.Error)
		require.Len(t, res.Errors, 2)
		assert.Contains(t, res.Errors[0], "Cannot mark attendance for an inactive employee: HR-EMP-000001")
		assert.Contains(t, res.Errors[1], "Employee not found")
		assert.Empty(t, outbox.created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database failure aborts the batch", func(t *testing.T) {
		repo := newFakeRepo(link)
		repo.upsertFn = func(ctx context.Context, a *attendance.Attendance) error { return errors.New("connection reset") }
		svc, mock, _ := newService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		_, err := svc.SaveBatch(ctx, []string{companyID.String()}, []attendance.BatchRecord{
			{Employee: link.ID.String(), AttendanceDate: "2025-01-06", Status: "Present"},
		})
		assert.EqualError(t, err, "connection reset")
	})

	t.Run("empty batch", func(t *testing.T) {
		svc, _, _ := newService(t, newFakeRepo())
		_, err := svc.SaveBatch(ctx, nil, nil)
		assert.ErrorIs(t, err, attendanceerrors.ErrNoRecords)
	})
}

func TestService_MarkBulk(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	link := activeLink(companyID)
	repo := newFakeRepo(link)
	marked := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	repo.rows[key(link.ID, marked)] = attendance.Attendance{ID: uuid.New(), CompanyLinkID: link.ID, AttendanceDate: marked, Status: "Absent"}

	svc, mock, outbox := newService(t, repo)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.MarkBulk(ctx, []string{companyID.String()}, attendance.MarkBulkRequest{
		Employee: link.ID.String(),
		Dates:    []string{"2025-03-03", "2025-03-04", "2025-03-05", "bad", "2999-03-01"},
		Status:   "Present",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Created)
	assert.Equal(t, 1, res.Skipped)
	assert.Equal(t, 5, res.Total)
	assert.Len(t, res.Errors, 2)
	// tanggal yang sudah tercatat tidak berubah
	assert.Equal(t, "Absent", repo.rows[key(link.ID, marked)].Status)
	assert.Len(t, outbox.created, 1)

	_, err = svc.MarkBulk(ctx, []string{companyID.String()}, attendance.MarkBulkRequest{Employee: link.ID.String(), Status: "Present"})
	assert.ErrorIs(t, err, attendanceerrors.ErrNoDates)
}

func TestService_MarkSingle_WeeklyOff(t *testing.T) {
	companyID := uuid.New()
	link := activeLink(companyID)
	svc, mock, _ := newService(t, newFakeRepo(link))
	mock.ExpectBegin()
	mock.ExpectRollback()

	// 2025-01-05 hari Minggu
	_, err := svc.MarkSingle(context.Background(), []string{companyID.String()}, attendance.SaveAttendanceRequest{
		Employee:       link.ID.String(),
		AttendanceDate: "2025-01-05",
		Status:         "Present",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrWeeklyOff)
	assert.Contains(t, err.Error(), "Cannot mark attendance on Weekly Off (Sunday).")
}

func TestService_Create_Duplicate(t *testing.T) {
	companyID := uuid.New()
	link := activeLink(companyID)
	repo := newFakeRepo(link)
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	repo.rows[key(link.ID, date)] = attendance.Attendance{ID: uuid.New(), CompanyLinkID: link.ID, AttendanceDate: date, Status: "Present"}

	svc, mock, _ := newService(t, repo)
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), []string{companyID.String()}, attendance.SaveAttendanceRequest{
		Employee:       link.ID.String(),
		AttendanceDate: "2025-01-06",
		Status:         "Absent",
	})
	assert.ErrorIs(t, err, attendanceerrors.ErrDuplicateAttendance)
	assert.Contains(t, err.Error(), "Attendance for employee HR-EMP-000001 is already marked for 06-01-2025")
}

func TestService_UnmarkedDays(t *testing.T) {
	companyID := uuid.New()
	link := activeLink(companyID)
	repo := newFakeRepo(link)
	for _, d := range []int{3, 4} {
		date := time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC)
		repo.rows[key(link.ID, date)] = attendance.Attendance{ID: uuid.New(), CompanyLinkID: link.ID, AttendanceDate: date, Status: "Present"}
	}
	svc, _, _ := newService(t, repo)

	all, err := svc.UnmarkedDays(context.Background(), []string{companyID.String()}, link.ID.String(), 2025, time.February, false)
	require.NoError(t, err)
	assert.Len(t, all, 26)
	assert.NotContains(t, all, "2025-02-03")

	weekdays, err := svc.UnmarkedDays(context.Background(), []string{companyID.String()}, link.ID.String(), 2025, time.February, true)
	require.NoError(t, err)
	assert.Len(t, weekdays, 18)
	assert.NotContains(t, weekdays, "2025-02-01")

	_, err = svc.UnmarkedDays(context.Background(), []string{uuid.NewString()}, link.ID.String(), 2025, time.February, false)
	assert.ErrorIs(t, err, attendanceerrors.ErrForbidden)
}

func TestService_Summary(t *testing.T) {
	repo := newFakeRepo()
	repo.counts = []attendance.StatusCount{
		{Status: "Present", Total: 18},
		{Status: "Work From Home", Total: 2},
		{Status: "On Leave", Total: 1},
		{Status: "Absent", Total: 1},
		{Status: "Half Day", Total: 2},
		{Status: "LWP", Total: 1},
		{Status: "Weekly Off", Total: 4},
		{Status: "Holiday", Total: 1},
	}
	svc, _, _ := newService(t, repo)

	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	sum, err := svc.Summary(context.Background(), uuid.NewString(), from, period.LastDayOf(from))
	require.NoError(t, err)
	assert.Equal(t, attendance.Summary{
		Present:         21,
		Absent:          1,
		HalfDay:         2,
		LWP:             1,
		Holiday:         1,
		WeeklyOff:       4,
		AttendanceCount: 30,
	}, sum)
}

func TestService_GetBetweenDates(t *testing.T) {
	companyID := uuid.New()
	link := activeLink(companyID)
	repo := newFakeRepo(link)
	date := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	repo.rows[key(link.ID, date)] = attendance.Attendance{ID: uuid.New(), CompanyLinkID: link.ID, AttendanceDate: date, Status: "Half Day"}
	svc, _, _ := newService(t, repo)

	got, err := svc.GetBetweenDates(context.Background(), []string{companyID.String()}, link.ID.String(),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2025-01-06": "Half Day"}, got)
}

func TestService_MonthlyReport(t *testing.T) {
	companyID := uuid.NewString()
	day := func(d int) time.Time { return time.Date(2025, 2, d, 0, 0, 0, 0, time.UTC) }
	repo := newFakeRepo()
	repo.report = []attendance.ReportRecord{
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: day(1), Status: "Present"},
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: day(2), Status: "Weekly Off"},
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: day(3), Status: "Half Day"},
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: day(4), Status: "Absent"},
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: day(5), Status: "LWP"},
		{CompanyLinkID: "link-b", EmployeeCode: "EMP-002", EmployeeName: "Ravi Iyer", AttendanceDate: day(1), Status: "Work From Home"},
		{CompanyLinkID: "link-b", EmployeeCode: "EMP-002", EmployeeName: "Ravi Iyer", AttendanceDate: day(28), Status: "Holiday"},
	}
	svc, _, _ := newService(t, repo)

	report, err := svc.MonthlyReport(context.Background(), []string{companyID}, attendance.MonthlyReportFilter{
		Company: companyID, Category: "cat-1", Year: 2025, Month: "February",
	})
	require.NoError(t, err)

	assert.Equal(t, "cat-1", repo.reportCategory)
	assert.Equal(t, day(1), repo.reportFrom)
	assert.Equal(t, day(28), repo.reportTo)
	assert.Equal(t, 28, report.DaysInMonth)
	require.Len(t, report.Rows, 2)

	asha := report.Rows[0]
	assert.Equal(t, "EMP-001", asha.Employee)
	require.Len(t, asha.Days, 28)
	assert.Equal(t, []string{"P", "WO", "HD", "A", "LWP", ""}, asha.Days[:6])
	assert.Equal(t, 28, asha.WorkingDays)
	assert.Equal(t, 1.5, asha.PresentDays)
	assert.Equal(t, 1, asha.HalfDays)
	assert.Equal(t, 1.5, asha.AbsentDays)
	assert.Equal(t, 1, asha.WeeklyOffDays)
	assert.Equal(t, 1, asha.LWPDays)
	assert.Equal(t, 2.0, asha.AbsentLWP)

	ravi := report.Rows[1]
	assert.Equal(t, "WFH", ravi.Days[0])
	assert.Equal(t, "H", ravi.Days[27])
	assert.Equal(t, 1.0, ravi.PresentDays)
	assert.Equal(t, 1, ravi.HolidayDays)
}

func TestService_MonthlyReport_Validation(t *testing.T) {
	companyID := uuid.NewString()
	svc, _, _ := newService(t, newFakeRepo())
	ctx := context.Background()

	_, err := svc.MonthlyReport(ctx, []string{companyID}, attendance.MonthlyReportFilter{Year: 2025, Month: "March"})
	assert.ErrorIs(t, err, attendanceerrors.ErrCompanyRequired)

	_, err = svc.MonthlyReport(ctx, []string{companyID}, attendance.MonthlyReportFilter{Company: uuid.NewString(), Year: 2025, Month: "March"})
	assert.ErrorIs(t, err, attendanceerrors.ErrCompanyForbidden)

	_, err = svc.MonthlyReport(ctx, []string{companyID}, attendance.MonthlyReportFilter{Company: companyID, Year: 2025, Month: "Smarch"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)

	empty, err := svc.MonthlyReport(ctx, []string{companyID}, attendance.MonthlyReportFilter{Company: companyID, Year: 2025, Month: "3"})
	require.NoError(t, err)
	assert.Empty(t, empty.Rows)
	assert.Equal(t, "March", empty.Month)
}

func TestService_ExportMonthlyReport(t *testing.T) {
	companyID := uuid.NewString()
	repo := newFakeRepo()
	repo.report = []attendance.ReportRecord{
		{CompanyLinkID: "link-a", EmployeeCode: "EMP-001", EmployeeName: "Asha Rao", AttendanceDate: time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), Status: "Present"},
	}
	svc, _, _ := newService(t, repo)

	data, filename, err := svc.ExportMonthlyReport(context.Background(), []string{companyID}, attendance.MonthlyReportFilter{
		Company: companyID, Year: 2025, Month: "April",
	})
	require.NoError(t, err)
	assert.Equal(t, "monthly-attendance-2025-april.xlsx", filename)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Monthly Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Emp ID, nama, 30 hari, 8 kolom ringkasan
	assert.Len(t, rows[0], 40)
	assert.Equal(t, "A + LWP", rows[0][39])
	assert.Equal(t, "EMP-001", rows[1][0])
	assert.Equal(t, "P", rows[1][3])
}
