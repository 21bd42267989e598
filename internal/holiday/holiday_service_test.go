package holiday_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"saral-hr/internal/holiday"
	holidayerrors "saral-hr/internal/holiday/errors"
	"saral-hr/internal/rpc"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayRepository struct {
	withTxFn          func(tx *sql.Tx) holiday.Repository
	createFn          func(ctx context.Context, list *holiday.HolidayList) error
	updateFn          func(ctx context.Context, list *holiday.HolidayList) error
	replaceHolidaysFn func(ctx context.Context, listID string, holidays []holiday.Holiday) error
	findByIDFn        func(ctx context.Context, companyIDs []string, id string) (*holiday.HolidayList, error)
	findBetweenFn     func(ctx context.Context, listID string, from, to time.Time) ([]holiday.Holiday, error)
}

func (f *fakeHolidayRepository) WithTx(tx *sql.Tx) holiday.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeHolidayRepository) Create(ctx context.Context, list *holiday.HolidayList) error {
	if f.createFn != nil {
		return f.createFn(ctx, list)
	}
	return nil
}

func (f *fakeHolidayRepository) Update(ctx context.Context, list *holiday.HolidayList) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, list)
	}
	return nil
}

func (f *fakeHolidayRepository) ReplaceHolidays(ctx context.Context, listID string, holidays []holiday.Holiday) error {
	if f.replaceHolidaysFn != nil {
		return f.replaceHolidaysFn(ctx, listID, holidays)
	}
	return nil
}

func (f *fakeHolidayRepository) FindAllByCompanies(ctx context.Context, companyIDs []string) ([]holiday.HolidayList, error) {
	return nil, nil
}

func (f *fakeHolidayRepository) FindByID(ctx context.Context, companyIDs []string, id string) (*holiday.HolidayList, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, companyIDs, id)
	}
	return &holiday.HolidayList{}, nil
}

func (f *fakeHolidayRepository) Delete(ctx context.Context, companyIDs []string, id string) error {
	return nil
}

func (f *fakeHolidayRepository) FindHolidaysBetween(ctx context.Context, listID string, from, to time.Time) ([]holiday.Holiday, error) {
	if f.findBetweenFn != nil {
		return f.findBetweenFn(ctx, listID, from, to)
	}
	return nil, nil
}

type fakeCompanies struct {
	lists map[string]string
}

func (f fakeCompanies) DefaultHolidayListID(ctx context.Context, companyID string) (string, error) {
	return f.lists[companyID], nil
}

func newHolidayService(t *testing.T, repo *fakeHolidayRepository, companies holiday.CompanyLookup) (holiday.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return holiday.NewService(db, repo, companies), mock
}

func TestHolidayService_Create_Validations(t *testing.T) {
	companyID := uuid.NewString()
	cases := []struct {
		name    string
		req     holiday.UpsertHolidayListRequest
		wantErr error
	}{
		{
			name:    "to before from",
			req:     holiday.UpsertHolidayListRequest{Name: "2025", FromDate: "2025-12-31", ToDate: "2025-01-01"},
			wantErr: holidayerrors.ErrInvalidDateRange,
		},
		{
			name: "holiday outside range",
			req: holiday.UpsertHolidayListRequest{Name: "2025", FromDate: "2025-01-01", ToDate: "2025-12-31",
				Holidays: []holiday.HolidayRequest{{HolidayDate: "2026-01-26"}}},
			wantErr: holidayerrors.ErrHolidayOutOfRange,
		},
		{
			name: "duplicate date",
			req: holiday.UpsertHolidayListRequest{Name: "2025", FromDate: "2025-01-01", ToDate: "2025-12-31",
				Holidays: []holiday.HolidayRequest{{HolidayDate: "2025-01-26"}, {HolidayDate: "2025-01-26"}}},
			wantErr: holidayerrors.ErrDuplicateHoliday,
		},
		{
			name:    "bad date",
			req:     holiday.UpsertHolidayListRequest{Name: "2025", FromDate: "01-01-2025", ToDate: "2025-12-31"},
			wantErr: holidayerrors.ErrInvalidDate,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mock := newHolidayService(t, &fakeHolidayRepository{}, fakeCompanies{})
			_, err := svc.Create(context.Background(), companyID, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHolidayService_Create_Success(t *testing.T) {
	companyID := uuid.NewString()
	repo := &fakeHolidayRepository{}
	var rows []holiday.Holiday
	repo.replaceHolidaysFn = func(ctx context.Context, listID string, holidays []holiday.Holiday) error {
		rows = holidays
		return nil
	}
	svc, mock := newHolidayService(t, repo, fakeCompanies{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	resp, err := svc.Create(context.Background(), companyID, holiday.UpsertHolidayListRequest{
		Name:     "India 2025",
		FromDate: "2025-01-01",
		ToDate:   "2025-12-31",
		Holidays: []holiday.HolidayRequest{
			{HolidayDate: "2025-01-26", Description: "Republic Day"},
			{HolidayDate: "2025-08-15", Description: "Independence Day"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, companyID, resp.CompanyID)
	assert.Len(t, resp.Holidays, 2)
	require.Len(t, rows, 2)
	assert.Equal(t, resp.ID, rows[0].HolidayListID.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayService_HolidaysBetween(t *testing.T) {
	companyID := uuid.NewString()
	listID := uuid.NewString()
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)

	repo := &fakeHolidayRepository{
		findBetweenFn: func(ctx context.Context, gotList string, f, tt time.Time) ([]holiday.Holiday, error) {
			assert.Equal(t, listID, gotList)
			return []holiday.Holiday{{HolidayDate: time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC), Description: "Republic Day"}}, nil
		},
	}
	svc, _ := newHolidayService(t, repo, fakeCompanies{lists: map[string]string{companyID: listID}})

	t.Run("blank company", func(t *testing.T) {
		got, err := svc.HolidaysBetween(context.Background(), "", from, to)
		assert.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("company without default list", func(t *testing.T) {
		got, err := svc.HolidaysBetween(context.Background(), uuid.NewString(), from, to)
		assert.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("default list", func(t *testing.T) {
		got, err := svc.HolidaysBetween(context.Background(), companyID, from, to)
		assert.NoError(t, err)
		assert.Equal(t, []holiday.HolidayResponse{{HolidayDate: "2025-01-26", Description: "Republic Day"}}, got)
	})
}

func TestHolidayProcedures(t *testing.T) {
	companyID := uuid.NewString()
	listID := uuid.NewString()
	repo := &fakeHolidayRepository{
		findBetweenFn: func(ctx context.Context, _ string, f, tt time.Time) ([]holiday.Holiday, error) {
			return []holiday.Holiday{{HolidayDate: time.Date(2025, 1, 26, 0, 0, 0, 0, time.UTC), Description: "Republic Day"}}, nil
		},
	}
	svc, _ := newHolidayService(t, repo, fakeCompanies{lists: map[string]string{companyID: listID}})
	reg := rpc.NewRegistry()
	holiday.RegisterProcedures(reg, svc)

	args, _ := json.Marshal(map[string]string{"company": companyID, "start_date": "2025-01-01", "end_date": "2025-01-31"})

	out, err := reg.Invoke(context.Background(), rpc.Call{
		Method:             holiday.MethodHolidaysBetween,
		Args:               args,
		PermittedCompanies: []string{companyID},
	})
	require.NoError(t, err)
	assert.Len(t, out, 1)

	_, err = reg.Invoke(context.Background(), rpc.Call{
		Method:             holiday.MethodHolidaysBetween,
		Args:               args,
		PermittedCompanies: []string{uuid.NewString()},
	})
	assert.ErrorIs(t, err, holidayerrors.ErrHolidayListForbidden)
}
