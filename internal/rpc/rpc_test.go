package rpc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"saral-hr/internal/bulkattendance"
	"saral-hr/internal/domain"
	"saral-hr/internal/rpc"
	"saral-hr/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ bulkattendance.RemoteProcedureClient = (*rpc.HTTPClient)(nil)

type fakeRBAC struct {
	allowed bool
	last    domain.EnforceRequest
}

func (f *fakeRBAC) Enforce(req domain.EnforceRequest) (bool, error) {
	f.last = req
	return f.allowed, nil
}

type holidayArgs struct {
	Company   string `json:"company"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

func newServer(t *testing.T, rbac *fakeRBAC) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reg := rpc.NewRegistry()
	reg.Register("holiday.get_holidays_between_dates", "", "", rpc.Typed(func(ctx context.Context, call rpc.Call, args holidayArgs) ([]bulkattendance.HolidayDate, error) {
		if args.Company == "" {
			return []bulkattendance.HolidayDate{}, nil
		}
		return []bulkattendance.HolidayDate{{Date: args.StartDate, Description: "Republic Day"}}, nil
	}))
	reg.Register("attendance.save_attendance_batch", "attendance", "create", func(ctx context.Context, call rpc.Call) (any, error) {
		return bulkattendance.SaveResult{Success: true, SavedCount: 2}, nil
	})
	reg.Register("salary_hold.get_hold_status", "", "", func(ctx context.Context, call rpc.Call) (any, error) {
		return nil, apperror.New(apperror.CodeInvalidState, "Salary hold already released", http.StatusConflict)
	})

	r := gin.New()
	h := rpc.NewHandler(reg, rbac)
	api := r.Group("/api")
	api.POST("/method/:method", func(c *gin.Context) {
		c.Set("user_id", "user-1")
		c.Set("employee_id", "emp-1")
		c.Set("company_id", "company-1")
		c.Next()
	}, h.Dispatch)
	return httptest.NewServer(r)
}

func TestHTTPClient_RoundTrip(t *testing.T) {
	srv := newServer(t, &fakeRBAC{allowed: true})
	defer srv.Close()

	client, err := rpc.NewHTTPClient(srv.URL, "token")
	require.NoError(t, err)

	var holidays []bulkattendance.HolidayDate
	err = client.Call(context.Background(), "holiday.get_holidays_between_dates", map[string]any{
		"company":    "company-1",
		"start_date": "2025-01-26",
		"end_date":   "2025-01-31",
	}, &holidays)
	require.NoError(t, err)
	require.Len(t, holidays, 1)
	assert.Equal(t, "2025-01-26", holidays[0].Date)
}

func TestHTTPClient_ValidationError(t *testing.T) {
	srv := newServer(t, &fakeRBAC{allowed: true})
	defer srv.Close()

	client, _ := rpc.NewHTTPClient(srv.URL, "")
	var out []bulkattendance.HolidayDate
	err := client.Call(context.Background(), "holiday.get_holidays_between_dates", map[string]any{"company": "c"}, &out)

	var remote *rpc.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusBadRequest, remote.Status)
	assert.Equal(t, apperror.CodeInvalidInput, remote.Code)
}

func TestHTTPClient_UnknownMethod(t *testing.T) {
	srv := newServer(t, &fakeRBAC{allowed: true})
	defer srv.Close()

	client, _ := rpc.NewHTTPClient(srv.URL, "")
	err := client.Call(context.Background(), "nope.missing", nil, nil)

	var remote *rpc.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusNotFound, remote.Status)
}

func TestHTTPClient_AppErrorPassesThrough(t *testing.T) {
	srv := newServer(t, &fakeRBAC{allowed: true})
	defer srv.Close()

	client, _ := rpc.NewHTTPClient(srv.URL, "")
	err := client.Call(context.Background(), "salary_hold.get_hold_status", nil, nil)

	var remote *rpc.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusConflict, remote.Status)
	assert.Equal(t, "Salary hold already released", remote.Message)
}

func TestDispatch_RBAC(t *testing.T) {
	rbac := &fakeRBAC{allowed: false}
	srv := newServer(t, rbac)
	defer srv.Close()

	client, _ := rpc.NewHTTPClient(srv.URL, "")
	var res bulkattendance.SaveResult
	err := client.Call(context.Background(), "attendance.save_attendance_batch", map[string]any{"attendance_data": []any{}}, &res)

	var remote *rpc.RemoteError
	require.True(t, errors.As(err, &remote))
	assert.Equal(t, http.StatusForbidden, remote.Status)
	assert.Equal(t, "attendance", rbac.last.Resource)
	assert.Equal(t, "create", rbac.last.Action)
	assert.Equal(t, "emp-1", rbac.last.EmployeeID)

	rbac.allowed = true
	require.NoError(t, client.Call(context.Background(), "attendance.save_attendance_batch", nil, &res))
	assert.Equal(t, 2, res.SavedCount)
}

func TestRegistry(t *testing.T) {
	reg := rpc.NewRegistry()
	reg.Register("b.two", "", "", func(ctx context.Context, call rpc.Call) (any, error) { return 2, nil })
	reg.Register("a.one", "", "", func(ctx context.Context, call rpc.Call) (any, error) { return 1, nil })

	assert.Equal(t, []string{"a.one", "b.two"}, reg.Methods())
	assert.Panics(t, func() { reg.Register("a.one", "", "", nil) })
	assert.Panics(t, func() { reg.Register("undotted", "", "", nil) })

	v, err := reg.Invoke(context.Background(), rpc.Call{Method: "a.one"})
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = reg.Invoke(context.Background(), rpc.Call{Method: "x.y"})
	assert.ErrorIs(t, err, rpc.ErrMethodNotFound)
}
