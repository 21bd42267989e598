package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"saral-hr/internal/bulkattendance"
	"saral-hr/internal/salaryslip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	calls []string
	saved []bulkattendance.AttendanceRecord
	fn    func(method string, args map[string]any) (any, error)
}

func (f *fakeClient) Call(ctx context.Context, method string, args map[string]any, out any) error {
	f.calls = append(f.calls, method)
	if method == bulkattendance.MethodSaveBatch {
		f.saved = args["attendance_data"].([]bulkattendance.AttendanceRecord)
	}
	result, err := f.fn(method, args)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

var employees = []bulkattendance.Employee{
	{EmployeeID: "EMP-1", LinkID: "EMP-1", FullName: "Asha Rao", Company: "c1", WeeklyOff: "Sunday"},
	{EmployeeID: "EMP-2", LinkID: "EMP-2", FullName: "Asha Iyer", Company: "c1", WeeklyOff: "Sunday"},
}

func server(method string, args map[string]any) (any, error) {
	switch method {
	case bulkattendance.MethodGetActiveEmployees:
		return employees, nil
	case bulkattendance.MethodSearchEmployees:
		return []bulkattendance.Employee{}, nil
	case bulkattendance.MethodGetHolidays:
		return []bulkattendance.HolidayDate{}, nil
	case bulkattendance.MethodGetAttendance:
		return map[string]string{"2020-01-01": "Present"}, nil
	case bulkattendance.MethodSaveBatch:
		return bulkattendance.SaveResult{Success: true, SavedCount: 31}, nil
	}
	return nil, errors.New("unexpected method " + method)
}

func run(t *testing.T, client *fakeClient, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(func(apiURL, token string) (bulkattendance.RemoteProcedureClient, error) {
		return client, nil
	}, &out)
	cmd.SetArgs(append([]string{"--api", "http://localhost:3000", "--token", "t"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot_RequiresAPI(t *testing.T) {
	t.Setenv("SARAL_API_URL", "")
	var out bytes.Buffer
	cmd := newRootCmd(defaultClientFactory, &out)
	cmd.SetArgs([]string{"show", "--employee", "EMP-1"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SARAL_API_URL")
}

func TestMark_BulkAndSave(t *testing.T) {
	client := &fakeClient{fn: server}
	out, err := run(t, client, "mark", "--employee", "emp-1", "--year", "2020", "--month", "1", "--bulk", "present")
	require.NoError(t, err)

	// 31 hari - 4 Minggu - 1 hari yang sudah tersimpan
	assert.Contains(t, out, "bulk marked 26 days as Present")
	assert.Contains(t, out, "Saved 31 records successfully")
	assert.Contains(t, out, "Weekly Off 4")
	assert.Len(t, client.saved, 31)
	assert.Equal(t, "EMP-1", client.saved[0].Employee)
}

func TestMark_DryRunDoesNotSave(t *testing.T) {
	client := &fakeClient{fn: server}
	out, err := run(t, client, "mark", "--employee", "EMP-1", "--year", "2020", "--month", "January",
		"--set", "2020-01-02=Absent", "--set", "2020-01-03=half_day", "--dry-run")
	require.NoError(t, err)

	assert.NotContains(t, client.calls, bulkattendance.MethodSaveBatch)
	assert.Contains(t, out, "Present 1  Absent 1  Half Day 1")
}

func TestMark_RejectsBadEdit(t *testing.T) {
	_, err := run(t, &fakeClient{fn: server}, "mark", "--employee", "EMP-1", "--set", "2020-01-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want date=status")
}

func TestResolveEmployee_Ambiguous(t *testing.T) {
	_, err := resolveEmployee(context.Background(), &fakeClient{fn: server}, "Asha")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matches 2 employees")

	emp, err := resolveEmployee(context.Background(), &fakeClient{fn: server}, "EMP-2")
	require.NoError(t, err)
	assert.Equal(t, "Asha Iyer", emp.FullName)
}

func TestEligibility_PrintsSkipTags(t *testing.T) {
	client := &fakeClient{fn: func(method string, args map[string]any) (any, error) {
		assert.Equal(t, salaryslip.MethodEligibleEmployees, method)
		assert.Equal(t, "March", args["month"])
		return salaryslip.EligibilityResult{
			Eligible: []salaryslip.EligibleEmployee{{Employee: "EMP-1", EmployeeName: "Asha Rao"}},
			Skipped: []salaryslip.SkippedEmployee{{
				Employee:     "EMP-2",
				EmployeeName: "Asha Iyer",
				Reasons:      []string{"Salary Slip already exists for this period."},
			}},
		}, nil
	}}
	out, err := run(t, client, "eligibility", "--year", "2025", "--month", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Eligible: 1  Skipped: 1")
	assert.Contains(t, out, "slip-exists")
}
