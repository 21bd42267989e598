package bulkattendance_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"saral-hr/internal/bulkattendance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var roster = []bulkattendance.Employee{
	{EmployeeID: "EMP-001", LinkID: "CL-1", FullName: "Asha Verma", Label: "Asha Verma (1234)"},
	{EmployeeID: "EMP-002", LinkID: "CL-2", FullName: "Rahul Shah"},
	{EmployeeID: "EMP-003", LinkID: "CL-3", FullName: "Ashok Kumar"},
}

func ids(list []bulkattendance.Employee) []string {
	out := make([]string, 0, len(list))
	for _, e := range list {
		out = append(out, e.EmployeeID)
	}
	return out
}

func TestMerge_APIFirstAndDeduplicated(t *testing.T) {
	local := []bulkattendance.Employee{roster[0], roster[1]}
	api := []bulkattendance.Employee{
		{EmployeeID: "EMP-009", FullName: "Ashwin Rao"},
		{EmployeeID: "EMP-001", FullName: "Asha Verma (fresh)"},
	}

	merged := bulkattendance.Merge(local, api)

	assert.Equal(t, []string{"EMP-009", "EMP-001", "EMP-002"}, ids(merged))
	assert.Equal(t, "Asha Verma (fresh)", merged[1].FullName)
}

func TestSearcher_Local(t *testing.T) {
	s := bulkattendance.NewSearcher(&fakeClient{})
	s.SetEmployees(roster)

	assert.Len(t, s.Local(""), 3)
	assert.Equal(t, []string{"EMP-001"}, ids(s.Local("verma")))
	assert.Equal(t, []string{"EMP-003"}, ids(s.Local("asho")))
	assert.Equal(t, []string{"EMP-002"}, ids(s.Local("emp-002")))
	assert.Equal(t, []string{"EMP-001"}, ids(s.Local("1234")))
	assert.Empty(t, s.Local("zzz"))
}

func TestSearcher_LocalPrefersWordPrefix(t *testing.T) {
	s := bulkattendance.NewSearcher(&fakeClient{})
	s.SetEmployees([]bulkattendance.Employee{
		{EmployeeID: "EMP-010", FullName: "Aravind Kumar"},
		{EmployeeID: "EMP-011", FullName: "Ravi Shankar"},
	})

	assert.Equal(t, []string{"EMP-011", "EMP-010"}, ids(s.Local("ravi")))
	assert.Equal(t, []string{"EMP-010"}, ids(s.Local("kum")))
}

func TestSearcher_LoadEmployees(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		require.Equal(t, bulkattendance.MethodGetActiveEmployees, method)
		return roster, nil
	}}
	s := bulkattendance.NewSearcher(client)

	require.NoError(t, s.LoadEmployees(context.Background()))
	assert.Len(t, s.Employees(), 3)
}

func TestSearcher_ShortTermSkipsRemote(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		t.Fatalf("remote must not be called for short term, got %s", method)
		return nil, nil
	}}
	s := bulkattendance.NewSearcher(client, bulkattendance.WithDebounce(time.Millisecond))
	s.SetEmployees(roster)

	local := s.Search(context.Background(), "a", func([]bulkattendance.Employee) {
		t.Fatal("deliver must not be called")
	})
	assert.NotEmpty(t, local)

	time.Sleep(20 * time.Millisecond)
	assert.Empty(t, client.Calls())
}

func TestSearcher_DebounceCollapsesKeystrokes(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		return []bulkattendance.Employee{{EmployeeID: "EMP-010", FullName: args["query"].(string)}}, nil
	}}
	s := bulkattendance.NewSearcher(client, bulkattendance.WithDebounce(30*time.Millisecond))
	s.SetEmployees(roster)

	delivered := make(chan []bulkattendance.Employee, 4)
	deliver := func(list []bulkattendance.Employee) { delivered <- list }

	s.Search(context.Background(), "as", deliver)
	s.Search(context.Background(), "ash", deliver)
	s.Search(context.Background(), "asho", deliver)

	select {
	case got := <-delivered:
		assert.Equal(t, "EMP-010", got[0].EmployeeID)
		assert.Equal(t, "asho", got[0].FullName)
		assert.Equal(t, "EMP-003", got[1].EmployeeID)
	case <-time.After(time.Second):
		t.Fatal("remote result not delivered")
	}

	time.Sleep(60 * time.Millisecond)
	assert.Len(t, client.Calls(), 1)
	assert.Empty(t, delivered)
}

func TestSearcher_StaleRemoteResponseDropped(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		if args["query"] == "as" {
			close(entered)
			<-release
		}
		return []bulkattendance.Employee{{EmployeeID: "API-" + args["query"].(string)}}, nil
	}}
	s := bulkattendance.NewSearcher(client, bulkattendance.WithDebounce(time.Millisecond))
	s.SetEmployees(roster)

	delivered := make(chan []bulkattendance.Employee, 4)
	deliver := func(list []bulkattendance.Employee) { delivered <- list }

	s.Search(context.Background(), "as", deliver)
	<-entered
	s.Search(context.Background(), "rah", deliver)

	select {
	case got := <-delivered:
		assert.Equal(t, "API-rah", got[0].EmployeeID)
	case <-time.After(time.Second):
		t.Fatal("latest result not delivered")
	}

	close(release)
	time.Sleep(30 * time.Millisecond)
	assert.Empty(t, delivered)
}

func TestSearcher_SearchNow(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		return nil, errors.New("offline")
	}}
	s := bulkattendance.NewSearcher(client)
	s.SetEmployees(roster)

	got, err := s.SearchNow(context.Background(), "rahul")
	assert.Error(t, err)
	assert.Equal(t, []string{"EMP-002"}, ids(got))
}
