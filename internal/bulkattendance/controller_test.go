package bulkattendance_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"saral-hr/internal/bulkattendance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	mu    sync.Mutex
	calls []string
	fn    func(ctx context.Context, method string, args map[string]any) (any, error)
}

func (f *fakeClient) Call(ctx context.Context, method string, args map[string]any, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	f.mu.Unlock()

	result, err := f.fn(ctx, method, args)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (f *fakeClient) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeNotifier struct {
	infos, warns, errs []string
}

func (n *fakeNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *fakeNotifier) Warn(msg string)  { n.warns = append(n.warns, msg) }
func (n *fakeNotifier) Error(msg string) { n.errs = append(n.errs, msg) }

func defaultServer(saved *[]bulkattendance.AttendanceRecord) func(ctx context.Context, method string, args map[string]any) (any, error) {
	return func(ctx context.Context, method string, args map[string]any) (any, error) {
		switch method {
		case bulkattendance.MethodGetHolidays:
			return []bulkattendance.HolidayDate{{Date: "2025-01-26", Description: "Republic Day"}}, nil
		case bulkattendance.MethodGetAttendance:
			return map[string]string{"2025-01-02": "Absent"}, nil
		case bulkattendance.MethodSaveBatch:
			if saved != nil {
				*saved = args["attendance_data"].([]bulkattendance.AttendanceRecord)
			}
			return bulkattendance.SaveResult{Success: true, SavedCount: 3}, nil
		}
		return nil, errors.New("unexpected method " + method)
	}
}

func TestController_Load(t *testing.T) {
	client := &fakeClient{fn: defaultServer(nil)}
	ctrl := bulkattendance.NewController(client, &fakeNotifier{})

	g, err := ctrl.Load(context.Background(), emp("Sunday"), 2025, time.January)
	require.NoError(t, err)

	assert.Equal(t, []string{bulkattendance.MethodGetHolidays, bulkattendance.MethodGetAttendance}, client.Calls())
	row, _ := g.Row("2025-01-26")
	assert.Equal(t, bulkattendance.StatusHoliday, row.Status)
	row, _ = g.Row("2025-01-02")
	assert.Equal(t, bulkattendance.StatusAbsent, row.Status)
	assert.True(t, row.Original)
}

func TestController_LoadFailsOpen(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		return nil, errors.New("network down")
	}}
	ctrl := bulkattendance.NewController(client, &fakeNotifier{})

	g, err := ctrl.Load(context.Background(), emp(""), 2025, time.January)
	require.NoError(t, err)
	assert.Equal(t, 31, g.Len())
	assert.Empty(t, g.Records())
}

func TestController_LoadSupersededByNewerRequest(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		if method == bulkattendance.MethodGetHolidays {
			if args["start_date"] == "2025-01-01" {
				close(entered)
				<-release
			}
			return []bulkattendance.HolidayDate{}, nil
		}
		return map[string]string{}, nil
	}}

	ctrl := bulkattendance.NewController(client, &fakeNotifier{})

	type result struct {
		grid *bulkattendance.Grid
		err  error
	}
	first := make(chan result, 1)
	go func() {
		g, err := ctrl.Load(context.Background(), emp(""), 2025, time.January)
		first <- result{g, err}
	}()

	<-entered
	latest, err := ctrl.Load(context.Background(), emp(""), 2025, time.February)
	require.NoError(t, err)
	assert.Equal(t, time.February, latest.Month)

	close(release)
	stale := <-first
	assert.ErrorIs(t, stale.err, bulkattendance.ErrSuperseded)
	assert.Nil(t, stale.grid)
}

func TestController_SaveWithoutEmployee(t *testing.T) {
	client := &fakeClient{fn: defaultServer(nil)}
	notifier := &fakeNotifier{}
	ctrl := bulkattendance.NewController(client, notifier)

	g, _, err := ctrl.Save(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, g)
	assert.Equal(t, []string{bulkattendance.MsgSelectEmployee}, notifier.warns)
	assert.Empty(t, client.Calls())
}

func TestController_SaveEmptyGrid(t *testing.T) {
	client := &fakeClient{fn: defaultServer(nil)}
	notifier := &fakeNotifier{}
	ctrl := bulkattendance.NewController(client, notifier)

	grid := bulkattendance.BuildGrid(bulkattendance.GridInput{Employee: emp(""), Year: 2025, Month: time.January}, farFuture)

	reloaded, _, err := ctrl.Save(context.Background(), grid)
	require.NoError(t, err)
	assert.Nil(t, reloaded)
	assert.Equal(t, []string{bulkattendance.MsgNothingToSave}, notifier.warns)
	assert.Empty(t, client.Calls())
}

func TestController_SaveSendsOneBatchAndReloads(t *testing.T) {
	var saved []bulkattendance.AttendanceRecord
	client := &fakeClient{fn: defaultServer(&saved)}
	notifier := &fakeNotifier{}
	ctrl := bulkattendance.NewController(client, notifier)

	grid := bulkattendance.BuildGrid(bulkattendance.GridInput{Employee: emp("Sunday"), Year: 2025, Month: time.January}, farFuture)
	require.NoError(t, grid.SetStatus("2025-01-01", bulkattendance.StatusPresent))

	reloaded, result, err := ctrl.Save(context.Background(), grid)
	require.NoError(t, err)
	require.NotNil(t, reloaded)

	assert.True(t, result.Success)
	assert.Equal(t, []string{"Saved 3 records successfully"}, notifier.infos)
	assert.Len(t, saved, 5) // 1 present + 4 Sunday
	assert.Equal(t, []string{
		bulkattendance.MethodSaveBatch,
		bulkattendance.MethodGetHolidays,
		bulkattendance.MethodGetAttendance,
	}, client.Calls())
}

func TestController_SaveServerFailure(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		if method == bulkattendance.MethodSaveBatch {
			return nil, errors.New("502 bad gateway")
		}
		return nil, nil
	}}
	notifier := &fakeNotifier{}
	ctrl := bulkattendance.NewController(client, notifier)

	grid := bulkattendance.BuildGrid(bulkattendance.GridInput{Employee: emp("Sunday"), Year: 2025, Month: time.January}, farFuture)

	reloaded, _, err := ctrl.Save(context.Background(), grid)
	assert.Error(t, err)
	assert.Nil(t, reloaded)
	assert.Equal(t, []string{bulkattendance.MsgSaveFailed}, notifier.errs)
	assert.Equal(t, []string{bulkattendance.MethodSaveBatch}, client.Calls())
}

func TestController_SaveReportedFailureStillReloads(t *testing.T) {
	client := &fakeClient{fn: func(ctx context.Context, method string, args map[string]any) (any, error) {
		switch method {
		case bulkattendance.MethodSaveBatch:
			return bulkattendance.SaveResult{Success: false, Error: "Attendance date cannot be in the future"}, nil
		case bulkattendance.MethodGetHolidays:
			return []bulkattendance.HolidayDate{}, nil
		}
		return map[string]string{}, nil
	}}
	notifier := &fakeNotifier{}
	ctrl := bulkattendance.NewController(client, notifier)

	grid := bulkattendance.BuildGrid(bulkattendance.GridInput{Employee: emp("Sunday"), Year: 2025, Month: time.January}, farFuture)

	reloaded, result, err := ctrl.Save(context.Background(), grid)
	require.NoError(t, err)
	assert.NotNil(t, reloaded)
	assert.False(t, result.Success)
	assert.Equal(t, []string{"Attendance date cannot be in the future"}, notifier.errs)
}
