package bulkattendance

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const (
	MsgSelectEmployee  = "Please select an employee first"
	MsgNothingToSave   = "No attendance to save"
	MsgSaveFailed      = "Error saving attendance"
	msgSavedSuccessful = "Saved %d records successfully"
)

// ErrSuperseded: ada Load yang lebih baru saat response ini datang.
var ErrSuperseded = errors.New("request superseded by a newer load")

type Controller struct {
	client   RemoteProcedureClient
	notifier Notifier
	now      func() time.Time
	gen      atomic.Uint64
	calGen   atomic.Uint64
	logger   *zap.Logger
}

func NewController(client RemoteProcedureClient, notifier Notifier, logger ...*zap.Logger) *Controller {
	l := zap.L().Named("bulkattendance.controller")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("bulkattendance.controller")
	}
	return &Controller{
		client:   client,
		notifier: notifier,
		now:      time.Now,
		logger:   l,
	}
}

// Load mengambil holiday lalu absensi untuk bulan terpilih dan membangun grid baru.
// Hanya request terakhir yang menang: response dari Load lama dibuang dengan ErrSuperseded.
func (c *Controller) Load(ctx context.Context, emp Employee, year int, month time.Month) (*Grid, error) {
	gen := c.gen.Add(1)
	start, end := monthBounds(year, month)

	holidays := c.fetchHolidays(ctx, emp.Company, start, end)
	if c.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	persisted := c.fetchAttendance(ctx, emp.LinkID, start, end)
	if c.gen.Load() != gen {
		return nil, ErrSuperseded
	}

	return BuildGrid(GridInput{
		Employee:  emp,
		Year:      year,
		Month:     month,
		Holidays:  holidays,
		Persisted: persisted,
	}, c.now()), nil
}

// fetchHolidays gagal terbuka: error remote menghasilkan set kosong.
func (c *Controller) fetchHolidays(ctx context.Context, company string, start, end time.Time) map[string]string {
	out := make(map[string]string)
	var dates []HolidayDate
	err := c.client.Call(ctx, MethodGetHolidays, map[string]any{
		"company":    company,
		"start_date": start.Format(DateLayout),
		"end_date":   end.Format(DateLayout),
	}, &dates)
	if err != nil {
		c.logger.Warn("holiday fetch failed, continuing without holidays", zap.String("company", company), zap.Error(err))
		return out
	}
	for _, h := range dates {
		out[h.Date] = h.Description
	}
	return out
}

func (c *Controller) fetchAttendance(ctx context.Context, linkID string, start, end time.Time) map[string]Status {
	out := make(map[string]Status)
	var raw map[string]string
	err := c.client.Call(ctx, MethodGetAttendance, map[string]any{
		"employee":   linkID,
		"start_date": start.Format(DateLayout),
		"end_date":   end.Format(DateLayout),
	}, &raw)
	if err != nil {
		c.logger.Warn("attendance fetch failed, continuing with empty grid", zap.String("employee", linkID), zap.Error(err))
		return out
	}
	for date, status := range raw {
		out[date] = Status(status)
	}
	return out
}

// Save mengirim semua baris berstatus dalam satu panggilan batch lalu memuat ulang grid.
// Grid yang dikembalikan nil kalau tidak ada panggilan atau panggilan gagal.
func (c *Controller) Save(ctx context.Context, grid *Grid) (*Grid, SaveResult, error) {
	if grid == nil || grid.Employee.LinkID == "" {
		c.notifier.Warn(MsgSelectEmployee)
		return nil, SaveResult{}, nil
	}

	records := grid.Records()
	if len(records) == 0 {
		c.notifier.Warn(MsgNothingToSave)
		return nil, SaveResult{}, nil
	}

	var result SaveResult
	if err := c.client.Call(ctx, MethodSaveBatch, map[string]any{"attendance_data": records}, &result); err != nil {
		c.logger.Error("save attendance batch failed", zap.String("employee", grid.Employee.LinkID), zap.Error(err))
		c.notifier.Error(MsgSaveFailed)
		return nil, SaveResult{}, err
	}

	if result.Success {
		c.notifier.Info(fmt.Sprintf(msgSavedSuccessful, result.SavedCount))
	} else {
		msg := result.Error
		if msg == "" {
			msg = MsgSaveFailed
		}
		c.notifier.Error(msg)
	}

	reloaded, err := c.Load(ctx, grid.Employee, grid.Year, grid.Month)
	if err != nil {
		return nil, result, err
	}
	return reloaded, result, nil
}
