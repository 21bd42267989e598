package bulkattendance

import (
	"errors"
	"time"
)

const DateLayout = "2006-01-02"

var (
	ErrUnknownDate   = errors.New("date is outside the grid")
	ErrRowDisabled   = errors.New("status selection is disabled for this date")
	ErrFutureDate    = errors.New("future dates are read-only")
	ErrInvalidStatus = errors.New("status is not selectable")
)

type Row struct {
	Date               time.Time
	Status             Status
	IsHoliday          bool
	HolidayDescription string
	IsWeeklyOff        bool
	IsFuture           bool
	// Original: status sudah ada saat grid dimuat. Baris yang di-default ke
	// Holiday/Weekly Off juga dihitung original, sama seperti data awal yang
	// dimuat dari server, sehingga BulkMark tidak menimpanya.
	Original bool
	// Override: toggle Holiday/Weekly Off sedang aktif untuk baris ini.
	Override bool
}

func (r Row) Key() string { return r.Date.Format(DateLayout) }

// Disabled true kalau pilihan status bebas tidak boleh diubah.
func (r Row) Disabled() bool {
	return r.IsFuture || r.Override
}

// SelectionEnabled adalah kebalikan Disabled untuk baris yang bukan future.
func (r Row) SelectionEnabled() bool {
	return !r.IsFuture && !r.Override
}

type GridInput struct {
	Employee  Employee
	Year      int
	Month     time.Month
	StartDate *time.Time
	EndDate   *time.Time
	Holidays  map[string]string // tanggal ISO -> deskripsi
	Persisted map[string]Status
}

// Grid adalah state matriks absensi satu employee untuk satu periode.
// Dimiliki pemanggil; tidak ada state global.
type Grid struct {
	Employee Employee
	Year     int
	Month    time.Month
	Start    time.Time
	End      time.Time

	rows  []Row
	index map[string]int
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func monthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, -1)
}

func BuildGrid(in GridInput, today time.Time) *Grid {
	start, end := monthBounds(in.Year, in.Month)
	if in.StartDate != nil {
		start = dateOnly(*in.StartDate)
	}
	if in.EndDate != nil {
		end = dateOnly(*in.EndDate)
	}
	today = dateOnly(today)
	weeklyOff := ParseWeeklyOff(in.Employee.WeeklyOff)

	g := &Grid{
		Employee: in.Employee,
		Year:     in.Year,
		Month:    in.Month,
		Start:    start,
		End:      end,
		index:    make(map[string]int),
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		desc, isHoliday := in.Holidays[key]
		row := Row{
			Date:               d,
			IsHoliday:          isHoliday,
			HolidayDescription: desc,
			IsWeeklyOff:        weeklyOff[d.Weekday()],
			IsFuture:           d.After(today),
		}

		switch {
		case in.Persisted[key] != StatusNone:
			row.Status = in.Persisted[key]
		case row.IsHoliday:
			row.Status = StatusHoliday
		case row.IsWeeklyOff:
			row.Status = StatusWeeklyOff
		}
		row.Original = row.Status != StatusNone
		if !row.IsFuture {
			row.Override = row.IsHoliday || row.IsWeeklyOff || row.Status.IsNonWorking()
		}

		g.index[key] = len(g.rows)
		g.rows = append(g.rows, row)
	}
	return g
}

func (g *Grid) Rows() []Row {
	out := make([]Row, len(g.rows))
	copy(out, g.rows)
	return out
}

func (g *Grid) Row(date string) (Row, bool) {
	i, ok := g.index[date]
	if !ok {
		return Row{}, false
	}
	return g.rows[i], true
}

func (g *Grid) Len() int { return len(g.rows) }

// SetStatus mengisi status bebas; StatusNone mengosongkan pilihan.
func (g *Grid) SetStatus(date string, status Status) error {
	i, ok := g.index[date]
	if !ok {
		return ErrUnknownDate
	}
	if status != StatusNone && !status.IsSelectable() {
		return ErrInvalidStatus
	}
	if g.rows[i].Disabled() {
		return ErrRowDisabled
	}
	g.rows[i].Status = status
	return nil
}

// ToggleOverride on: baris dipaksa Holiday (kalau tanggal libur) atau Weekly Off.
// off: status dikosongkan dan pilihan bebas dibuka lagi.
func (g *Grid) ToggleOverride(date string, on bool) error {
	i, ok := g.index[date]
	if !ok {
		return ErrUnknownDate
	}
	row := &g.rows[i]
	if row.IsFuture {
		return ErrFutureDate
	}
	if on {
		row.Status = StatusWeeklyOff
		if row.IsHoliday {
			row.Status = StatusHoliday
		}
	} else {
		row.Status = StatusNone
	}
	row.Override = on
	return nil
}

// BulkMark mengisi semua baris yang masih bebas dengan status yang sama.
// Baris original, baris Holiday/Weekly Off, dan baris disabled tidak disentuh.
func (g *Grid) BulkMark(status Status) (int, error) {
	if !status.IsSelectable() {
		return 0, ErrInvalidStatus
	}
	changed := 0
	for i := range g.rows {
		row := &g.rows[i]
		if row.Original || row.Status.IsNonWorking() || row.Disabled() {
			continue
		}
		if row.IsHoliday || row.IsWeeklyOff {
			continue
		}
		if row.Status != status {
			row.Status = status
			changed++
		}
	}
	return changed, nil
}

type Counts struct {
	Present   int `json:"present"`
	Absent    int `json:"absent"`
	HalfDay   int `json:"half_day"`
	LWP       int `json:"lwp"`
	WeeklyOff int `json:"weekly_off"`
	Holiday   int `json:"holiday"`
}

func (g *Grid) Counts() Counts {
	var c Counts
	for _, row := range g.rows {
		switch row.Status {
		case StatusPresent:
			c.Present++
		case StatusAbsent:
			c.Absent++
		case StatusHalfDay:
			c.HalfDay++
		case StatusLWP:
			c.LWP++
		case StatusWeeklyOff:
			c.WeeklyOff++
		case StatusHoliday:
			c.Holiday++
		}
	}
	return c
}

type AttendanceRecord struct {
	Employee       string `json:"employee"`
	AttendanceDate string `json:"attendance_date"`
	Status         Status `json:"status"`
}

// Records mengembalikan semua baris berstatus sesuai urutan tanggal grid.
func (g *Grid) Records() []AttendanceRecord {
	out := make([]AttendanceRecord, 0, len(g.rows))
	for _, row := range g.rows {
		if row.Status == StatusNone {
			continue
		}
		out = append(out, AttendanceRecord{
			Employee:       g.Employee.LinkID,
			AttendanceDate: row.Key(),
			Status:         row.Status,
		})
	}
	return out
}

// Statuses adalah map tanggal -> status yang dipakai kalender tahunan.
func (g *Grid) Statuses() map[string]Status {
	out := make(map[string]Status, len(g.rows))
	for _, row := range g.rows {
		if row.Status != StatusNone {
			out[row.Key()] = row.Status
		}
	}
	return out
}
