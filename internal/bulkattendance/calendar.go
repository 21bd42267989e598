package bulkattendance

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	ColorToday     = "#2d2d2d"
	ColorHoliday   = "#ff9800"
	ColorPresent   = "#98eeb8"
	ColorAbsent    = "#e49797"
	ColorHalfDay   = "rgb(238,225,105)"
	ColorLWP       = "#9c27b0"
	ColorWeeklyOff = "#93c5fd"
)

type DayCell struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Status    Status `json:"status,omitempty"`
	Color     string `json:"color,omitempty"`
	IsToday   bool   `json:"is_today"`
	IsHoliday bool   `json:"is_holiday"`
}

type MonthCalendar struct {
	Month time.Month `json:"month"`
	// Offset jumlah sel kosong sebelum tanggal 1 (minggu dimulai Sunday).
	Offset int       `json:"offset"`
	Days   []DayCell `json:"days"`
}

type YearCalendar struct {
	Year   int             `json:"year"`
	Months []MonthCalendar `json:"months"`
}

// CellColor: today > holiday > status > weekly off.
func CellColor(status Status, isToday, isHoliday, isWeeklyOff bool) string {
	switch {
	case isToday:
		return ColorToday
	case isHoliday || status == StatusHoliday:
		return ColorHoliday
	case status == StatusPresent:
		return ColorPresent
	case status == StatusAbsent:
		return ColorAbsent
	case status == StatusHalfDay:
		return ColorHalfDay
	case status == StatusLWP:
		return ColorLWP
	case status == StatusWeeklyOff || isWeeklyOff:
		return ColorWeeklyOff
	}
	return ""
}

func BuildYearCalendar(year int, weeklyOff string, statuses map[string]Status, holidays map[string]string, today time.Time) YearCalendar {
	offDays := ParseWeeklyOff(weeklyOff)
	todayKey := today.Format(DateLayout)

	cal := YearCalendar{Year: year, Months: make([]MonthCalendar, 0, 12)}
	for m := time.January; m <= time.December; m++ {
		start, end := monthBounds(year, m)
		mc := MonthCalendar{Month: m, Offset: int(start.Weekday())}
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			key := d.Format(DateLayout)
			_, isHoliday := holidays[key]
			cell := DayCell{
				Date:      key,
				Day:       d.Day(),
				Status:    statuses[key],
				IsToday:   key == todayKey,
				IsHoliday: isHoliday,
			}
			cell.Color = CellColor(cell.Status, cell.IsToday, isHoliday, offDays[d.Weekday()])
			mc.Days = append(mc.Days, cell)
		}
		cal.Months = append(cal.Months, mc)
	}
	return cal
}

// LoadYearCalendar mengambil holiday dan absensi setahun lalu membangun kalender.
func (c *Controller) LoadYearCalendar(ctx context.Context, emp Employee, year int) (YearCalendar, error) {
	gen := c.calGen.Add(1)
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	holidays := c.fetchHolidays(ctx, emp.Company, start, end)
	persisted := c.fetchAttendance(ctx, emp.LinkID, start, end)
	if c.calGen.Load() != gen {
		return YearCalendar{}, ErrSuperseded
	}
	return BuildYearCalendar(year, emp.WeeklyOff, persisted, holidays, c.now()), nil
}

var statusLetters = map[Status]string{
	StatusPresent:   "P",
	StatusAbsent:    "A",
	StatusHalfDay:   "H",
	StatusLWP:       "L",
	StatusHoliday:   "*",
	StatusWeeklyOff: "W",
}

// RenderMonthText menggambar satu bulan sebagai teks monospace untuk terminal.
func RenderMonthText(mc MonthCalendar, year int) string {
	var b strings.Builder
	title := fmt.Sprintf("%s %d", mc.Month, year)
	fmt.Fprintf(&b, "%*s\n", (27+len(title))/2, title)
	b.WriteString(" Su  Mo  Tu  We  Th  Fr  Sa\n")

	col := 0
	for ; col < mc.Offset; col++ {
		b.WriteString("    ")
	}
	for _, cell := range mc.Days {
		mark := " "
		switch {
		case cell.IsToday:
			mark = ">"
		case cell.IsHoliday:
			mark = "*"
		case cell.Status != StatusNone:
			mark = statusLetters[cell.Status]
		case cell.Color == ColorWeeklyOff:
			mark = "W"
		}
		fmt.Fprintf(&b, "%2d%s ", cell.Day, mark)
		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}
