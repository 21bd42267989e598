// Package period holds the calendar helpers shared by attendance, payroll and reports.
package period

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")

// ParseDate parses an ISO date in UTC.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// MonthStart returns the first day of the month at midnight UTC.
func MonthStart(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

// MonthEnd returns the last day of the month at midnight UTC.
func MonthEnd(year int, month time.Month) time.Time {
	return MonthStart(year, month).AddDate(0, 1, -1)
}

// LastDayOf returns the last day of t's month.
func LastDayOf(t time.Time) time.Time {
	return MonthEnd(t.Year(), t.Month())
}

func DaysIn(year int, month time.Month) int {
	return MonthEnd(year, month).Day()
}

// Truncate drops the clock part while keeping the calendar date of t.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days lists every date in [from, to]. An inverted range yields nothing.
func Days(from, to time.Time) []time.Time {
	from, to = Truncate(from), Truncate(to)
	if to.Before(from) {
		return nil
	}
	days := make([]time.Time, 0, int(to.Sub(from).Hours()/24)+1)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// ParseMonth accepts "January".."December" (any case) or "1".."12".
func ParseMonth(v string) (time.Month, error) {
	v = strings.TrimSpace(v)
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), v) || fmt.Sprint(int(m)) == v {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month %q", v)
}

// AddMonths adds n calendar months to t, clamping to the last day of the target month.
func AddMonths(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, n, 0)
	last := LastDayOf(first)
	if t.Day() > last.Day() {
		return last
	}
	return time.Date(first.Year(), first.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekdays parses a comma separated, case-insensitive list of day names
// ("Saturday, sunday"). Unknown names are returned in invalid.
func ParseWeekdays(raw string) (days map[time.Weekday]bool, invalid []string) {
	days = make(map[time.Weekday]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		wd, ok := weekdayNames[name]
		if !ok {
			invalid = append(invalid, strings.TrimSpace(part))
			continue
		}
		days[wd] = true
	}
	return days, invalid
}

// FormatWeekdays renders the set in calendar order, e.g. "Sunday,Saturday".
func FormatWeekdays(days map[time.Weekday]bool) string {
	names := make([]string, 0, len(days))
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if days[wd] {
			names = append(names, wd.String())
		}
	}
	return strings.Join(names, ",")
}
