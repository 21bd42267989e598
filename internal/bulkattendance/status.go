package bulkattendance

import (
	"strings"
	"time"

	"saral-hr/internal/shared/period"
)

type Status string

const (
	StatusNone      Status = ""
	StatusPresent   Status = "Present"
	StatusAbsent    Status = "Absent"
	StatusHalfDay   Status = "Half Day"
	StatusLWP       Status = "LWP"
	StatusHoliday   Status = "Holiday"
	StatusWeeklyOff Status = "Weekly Off"
)

// Selectable adalah status yang bisa dipilih bebas per baris grid.
var Selectable = []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusLWP}

func (s Status) IsSelectable() bool {
	for _, v := range Selectable {
		if s == v {
			return true
		}
	}
	return false
}

func (s Status) IsNonWorking() bool {
	return s == StatusHoliday || s == StatusWeeklyOff
}

// ParseStatus menerima label status apa adanya atau versi lowercase/underscore
// ("half_day", "weekly off") dari input CLI.
func ParseStatus(raw string) (Status, bool) {
	norm := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(raw, "_", " ")))
	for _, s := range []Status{StatusPresent, StatusAbsent, StatusHalfDay, StatusLWP, StatusHoliday, StatusWeeklyOff} {
		if strings.ToLower(string(s)) == norm {
			return s, true
		}
	}
	return StatusNone, false
}

// ParseWeeklyOff mengubah "Saturday, sunday" menjadi set hari. Nama yang tidak dikenal diabaikan.
func ParseWeeklyOff(raw string) map[time.Weekday]bool {
	days, _ := period.ParseWeekdays(raw)
	return days
}
