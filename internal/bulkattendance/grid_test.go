package bulkattendance_test

import (
	"testing"
	"time"

	"saral-hr/internal/bulkattendance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var farFuture = time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

func emp(weeklyOff string) bulkattendance.Employee {
	return bulkattendance.Employee{
		EmployeeID: "EMP-001",
		LinkID:     "CL-0001",
		FullName:   "Asha Verma",
		Company:    "company-1",
		WeeklyOff:  weeklyOff,
	}
}

func TestBuildGrid_January2025_WeeklyOffAndHoliday(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Sunday"),
		Year:     2025,
		Month:    time.January,
		Holidays: map[string]string{"2025-01-26": "Republic Day"},
	}, farFuture)

	require.Equal(t, 31, g.Len())

	sunday, ok := g.Row("2025-01-05")
	require.True(t, ok)
	assert.Equal(t, bulkattendance.StatusWeeklyOff, sunday.Status)
	assert.True(t, sunday.Original, "default weekly off dihitung data awal")

	// 26 Jan 2025 juga hari Minggu: holiday menang atas weekly off
	republic, ok := g.Row("2025-01-26")
	require.True(t, ok)
	assert.Equal(t, bulkattendance.StatusHoliday, republic.Status)
	assert.Equal(t, "Republic Day", republic.HolidayDescription)

	monday, _ := g.Row("2025-01-06")
	assert.Equal(t, bulkattendance.StatusNone, monday.Status)
	assert.False(t, monday.Disabled())
}

func TestBuildGrid_PersistedStatusWins(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee:  emp("Sunday"),
		Year:      2025,
		Month:     time.January,
		Holidays:  map[string]string{"2025-01-26": "Republic Day"},
		Persisted: map[string]bulkattendance.Status{"2025-01-26": bulkattendance.StatusPresent},
	}, farFuture)

	row, _ := g.Row("2025-01-26")
	assert.Equal(t, bulkattendance.StatusPresent, row.Status)
	assert.True(t, row.Original)
}

func TestBuildGrid_February2024_Weekends(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Saturday, Sunday"),
		Year:     2024,
		Month:    time.February,
	}, farFuture)

	require.Equal(t, 29, g.Len())

	weeklyOff, editable := 0, 0
	for _, row := range g.Rows() {
		if row.Status == bulkattendance.StatusWeeklyOff {
			weeklyOff++
		}
		if row.SelectionEnabled() {
			editable++
		}
	}
	assert.Equal(t, 8, weeklyOff)
	assert.Equal(t, 21, editable)
}

func TestBuildGrid_CustomRangeAndFuture(t *testing.T) {
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	today := time.Date(2025, 3, 20, 15, 30, 0, 0, time.Local)

	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee:  emp(""),
		Year:      2025,
		Month:     time.March,
		StartDate: &start,
	}, today)

	assert.Equal(t, 22, g.Len())
	assert.Equal(t, "2025-03-31", g.End.Format(bulkattendance.DateLayout))

	todayRow, _ := g.Row("2025-03-20")
	assert.False(t, todayRow.IsFuture)

	tomorrow, _ := g.Row("2025-03-21")
	assert.True(t, tomorrow.IsFuture)
	assert.True(t, tomorrow.Disabled())
	assert.ErrorIs(t, g.SetStatus("2025-03-21", bulkattendance.StatusPresent), bulkattendance.ErrRowDisabled)
	assert.ErrorIs(t, g.ToggleOverride("2025-03-21", true), bulkattendance.ErrFutureDate)
}

func TestGrid_StructuralRowsAreDisabled(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Sunday"),
		Year:     2025,
		Month:    time.January,
		Holidays: map[string]string{"2025-01-14": "Makar Sankranti"},
	}, farFuture)

	for _, row := range g.Rows() {
		if row.IsWeeklyOff || row.IsHoliday {
			assert.True(t, row.Disabled(), row.Key())
			assert.ErrorIs(t, g.SetStatus(row.Key(), bulkattendance.StatusPresent), bulkattendance.ErrRowDisabled)
		}
	}
}

func TestGrid_ToggleOverrideExclusive(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Sunday"),
		Year:     2025,
		Month:    time.January,
		Holidays: map[string]string{"2025-01-14": "Makar Sankranti"},
	}, farFuture)

	exclusive := func(key string) {
		row, _ := g.Row(key)
		assert.NotEqual(t, row.Override, row.SelectionEnabled(), key)
	}

	// Sunday: release lalu set lagi
	require.NoError(t, g.ToggleOverride("2025-01-05", false))
	exclusive("2025-01-05")
	row, _ := g.Row("2025-01-05")
	assert.Equal(t, bulkattendance.StatusNone, row.Status)
	require.NoError(t, g.SetStatus("2025-01-05", bulkattendance.StatusPresent))

	require.NoError(t, g.ToggleOverride("2025-01-05", true))
	exclusive("2025-01-05")
	row, _ = g.Row("2025-01-05")
	assert.Equal(t, bulkattendance.StatusWeeklyOff, row.Status)

	// hari kerja biasa dijadikan off
	require.NoError(t, g.ToggleOverride("2025-01-07", true))
	exclusive("2025-01-07")
	row, _ = g.Row("2025-01-07")
	assert.Equal(t, bulkattendance.StatusWeeklyOff, row.Status)

	// tanggal libur kembali ke Holiday, bukan Weekly Off
	require.NoError(t, g.ToggleOverride("2025-01-14", false))
	require.NoError(t, g.ToggleOverride("2025-01-14", true))
	exclusive("2025-01-14")
	row, _ = g.Row("2025-01-14")
	assert.Equal(t, bulkattendance.StatusHoliday, row.Status)

	for _, r := range g.Rows() {
		exclusive(r.Key())
	}
}

func TestGrid_SetStatusValidation(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{Employee: emp(""), Year: 2025, Month: time.January}, farFuture)

	assert.ErrorIs(t, g.SetStatus("2025-02-01", bulkattendance.StatusPresent), bulkattendance.ErrUnknownDate)
	assert.ErrorIs(t, g.SetStatus("2025-01-02", bulkattendance.StatusHoliday), bulkattendance.ErrInvalidStatus)
	require.NoError(t, g.SetStatus("2025-01-02", bulkattendance.StatusHalfDay))
	require.NoError(t, g.SetStatus("2025-01-02", bulkattendance.StatusNone))
}

func TestGrid_BulkMarkKeepsPersistedDays(t *testing.T) {
	persisted := map[string]bulkattendance.Status{
		"2025-01-02": bulkattendance.StatusAbsent,
		"2025-01-03": bulkattendance.StatusLWP,
		"2025-01-04": bulkattendance.StatusHalfDay,
	}
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee:  emp("Sunday"),
		Year:      2025,
		Month:     time.January,
		Persisted: persisted,
	}, farFuture)

	for _, status := range bulkattendance.Selectable {
		_, err := g.BulkMark(status)
		require.NoError(t, err)
		for date, want := range persisted {
			row, _ := g.Row(date)
			assert.Equal(t, want, row.Status, date)
		}
	}
}

func TestGrid_BulkMarkPresentOnEmptyMonth(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Sunday"),
		Year:     2025,
		Month:    time.January,
	}, farFuture)

	changed, err := g.BulkMark(bulkattendance.StatusPresent)
	require.NoError(t, err)

	counts := g.Counts()
	assert.Equal(t, 4, counts.WeeklyOff)
	assert.Equal(t, 31-4, counts.Present)
	assert.Equal(t, 27, changed)

	// idempotent
	changed, _ = g.BulkMark(bulkattendance.StatusPresent)
	assert.Zero(t, changed)

	_, err = g.BulkMark(bulkattendance.StatusWeeklyOff)
	assert.ErrorIs(t, err, bulkattendance.ErrInvalidStatus)
}

func TestGrid_BulkMarkSkipsOverriddenAndFuture(t *testing.T) {
	today := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp(""),
		Year:     2025,
		Month:    time.January,
	}, today)
	require.NoError(t, g.ToggleOverride("2025-01-10", true))

	changed, err := g.BulkMark(bulkattendance.StatusAbsent)
	require.NoError(t, err)
	assert.Equal(t, 14, changed)

	row, _ := g.Row("2025-01-10")
	assert.Equal(t, bulkattendance.StatusWeeklyOff, row.Status)
	row, _ = g.Row("2025-01-20")
	assert.Equal(t, bulkattendance.StatusNone, row.Status)
}

func TestGrid_CountsAndRecords(t *testing.T) {
	g := bulkattendance.BuildGrid(bulkattendance.GridInput{
		Employee: emp("Sunday"),
		Year:     2025,
		Month:    time.January,
		Holidays: map[string]string{"2025-01-14": "Makar Sankranti"},
	}, farFuture)

	require.NoError(t, g.SetStatus("2025-01-01", bulkattendance.StatusPresent))
	require.NoError(t, g.SetStatus("2025-01-02", bulkattendance.StatusAbsent))
	require.NoError(t, g.SetStatus("2025-01-03", bulkattendance.StatusHalfDay))
	require.NoError(t, g.SetStatus("2025-01-04", bulkattendance.StatusLWP))

	assert.Equal(t, bulkattendance.Counts{
		Present: 1, Absent: 1, HalfDay: 1, LWP: 1, WeeklyOff: 4, Holiday: 1,
	}, g.Counts())

	records := g.Records()
	require.Len(t, records, 9)
	assert.Equal(t, "2025-01-01", records[0].AttendanceDate)
	for _, r := range records {
		assert.Equal(t, "CL-0001", r.Employee)
		assert.NotEmpty(t, r.Status)
	}
}

func TestParseWeeklyOffAndStatus(t *testing.T) {
	days := bulkattendance.ParseWeeklyOff(" saturday,SUNDAY, funday ")
	assert.Len(t, days, 2)
	assert.True(t, days[time.Saturday])
	assert.True(t, days[time.Sunday])

	s, ok := bulkattendance.ParseStatus("half_day")
	assert.True(t, ok)
	assert.Equal(t, bulkattendance.StatusHalfDay, s)

	_, ok = bulkattendance.ParseStatus("vacation")
	assert.False(t, ok)
}
