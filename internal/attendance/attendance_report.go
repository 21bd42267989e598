package attendance

import (
	"context"
	"fmt"
	"strings"

	attendanceerrors "saral-hr/internal/attendance/errors"
	"saral-hr/internal/shared/period"
	"saral-hr/internal/tenant"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var statusCodes = map[string]string{
	StatusPresent:      "P",
	StatusHalfDay:      "HD",
	StatusAbsent:       "A",
	StatusWeeklyOff:    "WO",
	StatusLWP:          "LWP",
	StatusHoliday:      "H",
	StatusWorkFromHome: "WFH",
	StatusOnLeave:      "OL",
}

// MonthlyReport menyusun satu baris per employee yang punya absensi di bulan
// itu. Half day dihitung setengah hadir dan setengah absen; WFH dan On Leave
// dihitung hadir seperti Summary.
func (s *service) MonthlyReport(ctx context.Context, companyIDs []string, filter MonthlyReportFilter) (MonthlyReport, error) {
	company := strings.TrimSpace(filter.Company)
	if company == "" {
		return MonthlyReport{}, attendanceerrors.ErrCompanyRequired
	}
	if !tenant.Allows(companyIDs, company) {
		return MonthlyReport{}, attendanceerrors.ErrCompanyForbidden
	}
	month, err := period.ParseMonth(filter.Month)
	if err != nil {
		return MonthlyReport{}, attendanceerrors.ErrInvalidMonth
	}

	days := period.DaysIn(filter.Year, month)
	records, err := s.repo.FindForReport(ctx, company, filter.Category, filter.Employees,
		period.MonthStart(filter.Year, month), period.MonthEnd(filter.Year, month))
	if err != nil {
		s.logger.Error("monthly attendance report failed", zap.String("company_id", company), zap.Error(err))
		return MonthlyReport{}, mapRepositoryError(err)
	}

	report := MonthlyReport{Year: filter.Year, Month: month.String(), DaysInMonth: days, Rows: []MonthlyReportRow{}}
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.CompanyLinkID]
		if !ok {
			i = len(report.Rows)
			index[rec.CompanyLinkID] = i
			report.Rows = append(report.Rows, MonthlyReportRow{
				Employee:      rec.EmployeeCode,
				CompanyLinkID: rec.CompanyLinkID,
				EmployeeName:  rec.EmployeeName,
				Days:          make([]string, days),
				WorkingDays:   days,
			})
		}
		row := &report.Rows[i]

		code, known := statusCodes[rec.Status]
		if !known {
			code = "-"
		}
		row.Days[rec.AttendanceDate.Day()-1] = code

		switch rec.Status {
		case StatusPresent, StatusWorkFromHome, StatusOnLeave:
			row.PresentDays++
		case StatusHalfDay:
			row.HalfDays++
			row.PresentDays += 0.5
			row.AbsentDays += 0.5
		case StatusAbsent:
			row.AbsentDays++
			row.AbsentLWP++
		case StatusLWP:
			row.LWPDays++
			row.AbsentLWP++
		case StatusWeeklyOff:
			row.WeeklyOffDays++
		case StatusHoliday:
			row.HolidayDays++
		}
	}
	return report, nil
}

func (s *service) ExportMonthlyReport(ctx context.Context, companyIDs []string, filter MonthlyReportFilter) ([]byte, string, error) {
	report, err := s.MonthlyReport(ctx, companyIDs, filter)
	if err != nil {
		return nil, "", err
	}
	data, err := writeMonthlyWorkbook(report)
	if err != nil {
		s.logger.Error("failed to write monthly attendance workbook", zap.Error(err))
		return nil, "", err
	}
	return data, fmt.Sprintf("monthly-attendance-%d-%s.xlsx", report.Year, strings.ToLower(report.Month)), nil
}

func writeMonthlyWorkbook(report MonthlyReport) ([]byte, error) {
	const sheet = "Monthly Attendance"

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, err
	}

	header := []any{"Emp ID", "Employee Name"}
	for d := 1; d <= report.DaysInMonth; d++ {
		header = append(header, d)
	}
	header = append(header, "Working Days", "Present", "Half Days", "Absent", "Weekly Off", "Holiday", "LWP", "A + LWP")
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return nil, err
	}
	_ = f.SetColWidth(sheet, "A", "B", 20)
	firstDay, _ := excelize.ColumnNumberToName(3)
	lastDay, _ := excelize.ColumnNumberToName(2 + report.DaysInMonth)
	_ = f.SetColWidth(sheet, firstDay, lastDay, 5)

	for i, row := range report.Rows {
		values := []any{row.Employee, row.EmployeeName}
		for _, code := range row.Days {
			values = append(values, code)
		}
		values = append(values,
			row.WorkingDays, row.PresentDays, row.HalfDays, row.AbsentDays,
			row.WeeklyOffDays, row.HolidayDays, row.LWPDays, row.AbsentLWP,
		)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
