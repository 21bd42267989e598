package attendanceerrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid attendance status",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"End date cannot be earlier than start date",
		http.StatusBadRequest,
	)

	ErrFutureDate = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance cannot be marked for future dates",
		http.StatusBadRequest,
	)

	ErrBeforeJoining = apperror.New(
		apperror.CodeInvalidInput,
		"Attendance date cannot be before employee's joining date",
		http.StatusBadRequest,
	)

	ErrInactiveEmployee = apperror.New(
		apperror.CodeInvalidState,
		"Cannot mark attendance for an inactive employee",
		http.StatusConflict,
	)

	ErrDuplicateAttendance = apperror.New(
		apperror.CodeConflict,
		"Attendance is already marked for this date",
		http.StatusConflict,
	)

	ErrWeeklyOff = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot mark attendance on Weekly Off",
		http.StatusBadRequest,
	)

	ErrNoDates = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one date",
		http.StatusBadRequest,
	)

	ErrNoRecords = apperror.New(
		apperror.CodeInvalidInput,
		"No attendance to save",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this employee",
		http.StatusForbidden,
	)

	ErrCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select a company",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month",
		http.StatusBadRequest,
	)

	ErrCompanyForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this company",
		http.StatusForbidden,
	)
)

func FutureDate(date string) error {
	return ErrFutureDate.Withf("Attendance cannot be marked for future dates: %s", date)
}

func BeforeJoining(date, joining string) error {
	return ErrBeforeJoining.Withf("Attendance date %s cannot be before employee's joining date %s", date, joining)
}

func InactiveEmployee(employee string) error {
	return ErrInactiveEmployee.Withf("Cannot mark attendance for an inactive employee: %s", employee)
}

func DuplicateAttendance(employee, date string) error {
	return ErrDuplicateAttendance.Withf("Attendance for employee %s is already marked for %s", employee, date)
}

func WeeklyOff(day string) error {
	return ErrWeeklyOff.Withf("Cannot mark attendance on Weekly Off (%s).", day)
}
