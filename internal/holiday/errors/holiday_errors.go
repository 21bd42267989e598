package holidayerrors

import (
	"fmt"
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrHolidayListNotFound = apperror.New(
		apperror.CodeNotFound,
		"Holiday list not found",
		http.StatusNotFound,
	)

	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"To Date cannot be earlier than From Date.",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrHolidayOutOfRange = apperror.New(
		apperror.CodeInvalidInput,
		"Holiday date must be within the list period",
		http.StatusBadRequest,
	)

	ErrDuplicateHoliday = apperror.New(
		apperror.CodeConflict,
		"Duplicate holiday date found",
		http.StatusConflict,
	)

	ErrHolidayListForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this holiday list",
		http.StatusForbidden,
	)
)

func HolidayOutOfRange(date, from, to string) error {
	return apperror.Wrap(ErrHolidayOutOfRange, apperror.CodeInvalidInput,
		fmt.Sprintf("Holiday date %s must be between %s and %s.", date, from, to),
		http.StatusBadRequest)
}

func DuplicateHoliday(date string) error {
	return apperror.Wrap(ErrDuplicateHoliday, apperror.CodeConflict,
		fmt.Sprintf("Duplicate holiday date found: %s", date),
		http.StatusConflict)
}
