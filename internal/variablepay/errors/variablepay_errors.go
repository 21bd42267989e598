package variablepayerrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Variable pay assignment not found",
		http.StatusNotFound,
	)

	ErrDuplicatePeriod = apperror.New(
		apperror.CodeConflict,
		"Variable Pay Assignment already exists for this period",
		http.StatusConflict,
	)

	ErrPercentageExceeded = apperror.New(
		apperror.CodeInvalidInput,
		"Total Variable Pay Percentage cannot exceed 100%",
		http.StatusBadRequest,
	)

	ErrNegativePercentage = apperror.New(
		apperror.CodeInvalidInput,
		"Variable Pay Percentage cannot be negative",
		http.StatusBadRequest,
	)

	ErrDuplicateDivision = apperror.New(
		apperror.CodeInvalidInput,
		"Duplicate Division found in Variable Pay table",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this variable pay assignment",
		http.StatusForbidden,
	)
)

func DuplicatePeriod(month string, year int) error {
	return ErrDuplicatePeriod.Withf("Variable Pay Assignment already exists for %s %d", month, year)
}

func PercentageExceeded(total string) error {
	return ErrPercentageExceeded.Withf("Total Variable Pay Percentage cannot exceed 100%%. Current total: %s%%", total)
}
