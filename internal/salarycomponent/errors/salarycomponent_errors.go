package salarycomponenterrors

import (
	"fmt"
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary component not found",
		http.StatusNotFound,
	)

	ErrDuplicateName = apperror.New(
		apperror.CodeConflict,
		"Salary component with this name already exists",
		http.StatusConflict,
	)

	ErrInvalidType = apperror.New(
		apperror.CodeInvalidInput,
		"Type must be Earning or Deduction",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month",
		http.StatusBadRequest,
	)

	ErrDuplicateMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Duplicate month found",
		http.StatusBadRequest,
	)

	ErrEmployerContributionOnEarning = apperror.New(
		apperror.CodeInvalidInput,
		"Only Deduction components can be marked as employer contribution",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this salary component",
		http.StatusForbidden,
	)
)

func InvalidMonth(month string) error {
	return apperror.Wrap(ErrInvalidMonth, apperror.CodeInvalidInput,
		fmt.Sprintf("Invalid month: %s", month), http.StatusBadRequest)
}

func DuplicateMonth(month string) error {
	return apperror.Wrap(ErrDuplicateMonth, apperror.CodeInvalidInput,
		fmt.Sprintf("Duplicate month found: %s", month), http.StatusBadRequest)
}
