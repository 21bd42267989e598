package salaryholderrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrHoldNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary hold not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrSlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary slip not found",
		http.StatusNotFound,
	)

	ErrSlipNotForEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"Salary slip does not belong to this employee",
		http.StatusBadRequest,
	)

	ErrAlreadyOnHold = apperror.New(
		apperror.CodeConflict,
		"Employee already has an active Salary Hold",
		http.StatusConflict,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month",
		http.StatusBadRequest,
	)

	ErrSubmitOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft salary holds can be submitted",
		http.StatusUnprocessableEntity,
	)

	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Only draft salary holds can be deleted",
		http.StatusUnprocessableEntity,
	)

	ErrReleaseOnlySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"Only submitted records can be released.",
		http.StatusUnprocessableEntity,
	)

	ErrAlreadyReleased = apperror.New(
		apperror.CodeInvalidState,
		"This hold is already released.",
		http.StatusUnprocessableEntity,
	)

	ErrReleaseDateRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Release Date is mandatory when Status is Released.",
		http.StatusBadRequest,
	)

	ErrReleaseReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Reason for Release is mandatory when Status is Released.",
		http.StatusBadRequest,
	)

	ErrReleaseBeforeHold = apperror.New(
		apperror.CodeInvalidInput,
		"Release Date cannot be earlier than Hold Date.",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this salary hold",
		http.StatusForbidden,
	)
)

func AlreadyOnHold(employeeName, holdID string) error {
	return ErrAlreadyOnHold.Withf("Employee %s already has an active Salary Hold: %s. Please release the existing hold before creating a new one.", employeeName, holdID)
}
