package employeeerrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee code already exists",
		http.StatusConflict,
	)
	ErrAadhaarAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Another employee is registered with the same Aadhaar number",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidDateOfBirth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date_of_birth format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrEmployeeHasLinks = apperror.New(
		apperror.CodeInvalidState,
		"Employee still has company links and cannot be deleted",
		http.StatusConflict,
	)
)
