package registererrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrUnknownRegister = apperror.New(
		apperror.CodeNotFound,
		"Register not found",
		http.StatusNotFound,
	)

	ErrCompanyRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one Company",
		http.StatusBadRequest,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Please select a Month",
		http.StatusBadRequest,
	)

	ErrInvalidBankType = apperror.New(
		apperror.CodeInvalidInput,
		"Bank type must be Home or Different",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this company",
		http.StatusForbidden,
	)
)
