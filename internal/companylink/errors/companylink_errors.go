package companylinkerrors

import (
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrLinkNotFound = apperror.New(
		apperror.CodeNotFound,
		"Company link not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrEmployeeAlreadyActive = apperror.New(
		apperror.CodeConflict,
		"Employee is already active in another company",
		http.StatusConflict,
	)

	ErrNoActiveLink = apperror.New(
		apperror.CodeInvalidState,
		"Employee has no active company link",
		http.StatusConflict,
	)

	ErrSameCompany = apperror.New(
		apperror.CodeInvalidInput,
		"Employee is already active in this company",
		http.StatusBadRequest,
	)

	ErrLinkNameTaken = apperror.New(
		apperror.CodeConflict,
		"Company link name already exists",
		http.StatusConflict,
	)

	ErrCompanyForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this company",
		http.StatusForbidden,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrLeftBeforeJoining = apperror.New(
		apperror.CodeInvalidInput,
		"Left date cannot be earlier than date of joining",
		http.StatusBadRequest,
	)

	ErrInvalidCategoryID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid category ID",
		http.StatusBadRequest,
	)

	ErrInvalidWeeklyOff = apperror.New(
		apperror.CodeInvalidInput,
		"Weekly off must be a comma separated list of day names",
		http.StatusBadRequest,
	)
)

func EmployeeAlreadyActive(employeeCode, companyID, linkName string) error {
	return ErrEmployeeAlreadyActive.Withf("Employee %s is already active in company %s (Record: %s). Please deactivate the existing record before assigning to another company.", employeeCode, companyID, linkName)
}
