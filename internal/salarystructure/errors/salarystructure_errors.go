package salarystructureerrors

import (
	"fmt"
	"net/http"

	"saral-hr/internal/shared/apperror"
)

var (
	ErrStructureNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure not found",
		http.StatusNotFound,
	)

	ErrAssignmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary structure assignment not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary component not found",
		http.StatusNotFound,
	)

	ErrWrongComponentType = apperror.New(
		apperror.CodeInvalidInput,
		"Salary component type does not match the table",
		http.StatusBadRequest,
	)

	ErrDuplicateEarning = apperror.New(
		apperror.CodeInvalidInput,
		"Duplicate salary components found in Earnings table. Each component can only be added once.",
		http.StatusBadRequest,
	)

	ErrDuplicateDeduction = apperror.New(
		apperror.CodeInvalidInput,
		"Duplicate salary components found in Deductions table. Each component can only be added once.",
		http.StatusBadRequest,
	)

	ErrDuplicateName = apperror.New(
		apperror.CodeConflict,
		"Salary structure with this name already exists",
		http.StatusConflict,
	)

	ErrDuplicateAssignment = apperror.New(
		apperror.CodeConflict,
		"Salary structure assignment already exists for this employee and date",
		http.StatusConflict,
	)

	ErrInactiveStructure = apperror.New(
		apperror.CodeInvalidState,
		"Salary structure is not active",
		http.StatusUnprocessableEntity,
	)

	ErrRowNotInAssignment = apperror.New(
		apperror.CodeInvalidInput,
		"Salary component is not part of this assignment",
		http.StatusBadRequest,
	)

	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this salary structure",
		http.StatusForbidden,
	)
)

func NotEarning(idx int, component string) error {
	return apperror.Wrap(ErrWrongComponentType, apperror.CodeInvalidInput,
		fmt.Sprintf("Row #%d: Component %s is not an Earning type component. Please select an Earning component.", idx, component),
		http.StatusBadRequest)
}

func NotDeduction(idx int, component string) error {
	return apperror.Wrap(ErrWrongComponentType, apperror.CodeInvalidInput,
		fmt.Sprintf("Row #%d: Component %s is not a Deduction type component. Please select a Deduction component.", idx, component),
		http.StatusBadRequest)
}
