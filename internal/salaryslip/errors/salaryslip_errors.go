package salarysliperrors

import (
	"net/http"
	"strings"

	"saral-hr/internal/shared/apperror"
)

// Teks alasan eligibility ditampilkan apa adanya ke user dan dicocokkan oleh
// ClassifySkipReasons, jangan diubah tanpa menyesuaikan keduanya.
const (
	ReasonNoSalaryStructure = "No Salary Structure Assignment found for the selected payroll period."
	ReasonNoVariablePay     = "No Variable Pay Assignment found for %s %d."
	ReasonSlipExists        = "Salary Slip already exists for this period."
	ReasonNoAttendance      = "No attendance has been recorded for this employee in the selected month."
)

var (
	ErrSlipNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary slip not found",
		http.StatusNotFound,
	)

	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)

	ErrSlipExists = apperror.New(
		apperror.CodeConflict,
		ReasonSlipExists,
		http.StatusConflict,
	)

	ErrNotEligible = apperror.New(
		apperror.CodeInvalidState,
		"Employee is not eligible for a salary slip in this period",
		http.StatusUnprocessableEntity,
	)

	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid month",
		http.StatusBadRequest,
	)

	ErrNoEmployeesSelected = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one employee",
		http.StatusBadRequest,
	)

	ErrNoSlipsSelected = apperror.New(
		apperror.CodeInvalidInput,
		"Please select at least one salary slip",
		http.StatusBadRequest,
	)

	ErrNoSubmittedSlips = apperror.New(
		apperror.CodeNotFound,
		"No submitted salary slips found for the selected period.",
		http.StatusNotFound,
	)

	ErrSubmitOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Salary slip can only be submitted while status is Draft",
		http.StatusUnprocessableEntity,
	)

	ErrCancelOnlySubmitted = apperror.New(
		apperror.CodeInvalidState,
		"Only submitted salary slips can be cancelled",
		http.StatusUnprocessableEntity,
	)

	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Salary slip can only be deleted while status is Draft",
		http.StatusUnprocessableEntity,
	)

	ErrUpdateOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Salary slip can only be edited while status is Draft",
		http.StatusUnprocessableEntity,
	)

	ErrRowNotInSlip = apperror.New(
		apperror.CodeInvalidInput,
		"Salary component is not part of this salary slip",
		http.StatusBadRequest,
	)

	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Payslip has not been generated yet",
		http.StatusNotFound,
	)

	ErrStorageUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Payslip storage is not configured",
		http.StatusServiceUnavailable,
	)

	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have access to this salary slip",
		http.StatusForbidden,
	)
)

func NotEligible(reasons []string) error {
	return apperror.Wrap(ErrNotEligible, apperror.CodeInvalidState,
		strings.Join(reasons, " "), http.StatusUnprocessableEntity)
}
