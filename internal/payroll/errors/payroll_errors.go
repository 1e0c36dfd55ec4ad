package payrollerrors

import (
	"net/http"

	"inthehaus-hr/internal/shared/apperror"
)

var (
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be formatted as YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidStatusFilter = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid payroll status filter",
		http.StatusBadRequest,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"Payroll record not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"Invalid payroll status transition",
		http.StatusUnprocessableEntity,
	)
	ErrDeleteOnlyDraft = apperror.New(
		apperror.CodeInvalidState,
		"Payroll can only be deleted while in DRAFT",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipRequiresApproval = apperror.New(
		apperror.CodeInvalidState,
		"Payslips are issued for approved payrolls only",
		http.StatusUnprocessableEntity,
	)
	ErrPayslipNotGenerated = apperror.New(
		apperror.CodeNotFound,
		"Payslip is not generated yet",
		http.StatusNotFound,
	)
	ErrDeductionAmountOrPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"Provide either amount or percentage, not both",
		http.StatusBadRequest,
	)
	ErrInvalidPercentage = apperror.New(
		apperror.CodeInvalidInput,
		"Percentage must be greater than 0 and at most 100",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be greater than 0",
		http.StatusBadRequest,
	)
	ErrDeductionNotFound = apperror.New(
		apperror.CodeNotFound,
		"Deduction not found",
		http.StatusNotFound,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"Rates cannot be negative",
		http.StatusBadRequest,
	)
)
