package attendanceerrors

import (
	"net/http"

	"inthehaus-hr/internal/shared/apperror"
)

var (
	ErrMarkedAbsent = apperror.New(
		apperror.CodeInvalidState,
		"Employee is already marked absent for this day",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"Date range is invalid or longer than 62 days",
		http.StatusBadRequest,
	)
	ErrEmployeeRequired = apperror.New(
		apperror.CodeUnauthorized,
		"Token is not linked to an employee",
		http.StatusUnauthorized,
	)
)
