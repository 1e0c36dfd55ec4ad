package rostererrors

import (
	"net/http"

	"inthehaus-hr/internal/shared/apperror"
)

var (
	ErrShiftNotFound = apperror.New(
		apperror.CodeNotFound,
		"Shift not found",
		http.StatusNotFound,
	)
	ErrShiftInUse = apperror.New(
		apperror.CodeInvalidState,
		"Shift is still used by a weekly schedule",
		http.StatusConflict,
	)
	ErrInvalidCategory = apperror.New(
		apperror.CodeInvalidInput,
		"Shift category must be morning, evening, double or empty",
		http.StatusBadRequest,
	)
	ErrInvalidClockTime = apperror.New(
		apperror.CodeInvalidInput,
		"Time must be formatted as HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"The from date must not be after the to date",
		http.StatusBadRequest,
	)
	ErrOverrideNotFound = apperror.New(
		apperror.CodeNotFound,
		"Roster override not found",
		http.StatusNotFound,
	)
	ErrOverrideNeedsShift = apperror.New(
		apperror.CodeInvalidInput,
		"A working override needs a shift or both custom times",
		http.StatusBadRequest,
	)
	ErrWeeklyNeedsShift = apperror.New(
		apperror.CodeInvalidInput,
		"A working weekday needs a shift",
		http.StatusBadRequest,
	)
)
