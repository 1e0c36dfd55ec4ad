package swaperrors

import (
	"net/http"

	"inthehaus-hr/internal/shared/apperror"
)

var (
	ErrSwapNotFound = apperror.New(
		apperror.CodeNotFound,
		"Swap request not found",
		http.StatusNotFound,
	)
	ErrSelfSwap = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot swap a shift with yourself",
		http.StatusBadRequest,
	)
	ErrPositionMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"Both employees must hold the same position",
		http.StatusBadRequest,
	)
	ErrRequesterNotWorking = apperror.New(
		apperror.CodeInvalidState,
		"Requester has no shift on the requested date",
		http.StatusUnprocessableEntity,
	)
	ErrTargetNotWorking = apperror.New(
		apperror.CodeInvalidState,
		"Target has no shift on the exchange date",
		http.StatusUnprocessableEntity,
	)
	ErrTargetBusy = apperror.New(
		apperror.CodeInvalidState,
		"Target is already working on the requested date",
		http.StatusUnprocessableEntity,
	)
	ErrRequesterBusy = apperror.New(
		apperror.CodeInvalidState,
		"Requester is already working on the exchange date",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"Swap request cannot move to this status",
		http.StatusUnprocessableEntity,
	)
	ErrNotParticipant = apperror.New(
		apperror.CodeForbidden,
		"Only the swap participants may do this",
		http.StatusForbidden,
	)
	ErrDuplicateRequest = apperror.New(
		apperror.CodeConflict,
		"An open swap request already exists for this date",
		http.StatusConflict,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Date must be formatted as YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrDateInPast = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot swap a shift in the past",
		http.StatusBadRequest,
	)
)
