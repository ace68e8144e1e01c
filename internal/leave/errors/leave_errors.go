package leaveerrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrInvalidRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid request id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD or RFC3339",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"endDate must not be before startDate",
		http.StatusBadRequest,
	)
	ErrNoBossAssigned = apperror.New(
		apperror.CodeInvalidInput,
		"employee has no boss to approve the request",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidInput,
		"requested days exceed the remaining vacation balance",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"request not found",
		http.StatusNotFound,
	)
	ErrNotRequestBoss = apperror.New(
		apperror.CodeForbidden,
		"you are not the boss of this employee",
		http.StatusForbidden,
	)
	ErrRequestNotPending = apperror.New(
		apperror.CodeConflict,
		"request has already been decided",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid leave status transition",
		http.StatusBadRequest,
	)
	ErrUnknownKind = apperror.New(
		apperror.CodeInvalidInput,
		"unknown leave kind",
		http.StatusBadRequest,
	)
)
