package employeeerrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	// Duplicate email stays a 400 for existing clients.
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Email already exists",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrBossNotFound = apperror.New(
		apperror.CodeNotFound,
		"Boss not found",
		http.StatusNotFound,
	)
	ErrSelfBoss = apperror.New(
		apperror.CodeInvalidInput,
		"An employee cannot be their own boss",
		http.StatusBadRequest,
	)
	ErrBossCycle = apperror.New(
		apperror.CodeInvalidInput,
		"Boss assignment would create a reporting cycle",
		http.StatusBadRequest,
	)
	ErrInvalidReference = apperror.New(
		apperror.CodeInvalidInput,
		"Referenced role or work schedule does not exist",
		http.StatusBadRequest,
	)
	ErrForbidden = apperror.New(
		apperror.CodeForbidden,
		"You do not have permission to access this employee",
		http.StatusForbidden,
	)
	ErrAdminRequired = apperror.New(
		apperror.CodeForbidden,
		"Access denied. Admin role required",
		http.StatusForbidden,
	)
	ErrManagerRequired = apperror.New(
		apperror.CodeForbidden,
		"Access denied. Boss role required",
		http.StatusForbidden,
	)
)
