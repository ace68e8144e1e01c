package timelogerrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
	ErrAlreadyCheckedIn = apperror.New(apperror.CodeConflict, "employee already has an active session", http.StatusBadRequest)
	ErrNotCheckedIn     = apperror.New(apperror.CodeConflict, "no active session to check out", http.StatusBadRequest)
	ErrInvalidDate      = apperror.New(apperror.CodeInvalidInput, "dates must use the yyyy-mm-dd format", http.StatusBadRequest)
	ErrInvalidRange     = apperror.New(apperror.CodeInvalidInput, "from must not be after to", http.StatusBadRequest)
	ErrInvalidID        = apperror.New(apperror.CodeInvalidInput, "invalid id", http.StatusBadRequest)
	ErrForbidden        = apperror.New(apperror.CodeForbidden, "you cannot view this employee's time logs", http.StatusForbidden)
)
