package workscheduleerrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrWorkScheduleNotFound  = apperror.New(apperror.CodeNotFound, "work schedule not found", http.StatusNotFound)
	ErrInvalidWorkScheduleID = apperror.New(apperror.CodeInvalidInput, "invalid work schedule id", http.StatusBadRequest)
)
