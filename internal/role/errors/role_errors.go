package roleerrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"Role not found",
		http.StatusNotFound,
	)
	ErrBossRoleMissing = apperror.New(
		apperror.CodeInternalError,
		"Boss role is not configured",
		http.StatusInternalServerError,
	)
)
