package autherrors

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
)

var (
	ErrInvalidCredentials    = apperror.New(apperror.CodeUnauthorized, "invalid email or password", http.StatusUnauthorized)
	ErrEmailAlreadyExists    = apperror.New(apperror.CodeConflict, "an employee with this email already exists", http.StatusBadRequest)
	ErrInvalidToken          = apperror.New("INVALID_TOKEN", "invalid token", http.StatusUnauthorized)
	ErrTokenExpired          = apperror.New("TOKEN_EXPIRED", "token has expired", http.StatusUnauthorized)
	ErrTokenNotFound         = apperror.New(apperror.CodeUnauthorized, "token not found", http.StatusUnauthorized)
	ErrUnknownActor          = apperror.New(apperror.CodeUnauthorized, "the token's employee no longer exists", http.StatusUnauthorized)
	ErrForbidden             = apperror.New(apperror.CodeForbidden, "you do not have permission to access this resource", http.StatusForbidden)
	ErrInvalidEmployeeID     = apperror.New(apperror.CodeInvalidInput, "invalid employee id", http.StatusBadRequest)
	ErrTokenGenerationFailed = apperror.New(apperror.CodeInternalError, "failed to issue token", http.StatusInternalServerError)
	ErrMissingSecret         = apperror.New(apperror.CodeServiceUnavailable, "token signing is not configured", http.StatusServiceUnavailable)
)
