package leave

import (
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Submit files a Pending request of the given kind for the caller.
func (h *Handler) Submit(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.writeServiceError(c, apperror.MapValidationError(err))
			return
		}

		ctx := c.Request.Context()
		employeeID := c.GetString(middleware.ContextEmployeeID)

		var (
			resp RequestResponse
			err  error
		)
		switch kind {
		case KindVacation:
			resp, err = h.service.SubmitVacation(ctx, employeeID, req)
		default:
			resp, err = h.service.SubmitPermission(ctx, employeeID, req)
		}
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Message(c, http.StatusCreated, string(kind)+" request submitted", resp)
	}
}

func (h *Handler) Grant(c *gin.Context) {
	var req GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.GrantPermission(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusCreated, "permission granted", resp)
}

func (h *Handler) Approve(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.Approve(c.Request.Context(), kind, c.Param("id"), c.GetString(middleware.ContextEmployeeID))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Message(c, http.StatusOK, string(kind)+" request approved", resp)
	}
}

func (h *Handler) Deny(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.Deny(c.Request.Context(), kind, c.Param("id"), c.GetString(middleware.ContextEmployeeID))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.Message(c, http.StatusOK, string(kind)+" request denied", resp)
	}
}

func (h *Handler) MyRequests(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.MyRequests(c.Request.Context(), kind, c.GetString(middleware.ContextEmployeeID))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.List(c, http.StatusOK, resp, len(resp))
	}
}

func (h *Handler) PendingForApproval(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := h.service.PendingForApproval(c.Request.Context(), kind, c.GetString(middleware.ContextEmployeeID))
		if err != nil {
			h.writeServiceError(c, err)
			return
		}
		response.List(c, http.StatusOK, resp, len(resp))
	}
}

func (h *Handler) MyBalance(c *gin.Context) {
	resp, err := h.service.VacationBalance(c.Request.Context(), c.GetString(middleware.ContextEmployeeID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
