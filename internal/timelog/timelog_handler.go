package timelog

import (
	"errors"
	"io"
	"net/http"

	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/i18n"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timelog.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("timelog request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.Error(err),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// bindOptionalJSON accepts an empty body as the zero request.
func bindOptionalJSON(c *gin.Context, req any) error {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		return apperror.MapValidationError(err)
	}
	return nil
}

func (h *Handler) bindQuery(c *gin.Context) (LogQuery, bool) {
	var q LogQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return LogQuery{}, false
	}
	return q, true
}

func (h *Handler) CheckIn(c *gin.Context) {
	var req CheckInRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.CheckIn(ctx, c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, i18n.T(ctx, "timelog.checked_in"), resp)
}

func (h *Handler) CheckOut(c *gin.Context) {
	var req CheckOutRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		h.writeServiceError(c, err)
		return
	}

	ctx := c.Request.Context()
	resp, err := h.service.CheckOut(ctx, c.GetString(middleware.ContextEmployeeID), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Message(c, http.StatusOK, i18n.T(ctx, "timelog.checked_out"), resp)
}

func (h *Handler) Status(c *gin.Context) {
	resp, err := h.service.Status(c.Request.Context(), c.GetString(middleware.ContextEmployeeID))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MyLogs(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.MyLogs(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeLogs(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.EmployeeLogs(c.Request.Context(), actor, q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeLogsByID(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.EmployeeLogsByID(c.Request.Context(), actor, c.Param("id"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EmployeeStatus(c *gin.Context) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		h.writeServiceError(c, apperror.ErrUnauthorized)
		return
	}
	resp, err := h.service.EmployeeStatus(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LogsByRole(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.LogsByRole(c.Request.Context(), c.Param("roleId"), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.List(c, http.StatusOK, resp, len(resp))
}

func (h *Handler) DailySummary(c *gin.Context) {
	resp, err := h.service.DailySummary(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), c.Query("date"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) TotalWorkTime(c *gin.Context) {
	q, ok := h.bindQuery(c)
	if !ok {
		return
	}
	resp, err := h.service.TotalWorkTime(c.Request.Context(), c.GetString(middleware.ContextEmployeeID), q)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
