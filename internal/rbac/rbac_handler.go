package rbac

import (
	"net/http"
	"strings"

	"github.com/Sedmeq/WorkTrack/internal/domain"
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
	l := zap.L().Named("rbac.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// Enforce answers a permission question for the caller's own tier.
func (h *Handler) Enforce(c *gin.Context) {
	var req domain.EnforceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	req.Tier = c.GetString(middleware.ContextTier)
	req.Resource = strings.TrimSpace(req.Resource)
	req.Action = strings.TrimSpace(req.Action)

	allowed, err := h.service.Enforce(req)
	if err != nil {
		h.logger.Error("rbac enforce failed", zap.Error(err))
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, domain.EnforceResponse{Tier: req.Tier, Allowed: allowed}, nil)
}

func (h *Handler) Policies(c *gin.Context) {
	policies, err := h.service.Policies(strings.TrimSpace(c.Query("tier")))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.List(c, http.StatusOK, policies, len(policies))
}
