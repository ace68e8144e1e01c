package middleware

import (
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns a panic into the generic 500 envelope.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		contextutil.GetLogger(c.Request.Context(), logger).Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.FullPath()),
		)
		httpErr := apperror.ToHTTP(nil)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		c.Abort()
	})
}
