package workschedule

import (
	"github.com/Sedmeq/WorkTrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	schedules := r.Group("/workschedule")
	schedules.Use(middleware.AuthMiddleware())
	{
		schedules.GET("", h.GetAll)
		schedules.GET("/:id", h.GetByID)
	}
}
