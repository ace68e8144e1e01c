package timelog

import (
	"github.com/Sedmeq/WorkTrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, actors middleware.ActorResolver, rbacService middleware.RBACService) {
	logs := r.Group("/timelog")
	logs.Use(middleware.AuthMiddleware(), middleware.ResolveActor(actors))
	{
		logs.POST("/checkin", middleware.RateLimitByUser(rate.Limit(1), 3), h.CheckIn)
		logs.POST("/checkout", middleware.RateLimitByUser(rate.Limit(1), 3), h.CheckOut)
		logs.GET("/status", h.Status)
		logs.GET("/my-logs", h.MyLogs)
		logs.GET("/daily-summary", h.DailySummary)
		logs.GET("/total", h.TotalWorkTime)

		logs.GET("/employee-logs", middleware.RBACAuthorize(rbacService, "timelog", "read_team"), h.EmployeeLogs)
		logs.GET("/employee/:id/logs", h.EmployeeLogsByID)
		logs.GET("/employee/:id/status", h.EmployeeStatus)
		logs.GET("/role/:roleId", middleware.RBACAuthorize(rbacService, "timelog", "read_all"), h.LogsByRole)
	}
}
