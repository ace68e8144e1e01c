package leave

import (
	"github.com/Sedmeq/WorkTrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, actors middleware.ActorResolver, rbacService middleware.RBACService, rdb *redis.Client) {
	idempotent := middleware.Idempotency(rdb)
	decide := middleware.RBACAuthorize(rbacService, "leave", "decide")

	permissions := r.Group("/permission")
	permissions.Use(middleware.AuthMiddleware(), middleware.ResolveActor(actors))
	{
		permissions.POST("/submit", idempotent, h.Submit(KindPermission))
		permissions.GET("/my-requests", h.MyRequests(KindPermission))
		permissions.GET("/pending-for-approval", decide, h.PendingForApproval(KindPermission))
		permissions.POST("/approve/:id", decide, h.Approve(KindPermission))
		permissions.POST("/deny/:id", decide, h.Deny(KindPermission))
		permissions.POST("/grant", middleware.RBACAuthorize(rbacService, "leave", "grant"), idempotent, h.Grant)
	}

	vacations := r.Group("/vacation")
	vacations.Use(middleware.AuthMiddleware(), middleware.ResolveActor(actors))
	{
		vacations.POST("/submit", idempotent, h.Submit(KindVacation))
		vacations.GET("/my-requests", h.MyRequests(KindVacation))
		vacations.GET("/balance", h.MyBalance)
		vacations.GET("/pending-for-approval", decide, h.PendingForApproval(KindVacation))
		vacations.POST("/approve/:id", decide, h.Approve(KindVacation))
		vacations.POST("/deny/:id", decide, h.Deny(KindVacation))
	}
}
