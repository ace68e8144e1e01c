package rbac

import (
	"github.com/Sedmeq/WorkTrack/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, actors middleware.ActorResolver, service Service) {
	group := r.Group("/rbac")
	group.Use(middleware.AuthMiddleware(), middleware.ResolveActor(actors))
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", middleware.RBACAuthorize(service, "rbac", "read"), handler.Policies)
	}
}
