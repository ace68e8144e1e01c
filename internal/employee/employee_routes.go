package employee

import (
	"github.com/Sedmeq/WorkTrack/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	actors middleware.ActorResolver,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	employees := r.Group("/employee")
	employees.Use(middleware.AuthMiddleware(), middleware.ResolveActor(actors))
	{
		employees.GET("",
			middleware.RateLimitByUser(3, 10),
			handler.GetAll,
		)

		employees.GET("/available-roles",
			middleware.RateLimitByUser(5, 20),
			handler.AvailableRoles,
		)

		employees.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			handler.GetByID,
		)

		employees.GET("/:id/vacation-balance",
			middleware.RateLimitByUser(3, 10),
			handler.VacationBalance,
		)

		employees.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "employee", "create"),
			middleware.Idempotency(rdb),
			handler.Create,
		)

		employees.PUT("/:id",
			middleware.RateLimitByUser(0.5, 2),
			handler.Update,
		)

		employees.DELETE("/:id",
			middleware.RateLimitByUser(0.1, 1),
			middleware.RBACAuthorize(rbacService, "employee", "delete"),
			handler.Delete,
		)
	}
}
