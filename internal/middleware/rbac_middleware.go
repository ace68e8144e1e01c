package middleware

import (
	autherrors "github.com/Sedmeq/WorkTrack/internal/auth/errors"
	"github.com/Sedmeq/WorkTrack/internal/domain"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by anything that can answer a tier policy question.
type RBACService interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize gates a route on the actor tier set by ResolveActor.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tier := c.GetString(ContextTier)
		if tier == "" {
			abortWith(c, autherrors.ErrTokenNotFound, "missing auth context")
			return
		}

		allowed, err := service.Enforce(domain.EnforceRequest{
			Tier:     tier,
			Resource: resource,
			Action:   action,
		})
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
			c.Abort()
			return
		}

		if !allowed {
			e := autherrors.ErrForbidden
			response.Error(c, e.HTTPStatus, e.Code, e.Message, map[string]string{
				"required": resource + ":" + action,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
