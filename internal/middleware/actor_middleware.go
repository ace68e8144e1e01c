package middleware

import (
	"context"

	"github.com/Sedmeq/WorkTrack/internal/access"
	autherrors "github.com/Sedmeq/WorkTrack/internal/auth/errors"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

const (
	ContextActor = "actor"
	ContextTier  = "tier"
)

// ActorResolver loads the acting employee named by the token.
type ActorResolver interface {
	ResolveActor(ctx context.Context, employeeID string) (access.Subject, error)
}

// ResolveActor must run after AuthMiddleware. It reloads the employee on every
// request so role changes apply without a new token.
func ResolveActor(resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		employeeID := c.GetString(ContextEmployeeID)
		if employeeID == "" {
			abortWith(c, autherrors.ErrTokenNotFound, "")
			return
		}

		actor, err := resolver.ResolveActor(c.Request.Context(), employeeID)
		if err != nil {
			if apperror.Is(err, apperror.CodeNotFound) {
				abortWith(c, autherrors.ErrUnknownActor, "")
				return
			}
			httpErr := apperror.ToHTTP(err)
			abortWith(c, apperror.New(httpErr.Code, httpErr.Message, httpErr.Status), "")
			return
		}

		c.Set(ContextActor, actor)
		c.Set(ContextTier, string(actor.Tier()))
		c.Next()
	}
}

// ActorFrom returns the subject stored by ResolveActor.
func ActorFrom(c *gin.Context) (access.Subject, bool) {
	v, ok := c.Get(ContextActor)
	if !ok {
		return access.Subject{}, false
	}
	actor, ok := v.(access.Subject)
	return actor, ok
}
