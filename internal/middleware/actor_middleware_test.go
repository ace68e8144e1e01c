package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/access"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeResolver struct {
	subject access.Subject
	err     error
}

func (f fakeResolver) ResolveActor(ctx context.Context, employeeID string) (access.Subject, error) {
	return f.subject, f.err
}

func newActorRouter(resolver ActorResolver, employeeID string) *gin.Engine {
	r := gin.New()
	r.GET("/whoami", withEmployee(employeeID), ResolveActor(resolver), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": actor.ID.String(), "tier": c.GetString(ContextTier)})
	})
	return r
}

func TestResolveActor(t *testing.T) {
	id := uuid.New()

	t.Run("stores actor and tier", func(t *testing.T) {
		r := newActorRouter(fakeResolver{subject: access.Subject{ID: id, RoleName: "Boss-IT"}}, id.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), id.String())
		assert.Contains(t, w.Body.String(), `"tier":"group_boss"`)
	})

	t.Run("deleted employee", func(t *testing.T) {
		notFound := apperror.New(apperror.CodeNotFound, "employee not found", http.StatusNotFound)
		r := newActorRouter(fakeResolver{err: notFound}, id.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, apperror.CodeUnauthorized, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		r := newActorRouter(fakeResolver{err: errors.New("connection reset")}, id.String())
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, apperror.CodeInternalError, decodeEnvelope(t, w).Error.Code)
	})

	t.Run("no authenticated employee", func(t *testing.T) {
		r := newActorRouter(fakeResolver{}, "")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
