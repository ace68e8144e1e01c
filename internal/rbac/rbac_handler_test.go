package rbac_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/domain"
	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/rbac"
	"github.com/Sedmeq/WorkTrack/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_Enforce_UsesCallerTier(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(newService(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce",
		strings.NewReader(`{"tier":"admin","resource":"employee","action":"delete"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(middleware.ContextTier, string(role.TierGroupBoss))

	h.Enforce(c)

	require.Equal(t, http.StatusOK, w.Code)
	var env struct {
		Data domain.EnforceResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, string(role.TierGroupBoss), env.Data.Tier)
	assert.False(t, env.Data.Allowed)
}

func TestHandler_Enforce_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := rbac.NewHandler(newService(t))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/rbac/enforce", strings.NewReader(`{"resource":"employee"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Enforce(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRoutes_PoliciesRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newService(t)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ContextTier, c.GetHeader("X-Test-Tier"))
		c.Next()
	})
	r.GET("/rbac/policies", middleware.RBACAuthorize(svc, "rbac", "read"), rbac.NewHandler(svc).Policies)

	for tier, want := range map[role.Tier]int{
		role.TierAdmin:     http.StatusOK,
		role.TierGroupBoss: http.StatusForbidden,
		role.TierRegular:   http.StatusForbidden,
	} {
		req := httptest.NewRequest(http.MethodGet, "/rbac/policies?tier=admin", nil)
		req.Header.Set("X-Test-Tier", string(tier))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, tier)
	}
}
