package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "en-US,en;q=0.9", want: "en"},
		{header: "tr-TR", want: "tr"},
		{header: "az", want: "az"},
		{header: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			var fromGin, fromCtx string
			r := gin.New()
			r.GET("/ping", Locale(), func(c *gin.Context) {
				fromGin = c.GetString("locale")
				fromCtx = contextutil.GetLocale(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}
			r.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.want, fromGin)
			assert.Equal(t, tt.want, fromCtx)
		})
	}
}
