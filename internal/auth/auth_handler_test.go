package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/auth"
	autherrors "github.com/Sedmeq/WorkTrack/internal/auth/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	auth.Service
	registerFn func(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error)
	loginFn    func(ctx context.Context, req auth.LoginRequest) (string, error)
}

func (f *fakeService) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	return f.registerFn(ctx, req)
}

func (f *fakeService) Login(ctx context.Context, req auth.LoginRequest) (string, error) {
	return f.loginFn(ctx, req)
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func perform(h gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h(c)
	return w
}

func TestHandler_Register(t *testing.T) {
	t.Run("short password rejected", func(t *testing.T) {
		h := auth.NewHandler(&fakeService{})
		w := perform(h.Register, `{"username":"ali","email":"ali@example.com","password":"123"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email is 400", func(t *testing.T) {
		h := auth.NewHandler(&fakeService{registerFn: func(context.Context, auth.RegisterRequest) (auth.RegisterResponse, error) {
			return auth.RegisterResponse{}, autherrors.ErrEmailAlreadyExists
		}})
		w := perform(h.Register, `{"username":"ali","email":"ali@example.com","password":"secret1"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns id username email", func(t *testing.T) {
		h := auth.NewHandler(&fakeService{registerFn: func(_ context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
			return auth.RegisterResponse{ID: "id-1", Username: req.Username, Email: req.Email}, nil
		}})
		w := perform(h.Register, `{"username":"ali","email":"ali@example.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var data map[string]string
		require.NoError(t, json.Unmarshal(env.Data, &data))
		assert.Equal(t, map[string]string{"id": "id-1", "username": "ali", "email": "ali@example.com"}, data)
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("bad credentials are 401", func(t *testing.T) {
		h := auth.NewHandler(&fakeService{loginFn: func(context.Context, auth.LoginRequest) (string, error) {
			return "", autherrors.ErrInvalidCredentials
		}})
		w := perform(h.Login, `{"email":"ali@example.com","password":"x"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token in body and cookie", func(t *testing.T) {
		h := auth.NewHandler(&fakeService{loginFn: func(context.Context, auth.LoginRequest) (string, error) {
			return "signed.jwt.token", nil
		}})
		w := perform(h.Login, `{"email":"ali@example.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var env envelope
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		var token string
		require.NoError(t, json.Unmarshal(env.Data, &token))
		assert.Equal(t, "signed.jwt.token", token)
		assert.Contains(t, w.Header().Get("Set-Cookie"), "access_token=signed.jwt.token")
	})
}
