package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/access"
	"github.com/Sedmeq/WorkTrack/internal/employee"
	employeeerrors "github.com/Sedmeq/WorkTrack/internal/employee/errors"
	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/role"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	employee.Service
	getAllFn func(ctx context.Context, actor access.Subject) ([]employee.EmployeeResponse, error)
	createFn func(ctx context.Context, actor access.Subject, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	deleteFn func(ctx context.Context, actor access.Subject, id string) error
}

func (f *fakeService) GetAll(ctx context.Context, actor access.Subject) ([]employee.EmployeeResponse, error) {
	return f.getAllFn(ctx, actor)
}

func (f *fakeService) Create(ctx context.Context, actor access.Subject, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.createFn(ctx, actor, req)
}

func (f *fakeService) Delete(ctx context.Context, actor access.Subject, id string) error {
	return f.deleteFn(ctx, actor, id)
}

type envelope struct {
	Ok      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Count   *int            `json:"count"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newContext(method, target, body string, actor *access.Subject) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if actor != nil {
		c.Set(middleware.ContextActor, *actor)
	}
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_GetAll(t *testing.T) {
	admin := access.Subject{ID: uuid.New(), RoleName: role.AdminRoleName}

	t.Run("without actor", func(t *testing.T) {
		h := employee.NewHandler(&fakeService{})
		c, w := newContext(http.MethodGet, "/employee", "", nil)
		h.GetAll(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("lists with count", func(t *testing.T) {
		svc := &fakeService{
			getAllFn: func(_ context.Context, actor access.Subject) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, admin.ID, actor.ID)
				return []employee.EmployeeResponse{{ID: "1"}, {ID: "2"}}, nil
			},
		}
		h := employee.NewHandler(svc)
		c, w := newContext(http.MethodGet, "/employee", "", &admin)
		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Count)
		assert.Equal(t, 2, *env.Count)
	})
}

func TestHandler_Create(t *testing.T) {
	admin := access.Subject{ID: uuid.New(), RoleName: role.AdminRoleName}

	t.Run("invalid email", func(t *testing.T) {
		h := employee.NewHandler(&fakeService{})
		c, w := newContext(http.MethodPost, "/employee", `{"username":"a","email":"nope","password":"secret1"}`, &admin)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &fakeService{
			createFn: func(context.Context, access.Subject, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
			},
		}
		h := employee.NewHandler(svc)
		c, w := newContext(http.MethodPost, "/employee", `{"username":"a","email":"a@example.com","password":"secret1"}`, &admin)
		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Email already exists", decode(t, w).Error.Message)
	})

	t.Run("created with boss mentions boss role", func(t *testing.T) {
		bossID := uuid.NewString()
		svc := &fakeService{
			createFn: func(_ context.Context, _ access.Subject, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{ID: uuid.NewString(), Username: req.Username, BossID: req.BossID, RoleName: role.AdminRoleName}, nil
			},
		}
		h := employee.NewHandler(svc)
		body := `{"username":"a","email":"a@example.com","password":"secret1","bossId":"` + bossID + `"}`
		c, w := newContext(http.MethodPost, "/employee", body, &admin)
		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, env.Message, "Boss role")
	})
}

func TestHandler_Delete(t *testing.T) {
	groupBoss := access.Subject{ID: uuid.New(), RoleName: "Boss-IT"}
	svc := &fakeService{
		deleteFn: func(context.Context, access.Subject, string) error {
			return employeeerrors.ErrAdminRequired
		},
	}
	h := employee.NewHandler(svc)
	c, w := newContext(http.MethodDelete, "/employee/x", "", &groupBoss)
	c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}
	h.Delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", decode(t, w).Error.Code)
}
