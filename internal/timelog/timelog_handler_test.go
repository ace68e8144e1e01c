package timelog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/access"
	"github.com/Sedmeq/WorkTrack/internal/middleware"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"
	"github.com/Sedmeq/WorkTrack/internal/timelog"
	timelogerrors "github.com/Sedmeq/WorkTrack/internal/timelog/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	timelog.Service
	checkInFn      func(ctx context.Context, employeeID string, req timelog.CheckInRequest) (timelog.TimeLogResponse, error)
	checkOutFn     func(ctx context.Context, employeeID string, req timelog.CheckOutRequest) (timelog.TimeLogResponse, error)
	employeeLogsFn func(ctx context.Context, actor access.Subject, q timelog.LogQuery) (timelog.EmployeeLogsResponse, error)
}

func (f *fakeService) CheckIn(ctx context.Context, employeeID string, req timelog.CheckInRequest) (timelog.TimeLogResponse, error) {
	return f.checkInFn(ctx, employeeID, req)
}
func (f *fakeService) CheckOut(ctx context.Context, employeeID string, req timelog.CheckOutRequest) (timelog.TimeLogResponse, error) {
	return f.checkOutFn(ctx, employeeID, req)
}
func (f *fakeService) EmployeeLogs(ctx context.Context, actor access.Subject, q timelog.LogQuery) (timelog.EmployeeLogsResponse, error) {
	return f.employeeLogsFn(ctx, actor, q)
}

type envelope struct {
	Ok      bool            `json:"ok"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestHandler_CheckIn(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.NewString()

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req timelog.CheckInRequest) (timelog.TimeLogResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, "hello", req.Notes)
			return timelog.TimeLogResponse{ID: uuid.NewString(), EmployeeID: eid}, nil
		},
	}
	h := timelog.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextEmployeeID, employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/timelog/checkin", strings.NewReader(`{"notes":"hello"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Request = c.Request.WithContext(contextutil.WithLocale(c.Request.Context(), "en"))
	h.CheckIn(c)

	assert.Equal(t, http.StatusOK, w.Code)
	env := decode(t, w)
	assert.True(t, env.Ok)
	assert.Equal(t, "Checked in successfully", env.Message)
}

func TestHandler_CheckIn_EmptyBodyAndConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		checkInFn: func(ctx context.Context, eid string, req timelog.CheckInRequest) (timelog.TimeLogResponse, error) {
			assert.Empty(t, req.Notes)
			return timelog.TimeLogResponse{}, timelogerrors.ErrAlreadyCheckedIn
		},
	}
	h := timelog.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextEmployeeID, uuid.NewString())
	c.Request = httptest.NewRequest(http.MethodPost, "/timelog/checkin", nil)
	h.CheckIn(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := decode(t, w)
	assert.False(t, env.Ok)
	assert.Equal(t, "CONFLICT", env.Error.Code)
}

func TestHandler_CheckOut_NotesTooLong(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := timelog.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextEmployeeID, uuid.NewString())
	body := `{"notes":"` + strings.Repeat("x", 501) + `"}`
	c.Request = httptest.NewRequest(http.MethodPost, "/timelog/checkout", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.CheckOut(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
}

func TestHandler_EmployeeLogs_UsesActor(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actor := access.Subject{ID: uuid.New(), RoleName: "Boss-IT"}

	svc := &fakeService{
		employeeLogsFn: func(ctx context.Context, got access.Subject, q timelog.LogQuery) (timelog.EmployeeLogsResponse, error) {
			assert.Equal(t, actor, got)
			assert.Equal(t, "2025-03-01", q.From)
			return timelog.EmployeeLogsResponse{TotalEmployees: 3}, nil
		},
	}
	h := timelog.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(middleware.ContextActor, actor)
	c.Request = httptest.NewRequest(http.MethodGet, "/timelog/employee-logs?from=2025-03-01", nil)
	h.EmployeeLogs(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalEmployees":3`)

	w2 := httptest.NewRecorder()
	c2, _ := gin.CreateTestContext(w2)
	c2.Request = httptest.NewRequest(http.MethodGet, "/timelog/employee-logs", nil)
	h.EmployeeLogs(c2)
	assert.Equal(t, http.StatusUnauthorized, w2.Code)
}
