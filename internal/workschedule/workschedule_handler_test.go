package workschedule_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/workschedule"
	workscheduleerrors "github.com/Sedmeq/WorkTrack/internal/workschedule/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	getByIDFn    func(ctx context.Context, id string) (workschedule.WorkScheduleResponse, error)
	listActiveFn func(ctx context.Context) ([]workschedule.WorkScheduleResponse, error)
}

func (f *fakeService) GetByID(ctx context.Context, id string) (workschedule.WorkScheduleResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeService) ListActive(ctx context.Context) ([]workschedule.WorkScheduleResponse, error) {
	return f.listActiveFn(ctx)
}

func TestHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := workschedule.NewHandler(&fakeService{
		listActiveFn: func(ctx context.Context) ([]workschedule.WorkScheduleResponse, error) {
			return []workschedule.WorkScheduleResponse{{Name: "9-18"}, {Name: "9-14"}}, nil
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/workschedule", nil)
	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Ok    bool                                `json:"ok"`
		Count int                                 `json:"count"`
		Data  []workschedule.WorkScheduleResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Ok)
	assert.Equal(t, 2, body.Count)
}

func TestHandler_GetByID_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := workschedule.NewHandler(&fakeService{
		getByIDFn: func(ctx context.Context, id string) (workschedule.WorkScheduleResponse, error) {
			return workschedule.WorkScheduleResponse{}, workscheduleerrors.ErrWorkScheduleNotFound
		},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "x"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/workschedule/x", nil)
	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
