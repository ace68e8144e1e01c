package workschedule

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	workscheduleerrors "github.com/Sedmeq/WorkTrack/internal/workschedule/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const ActiveSchedulesKey = "workschedules:active"

const cacheTTL = 30 * time.Minute

//go:generate mockgen -source=workschedule_service.go -destination=mock/workschedule_service_mock.go -package=mock
type Service interface {
	GetByID(ctx context.Context, id string) (WorkScheduleResponse, error)
	ListActive(ctx context.Context) ([]WorkScheduleResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("workschedule.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("workschedule.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetByID(ctx context.Context, id string) (WorkScheduleResponse, error) {
	wsID, err := uuid.Parse(id)
	if err != nil {
		return WorkScheduleResponse{}, workscheduleerrors.ErrInvalidWorkScheduleID
	}

	ws, err := s.repo.FindByID(ctx, wsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkScheduleResponse{}, workscheduleerrors.ErrWorkScheduleNotFound
		}
		s.logger.Error("find work schedule failed", zap.String("work_schedule_id", id), zap.Error(err))
		return WorkScheduleResponse{}, err
	}
	return mapToResponse(*ws), nil
}

func (s *service) ListActive(ctx context.Context) ([]WorkScheduleResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, ActiveSchedulesKey).Result(); err == nil {
			var resp []WorkScheduleResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				s.logger.Debug("work schedules served from cache")
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(ActiveSchedulesKey, func() (interface{}, error) {
		rows, err := s.repo.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		resp := make([]WorkScheduleResponse, len(rows))
		for i, ws := range rows {
			resp[i] = mapToResponse(ws)
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, ActiveSchedulesKey, data, cacheTTL).Err(); err != nil {
					s.logger.Warn("cache work schedules failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list work schedules failed", zap.Error(err))
		return nil, err
	}
	return v.([]WorkScheduleResponse), nil
}

func mapToResponse(ws WorkSchedule) WorkScheduleResponse {
	return WorkScheduleResponse{
		ID:                 ws.ID.String(),
		Name:               ws.Name,
		Description:        ws.Description,
		StartTime:          ws.StartTime.String(),
		EndTime:            ws.EndTime.String(),
		RequiredWorkHours:  ws.RequiredWorkHours,
		MinimumWorkMinutes: ws.MinimumWorkMinutes,
		MaxLatenessMinutes: ws.MaxLatenessMinutes,
		IsActive:           ws.IsActive,
	}
}
