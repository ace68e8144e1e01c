package role

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	roleerrors "github.com/Sedmeq/WorkTrack/internal/role/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const AvailableRolesKey = "roles:available"

// Policy decides how a requested role interacts with a boss assignment.
type Policy string

const (
	// PolicyForceBossWhenManaged assigns the "Boss" role whenever a boss id is given.
	PolicyForceBossWhenManaged Policy = "force_boss"
	// PolicyPassThrough keeps the caller's selection untouched.
	PolicyPassThrough Policy = "passthrough"
)

// ParsePolicy maps a config value to a Policy, defaulting to PolicyForceBossWhenManaged.
func ParsePolicy(v string) Policy {
	if Policy(v) == PolicyPassThrough {
		return PolicyPassThrough
	}
	return PolicyForceBossWhenManaged
}

//go:generate mockgen -source=role_service.go -destination=mock/role_service_mock.go -package=mock
type Service interface {
	DetermineEffectiveRole(ctx context.Context, selectedRoleID, bossID *uuid.UUID) (*uuid.UUID, error)
	AvailableRoles(ctx context.Context) ([]RoleResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (RoleResponse, error)
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	policy Policy
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, policy Policy, logger ...*zap.Logger) Service {
	l := zap.L().Named("role.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("role.service")
	}
	if policy == "" {
		policy = PolicyForceBossWhenManaged
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		policy: policy,
		logger: l,
	}
}

func (s *service) DetermineEffectiveRole(ctx context.Context, selectedRoleID, bossID *uuid.UUID) (*uuid.UUID, error) {
	if s.policy == PolicyPassThrough || bossID == nil {
		if selectedRoleID == nil {
			return nil, nil
		}
		if _, err := s.repo.FindByID(ctx, *selectedRoleID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, roleerrors.ErrRoleNotFound
			}
			return nil, err
		}
		return selectedRoleID, nil
	}

	boss, err := s.repo.FindByName(ctx, AdminRoleName)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("boss role missing from role table")
			return nil, roleerrors.ErrBossRoleMissing
		}
		return nil, err
	}

	if selectedRoleID != nil && *selectedRoleID != boss.ID {
		s.logger.Debug("role overridden by boss assignment",
			zap.String("selected_role_id", selectedRoleID.String()),
			zap.String("boss_id", bossID.String()),
		)
	}
	id := boss.ID
	return &id, nil
}

func (s *service) AvailableRoles(ctx context.Context) ([]RoleResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, AvailableRolesKey).Result(); err == nil {
			var resp []RoleResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(AvailableRolesKey, func() (interface{}, error) {
		roles, err := s.repo.ListAvailable(ctx)
		if err != nil {
			return nil, err
		}
		resp := mapToListResponse(roles)

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, AvailableRolesKey, data, time.Hour).Err(); err != nil {
					s.logger.Warn("cache available roles failed", zap.Error(err))
				}
			}
		}
		return resp, nil
	})
	if err != nil {
		s.logger.Error("list available roles failed", zap.Error(err))
		return nil, err
	}

	return v.([]RoleResponse), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (RoleResponse, error) {
	ro, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleResponse{}, roleerrors.ErrRoleNotFound
		}
		return RoleResponse{}, err
	}
	return mapToResponse(*ro), nil
}

func mapToResponse(ro Role) RoleResponse {
	return RoleResponse{
		ID:          ro.ID.String(),
		Name:        ro.Name,
		Description: ro.Description,
		Tier:        TierOf(ro.Name),
	}
}

func mapToListResponse(roles []Role) []RoleResponse {
	res := make([]RoleResponse, len(roles))
	for i, ro := range roles {
		res[i] = mapToResponse(ro)
	}
	return res
}
