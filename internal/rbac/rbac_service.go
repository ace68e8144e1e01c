package rbac

import (
	"sort"
	"sync"

	"github.com/Sedmeq/WorkTrack/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	Policies(tier string) ([]domain.PolicyResponse, error)
}

type service struct {
	enforcer *casbin.Enforcer
	mu       sync.RWMutex
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	allowed, err := s.enforcer.Enforce(req.Tier, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("tier", req.Tier),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("tier", req.Tier),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// Policies lists the effective rules of a tier, inherited ones included and
// labelled with the tier that grants them. An empty tier lists every rule.
func (s *service) Policies(tier string) ([]domain.PolicyResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rows [][]string
	if tier == "" {
		all, err := s.enforcer.GetPolicy()
		if err != nil {
			return nil, err
		}
		rows = all
	} else {
		implicit, err := s.enforcer.GetImplicitPermissionsForUser(tier)
		if err != nil {
			return nil, err
		}
		rows = implicit
	}

	out := make([]domain.PolicyResponse, 0, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		out = append(out, domain.PolicyResponse{Tier: row[0], Resource: row[1], Action: row[2]})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Resource != out[j].Resource {
			return out[i].Resource < out[j].Resource
		}
		return out[i].Action < out[j].Action
	})
	return out, nil
}
