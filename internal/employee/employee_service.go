package employee

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/access"
	employeeerrors "github.com/Sedmeq/WorkTrack/internal/employee/errors"
	"github.com/Sedmeq/WorkTrack/internal/events"
	"github.com/Sedmeq/WorkTrack/internal/leave"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// maxBossChain bounds the walk up the reporting line when checking for cycles.
const maxBossChain = 256

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, actor access.Subject) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, actor access.Subject, id string) (EmployeeResponse, error)
	Create(ctx context.Context, actor access.Subject, req CreateEmployeeRequest) (EmployeeResponse, error)
	Update(ctx context.Context, actor access.Subject, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, actor access.Subject, id string) error
	AvailableRoles(ctx context.Context) ([]role.RoleResponse, error)
	VacationBalance(ctx context.Context, actor access.Subject, id string) (leave.BalanceResponse, error)
	ResolveActor(ctx context.Context, employeeID string) (access.Subject, error)
}

// BalanceProvider is the part of the leave workflow the employee endpoints use.
type BalanceProvider interface {
	VacationBalance(ctx context.Context, employeeID string) (leave.BalanceResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	roles    role.Service
	balances BalanceProvider
	outbox   kafka.OutboxRepository
	now      func() time.Time
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	roles role.Service,
	balances BalanceProvider,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		roles:    roles,
		balances: balances,
		outbox:   outboxRepo,
		now:      time.Now,
		logger:   l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, employeeerrors.ErrInvalidEmployeeID
	}
	return parsed, nil
}

// optionalID parses an optional uuid field. Binding already rejected malformed values.
func optionalID(raw string) *uuid.UUID {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

func (s *service) ResolveActor(ctx context.Context, employeeID string) (access.Subject, error) {
	id, err := parseID(employeeID)
	if err != nil {
		return access.Subject{}, err
	}
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return access.Subject{}, mapRepositoryError(err)
	}
	return e.Subject(), nil
}

func (s *service) GetAll(ctx context.Context, actor access.Subject) ([]EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	scope := access.ListScope(actor)
	log.Debug("get all employees requested", zap.Stringer("scope", scope))

	rows, err := s.repo.List(ctx, scope, actor.ID)
	if err != nil {
		log.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(rows), nil
}

func (s *service) GetByID(ctx context.Context, actor access.Subject, id string) (EmployeeResponse, error) {
	targetID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !access.CanRead(actor, target.Subject()) {
		return EmployeeResponse{}, employeeerrors.ErrForbidden
	}
	return mapToResponse(*target), nil
}

func (s *service) AvailableRoles(ctx context.Context) ([]role.RoleResponse, error) {
	return s.roles.AvailableRoles(ctx)
}

func (s *service) VacationBalance(ctx context.Context, actor access.Subject, id string) (leave.BalanceResponse, error) {
	targetID, err := parseID(id)
	if err != nil {
		return leave.BalanceResponse{}, err
	}
	target, err := s.repo.FindByID(ctx, targetID)
	if err != nil {
		return leave.BalanceResponse{}, mapRepositoryError(err)
	}
	if !access.CanRead(actor, target.Subject()) {
		return leave.BalanceResponse{}, employeeerrors.ErrForbidden
	}
	return s.balances.VacationBalance(ctx, targetID.String())
}

// checkBoss verifies that bossID exists and that attaching employeeID under it
// keeps the reporting line acyclic.
func (s *service) checkBoss(ctx context.Context, repo Repository, employeeID uuid.UUID, bossID *uuid.UUID) error {
	if bossID == nil {
		return nil
	}
	if *bossID == employeeID {
		return employeeerrors.ErrSelfBoss
	}

	cur := *bossID
	for i := 0; i < maxBossChain; i++ {
		next, err := repo.FindBossID(ctx, cur)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if cur == *bossID {
					return employeeerrors.ErrBossNotFound
				}
				return nil
			}
			return err
		}
		if next == nil {
			return nil
		}
		if *next == employeeID {
			return employeeerrors.ErrBossCycle
		}
		cur = *next
	}
	return employeeerrors.ErrBossCycle
}

func (s *service) writeEvent(ctx context.Context, tx *sql.Tx, eventType string, e *Employee, actorID string) error {
	if s.outbox == nil {
		return nil
	}
	payload := events.EmployeeLifecycleEvent{
		EventType:  eventType,
		EmployeeID: e.ID.String(),
		ActorID:    actorID,
		RoleName:   e.RoleName(),
		OccurredAt: s.now().UTC(),
	}
	if e.BossID != nil {
		payload.BossID = e.BossID.String()
	}
	event, err := kafka.NewOutboxEvent(ctx, "employee", e.ID.String(), eventType, events.EmployeeLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) Create(ctx context.Context, actor access.Subject, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested",
		zap.String("actor_id", actor.ID.String()),
		zap.String("email", req.Email),
	)

	if !access.CanManage(actor) {
		return EmployeeResponse{}, employeeerrors.ErrManagerRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	email := strings.TrimSpace(req.Email)
	if _, err := qtx.FindByEmail(ctx, email); err == nil {
		log.Warn("create employee email taken", zap.String("email", email))
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	id := uuid.New()
	bossID := access.AssignBoss(actor, optionalID(req.BossID))
	if err := s.checkBoss(ctx, qtx, id, bossID); err != nil {
		log.Warn("create employee boss rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	roleID, err := s.roles.DetermineEffectiveRole(ctx, optionalID(req.RoleID), bossID)
	if err != nil {
		log.Warn("create employee role rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	e := &Employee{
		ID:             id,
		Username:       strings.TrimSpace(req.Username),
		Email:          email,
		PasswordHash:   string(hash),
		Phone:          strings.TrimSpace(req.Phone),
		Salary:         req.Salary,
		RoleID:         roleID,
		WorkScheduleID: optionalID(req.WorkScheduleID),
		BossID:         bossID,
		CreatedAt:      s.now().UTC(),
	}
	if err := qtx.Create(ctx, e); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	created, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.writeEvent(ctx, tx, events.EmployeeCreated, created, actor.ID.String()); err != nil {
		log.Error("create employee outbox persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("create employee success",
		zap.String("employee_id", id.String()),
		zap.String("role", created.RoleName()),
	)
	return mapToResponse(*created), nil
}

func (s *service) Update(ctx context.Context, actor access.Subject, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update employee requested",
		zap.String("actor_id", actor.ID.String()),
		zap.String("employee_id", id),
	)

	targetID, err := parseID(id)
	if err != nil {
		return EmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	target, err := qtx.FindByID(ctx, targetID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	if !access.CanWrite(actor, target.Subject()) {
		log.Warn("update employee forbidden", zap.String("employee_id", id))
		return EmployeeResponse{}, employeeerrors.ErrForbidden
	}

	email := strings.TrimSpace(req.Email)
	if other, err := qtx.FindByEmail(ctx, email); err == nil && other.ID != targetID {
		return EmployeeResponse{}, employeeerrors.ErrEmailAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return EmployeeResponse{}, err
	}

	target.Username = strings.TrimSpace(req.Username)
	target.Email = email
	target.Phone = strings.TrimSpace(req.Phone)

	// Outside of admin, editing your own record never moves you in the hierarchy.
	selfEdit := target.ID == actor.ID && !access.IsAdmin(actor)
	if !selfEdit {
		bossID := access.AssignBoss(actor, optionalID(req.BossID))
		if err := s.checkBoss(ctx, qtx, targetID, bossID); err != nil {
			log.Warn("update employee boss rejected", zap.Error(err))
			return EmployeeResponse{}, err
		}
		roleID, err := s.roles.DetermineEffectiveRole(ctx, optionalID(req.RoleID), bossID)
		if err != nil {
			return EmployeeResponse{}, err
		}
		target.BossID = bossID
		target.RoleID = roleID
		target.WorkScheduleID = optionalID(req.WorkScheduleID)
		target.Salary = req.Salary
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("update employee hash password failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		target.PasswordHash = string(hash)
	}

	now := s.now().UTC()
	target.UpdatedAt = &now

	if err := qtx.Update(ctx, target); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	updated, err := qtx.FindByID(ctx, targetID)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := s.writeEvent(ctx, tx, events.EmployeeUpdated, updated, actor.ID.String()); err != nil {
		log.Error("update employee outbox persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	log.Info("update employee success", zap.String("employee_id", id))
	return mapToResponse(*updated), nil
}

func (s *service) Delete(ctx context.Context, actor access.Subject, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if !access.IsAdmin(actor) {
		return employeeerrors.ErrAdminRequired
	}
	targetID, err := parseID(id)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	target, err := qtx.FindByID(ctx, targetID)
	if err != nil {
		return mapRepositoryError(err)
	}

	affected, err := qtx.Delete(ctx, targetID)
	if err != nil {
		log.Error("delete employee failed", zap.Error(err))
		return mapRepositoryError(err)
	}
	if affected == 0 {
		return employeeerrors.ErrEmployeeNotFound
	}

	if err := s.writeEvent(ctx, tx, events.EmployeeDeleted, target, actor.ID.String()); err != nil {
		log.Error("delete employee outbox persist failed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	log.Info("delete employee success", zap.String("employee_id", id))
	return nil
}
