package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/events"
	leaveerrors "github.com/Sedmeq/WorkTrack/internal/leave/errors"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	SubmitPermission(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error)
	GrantPermission(ctx context.Context, bossID string, req GrantRequest) (RequestResponse, error)
	SubmitVacation(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error)
	Approve(ctx context.Context, kind Kind, id, bossID string) (RequestResponse, error)
	Deny(ctx context.Context, kind Kind, id, bossID string) (RequestResponse, error)
	MyRequests(ctx context.Context, kind Kind, employeeID string) ([]RequestResponse, error)
	PendingForApproval(ctx context.Context, kind Kind, bossID string) ([]RequestResponse, error)
	VacationBalance(ctx context.Context, employeeID string) (BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	now    func() time.Time
	logger *zap.Logger
}

// NewService wires the workflow. A nil outbox disables lifecycle events.
func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		now:    time.Now,
		logger: l,
	}
}

func parseUUID(raw string, invalid error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid
	}
	return id, nil
}

func (s *service) findEmployee(ctx context.Context, repo Repository, id uuid.UUID) (*EmployeeRef, error) {
	emp, err := repo.FindEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp, nil
}

func (s *service) writeEvent(ctx context.Context, tx *sql.Tx, kind Kind, eventType string, r *Request, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	payload := events.LeaveLifecycleEvent{
		EventType:  eventType,
		Kind:       string(kind),
		RequestID:  r.ID.String(),
		EmployeeID: r.EmployeeID.String(),
		ActorID:    actorID,
		Status:     r.Status.String(),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		OccurredAt: s.now().UTC(),
	}
	if r.BossID != nil {
		payload.BossID = r.BossID.String()
	}

	event, err := kafka.NewOutboxEvent(ctx, string(kind), r.ID.String(), eventType, events.LeaveLifecycleTopic, payload)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) SubmitPermission(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error) {
	return s.submit(ctx, KindPermission, employeeID, req)
}

func (s *service) SubmitVacation(ctx context.Context, employeeID string, req SubmitRequest) (RequestResponse, error) {
	return s.submit(ctx, KindVacation, employeeID, req)
}

func (s *service) submit(ctx context.Context, kind Kind, employeeID string, req SubmitRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("kind", string(kind)),
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	empID, err := parseUUID(employeeID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return RequestResponse{}, err
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := s.findEmployee(ctx, qtx, empID)
	if err != nil {
		return RequestResponse{}, err
	}

	now := s.now()
	if kind == KindVacation {
		if emp.BossID == nil {
			log.Warn("submit vacation rejected, no boss assigned", zap.String("employee_id", employeeID))
			return RequestResponse{}, leaveerrors.ErrNoBossAssigned
		}

		requested := InclusiveDays(start, end)
		if requested <= 0 {
			return RequestResponse{}, leaveerrors.ErrInvalidDateRange
		}

		committed, err := qtx.ListVacationsForBalance(ctx, empID)
		if err != nil {
			log.Error("submit vacation balance lookup failed", zap.Error(err))
			return RequestResponse{}, err
		}
		balance := ComputeBalance(emp.CreatedAt, now, committed)
		if float64(requested) > balance.Available() {
			log.Warn("submit vacation rejected, insufficient balance",
				zap.String("employee_id", employeeID),
				zap.Int("requested_days", requested),
				zap.Float64("available_days", balance.Available()),
			)
			return RequestResponse{}, leaveerrors.ErrInsufficientBalance
		}
	}

	row := &Request{
		ID:         uuid.New(),
		EmployeeID: empID,
		BossID:     emp.BossID,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusPending,
		CreatedAt:  now.UTC(),
	}
	if err := qtx.Create(ctx, kind, row); err != nil {
		log.Error("submit leave persist failed", zap.Error(err))
		return RequestResponse{}, err
	}
	row.Employee = emp

	if err := s.writeEvent(ctx, tx, kind, events.LeaveSubmitted, row, employeeID); err != nil {
		log.Error("submit leave outbox write failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("submit leave success",
		zap.String("kind", string(kind)),
		zap.String("request_id", row.ID.String()),
		zap.String("employee_id", employeeID),
	)
	return mapToResponse(kind, *row), nil
}

// GrantPermission records an already approved permission on behalf of a direct subordinate.
func (s *service) GrantPermission(ctx context.Context, bossID string, req GrantRequest) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	bossUUID, err := parseUUID(bossID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return RequestResponse{}, err
	}
	targetID, err := parseUUID(req.EmployeeID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return RequestResponse{}, err
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("grant permission begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	target, err := s.findEmployee(ctx, qtx, targetID)
	if err != nil {
		return RequestResponse{}, err
	}
	if target.BossID == nil || *target.BossID != bossUUID {
		log.Warn("grant permission rejected, not the direct boss",
			zap.String("boss_id", bossID),
			zap.String("employee_id", req.EmployeeID),
		)
		return RequestResponse{}, leaveerrors.ErrNotRequestBoss
	}

	row := &Request{
		ID:         uuid.New(),
		EmployeeID: targetID,
		BossID:     &bossUUID,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(req.Reason),
		Status:     StatusApproved,
		CreatedAt:  s.now().UTC(),
	}
	if err := qtx.Create(ctx, KindPermission, row); err != nil {
		log.Error("grant permission persist failed", zap.Error(err))
		return RequestResponse{}, err
	}
	row.Employee = target

	if err := s.writeEvent(ctx, tx, KindPermission, events.LeaveGranted, row, bossID); err != nil {
		log.Error("grant permission outbox write failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("grant permission commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("grant permission success",
		zap.String("request_id", row.ID.String()),
		zap.String("boss_id", bossID),
		zap.String("employee_id", req.EmployeeID),
	)
	return mapToResponse(KindPermission, *row), nil
}

func (s *service) Approve(ctx context.Context, kind Kind, id, bossID string) (RequestResponse, error) {
	return s.decide(ctx, kind, id, bossID, StatusApproved)
}

func (s *service) Deny(ctx context.Context, kind Kind, id, bossID string) (RequestResponse, error) {
	return s.decide(ctx, kind, id, bossID, StatusDenied)
}

func (s *service) decide(ctx context.Context, kind Kind, id, bossID string, to Status) (RequestResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if !kind.Valid() {
		return RequestResponse{}, leaveerrors.ErrUnknownKind
	}
	if !StatusPending.CanTransitionTo(to) {
		return RequestResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	reqID, err := parseUUID(id, leaveerrors.ErrInvalidRequestID)
	if err != nil {
		return RequestResponse{}, err
	}
	bossUUID, err := parseUUID(bossID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return RequestResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return RequestResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	changed, err := qtx.Transition(ctx, kind, reqID, bossUUID, to)
	if err != nil {
		log.Error("decide leave update failed", zap.Error(err))
		return RequestResponse{}, err
	}
	if changed == 0 {
		err := classifyFailedTransition(ctx, qtx, kind, reqID, bossUUID)
		log.Warn("decide leave rejected",
			zap.String("kind", string(kind)),
			zap.String("request_id", id),
			zap.String("boss_id", bossID),
			zap.String("target_status", to.String()),
			zap.Error(err),
		)
		return RequestResponse{}, err
	}

	row, err := qtx.FindByID(ctx, kind, reqID)
	if err != nil {
		log.Error("decide leave reload failed", zap.Error(err))
		return RequestResponse{}, err
	}

	eventType := events.LeaveApproved
	if to == StatusDenied {
		eventType = events.LeaveDenied
	}
	if err := s.writeEvent(ctx, tx, kind, eventType, row, bossID); err != nil {
		log.Error("decide leave outbox write failed", zap.Error(err))
		return RequestResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.Error(err))
		return RequestResponse{}, err
	}

	log.Info("decide leave success",
		zap.String("kind", string(kind)),
		zap.String("request_id", id),
		zap.String("status", to.String()),
	)
	return mapToResponse(kind, *row), nil
}

// classifyFailedTransition explains why the conditional update matched no row.
func classifyFailedTransition(ctx context.Context, repo Repository, kind Kind, id, bossID uuid.UUID) error {
	existing, err := repo.FindByID(ctx, kind, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leaveerrors.ErrRequestNotFound
		}
		return err
	}
	if existing.BossID == nil || *existing.BossID != bossID {
		return leaveerrors.ErrNotRequestBoss
	}
	return leaveerrors.ErrRequestNotPending
}

func (s *service) MyRequests(ctx context.Context, kind Kind, employeeID string) ([]RequestResponse, error) {
	if !kind.Valid() {
		return nil, leaveerrors.ErrUnknownKind
	}
	empID, err := parseUUID(employeeID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByEmployee(ctx, kind, empID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list my leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapAll(kind, rows), nil
}

func (s *service) PendingForApproval(ctx context.Context, kind Kind, bossID string) ([]RequestResponse, error) {
	if !kind.Valid() {
		return nil, leaveerrors.ErrUnknownKind
	}
	bossUUID, err := parseUUID(bossID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListPendingForBoss(ctx, kind, bossUUID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("list pending leave requests failed", zap.Error(err))
		return nil, err
	}
	return mapAll(kind, rows), nil
}

func (s *service) VacationBalance(ctx context.Context, employeeID string) (BalanceResponse, error) {
	empID, err := parseUUID(employeeID, leaveerrors.ErrInvalidEmployeeID)
	if err != nil {
		return BalanceResponse{}, err
	}
	emp, err := s.findEmployee(ctx, s.repo, empID)
	if err != nil {
		return BalanceResponse{}, err
	}
	vacations, err := s.repo.ListVacationsForBalance(ctx, empID)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("vacation balance lookup failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	now := s.now()
	b := ComputeBalance(emp.CreatedAt, now, vacations)
	return BalanceResponse{
		EmployeeID:       emp.ID.String(),
		EmployeeName:     emp.Username,
		DaysEmployed:     DaysEmployed(emp.CreatedAt, now),
		TotalAccruedDays: b.TotalAccruedDays,
		DaysTaken:        b.DaysTaken,
		PendingDays:      b.PendingDays,
		RemainingDays:    b.RemainingDays,
		AvailableDays:    b.Available(),
	}, nil
}
