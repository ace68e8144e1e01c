package timelog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/access"
	"github.com/Sedmeq/WorkTrack/internal/shared/apperror"
	"github.com/Sedmeq/WorkTrack/internal/shared/contextutil"
	timelogerrors "github.com/Sedmeq/WorkTrack/internal/timelog/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const checkoutNotesSeparator = " | Checkout: "

//go:generate mockgen -source=timelog_service.go -destination=mock/timelog_service_mock.go -package=mock
type Service interface {
	CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (TimeLogResponse, error)
	CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (TimeLogResponse, error)
	Status(ctx context.Context, employeeID string) (StatusResponse, error)
	MyLogs(ctx context.Context, employeeID string, q LogQuery) (GroupedLogsResponse, error)
	EmployeeLogs(ctx context.Context, actor access.Subject, q LogQuery) (EmployeeLogsResponse, error)
	EmployeeLogsByID(ctx context.Context, actor access.Subject, targetID string, q LogQuery) (EmployeeLogDetailResponse, error)
	EmployeeStatus(ctx context.Context, actor access.Subject, targetID string) (EmployeeStatusResponse, error)
	LogsByRole(ctx context.Context, roleID string, q LogQuery) ([]TimeLogResponse, error)
	DailySummary(ctx context.Context, employeeID, date string) (DayGroup, error)
	TotalWorkTime(ctx context.Context, employeeID string, q LogQuery) (TotalWorkTimeResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("timelog.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timelog.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		now:    time.Now,
		logger: l,
	}
}

func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, timelogerrors.ErrInvalidID
	}
	return parsed, nil
}

func isOpenSessionViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == OpenSessionIndex
}

// mergeNotes joins check-in and check-out notes, keeping whichever is present.
func mergeNotes(existing, extra string) string {
	existing, extra = strings.TrimSpace(existing), strings.TrimSpace(extra)
	switch {
	case existing != "" && extra != "":
		return existing + checkoutNotesSeparator + extra
	case extra != "":
		return extra
	default:
		return existing
	}
}

func (s *service) CheckIn(ctx context.Context, employeeID string, req CheckInRequest) (TimeLogResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	empID, err := parseID(employeeID)
	if err != nil {
		return TimeLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	emp, err := qtx.FindEmployee(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timelogerrors.ErrEmployeeNotFound
		}
		return TimeLogResponse{}, err
	}

	if _, err := qtx.FindActive(ctx, empID); err == nil {
		log.Warn("check-in rejected, session already open", zap.String("employee_id", employeeID))
		return TimeLogResponse{}, timelogerrors.ErrAlreadyCheckedIn
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return TimeLogResponse{}, err
	}

	now := s.now().UTC()
	row := &EmployeeTimeLog{
		ID:          uuid.New(),
		EmployeeID:  empID,
		CheckInTime: now,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
	}
	if err := qtx.Create(ctx, row); err != nil {
		if isOpenSessionViolation(err) {
			log.Warn("check-in lost race on open session index", zap.String("employee_id", employeeID))
			return TimeLogResponse{}, timelogerrors.ErrAlreadyCheckedIn
		}
		log.Error("create time log failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		if isOpenSessionViolation(err) {
			return TimeLogResponse{}, timelogerrors.ErrAlreadyCheckedIn
		}
		log.Error("commit check-in failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	row.Employee = emp
	log.Info("employee checked in", zap.String("employee_id", employeeID), zap.String("time_log_id", row.ID.String()))
	return mapToResponse(ctx, *row), nil
}

func (s *service) CheckOut(ctx context.Context, employeeID string, req CheckOutRequest) (TimeLogResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	empID, err := parseID(employeeID)
	if err != nil {
		return TimeLogResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin tx failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	active, err := qtx.FindActive(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TimeLogResponse{}, timelogerrors.ErrNotCheckedIn
		}
		return TimeLogResponse{}, err
	}

	now := s.now().UTC()
	worked := now.Sub(active.CheckInTime)
	if worked < 0 {
		worked = 0
	}
	seconds := int64(worked / time.Second)
	notes := mergeNotes(active.Notes, req.Notes)

	n, err := qtx.CloseSession(ctx, active.ID, now, seconds, notes)
	if err != nil {
		log.Error("close session failed", zap.Error(err))
		return TimeLogResponse{}, err
	}
	if n == 0 {
		return TimeLogResponse{}, timelogerrors.ErrNotCheckedIn
	}

	if err := tx.Commit(); err != nil {
		log.Error("commit check-out failed", zap.Error(err))
		return TimeLogResponse{}, err
	}

	active.CheckOutTime = &now
	active.WorkDurationSeconds = &seconds
	active.Notes = notes
	log.Info("employee checked out",
		zap.String("employee_id", employeeID),
		zap.String("time_log_id", active.ID.String()),
		zap.Int64("work_seconds", seconds),
	)
	return mapToResponse(ctx, *active), nil
}

func (s *service) activeSession(ctx context.Context, empID uuid.UUID) (*TimeLogResponse, error) {
	active, err := s.repo.FindActive(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapToResponse(ctx, *active)
	return &resp, nil
}

func (s *service) Status(ctx context.Context, employeeID string) (StatusResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return StatusResponse{}, err
	}
	session, err := s.activeSession(ctx, empID)
	if err != nil {
		return StatusResponse{}, err
	}
	return StatusResponse{
		IsCheckedIn:   session != nil,
		ActiveSession: session,
		CurrentTime:   formatTime(s.now()),
	}, nil
}

func (s *service) window(q LogQuery) (Window, error) {
	w, err := parseWindow(q)
	if err != nil {
		return Window{}, timelogerrors.ErrInvalidDate
	}
	if !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To) {
		return Window{}, timelogerrors.ErrInvalidRange
	}
	return w, nil
}

func (s *service) MyLogs(ctx context.Context, employeeID string, q LogQuery) (GroupedLogsResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return GroupedLogsResponse{}, err
	}
	w, err := s.window(q)
	if err != nil {
		return GroupedLogsResponse{}, err
	}

	logs, err := s.repo.ListByEmployee(ctx, empID, w)
	if err != nil {
		s.logger.Error("list my logs failed", zap.String("employee_id", employeeID), zap.Error(err))
		return GroupedLogsResponse{}, err
	}
	return buildGrouped(ctx, logs), nil
}

func (s *service) EmployeeLogs(ctx context.Context, actor access.Subject, q LogQuery) (EmployeeLogsResponse, error) {
	w, err := s.window(q)
	if err != nil {
		return EmployeeLogsResponse{}, err
	}

	var logs []EmployeeTimeLog
	switch access.ListScope(actor) {
	case access.ScopeAll:
		logs, err = s.repo.ListAll(ctx, w)
	case access.ScopeSubordinates:
		logs, err = s.repo.ListByBoss(ctx, actor.ID, w)
	default:
		return EmployeeLogsResponse{}, timelogerrors.ErrForbidden
	}
	if err != nil {
		s.logger.Error("list employee logs failed", zap.String("actor_id", actor.ID.String()), zap.Error(err))
		return EmployeeLogsResponse{}, err
	}

	summaries := groupByEmployee(ctx, logs)
	return EmployeeLogsResponse{Data: summaries, TotalEmployees: len(summaries)}, nil
}

// readableTarget loads the target employee and checks the actor may see it.
func (s *service) readableTarget(ctx context.Context, actor access.Subject, targetID string) (*EmployeeRef, error) {
	id, err := parseID(targetID)
	if err != nil {
		return nil, err
	}
	target, err := s.repo.FindEmployee(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, timelogerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	subject := access.Subject{ID: target.ID, RoleName: target.RoleName(), BossID: target.BossID}
	if !access.CanRead(actor, subject) {
		s.logger.Warn("time log read denied",
			zap.String("actor_id", actor.ID.String()),
			zap.String("target_id", targetID),
		)
		return nil, timelogerrors.ErrForbidden
	}
	return target, nil
}

func (s *service) EmployeeLogsByID(ctx context.Context, actor access.Subject, targetID string, q LogQuery) (EmployeeLogDetailResponse, error) {
	w, err := s.window(q)
	if err != nil {
		return EmployeeLogDetailResponse{}, err
	}
	target, err := s.readableTarget(ctx, actor, targetID)
	if err != nil {
		return EmployeeLogDetailResponse{}, err
	}

	logs, err := s.repo.ListByEmployee(ctx, target.ID, w)
	if err != nil {
		return EmployeeLogDetailResponse{}, err
	}
	grouped := buildGrouped(ctx, logs)
	return EmployeeLogDetailResponse{
		EmployeeInfo: EmployeeInfo{
			ID:   target.ID.String(),
			Name: target.Username,
			Role: target.RoleName(),
		},
		Data:          grouped.Data,
		TotalDays:     grouped.TotalDays,
		TotalSessions: grouped.TotalSessions,
	}, nil
}

func (s *service) EmployeeStatus(ctx context.Context, actor access.Subject, targetID string) (EmployeeStatusResponse, error) {
	target, err := s.readableTarget(ctx, actor, targetID)
	if err != nil {
		return EmployeeStatusResponse{}, err
	}
	session, err := s.activeSession(ctx, target.ID)
	if err != nil {
		return EmployeeStatusResponse{}, err
	}
	return EmployeeStatusResponse{
		EmployeeID:    target.ID.String(),
		EmployeeName:  target.Username,
		RoleName:      target.RoleName(),
		IsCheckedIn:   session != nil,
		ActiveSession: session,
		CurrentTime:   formatTime(s.now()),
	}, nil
}

func (s *service) LogsByRole(ctx context.Context, roleID string, q LogQuery) ([]TimeLogResponse, error) {
	id, err := parseID(roleID)
	if err != nil {
		return nil, err
	}
	w, err := s.window(q)
	if err != nil {
		return nil, err
	}

	logs, err := s.repo.ListByRole(ctx, id, w)
	if err != nil {
		return nil, err
	}
	res := make([]TimeLogResponse, len(logs))
	for i, l := range logs {
		res[i] = mapToResponse(ctx, l)
	}
	return res, nil
}

func (s *service) DailySummary(ctx context.Context, employeeID, date string) (DayGroup, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return DayGroup{}, err
	}

	day := s.now().In(time.Local)
	if date != "" {
		day, err = time.ParseInLocation(queryLayout, date, time.Local)
		if err != nil {
			return DayGroup{}, timelogerrors.ErrInvalidDate
		}
	}

	logs, err := s.repo.ListByEmployee(ctx, empID, dayWindow(day))
	if err != nil {
		return DayGroup{}, err
	}
	if groups := groupByDay(ctx, logs); len(groups) > 0 {
		return groups[0], nil
	}
	return DayGroup{
		Date:          day.Format(DateLayout),
		TotalWorkTime: FormatDuration(ctx, 0),
		TimeLogs:      []TimeLogResponse{},
	}, nil
}

func (s *service) TotalWorkTime(ctx context.Context, employeeID string, q LogQuery) (TotalWorkTimeResponse, error) {
	empID, err := parseID(employeeID)
	if err != nil {
		return TotalWorkTimeResponse{}, err
	}
	if q.From == "" {
		return TotalWorkTimeResponse{}, apperror.RequiredField("From")
	}
	if q.To == "" {
		return TotalWorkTimeResponse{}, apperror.RequiredField("To")
	}
	w, err := s.window(q)
	if err != nil {
		return TotalWorkTimeResponse{}, err
	}

	logs, err := s.repo.ListByEmployee(ctx, empID, w)
	if err != nil {
		return TotalWorkTimeResponse{}, err
	}
	total := totalDuration(logs)
	return TotalWorkTimeResponse{
		EmployeeID:    employeeID,
		From:          q.From,
		To:            q.To,
		TotalWorkTime: FormatDuration(ctx, total),
		TotalMinutes:  int64(total / time.Minute),
		TotalSessions: len(logs),
	}, nil
}
