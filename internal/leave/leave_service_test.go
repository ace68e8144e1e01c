package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/Sedmeq/WorkTrack/internal/events"
	leaveerrors "github.com/Sedmeq/WorkTrack/internal/leave/errors"
	"github.com/Sedmeq/WorkTrack/internal/messaging/kafka"
	kafkamock "github.com/Sedmeq/WorkTrack/internal/messaging/kafka/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

// memRepository keeps both request tables in memory and applies the same
// conditional transition the SQL repository does.
type memRepository struct {
	mu        sync.Mutex
	employees map[uuid.UUID]*EmployeeRef
	rows      map[Kind][]*Request
}

func newMemRepository(emps ...*EmployeeRef) *memRepository {
	r := &memRepository{employees: map[uuid.UUID]*EmployeeRef{}, rows: map[Kind][]*Request{}}
	for _, e := range emps {
		r.employees[e.ID] = e
	}
	return r
}

func (r *memRepository) WithTx(*sql.Tx) Repository { return r }

func (r *memRepository) Create(_ context.Context, kind Kind, req *Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *req
	cp.Employee = r.employees[req.EmployeeID]
	r.rows[kind] = append(r.rows[kind], &cp)
	return nil
}

func (r *memRepository) FindByID(_ context.Context, kind Kind, id uuid.UUID) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows[kind] {
		if row.ID == id {
			cp := *row
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memRepository) Transition(_ context.Context, kind Kind, id, bossID uuid.UUID, status Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows[kind] {
		if row.ID == id && row.BossID != nil && *row.BossID == bossID && row.Status == StatusPending {
			row.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memRepository) filter(kind Kind, keep func(*Request) bool) []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Request
	for _, row := range r.rows[kind] {
		if keep(row) {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *memRepository) ListByEmployee(_ context.Context, kind Kind, employeeID uuid.UUID) ([]Request, error) {
	return r.filter(kind, func(row *Request) bool { return row.EmployeeID == employeeID }), nil
}

func (r *memRepository) ListPendingForBoss(_ context.Context, kind Kind, bossID uuid.UUID) ([]Request, error) {
	return r.filter(kind, func(row *Request) bool {
		return row.BossID != nil && *row.BossID == bossID && row.Status == StatusPending
	}), nil
}

func (r *memRepository) ListVacationsForBalance(_ context.Context, employeeID uuid.UUID) ([]Request, error) {
	return r.filter(KindVacation, func(row *Request) bool {
		return row.EmployeeID == employeeID && (row.Status == StatusApproved || row.Status == StatusPending)
	}), nil
}

func (r *memRepository) FindEmployee(_ context.Context, id uuid.UUID) (*EmployeeRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fixture struct {
	now      time.Time
	boss     *EmployeeRef
	employee *EmployeeRef
	orphan   *EmployeeRef
	repo     *memRepository
}

func newFixture() fixture {
	now := time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC)
	boss := &EmployeeRef{ID: uuid.New(), Username: "boss", CreatedAt: now.AddDate(-3, 0, 0)}
	employee := &EmployeeRef{ID: uuid.New(), Username: "aysel", BossID: &boss.ID, CreatedAt: now.Add(-122 * 24 * time.Hour)}
	orphan := &EmployeeRef{ID: uuid.New(), Username: "solo", CreatedAt: now.AddDate(-1, 0, 0)}
	return fixture{
		now:      now,
		boss:     boss,
		employee: employee,
		orphan:   orphan,
		repo:     newMemRepository(boss, employee, orphan),
	}
}

func newTestService(t *testing.T, repo Repository, outbox kafka.OutboxRepository, now time.Time) (*service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	svc := NewService(db, repo, outbox).(*service)
	svc.now = func() time.Time { return now }
	return svc, mock
}

func TestService_VacationScenario(t *testing.T) {
	f := newFixture()
	svc, mock := newTestService(t, f.repo, nil, f.now)
	ctx := context.Background()
	employeeID := f.employee.ID.String()

	balance, err := svc.VacationBalance(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, 10.0, balance.TotalAccruedDays)
	assert.Equal(t, 10.0, balance.RemainingDays)

	mock.ExpectBegin()
	mock.ExpectCommit()
	first, err := svc.SubmitVacation(ctx, employeeID, SubmitRequest{StartDate: "2025-07-01", EndDate: "2025-07-05"})
	require.NoError(t, err)
	assert.Equal(t, "Pending", first.Status)
	assert.Equal(t, 5, first.Days)
	assert.Equal(t, f.boss.ID.String(), first.BossID)

	balance, err = svc.VacationBalance(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance.AvailableDays)
	assert.Equal(t, 5.0, balance.PendingDays)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.SubmitVacation(ctx, employeeID, SubmitRequest{StartDate: "2025-08-01", EndDate: "2025-08-10"})
	assert.ErrorIs(t, err, leaveerrors.ErrInsufficientBalance)

	mock.ExpectBegin()
	mock.ExpectCommit()
	approved, err := svc.Approve(ctx, KindVacation, first.ID, f.boss.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Approved", approved.Status)

	balance, err = svc.VacationBalance(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, balance.DaysTaken)
	assert.Equal(t, 5.0, balance.RemainingDays)
	assert.Equal(t, 0.0, balance.PendingDays)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SubmitVacation_Validation(t *testing.T) {
	f := newFixture()
	svc, mock := newTestService(t, f.repo, nil, f.now)
	ctx := context.Background()

	t.Run("no boss assigned", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.SubmitVacation(ctx, f.orphan.ID.String(), SubmitRequest{StartDate: "2025-07-01", EndDate: "2025-07-01"})
		assert.ErrorIs(t, err, leaveerrors.ErrNoBossAssigned)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := svc.SubmitVacation(ctx, f.employee.ID.String(), SubmitRequest{StartDate: "2025-07-05", EndDate: "2025-07-01"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("bad date", func(t *testing.T) {
		_, err := svc.SubmitVacation(ctx, f.employee.ID.String(), SubmitRequest{StartDate: "July 1", EndDate: "2025-07-01"})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateFormat)
	})

	t.Run("unknown employee", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectRollback()
		_, err := svc.SubmitVacation(ctx, uuid.NewString(), SubmitRequest{StartDate: "2025-07-01", EndDate: "2025-07-01"})
		assert.ErrorIs(t, err, leaveerrors.ErrEmployeeNotFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Decide_FailedTransitionsLeaveStatus(t *testing.T) {
	f := newFixture()
	svc, mock := newTestService(t, f.repo, nil, f.now)
	ctx := context.Background()
	bossID := f.boss.ID.String()

	mock.ExpectBegin()
	mock.ExpectCommit()
	req, err := svc.SubmitPermission(ctx, f.employee.ID.String(), SubmitRequest{
		StartDate: "2025-06-03T09:00:00Z",
		EndDate:   "2025-06-03T12:00:00Z",
		Reason:    "doctor",
	})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(ctx, KindPermission, req.ID, f.orphan.ID.String())
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestBoss)

	stored, _ := f.repo.FindByID(ctx, KindPermission, uuid.MustParse(req.ID))
	assert.Equal(t, StatusPending, stored.Status)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(ctx, KindPermission, req.ID, bossID)
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Approve(ctx, KindPermission, req.ID, bossID)
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Deny(ctx, KindPermission, req.ID, bossID)
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotPending)

	stored, _ = f.repo.FindByID(ctx, KindPermission, uuid.MustParse(req.ID))
	assert.Equal(t, StatusApproved, stored.Status)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.Deny(ctx, KindPermission, uuid.NewString(), bossID)
	assert.ErrorIs(t, err, leaveerrors.ErrRequestNotFound)

	_, err = svc.Deny(ctx, KindPermission, "not-a-uuid", bossID)
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidRequestID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GrantPermission_RoundTrip(t *testing.T) {
	f := newFixture()
	svc, mock := newTestService(t, f.repo, nil, f.now)
	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectCommit()
	granted, err := svc.GrantPermission(ctx, f.boss.ID.String(), GrantRequest{
		EmployeeID: f.employee.ID.String(),
		StartDate:  "2025-06-10",
		EndDate:    "2025-06-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "Approved", granted.Status)

	mine, err := svc.MyRequests(ctx, KindPermission, f.employee.ID.String())
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, granted.ID, mine[0].ID)
	assert.Equal(t, "aysel", mine[0].EmployeeName)

	pending, err := svc.PendingForApproval(ctx, KindPermission, f.boss.ID.String())
	require.NoError(t, err)
	assert.Empty(t, pending)

	mock.ExpectBegin()
	mock.ExpectRollback()
	_, err = svc.GrantPermission(ctx, f.orphan.ID.String(), GrantRequest{
		EmployeeID: f.employee.ID.String(),
		StartDate:  "2025-06-10",
		EndDate:    "2025-06-10",
	})
	assert.ErrorIs(t, err, leaveerrors.ErrNotRequestBoss)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_PendingForApproval_NewestFirst(t *testing.T) {
	f := newFixture()
	svc, mock := newTestService(t, f.repo, nil, f.now)
	ctx := context.Background()

	var ids []string
	for i, day := range []string{"2025-06-10", "2025-06-11", "2025-06-12"} {
		svc.now = func() time.Time { return f.now.Add(time.Duration(i) * time.Minute) }
		mock.ExpectBegin()
		mock.ExpectCommit()
		r, err := svc.SubmitPermission(ctx, f.employee.ID.String(), SubmitRequest{StartDate: day, EndDate: day})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err := svc.Deny(ctx, KindPermission, ids[1], f.boss.ID.String())
	require.NoError(t, err)

	pending, err := svc.PendingForApproval(ctx, KindPermission, f.boss.ID.String())
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, ids[2], pending[0].ID)
	assert.Equal(t, ids[0], pending[1].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_Approve_WritesOutboxEvent(t *testing.T) {
	f := newFixture()
	ctrl := gomock.NewController(t)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	svc, mock := newTestService(t, f.repo, outbox, f.now)
	ctx := context.Background()

	var written []kafka.OutboxEvent
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).Times(2)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
		written = append(written, e)
		return nil
	}).Times(2)

	mock.ExpectBegin()
	mock.ExpectCommit()
	req, err := svc.SubmitVacation(ctx, f.employee.ID.String(), SubmitRequest{StartDate: "2025-07-01", EndDate: "2025-07-02"})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()
	_, err = svc.Approve(ctx, KindVacation, req.ID, f.boss.ID.String())
	require.NoError(t, err)

	require.Len(t, written, 2)
	assert.Equal(t, events.LeaveSubmitted, written[0].EventType)
	assert.Equal(t, events.LeaveApproved, written[1].EventType)
	assert.Equal(t, events.LeaveLifecycleTopic, written[1].Topic)
	assert.Equal(t, req.ID, written[1].AggregateID)

	var payload events.LeaveLifecycleEvent
	require.NoError(t, json.Unmarshal(written[1].Payload, &payload))
	assert.Equal(t, "Approved", payload.Status)
	assert.Equal(t, f.boss.ID.String(), payload.ActorID)

	assert.NoError(t, mock.ExpectationsWereMet())
}
