package leave

import (
	"context"
	"database/sql"

	leaveerrors "github.com/Sedmeq/WorkTrack/internal/leave/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, kind Kind, r *Request) error
	FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Request, error)
	// Transition moves a Pending request owned by bossID to status and reports rows changed.
	Transition(ctx context.Context, kind Kind, id, bossID uuid.UUID, status Status) (int64, error)
	ListByEmployee(ctx context.Context, kind Kind, employeeID uuid.UUID) ([]Request, error)
	ListPendingForBoss(ctx context.Context, kind Kind, bossID uuid.UUID) ([]Request, error)
	ListVacationsForBalance(ctx context.Context, employeeID uuid.UUID) ([]Request, error)
	FindEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) table(ctx context.Context, kind Kind) (*gorm.DB, error) {
	name := kind.Table()
	if name == "" {
		return nil, leaveerrors.ErrUnknownKind
	}
	return r.conn(ctx).Table(name), nil
}

func (r *repository) Create(ctx context.Context, kind Kind, req *Request) error {
	q, err := r.table(ctx, kind)
	if err != nil {
		return err
	}
	return q.Omit("Employee").Create(req).Error
}

func (r *repository) FindByID(ctx context.Context, kind Kind, id uuid.UUID) (*Request, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var req Request
	if err := q.Preload("Employee").Where("id = ?", id).First(&req).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *repository) Transition(ctx context.Context, kind Kind, id, bossID uuid.UUID, status Status) (int64, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return 0, err
	}
	res := q.Where("id = ? AND boss_id = ? AND status = ?", id, bossID, StatusPending).
		Update("status", status)
	return res.RowsAffected, res.Error
}

func (r *repository) ListByEmployee(ctx context.Context, kind Kind, employeeID uuid.UUID) ([]Request, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var rows []Request
	err = q.Preload("Employee").
		Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) ListPendingForBoss(ctx context.Context, kind Kind, bossID uuid.UUID) ([]Request, error) {
	q, err := r.table(ctx, kind)
	if err != nil {
		return nil, err
	}
	var rows []Request
	err = q.Preload("Employee").
		Where("boss_id = ? AND status = ?", bossID, StatusPending).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// ListVacationsForBalance returns the vacations that count against the balance.
func (r *repository) ListVacationsForBalance(ctx context.Context, employeeID uuid.UUID) ([]Request, error) {
	var rows []Request
	err := r.conn(ctx).Table(KindVacation.Table()).
		Where("employee_id = ? AND status IN ?", employeeID, []Status{StatusApproved, StatusPending}).
		Find(&rows).Error
	return rows, err
}

// FindEmployee locks the employee row when called inside a transaction so
// concurrent vacation submissions for the same employee check the balance in turn.
func (r *repository) FindEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error) {
	var emp EmployeeRef
	q := r.conn(ctx)
	if r.tx != nil {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.Where("id = ?", employeeID).First(&emp).Error; err != nil {
		return nil, err
	}
	return &emp, nil
}
