package timelog

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Window bounds a log query on check-in time: From <= check_in < To. Zero values are open.
type Window struct {
	From time.Time
	To   time.Time
}

//go:generate mockgen -source=timelog_repo.go -destination=mock/timelog_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *EmployeeTimeLog) error
	CloseSession(ctx context.Context, id uuid.UUID, checkOut time.Time, durationSeconds int64, notes string) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*EmployeeTimeLog, error)
	FindActive(ctx context.Context, employeeID uuid.UUID) (*EmployeeTimeLog, error)
	FindEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, w Window) ([]EmployeeTimeLog, error)
	ListAll(ctx context.Context, w Window) ([]EmployeeTimeLog, error)
	ListByBoss(ctx context.Context, bossID uuid.UUID, w Window) ([]EmployeeTimeLog, error)
	ListByRole(ctx context.Context, roleID uuid.UUID, w Window) ([]EmployeeTimeLog, error)
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

func (r *repository) withEmployee(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Employee").
		Preload("Employee.Role").
		Preload("Employee.WorkSchedule")
}

func applyWindow(q *gorm.DB, w Window) *gorm.DB {
	if !w.From.IsZero() {
		q = q.Where("employee_time_logs.check_in_time >= ?", w.From)
	}
	if !w.To.IsZero() {
		q = q.Where("employee_time_logs.check_in_time < ?", w.To)
	}
	return q.Order("employee_time_logs.check_in_time DESC")
}

func (r *repository) Create(ctx context.Context, l *EmployeeTimeLog) error {
	return r.conn(ctx).Omit("Employee").Create(l).Error
}

// CloseSession only touches a row that is still open and reports how many rows changed.
func (r *repository) CloseSession(ctx context.Context, id uuid.UUID, checkOut time.Time, durationSeconds int64, notes string) (int64, error) {
	res := r.conn(ctx).
		Model(&EmployeeTimeLog{}).
		Where("id = ? AND check_out_time IS NULL", id).
		Updates(map[string]interface{}{
			"check_out_time":        checkOut,
			"work_duration_seconds": durationSeconds,
			"notes":                 notes,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*EmployeeTimeLog, error) {
	var l EmployeeTimeLog
	err := r.withEmployee(ctx).First(&l, "employee_time_logs.id = ?", id).Error
	return &l, err
}

func (r *repository) FindActive(ctx context.Context, employeeID uuid.UUID) (*EmployeeTimeLog, error) {
	var l EmployeeTimeLog
	err := r.withEmployee(ctx).
		Where("employee_id = ? AND check_out_time IS NULL", employeeID).
		First(&l).Error
	return &l, err
}

func (r *repository) FindEmployee(ctx context.Context, employeeID uuid.UUID) (*EmployeeRef, error) {
	var e EmployeeRef
	err := r.conn(ctx).
		Preload("Role").
		Preload("WorkSchedule").
		First(&e, "id = ?", employeeID).Error
	return &e, err
}

func (r *repository) ListByEmployee(ctx context.Context, employeeID uuid.UUID, w Window) ([]EmployeeTimeLog, error) {
	var rows []EmployeeTimeLog
	q := r.withEmployee(ctx).Where("employee_time_logs.employee_id = ?", employeeID)
	err := applyWindow(q, w).Find(&rows).Error
	return rows, err
}

func (r *repository) ListAll(ctx context.Context, w Window) ([]EmployeeTimeLog, error) {
	var rows []EmployeeTimeLog
	err := applyWindow(r.withEmployee(ctx), w).Find(&rows).Error
	return rows, err
}

func (r *repository) ListByBoss(ctx context.Context, bossID uuid.UUID, w Window) ([]EmployeeTimeLog, error) {
	var rows []EmployeeTimeLog
	q := r.withEmployee(ctx).
		Joins("JOIN employees ON employees.id = employee_time_logs.employee_id").
		Where("employees.boss_id = ?", bossID)
	err := applyWindow(q, w).Find(&rows).Error
	return rows, err
}

func (r *repository) ListByRole(ctx context.Context, roleID uuid.UUID, w Window) ([]EmployeeTimeLog, error) {
	var rows []EmployeeTimeLog
	q := r.withEmployee(ctx).
		Joins("JOIN employees ON employees.id = employee_time_logs.employee_id").
		Where("employees.role_id = ?", roleID)
	err := applyWindow(q, w).Find(&rows).Error
	return rows, err
}
