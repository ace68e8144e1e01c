package employee

import (
	"context"
	"database/sql"

	"github.com/Sedmeq/WorkTrack/internal/access"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// dependentTables hold rows keyed by employee_id that go away with the employee.
var dependentTables = []string{"employee_time_logs", "permissions", "vacations"}

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, e *Employee) error
	Update(ctx context.Context, e *Employee) error
	Delete(ctx context.Context, id uuid.UUID) (int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Employee, error)
	FindByEmail(ctx context.Context, email string) (*Employee, error)
	FindBossID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error)
	List(ctx context.Context, scope access.Scope, actorID uuid.UUID) ([]Employee, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{
		db: r.db,
		tx: tx,
	}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) withRelations(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Preload("Role").
		Preload("WorkSchedule").
		Preload("Boss")
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Omit("Role", "WorkSchedule", "Boss").Create(e).Error
}

func (r *repository) Update(ctx context.Context, e *Employee) error {
	return r.conn(ctx).Omit("Role", "WorkSchedule", "Boss", "CreatedAt").Save(e).Error
}

// Delete removes the employee together with its sessions and leave requests.
// Subordinates lose their boss through the ON DELETE SET NULL constraint.
func (r *repository) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	db := r.conn(ctx)
	for _, table := range dependentTables {
		if err := db.Exec("DELETE FROM "+table+" WHERE employee_id = ?", id).Error; err != nil {
			return 0, err
		}
	}
	res := db.Delete(&Employee{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	if err := r.withRelations(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	if err := r.conn(ctx).Preload("Role").First(&e, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) FindBossID(ctx context.Context, id uuid.UUID) (*uuid.UUID, error) {
	var e Employee
	if err := r.conn(ctx).Select("id", "boss_id").First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return e.BossID, nil
}

func (r *repository) List(ctx context.Context, scope access.Scope, actorID uuid.UUID) ([]Employee, error) {
	q := r.withRelations(ctx)
	switch scope {
	case access.ScopeAll:
	case access.ScopeSubordinates:
		q = q.Where("boss_id = ?", actorID)
	default:
		q = q.Where("id = ?", actorID)
	}

	var rows []Employee
	err := q.Order("username ASC").Find(&rows).Error
	return rows, err
}
