package workschedule

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=workschedule_repo.go -destination=mock/workschedule_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*WorkSchedule, error)
	ListActive(ctx context.Context) ([]WorkSchedule, error)
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

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*WorkSchedule, error) {
	var ws WorkSchedule
	err := r.conn(ctx).First(&ws, "id = ?", id).Error
	return &ws, err
}

func (r *repository) ListActive(ctx context.Context) ([]WorkSchedule, error) {
	var rows []WorkSchedule
	err := r.conn(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	return rows, err
}
