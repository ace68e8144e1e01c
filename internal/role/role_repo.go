package role

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=role_repo.go -destination=mock/role_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)
	FindByName(ctx context.Context, name string) (*Role, error)
	ListAvailable(ctx context.Context) ([]Role, error)
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

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Role, error) {
	var ro Role
	err := r.conn(ctx).First(&ro, "id = ?", id).Error
	return &ro, err
}

func (r *repository) FindByName(ctx context.Context, name string) (*Role, error) {
	var ro Role
	err := r.conn(ctx).Where("name = ?", name).First(&ro).Error
	return &ro, err
}

func (r *repository) ListAvailable(ctx context.Context) ([]Role, error) {
	var roles []Role
	err := r.conn(ctx).
		Where("name = ? OR name = ? OR name LIKE ?", EmployeeRoleName, AdminRoleName, GroupBossPrefix+"%").
		Order("name ASC").
		Find(&roles).Error
	return roles, err
}
