package role

import (
	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:uq_roles_name"`
	Description string    `gorm:"type:varchar(255)"`
}

func (Role) TableName() string {
	return "roles"
}
