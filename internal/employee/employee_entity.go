package employee

import (
	"time"

	"github.com/Sedmeq/WorkTrack/internal/access"
	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/workschedule"

	"github.com/google/uuid"
)

const EmailConstraint = "uq_employees_email"

type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username       string     `gorm:"type:varchar(100);not null"`
	Email          string     `gorm:"type:varchar(150);not null;uniqueIndex:uq_employees_email"`
	PasswordHash   string     `gorm:"type:varchar(255);not null"`
	Phone          string     `gorm:"type:varchar(20)"`
	Salary         float64    `gorm:"type:decimal(18,2);not null;default:0"`
	RoleID         *uuid.UUID `gorm:"type:uuid"`
	WorkScheduleID *uuid.UUID `gorm:"type:uuid"`
	BossID         *uuid.UUID `gorm:"type:uuid;index:idx_employees_boss_id"`
	CreatedAt      time.Time  `gorm:"not null"`
	UpdatedAt      *time.Time
	Role           *role.Role                 `gorm:"foreignKey:RoleID;references:ID"`
	WorkSchedule   *workschedule.WorkSchedule `gorm:"foreignKey:WorkScheduleID;references:ID"`
	Boss           *Employee                  `gorm:"foreignKey:BossID;references:ID;constraint:OnDelete:SET NULL"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) RoleName() string {
	if e.Role == nil {
		return ""
	}
	return e.Role.Name
}

// Subject is the employee as seen by the access evaluator.
func (e Employee) Subject() access.Subject {
	return access.Subject{ID: e.ID, RoleName: e.RoleName(), BossID: e.BossID}
}
