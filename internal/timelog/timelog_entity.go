package timelog

import (
	"time"

	"github.com/Sedmeq/WorkTrack/internal/role"
	"github.com/Sedmeq/WorkTrack/internal/workschedule"

	"github.com/google/uuid"
)

// OpenSessionIndex is the partial unique index that allows one open session per employee.
const OpenSessionIndex = "uq_timelog_open_session"

type EmployeeTimeLog struct {
	ID                  uuid.UUID    `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID          uuid.UUID    `gorm:"column:employee_id;type:uuid;not null;index"`
	CheckInTime         time.Time    `gorm:"column:check_in_time;type:timestamptz;not null;index"`
	CheckOutTime        *time.Time   `gorm:"column:check_out_time;type:timestamptz"`
	WorkDurationSeconds *int64       `gorm:"column:work_duration_seconds"`
	Notes               string       `gorm:"column:notes;type:varchar(500)"`
	CreatedAt           time.Time    `gorm:"column:created_at"`
	Employee            *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID"`
}

func (EmployeeTimeLog) TableName() string {
	return "employee_time_logs"
}

// WorkDuration is nil while the session is open.
func (l EmployeeTimeLog) WorkDuration() *time.Duration {
	if l.WorkDurationSeconds == nil {
		return nil
	}
	d := time.Duration(*l.WorkDurationSeconds) * time.Second
	return &d
}

func (l EmployeeTimeLog) IsOpen() bool {
	return l.CheckOutTime == nil
}

// EmployeeRef is the read-only slice of an employee that attendance reports need.
type EmployeeRef struct {
	ID             uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	Username       string                     `gorm:"column:username"`
	RoleID         *uuid.UUID                 `gorm:"column:role_id;type:uuid"`
	WorkScheduleID *uuid.UUID                 `gorm:"column:work_schedule_id;type:uuid"`
	BossID         *uuid.UUID                 `gorm:"column:boss_id;type:uuid"`
	Role           *role.Role                 `gorm:"foreignKey:RoleID;references:ID"`
	WorkSchedule   *workschedule.WorkSchedule `gorm:"foreignKey:WorkScheduleID;references:ID"`
}

func (EmployeeRef) TableName() string {
	return "employees"
}

func (e EmployeeRef) RoleName() string {
	if e.Role == nil {
		return ""
	}
	return e.Role.Name
}
