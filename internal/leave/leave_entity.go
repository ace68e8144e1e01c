package leave

import (
	"time"

	"github.com/google/uuid"
)

// Kind selects which of the two identically shaped request tables is addressed.
type Kind string

const (
	KindPermission Kind = "permission"
	KindVacation   Kind = "vacation"
)

func (k Kind) Table() string {
	switch k {
	case KindPermission:
		return "permissions"
	case KindVacation:
		return "vacations"
	}
	return ""
}

func (k Kind) Valid() bool {
	return k == KindPermission || k == KindVacation
}

// Request is a row of either the permissions or the vacations table.
// Indexes are created by the bootstrap routine so both tables get distinct names.
type Request struct {
	ID         uuid.UUID    `gorm:"type:uuid;primaryKey"`
	EmployeeID uuid.UUID    `gorm:"type:uuid;not null"`
	BossID     *uuid.UUID   `gorm:"type:uuid"`
	StartDate  time.Time    `gorm:"not null"`
	EndDate    time.Time    `gorm:"not null"`
	Reason     string       `gorm:"type:varchar(500)"`
	Status     Status       `gorm:"type:varchar(20);not null;default:Pending"`
	CreatedAt  time.Time    `gorm:"not null"`
	Employee   *EmployeeRef `gorm:"foreignKey:EmployeeID;references:ID;-:migration"`
}

// EmployeeRef is the read side of the employees table the workflow needs.
type EmployeeRef struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Username  string     `gorm:"type:varchar(100)"`
	BossID    *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
}

func (EmployeeRef) TableName() string {
	return "employees"
}

// InclusiveDays counts calendar days from start to end, both included.
func InclusiveDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(s).Hours()/24) + 1
}
