package events

import "time"

const EmployeeLifecycleTopic = "worktrack.employee.lifecycle.v1"

const (
	EmployeeCreated = "employee.created"
	EmployeeUpdated = "employee.updated"
	EmployeeDeleted = "employee.deleted"
)

type EmployeeLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	EmployeeID string    `json:"employee_id"`
	ActorID    string    `json:"actor_id"`
	RoleName   string    `json:"role_name,omitempty"`
	BossID     string    `json:"boss_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
