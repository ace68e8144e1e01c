package events

import "time"

const LeaveLifecycleTopic = "worktrack.leave.lifecycle.v1"

const (
	LeaveSubmitted = "leave.submitted"
	LeaveGranted   = "leave.granted"
	LeaveApproved  = "leave.approved"
	LeaveDenied    = "leave.denied"
)

// LeaveLifecycleEvent describes a permission or vacation request changing state.
type LeaveLifecycleEvent struct {
	EventType  string    `json:"event_type"`
	Kind       string    `json:"kind"`
	RequestID  string    `json:"request_id"`
	EmployeeID string    `json:"employee_id"`
	BossID     string    `json:"boss_id,omitempty"`
	ActorID    string    `json:"actor_id"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Envelope is the shape every consumer decodes first to route on event_type.
type Envelope struct {
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}
