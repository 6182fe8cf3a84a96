package events

import "time"

const LeaveLifecycleTopic = "hr.leave.lifecycle.v1"

const (
	LeaveCreated  = "leave.created"
	LeaveApproved = "leave.approved"
	LeaveRejected = "leave.rejected"
	LeaveDeleted  = "leave.deleted"
)

const LeaveAggregate = "leave_request"

type LeaveEvent struct {
	EventType       string    `json:"event_type"`
	LeaveID         string    `json:"leave_id"`
	UserID          string    `json:"user_id"`
	LeaveType       string    `json:"leave_type"`
	StartDate       string    `json:"start_date"`
	EndDate         string    `json:"end_date"`
	Days            int       `json:"days"`
	Status          string    `json:"status"`
	ActorID         string    `json:"actor_id"`
	RejectionReason *string   `json:"rejection_reason,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}
