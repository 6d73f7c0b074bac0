package events

import "time"

const LeaveApprovedTopic = "hr.leave.lifecycle.v1"

type LeaveApprovedEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	LeaveID      string    `json:"leave_id"`
	UserID       string    `json:"user_id"`
	ApproverID   string    `json:"approver_id"`
	LeaveType    string    `json:"leave_type"`
	TotalDays    int       `json:"total_days"`
	DeductedDays int       `json:"deducted_days"`
	OccurredAt   time.Time `json:"occurred_at"`
}
