// Package queue defines message payloads exchanged over the message broker
// and the background consumer that turns them into notifications.
package queue

// Event kinds carried on the schedule.events queue.
const (
	KindScheduleCreated = "schedule.created"
	KindScheduleUpdated = "schedule.updated"
	KindScheduleDeleted = "schedule.deleted"
	KindLoanRequested   = "loan.requested"
	KindLoanApproved    = "loan.approved"
	KindLoanRejected    = "loan.rejected"
)

// ScheduleEvent is published whenever the timetable or the loan workflow
// changes.  It carries enough context for consumers to notify users without
// querying the primary database.
type ScheduleEvent struct {
	Kind       string  `json:"kind"`
	ScheduleID uint64  `json:"schedule_id,omitempty"`
	LoanID     uint64  `json:"loan_id,omitempty"`
	ActorID    uint64  `json:"actor_id"`
	TargetID   *uint64 `json:"target_id,omitempty"` // user to notify directly, if any
	GroupName  string  `json:"group_name,omitempty"`
	RoomName   string  `json:"room_name,omitempty"`
	Day        string  `json:"day,omitempty"`
	StartsAt   string  `json:"starts_at,omitempty"`
	EndsAt     string  `json:"ends_at,omitempty"`
	Detail     string  `json:"detail,omitempty"`
	OccurredAt string  `json:"occurred_at"`
}
