package task

import "time"

type Task struct {
	ID                int64     `json:"id" yaml:"id"`
	CategoryID        int64     `json:"categoryId" yaml:"category_id"`
	CategoryName      string    `json:"categoryName" yaml:"category_name"`
	OrderID           int64     `json:"orderId,omitempty" yaml:"order_id,omitempty"`
	AssignedStaffID   int64     `json:"assignedStaffId,omitempty" yaml:"assigned_staff_id,omitempty"`
	AssignedStaffName string    `json:"assignedStaffName,omitempty" yaml:"assigned_staff_name,omitempty"`
	AssignedStaffRole string    `json:"assignedStaffRole,omitempty" yaml:"assigned_staff_role,omitempty"`
	Type              string    `json:"type" yaml:"type"`
	Description       string    `json:"description" yaml:"description"`
	PlannedStart      time.Time `json:"plannedStart" yaml:"planned_start"`
	PlannedEnd        time.Time `json:"plannedEnd" yaml:"planned_end"`
	Status            Status    `json:"status" yaml:"status"`
	CreatedAt         time.Time `json:"createdAt" yaml:"created_at"`
	CompletedAt       time.Time `json:"completedAt" yaml:"completed_at"`
}

// Status is the lifecycle state of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
	StatusFailed     Status = "FAILED"
)

var statuses = []Status{StatusPending, StatusInProgress, StatusCompleted, StatusCancelled, StatusFailed}

// Statuses returns every known status in display order.
func Statuses() []Status {
	out := make([]Status, len(statuses))
	copy(out, statuses)
	return out
}

func (s Status) Valid() bool {
	for _, st := range statuses {
		if st == s {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status change is accepted. A FAILED
// task can be reopened for another attempt.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Day returns the date a task is scheduled on: its planned start, or the
// creation time when no start was planned.
func (t *Task) Day() time.Time {
	if t == nil {
		return time.Time{}
	}
	if !t.PlannedStart.IsZero() {
		return t.PlannedStart
	}
	return t.CreatedAt
}

// WithStatus returns a copy of t moved to status at now.
func (t Task) WithStatus(status Status, now time.Time) Task {
	t.Status = status
	if status == StatusCompleted {
		t.CompletedAt = now
	}
	return t
}
