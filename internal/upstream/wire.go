package upstream

import (
	"time"

	"github.com/kazz187/techconsole/internal/task"
)

// wireTask is a task as the back office serializes it. Timestamps arrive as
// strings in several layouts, sometimes without a zone.
type wireTask struct {
	ID                int64  `json:"id"`
	TaskID            int64  `json:"taskId"`
	CategoryID        int64  `json:"categoryId"`
	CategoryName      string `json:"categoryName"`
	OrderID           int64  `json:"orderId"`
	AssignedStaffID   int64  `json:"assignedStaffId"`
	AssignedStaffName string `json:"assignedStaffName"`
	AssignedStaffRole string `json:"assignedStaffRole"`
	Type              string `json:"type"`
	Description       string `json:"description"`
	PlannedStart      string `json:"plannedStart"`
	PlannedEnd        string `json:"plannedEnd"`
	Status            string `json:"status"`
	CreatedAt         string `json:"createdAt"`
	CompletedAt       string `json:"completedAt"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// ParseTime reads a back office timestamp. Zone-less values are taken in
// loc; unparseable or empty values give the zero time.
func ParseTime(s string, loc *time.Location) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (w wireTask) toTask(loc *time.Location) *task.Task {
	id := w.ID
	if id == 0 {
		id = w.TaskID
	}
	return &task.Task{
		ID:                id,
		CategoryID:        w.CategoryID,
		CategoryName:      w.CategoryName,
		OrderID:           w.OrderID,
		AssignedStaffID:   w.AssignedStaffID,
		AssignedStaffName: w.AssignedStaffName,
		AssignedStaffRole: w.AssignedStaffRole,
		Type:              w.Type,
		Description:       w.Description,
		PlannedStart:      ParseTime(w.PlannedStart, loc),
		PlannedEnd:        ParseTime(w.PlannedEnd, loc),
		Status:            task.Status(w.Status),
		CreatedAt:         ParseTime(w.CreatedAt, loc),
		CompletedAt:       ParseTime(w.CompletedAt, loc),
	}
}
