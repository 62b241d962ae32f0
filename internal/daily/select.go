// Package daily builds the per-day task board: the tasks and maintenance
// windows falling on a date, their counters and the quota indicators.
package daily

import (
	"time"

	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/task"
)

// Selection is what falls on one calendar day.
type Selection struct {
	Tasks       []*task.Task
	Maintenance []maintenance.Schedule
	Inactive    []maintenance.Schedule
}

// SelectForDay picks the tasks scheduled on the calendar day of date, and the
// schedules whose window contains it. The day is taken in date's location.
// A zero date selects nothing.
func SelectForDay(date time.Time, tasks []*task.Task, active, inactive []maintenance.Schedule) Selection {
	var sel Selection
	if date.IsZero() {
		return sel
	}
	for _, t := range tasks {
		if t != nil && SameDay(t.Day(), date) {
			sel.Tasks = append(sel.Tasks, t)
		}
	}
	sel.Maintenance = covering(active, date)
	sel.Inactive = covering(inactive, date)
	return sel
}

func covering(schedules []maintenance.Schedule, date time.Time) []maintenance.Schedule {
	var out []maintenance.Schedule
	for i := range schedules {
		if schedules[i].Covers(date) {
			out = append(out, schedules[i])
		}
	}
	return out
}

// SameDay reports whether t falls on the calendar day of date, reading both
// in date's location.
func SameDay(t, date time.Time) bool {
	if t.IsZero() {
		return false
	}
	y1, m1, d1 := t.In(date.Location()).Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// ParseDate reads a YYYY-MM-DD date at midnight in loc. An empty string
// yields the zero time.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	return time.ParseInLocation(time.DateOnly, s, loc)
}
