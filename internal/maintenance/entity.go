package maintenance

import "time"

// Schedule is one planned maintenance window for a device.
type Schedule struct {
	ScheduleID             int64     `json:"scheduleId" yaml:"schedule_id"`
	DeviceModelName        string    `json:"deviceModelName" yaml:"device_model_name"`
	DeviceSerialNumber     string    `json:"deviceSerialNumber" yaml:"device_serial_number"`
	DeviceImageURL         string    `json:"deviceImageUrl,omitempty" yaml:"device_image_url,omitempty"`
	NextMaintenanceDate    time.Time `json:"nextMaintenanceDate" yaml:"next_maintenance_date"`
	NextMaintenanceEndDate time.Time `json:"nextMaintenanceEndDate" yaml:"next_maintenance_end_date"`
	Status                 string    `json:"status" yaml:"status"`
	PriorityReason         string    `json:"priorityReason,omitempty" yaml:"priority_reason,omitempty"`
	IsInactive             bool      `json:"isInactive" yaml:"is_inactive"`
	Type                   string    `json:"type,omitempty" yaml:"type,omitempty"`
}

const TypePriority = "PRIORITY"

// Priority reasons, most urgent first.
const (
	ReasonRentalConflict       = "RENTAL_CONFLICT"
	ReasonScheduledMaintenance = "SCHEDULED_MAINTENANCE"
	ReasonUsageThreshold       = "USAGE_THRESHOLD"
)

// Window returns the day-granular maintenance window in the schedule's own
// zone. The end falls back to the start for single-day schedules. ok is
// false when no start is set.
func (s *Schedule) Window() (start, end time.Time, ok bool) {
	return s.WindowIn(nil)
}

// WindowIn places the calendar days of the schedule dates at midnight in
// loc, so a date-only value decoded as UTC midnight keeps its day in any
// zone. A nil loc keeps each date's own zone.
func (s *Schedule) WindowIn(loc *time.Location) (start, end time.Time, ok bool) {
	if s == nil || s.NextMaintenanceDate.IsZero() {
		return time.Time{}, time.Time{}, false
	}
	start = dayIn(s.NextMaintenanceDate, loc)
	end = start
	if !s.NextMaintenanceEndDate.IsZero() {
		end = dayIn(s.NextMaintenanceEndDate, loc)
	}
	return start, end, true
}

func dayIn(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = t.Location()
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// Covers reports whether the calendar day of date, read in date's zone,
// lies inside the window, both ends included.
func (s *Schedule) Covers(date time.Time) bool {
	if date.IsZero() {
		return false
	}
	start, end, ok := s.WindowIn(date.Location())
	if !ok {
		return false
	}
	day := StartOfDay(date)
	return !day.Before(start) && !day.After(end)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
