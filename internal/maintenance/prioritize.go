package maintenance

import (
	"slices"
	"strings"
	"time"
)

var reasonRank = map[string]int{
	ReasonRentalConflict:       1,
	ReasonScheduledMaintenance: 2,
	ReasonUsageThreshold:       3,
}

const unrankedReason = 99

func urgency(s Schedule) int {
	if s.Type == TypePriority {
		return 0
	}
	return 1
}

// ReasonRank returns the sort rank of a priority reason; unknown and empty
// reasons rank last.
func ReasonRank(reason string) int {
	if r, ok := reasonRank[reason]; ok {
		return r
	}
	return unrankedReason
}

// MergeAndSort concatenates active and inactive schedules, active first, and
// orders them by urgency class then priority reason. The sort is stable and
// works on copies; neither input slice nor its elements are touched.
func MergeAndSort(active, inactive []Schedule) []Schedule {
	merged := make([]Schedule, 0, len(active)+len(inactive))
	merged = append(merged, active...)
	merged = append(merged, inactive...)
	slices.SortStableFunc(merged, func(a, b Schedule) int {
		if c := urgency(a) - urgency(b); c != 0 {
			return c
		}
		return ReasonRank(a.PriorityReason) - ReasonRank(b.PriorityReason)
	})
	return merged
}

// Badge is the status class a schedule is highlighted with.
type Badge string

const (
	BadgeError      Badge = "error"
	BadgeWarning    Badge = "warning"
	BadgeSuccess    Badge = "success"
	BadgeProcessing Badge = "processing"
	BadgeDefault    Badge = "default"
)

// BadgeStatus derives the badge of s as seen at now. Inactive devices and
// failed work are errors; otherwise open schedules are judged by their window
// against the start of today: overdue is an error, due is a warning.
func BadgeStatus(s Schedule, now time.Time) Badge {
	if s.IsInactive {
		return BadgeError
	}
	switch strings.ToUpper(strings.TrimSpace(s.Status)) {
	case "COMPLETED":
		return BadgeSuccess
	case "IN_PROGRESS", "PROCESSING":
		return BadgeProcessing
	case "FAILED", "CANCELLED":
		return BadgeError
	}
	start, end, ok := s.WindowIn(now.Location())
	if !ok {
		return BadgeDefault
	}
	today := StartOfDay(now)
	switch {
	case today.After(end):
		return BadgeError
	case !today.Before(start):
		return BadgeWarning
	default:
		return BadgeDefault
	}
}
