package maintenance

import (
	"time"

	"github.com/kazz187/techconsole/internal/vocab"
)

// Row is a schedule as the maintenance panel shows it.
type Row struct {
	Schedule
	Badge         Badge          `json:"badge"`
	BadgeSeverity vocab.Severity `json:"badgeSeverity"`
	StatusLabel   vocab.Label    `json:"statusLabel"`
	ReasonLabel   vocab.Label    `json:"reasonLabel"`
}

func NewRow(s Schedule, now time.Time) Row {
	badge := BadgeStatus(s, now)
	status := s.Status
	if s.IsInactive && status == "" {
		status = "INACTIVE"
	}
	return Row{
		Schedule:      s,
		Badge:         badge,
		BadgeSeverity: vocab.BadgeSeverity(string(badge)),
		StatusLabel:   vocab.MaintenanceStatus(status),
		ReasonLabel:   vocab.PriorityReason(s.PriorityReason),
	}
}

// Rows merges, orders and badges the two schedule sets.
func Rows(active, inactive []Schedule, now time.Time) []Row {
	merged := MergeAndSort(active, inactive)
	rows := make([]Row, 0, len(merged))
	for _, s := range merged {
		rows = append(rows, NewRow(s, now))
	}
	return rows
}
