package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func ids(schedules []Schedule) []int64 {
	out := make([]int64, len(schedules))
	for i, s := range schedules {
		out[i] = s.ScheduleID
	}
	return out
}

func TestMergeAndSort(t *testing.T) {
	active := []Schedule{
		{ScheduleID: 1, PriorityReason: ReasonUsageThreshold},
		{ScheduleID: 2, Type: TypePriority, PriorityReason: ReasonScheduledMaintenance},
		{ScheduleID: 3},
		{ScheduleID: 4, PriorityReason: ReasonRentalConflict},
		{ScheduleID: 5, Type: TypePriority, PriorityReason: ReasonRentalConflict},
	}
	inactive := []Schedule{
		{ScheduleID: 6, IsInactive: true, PriorityReason: ReasonRentalConflict},
		{ScheduleID: 7, IsInactive: true},
	}

	got := MergeAndSort(active, inactive)
	assert.Equal(t, []int64{5, 2, 4, 6, 1, 3, 7}, ids(got))
}

func TestMergeAndSortIsStable(t *testing.T) {
	active := []Schedule{
		{ScheduleID: 10, PriorityReason: "SOMETHING_ELSE"},
		{ScheduleID: 11},
		{ScheduleID: 12, PriorityReason: ReasonScheduledMaintenance},
		{ScheduleID: 13, PriorityReason: ReasonScheduledMaintenance},
	}
	inactive := []Schedule{
		{ScheduleID: 14, PriorityReason: ReasonScheduledMaintenance},
		{ScheduleID: 15},
	}
	got := MergeAndSort(active, inactive)
	assert.Equal(t, []int64{12, 13, 14, 10, 11, 15}, ids(got))
}

func TestMergeAndSortDoesNotMutateInputs(t *testing.T) {
	active := []Schedule{
		{ScheduleID: 1, PriorityReason: ReasonUsageThreshold},
		{ScheduleID: 2, Type: TypePriority},
	}
	inactive := []Schedule{{ScheduleID: 3, PriorityReason: ReasonRentalConflict}}
	activeBefore := append([]Schedule(nil), active...)
	inactiveBefore := append([]Schedule(nil), inactive...)

	got := MergeAndSort(active, inactive)
	require.Len(t, got, 3)
	got[0].Status = "CHANGED"

	assert.Equal(t, activeBefore, active)
	assert.Equal(t, inactiveBefore, inactive)
}

func TestMergeAndSortEmpty(t *testing.T) {
	assert.Empty(t, MergeAndSort(nil, nil))
}

func TestBadgeStatus(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	day := func(d int, h int) time.Time { return time.Date(2025, 3, d, h, 0, 0, 0, loc) }
	now := day(10, 15)

	tests := []struct {
		name     string
		schedule Schedule
		want     Badge
	}{
		{"inactive wins over status", Schedule{IsInactive: true, Status: "COMPLETED"}, BadgeError},
		{"completed", Schedule{Status: "COMPLETED", NextMaintenanceDate: day(1, 0)}, BadgeSuccess},
		{"in progress", Schedule{Status: "IN_PROGRESS"}, BadgeProcessing},
		{"processing lower case", Schedule{Status: "processing"}, BadgeProcessing},
		{"failed", Schedule{Status: "FAILED"}, BadgeError},
		{"cancelled", Schedule{Status: "CANCELLED"}, BadgeError},
		{"overdue", Schedule{Status: "SCHEDULED", NextMaintenanceDate: day(5, 9), NextMaintenanceEndDate: day(9, 23)}, BadgeError},
		{"due on last day", Schedule{NextMaintenanceDate: day(5, 9), NextMaintenanceEndDate: day(10, 8)}, BadgeWarning},
		{"due on first day", Schedule{NextMaintenanceDate: day(10, 23), NextMaintenanceEndDate: day(12, 0)}, BadgeWarning},
		{"single day today", Schedule{NextMaintenanceDate: day(10, 1)}, BadgeWarning},
		{"single day yesterday", Schedule{NextMaintenanceDate: day(9, 1)}, BadgeError},
		{"not yet due", Schedule{NextMaintenanceDate: day(11, 0), NextMaintenanceEndDate: day(12, 0)}, BadgeDefault},
		{"no window", Schedule{Status: "PENDING"}, BadgeDefault},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BadgeStatus(tt.schedule, now))
		})
	}
}

func TestCovers(t *testing.T) {
	s := Schedule{
		NextMaintenanceDate:    time.Date(2025, 3, 5, 14, 0, 0, 0, time.UTC),
		NextMaintenanceEndDate: time.Date(2025, 3, 7, 1, 0, 0, 0, time.UTC),
	}
	assert.False(t, s.Covers(time.Date(2025, 3, 4, 23, 59, 0, 0, time.UTC)))
	assert.True(t, s.Covers(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)))
	assert.True(t, s.Covers(time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)))
	assert.False(t, s.Covers(time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)))
	assert.False(t, s.Covers(time.Time{}))
	assert.False(t, (&Schedule{}).Covers(time.Now()))
}

func TestRows(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	rows := Rows(
		[]Schedule{{ScheduleID: 1, Status: "SCHEDULED", PriorityReason: ReasonRentalConflict, NextMaintenanceDate: now}},
		[]Schedule{{ScheduleID: 2, IsInactive: true}},
		now,
	)
	require.Len(t, rows, 2)
	assert.Equal(t, BadgeWarning, rows[0].Badge)
	assert.Equal(t, "Trùng lịch thuê", rows[0].ReasonLabel.Text)
	assert.Equal(t, BadgeError, rows[1].Badge)
	assert.Equal(t, "Ngưng hoạt động", rows[1].StatusLabel.Text)
	assert.Empty(t, rows[1].ReasonLabel.Text)
}

func TestDateOnlyScheduleKeepsItsDayAcrossZones(t *testing.T) {
	var s Schedule
	require.NoError(t, yaml.Unmarshal([]byte("schedule_id: 1\nnext_maintenance_date: 2025-03-10\n"), &s))
	require.Equal(t, time.UTC, s.NextMaintenanceDate.Location())

	ict := time.FixedZone("ICT", 7*3600)
	pst := time.FixedZone("PST", -8*3600)
	for _, loc := range []*time.Location{ict, pst, time.UTC} {
		t.Run(loc.String(), func(t *testing.T) {
			day := time.Date(2025, 3, 10, 0, 0, 0, 0, loc)
			assert.True(t, s.Covers(day))
			assert.False(t, s.Covers(day.AddDate(0, 0, -1)))
			assert.False(t, s.Covers(day.AddDate(0, 0, 1)))

			assert.Equal(t, BadgeWarning, BadgeStatus(s, day.Add(6*time.Hour)))
			assert.Equal(t, BadgeWarning, BadgeStatus(s, day.Add(23*time.Hour)))
			assert.Equal(t, BadgeDefault, BadgeStatus(s, day.Add(-time.Hour)))
			assert.Equal(t, BadgeError, BadgeStatus(s, day.AddDate(0, 0, 1)))
		})
	}
}
