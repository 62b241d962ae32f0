package daily

import (
	"time"

	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/quota"
	"github.com/kazz187/techconsole/internal/task"
)

// Counters tallies the day's tasks per bucket.
type Counters struct {
	Total          int `json:"total"`
	QC             int `json:"qc"`
	PreRentalQC    int `json:"preRentalQc"`
	PostRentalQC   int `json:"postRentalQc"`
	DeliveryPickup int `json:"deliveryPickup"`
	Delivery       int `json:"delivery"`
	Pickup         int `json:"pickup"`
	Maintenance    int `json:"maintenance"`
	Other          int `json:"other"`
}

type View struct {
	Date        string            `json:"date"`
	Tasks       []task.View       `json:"tasks"`
	Counters    Counters          `json:"counters"`
	Quota       []quota.Indicator `json:"quota"`
	Maintenance []maintenance.Row `json:"maintenance"`
}

// BuildView selects what falls on date and decorates it for display. Quota
// indicators count only the selected tasks; categories without a rule get no
// indicator.
func BuildView(date, now time.Time, tasks []*task.Task, active, inactive []maintenance.Schedule, rules *quota.RuleSet) *View {
	sel := SelectForDay(date, tasks, active, inactive)
	v := &View{
		Tasks:       make([]task.View, 0, len(sel.Tasks)),
		Quota:       []quota.Indicator{},
		Maintenance: maintenance.Rows(sel.Maintenance, sel.Inactive, now),
	}
	if !date.IsZero() {
		v.Date = date.Format(time.DateOnly)
	}
	for _, t := range sel.Tasks {
		tv := task.NewView(t)
		v.Tasks = append(v.Tasks, tv)
		v.Counters.add(tv.Classification)
	}
	if rules != nil {
		v.Quota = append(v.Quota, quota.Indicators(sel.Tasks, rules)...)
	}
	return v
}

func (c *Counters) add(cl task.Classification) {
	c.Total++
	switch cl.Bucket {
	case task.BucketQC:
		c.QC++
		switch cl.QCPhase {
		case task.QCPhasePreRental:
			c.PreRentalQC++
		case task.QCPhasePostRental:
			c.PostRentalQC++
		}
	case task.BucketDeliveryPickup:
		c.DeliveryPickup++
		if cl.Direction == task.DirectionPickup {
			c.Pickup++
		} else {
			c.Delivery++
		}
	case task.BucketMaintenance:
		c.Maintenance++
	default:
		c.Other++
	}
}
