package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/maintenance"
	"github.com/kazz187/techconsole/internal/quota"
	"github.com/kazz187/techconsole/internal/task"
	"github.com/kazz187/techconsole/internal/vocab"
	"github.com/kazz187/techconsole/pkg/color"
)

const timeLayout = "02/01 15:04"

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format(timeLayout)
}

func bucketLabel(c task.Classification) string {
	var parts []string
	parts = append(parts, string(c.Bucket))
	if c.QCPhase != task.QCPhaseNone {
		parts = append(parts, string(c.QCPhase))
	}
	if c.Direction != task.DirectionNone {
		parts = append(parts, string(c.Direction))
	}
	return strings.Join(parts, "/")
}

func printTasks(w io.Writer, p color.Painter, views []task.View) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.Bold("ID\tBUCKET\tCATEGORY\tSTART\tSTATUS\tSTAFF"))
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, bucketLabel(v.Classification), v.CategoryName,
			formatTime(v.PlannedStart), p.Label(v.StatusLabel), v.AssignedStaffName)
	}
	tw.Flush()
}

func printTask(w io.Writer, p color.Painter, v task.View) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	row := func(k, val string) { fmt.Fprintf(tw, "%s\t%s\n", p.Bold(k), val) }
	row("ID", fmt.Sprint(v.ID))
	row("Category", fmt.Sprintf("%s (%d)", v.CategoryName, v.CategoryID))
	row("Type", v.Type)
	row("Bucket", bucketLabel(v.Classification))
	row("Rule", v.Classification.Rule)
	row("Status", p.Label(v.StatusLabel))
	row("Staff", strings.TrimSpace(v.AssignedStaffName+" "+v.RoleLabel))
	row("Start", formatTime(v.PlannedStart))
	row("End", formatTime(v.PlannedEnd))
	row("Description", v.Description)
	tw.Flush()
}

func quotaSeverity(s quota.Status) vocab.Severity {
	if s == quota.StatusAtLimit {
		return vocab.SeverityError
	}
	return vocab.SeveritySuccess
}

func badgeLabel(r maintenance.Row) string {
	return fmt.Sprintf("[%s]", r.Badge)
}

func printDaily(w io.Writer, p color.Painter, v *daily.View) {
	fmt.Fprintln(w, p.Bold("Ngày "+v.Date))
	c := v.Counters
	fmt.Fprintf(w, "Tổng %d · QC %d (trước thuê %d, sau thuê %d) · Giao/Thu %d (giao %d, thu %d) · Bảo trì %d · Khác %d\n",
		c.Total, c.QC, c.PreRentalQC, c.PostRentalQC, c.DeliveryPickup, c.Delivery, c.Pickup, c.Maintenance, c.Other)
	for _, q := range v.Quota {
		fmt.Fprintf(w, "  danh mục %d: %s\n", q.CategoryID,
			p.Severity(quotaSeverity(q.Status), fmt.Sprintf("%d/%d %s", q.Count, q.MaxTasksPerDay, q.Status)))
	}
	fmt.Fprintln(w)
	printTasks(w, p, v.Tasks)
	if len(v.Maintenance) == 0 {
		return
	}
	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, p.Bold("BADGE\tDEVICE\tSERIAL\tWINDOW\tSTATUS\tREASON"))
	for _, r := range v.Maintenance {
		start, end, _ := r.Window()
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s–%s\t%s\t%s\n",
			p.Severity(r.BadgeSeverity, badgeLabel(r)), r.DeviceModelName, r.DeviceSerialNumber,
			formatTime(start), formatTime(end), p.Label(r.StatusLabel), p.Label(r.ReasonLabel))
	}
	tw.Flush()
}
