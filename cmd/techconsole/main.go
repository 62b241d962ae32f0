package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/task"
	"github.com/kazz187/techconsole/pkg/color"
)

var (
	cli = kingpin.New("techconsole", "Technician console for the device rental back office")

	serveCmd = cli.Command("serve", "Run the HTTP API and background workers")

	tasksCmd        = cli.Command("tasks", "Inspect and update tasks")
	tasksListCmd    = tasksCmd.Command("list", "List tasks")
	tasksListStatus = tasksListCmd.Flag("status", "Only tasks in this status").Enum(statusNames()...)
	tasksShowCmd    = tasksCmd.Command("show", "Show one task with its classification")
	tasksShowID     = tasksShowCmd.Arg("id", "Task ID").Required().Int64()
	tasksSetCmd     = tasksCmd.Command("set-status", "Change the status of a task")
	tasksSetID      = tasksSetCmd.Arg("id", "Task ID").Required().Int64()
	tasksSetStatus  = tasksSetCmd.Arg("status", "New status").Required().Enum(statusNames()...)

	dailyCmd  = cli.Command("daily", "Show the task board of a day")
	dailyDate = dailyCmd.Flag("date", "Day as YYYY-MM-DD, today when empty").String()
	dailyXLSX = dailyCmd.Flag("xlsx", "Also write the board to this xlsx file").String()

	reportCmd    = cli.Command("report", "Handover reports")
	reportPDFCmd = reportCmd.Command("pdf", "Render a handover report to PDF")
	reportPDFID  = reportPDFCmd.Arg("id", "Handover report ID").Required().Int64()
	reportPDFOut = reportPDFCmd.Flag("output", "Output file, the report file name when empty").Short('o').String()

	seedCmd  = cli.Command("seed", "Import tasks, schedules and reports from a YAML fixture")
	seedFile = seedCmd.Arg("file", "Fixture file").Required().ExistingFile()
)

func statusNames() []string {
	var names []string
	for _, s := range task.Statuses() {
		names = append(names, string(s))
	}
	return names
}

func main() {
	command := kingpin.MustParse(cli.Parse(os.Args[1:]))

	env, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	setupLogger(env)

	ctx := context.Background()
	if err := run(ctx, command, env, os.Stdout); err != nil {
		slog.Error("command failed", "command", command, "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, env *config.Env, out io.Writer) error {
	store, err := newStorage(ctx, config.StorageEnvFromEnv(env))
	if err != nil {
		return err
	}
	a, err := newApp(ctx, env, store)
	if err != nil {
		return err
	}
	p := color.NewPainter(out)

	switch command {
	case serveCmd.FullCommand():
		return a.serve(ctx)

	case tasksListCmd.FullCommand():
		tasks, err := a.tasks.List(ctx, task.Status(*tasksListStatus))
		if err != nil {
			return err
		}
		views := make([]task.View, 0, len(tasks))
		for _, t := range tasks {
			views = append(views, task.NewView(t))
		}
		printTasks(out, p, views)

	case tasksShowCmd.FullCommand():
		t, err := a.tasks.Get(ctx, *tasksShowID)
		if err != nil {
			return err
		}
		printTask(out, p, task.NewView(t))

	case tasksSetCmd.FullCommand():
		t, err := task.ChangeStatus(ctx, a.tasks, a.bus, *tasksSetID, task.Status(*tasksSetStatus))
		if err != nil {
			return err
		}
		printTask(out, p, task.NewView(t))

	case dailyCmd.FullCommand():
		return a.printDay(ctx, out, p, *dailyDate, *dailyXLSX)

	case reportPDFCmd.FullCommand():
		doc, pdf, err := a.handover.PDF(ctx, *reportPDFID)
		if err != nil {
			return err
		}
		path := *reportPDFOut
		if path == "" {
			path = doc.FileName()
		}
		if err := os.WriteFile(path, pdf, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(out, "%s (%d bytes)\n", path, len(pdf))

	case seedCmd.FullCommand():
		res, err := a.seed(ctx, *seedFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %d tasks, %d schedules (%d inactive), %d reports, %d orders, %d conditions\n",
			res.Tasks, res.Maintenance, res.Inactive, res.Reports, res.Orders, res.Conditions)
	}
	return nil
}

func (a *app) printDay(ctx context.Context, out io.Writer, p color.Painter, dateArg, xlsxPath string) error {
	date, err := daily.ParseDate(dateArg, a.builder.Location())
	if err != nil {
		return err
	}
	if date.IsZero() {
		date = a.builder.Today()
	}
	start := time.Now()
	v, err := a.builder.Build(ctx, date)
	if err != nil {
		return err
	}
	slog.DebugContext(ctx, "daily view built", "date", v.Date, "elapsed", time.Since(start))
	printDaily(out, p, v)
	if xlsxPath == "" {
		return nil
	}
	var buf bytes.Buffer
	if err := daily.WriteXLSX(&buf, v); err != nil {
		return err
	}
	if err := os.WriteFile(xlsxPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
	}
	fmt.Fprintf(out, "\n%s\n", xlsxPath)
	return nil
}
