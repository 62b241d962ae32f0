// Package digest exports the next day's task board to storage on a
// schedule.
package digest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/pkg/panicerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

const digestsPrefix = "digests"

// Job writes digests/<date>.xlsx for the day after each run.
type Job struct {
	builder  *daily.Builder
	storage  storage.Storage
	eventBus *eventbus.Bus
	schedule string
	cron     *cron.Cron
	entryID  cron.EntryID
}

func NewJob(builder *daily.Builder, s storage.Storage, eventBus *eventbus.Bus, schedule string) *Job {
	return &Job{
		builder:  builder,
		storage:  s,
		eventBus: eventBus,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(builder.Location())),
	}
}

// Path is where the digest of date is stored.
func Path(date time.Time) string {
	return fmt.Sprintf("%s/%s.xlsx", digestsPrefix, date.Format(time.DateOnly))
}

// Start schedules the job and runs the scheduler until ctx is done.
func (j *Job) Start(ctx context.Context) error {
	id, err := j.cron.AddFunc(j.schedule, func() {
		run := panicerr.SafeContext(func(ctx context.Context) error {
			_, err := j.Run(ctx, j.builder.Today().AddDate(0, 0, 1))
			return err
		})
		if err := run(ctx); err != nil {
			slog.ErrorContext(ctx, "digest failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid digest schedule %q: %w", j.schedule, err)
	}
	j.entryID = id
	j.cron.Start()
	slog.Info("digest scheduler started", "schedule", j.schedule, "next", j.cron.Entry(id).Next)

	<-ctx.Done()
	<-j.cron.Stop().Done()
	slog.Info("digest scheduler stopped")
	return nil
}

// Run builds the board of date and stores it. It returns the storage path.
func (j *Job) Run(ctx context.Context, date time.Time) (string, error) {
	v, err := j.builder.Build(ctx, date)
	if err != nil {
		return "", fmt.Errorf("failed to build daily view: %w", err)
	}
	var buf bytes.Buffer
	if err := daily.WriteXLSX(&buf, v); err != nil {
		return "", err
	}
	path := Path(date)
	if err := j.storage.Write(ctx, path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to store digest: %w", err)
	}
	slog.InfoContext(ctx, "digest written", "path", path, "tasks", len(v.Tasks), "maintenance", len(v.Maintenance))
	j.eventBus.PublishNew(eventbus.EventDigestWritten, v.Date, map[string]string{"path": path})
	return path, nil
}
