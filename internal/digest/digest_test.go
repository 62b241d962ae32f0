package digest

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kazz187/techconsole/internal/daily"
	"github.com/kazz187/techconsole/internal/eventbus"
	mrepo "github.com/kazz187/techconsole/internal/maintenance/repositoryimpl"
	"github.com/kazz187/techconsole/internal/quota"
	"github.com/kazz187/techconsole/internal/task"
	trepo "github.com/kazz187/techconsole/internal/task/repositoryimpl"
	"github.com/kazz187/techconsole/pkg/storage"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("ICT", 7*3600)
	st := storage.NewMemoryStorage()
	tasks := trepo.NewYAMLRepository(st)
	require.NoError(t, tasks.Save(ctx, &task.Task{ID: 5, CategoryID: 2, CategoryName: "Post rental QC", PlannedStart: time.Date(2025, 3, 11, 9, 0, 0, 0, loc)}))

	builder := daily.NewBuilder(tasks, mrepo.NewYAMLRepository(st), quota.StaticStore(quota.NewRuleSet()), loc)
	bus := eventbus.New()
	_, events := bus.Subscribe(1)
	job := NewJob(builder, st, bus, "0 18 * * *")

	path, err := job.Run(ctx, time.Date(2025, 3, 11, 0, 0, 0, 0, loc))
	require.NoError(t, err)
	assert.Equal(t, "digests/2025-03-11.xlsx", path)

	data, err := st.Read(ctx, path)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	id, err := f.GetCellValue("Tasks", "A2")
	require.NoError(t, err)
	assert.Equal(t, "5", id)

	select {
	case ev := <-events:
		assert.Equal(t, eventbus.EventDigestWritten, ev.Type)
		assert.Equal(t, "2025-03-11", ev.ResourceID)
		assert.Equal(t, path, ev.Metadata["path"])
	case <-time.After(time.Second):
		t.Fatal("digest event not published")
	}
}

func TestStartRejectsBadSchedule(t *testing.T) {
	st := storage.NewMemoryStorage()
	builder := daily.NewBuilder(trepo.NewYAMLRepository(st), mrepo.NewYAMLRepository(st), nil, time.UTC)
	job := NewJob(builder, st, eventbus.New(), "not a schedule")
	assert.Error(t, job.Start(context.Background()))
}

func TestStartStopsWithContext(t *testing.T) {
	st := storage.NewMemoryStorage()
	builder := daily.NewBuilder(trepo.NewYAMLRepository(st), mrepo.NewYAMLRepository(st), nil, time.UTC)
	job := NewJob(builder, st, eventbus.New(), "@every 1h")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- job.Start(ctx) }()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}
