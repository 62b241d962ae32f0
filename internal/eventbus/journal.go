package eventbus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

// Journal appends every bus event to a per-day NDJSON file in storage,
// events/<YYYY-MM-DD>.ndjson, keyed by the event's creation day.
type Journal struct {
	bus     *Bus
	storage storage.Storage
	loc     *time.Location
	mu      sync.Mutex
}

func NewJournal(bus *Bus, s storage.Storage, loc *time.Location) *Journal {
	if loc == nil {
		loc = time.Local
	}
	return &Journal{bus: bus, storage: s, loc: loc}
}

func (j *Journal) path(day time.Time) string {
	return fmt.Sprintf("events/%s.ndjson", day.In(j.loc).Format(time.DateOnly))
}

// Append writes one event line.
func (j *Journal) Append(ctx context.Context, event *Event) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	p := j.path(event.CreatedAt)

	j.mu.Lock()
	defer j.mu.Unlock()
	existing, err := storage.ReadIfExists(ctx, j.storage, p)
	if err != nil {
		return cerr.WrapStorageReadError("event journal", err)
	}
	data := append(existing, line...)
	data = append(data, '\n')
	if err := j.storage.Write(ctx, p, data); err != nil {
		return cerr.WrapStorageWriteError("event journal", err)
	}
	return nil
}

// Read returns the events recorded on day, oldest first.
func (j *Journal) Read(ctx context.Context, day time.Time) ([]*Event, error) {
	data, err := storage.ReadIfExists(ctx, j.storage, j.path(day))
	if err != nil {
		return nil, cerr.WrapStorageReadError("event journal", err)
	}
	var events []*Event
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var e Event
		if err := json.Unmarshal(sc.Bytes(), &e); err != nil {
			return nil, cerr.NewError(cerr.DataLoss, "corrupt event journal line", err)
		}
		events = append(events, &e)
	}
	return events, sc.Err()
}

// Start records events until ctx is done.
func (j *Journal) Start(ctx context.Context) {
	subID, ch := j.bus.Subscribe(256)
	defer j.bus.Unsubscribe(subID)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := j.Append(ctx, event); err != nil {
				slog.ErrorContext(ctx, "failed to journal event", "event_type", event.Type, "error", err)
			}
		}
	}
}
