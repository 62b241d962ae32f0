package eventbus_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

func TestJournalAppendAndRead(t *testing.T) {
	ctx := context.Background()
	loc := time.FixedZone("ICT", 7*3600)
	j := eventbus.NewJournal(eventbus.New(), storage.NewMemoryStorage(), loc)

	day := time.Date(2025, 3, 11, 0, 0, 0, 0, loc)
	for i, id := range []string{"1", "2"} {
		require.NoError(t, j.Append(ctx, &eventbus.Event{
			ID:         id,
			Type:       eventbus.EventTaskStatusChanged,
			ResourceID: id,
			CreatedAt:  day.Add(time.Duration(i+8) * time.Hour),
		}))
	}
	// 23:30 UTC on the 10th is already the 11th in ICT.
	require.NoError(t, j.Append(ctx, &eventbus.Event{
		ID: "3", Type: eventbus.EventDigestWritten, CreatedAt: time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC),
	}))

	events, err := j.Read(ctx, day)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "1", events[0].ID)
	assert.Equal(t, "3", events[2].ID)

	empty, err := j.Read(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestJournalStartRecordsPublishedEvents(t *testing.T) {
	bus := eventbus.New()
	st := storage.NewMemoryStorage()
	j := eventbus.NewJournal(bus, st, time.UTC)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		j.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		bus.PublishNew(eventbus.EventTaskStatusChanged, "7", nil)
		events, err := j.Read(context.Background(), time.Now())
		return err == nil && len(events) > 0
	}, 2*time.Second, 20*time.Millisecond)
	cancel()
	<-done
}

func TestListEvents(t *testing.T) {
	j := eventbus.NewJournal(eventbus.New(), storage.NewMemoryStorage(), time.UTC)
	require.NoError(t, j.Append(context.Background(), &eventbus.Event{
		ID: "a", Type: eventbus.EventHandoverPDFRendered, CreatedAt: time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC),
	}))
	r := chi.NewRouter()
	r.Use(cerr.NewConvertErrorChiMiddleware())
	j.Routes(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?date=2025-03-11", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var resp eventbus.ListEventsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-03-11", resp.Date)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, eventbus.EventHandoverPDFRendered, resp.Events[0].Type)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events?date=bad", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
