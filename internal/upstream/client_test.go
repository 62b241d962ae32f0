package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/task"
	"github.com/kazz187/techconsole/pkg/cerr"
)

var ict = time.FixedZone("ICT", 7*3600)

func newBackOffice(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /tasks", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		assert.Equal(t, "PENDING", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"data":[
			{"taskId":1,"categoryId":1,"categoryName":"Pre rental QC","status":"PENDING","plannedStart":"2025-03-10T09:00:00"},
			{"id":2,"categoryId":4,"type":"DELIVERY","status":"PENDING","plannedStart":"2025-03-10T02:00:00Z","createdAt":"2025-03-09 08:00:00"}
		]}`))
	})
	mux.HandleFunc("GET /tasks/{id}", func(w http.ResponseWriter, r *http.Request) {
		switch r.PathValue("id") {
		case "1":
		case "3":
			_, _ = w.Write([]byte(`{"status":200,"data":null}`))
			return
		case "4":
			_, _ = w.Write([]byte(`{"status":200,"data":{"categoryId":1,"status":"PENDING"}}`))
			return
		default:
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"id":1,"categoryId":1,"status":"IN_PROGRESS","plannedStart":"2025-03-10"}`))
	})
	mux.HandleFunc("PATCH /tasks/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Status string `json:"status"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		switch r.PathValue("id") {
		case "1":
			_, _ = w.Write([]byte(`{"data":{"id":1,"status":"` + body.Status + `","completedAt":"2025-03-10T10:00:00+07:00"}}`))
		case "3":
			_, _ = w.Write([]byte(`{"status":200,"data":null}`))
		case "500":
			http.Error(w, "boom", http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClientList(t *testing.T) {
	srv := newBackOffice(t)
	c := NewClient(srv.URL+"/", "secret", time.Second, ict)

	tasks, err := c.List(context.Background(), task.StatusPending)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.True(t, tasks[0].PlannedStart.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, ict)))
	assert.Equal(t, task.BucketDeliveryPickup, task.Classify(tasks[1]).Bucket)
	assert.True(t, tasks[1].PlannedStart.Equal(time.Date(2025, 3, 10, 9, 0, 0, 0, ict)))
	assert.True(t, tasks[1].CreatedAt.Equal(time.Date(2025, 3, 9, 8, 0, 0, 0, ict)))

	_, err = NewClient(srv.URL, "wrong", time.Second, ict).List(context.Background(), task.StatusPending)
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))
}

func TestClientGet(t *testing.T) {
	c := NewClient(newBackOffice(t).URL, "secret", time.Second, ict)

	got, err := c.Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, task.StatusInProgress, got.Status)
	assert.True(t, got.PlannedStart.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, ict)))

	_, err = c.Get(context.Background(), 2)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestClientEmptyPayloadIsNotFound(t *testing.T) {
	c := NewClient(newBackOffice(t).URL, "secret", time.Second, ict)

	got, err := c.Get(context.Background(), 3)
	assert.Nil(t, got)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	got, err = c.Get(context.Background(), 4)
	assert.Nil(t, got)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	got, err = c.UpdateStatus(context.Background(), 3, task.StatusCompleted)
	assert.Nil(t, got)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))
}

func TestClientUpdateStatus(t *testing.T) {
	c := NewClient(newBackOffice(t).URL, "secret", time.Second, ict)

	got, err := c.UpdateStatus(context.Background(), 1, task.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, got.Status)
	assert.False(t, got.CompletedAt.IsZero())

	_, err = c.UpdateStatus(context.Background(), 9, task.StatusCompleted)
	assert.True(t, cerr.IsCode(err, cerr.NotFound))

	_, err = c.UpdateStatus(context.Background(), 500, task.StatusCompleted)
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))
}

func TestClientUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	_, err := NewClient(srv.URL, "", time.Second, ict).List(context.Background(), "")
	assert.True(t, cerr.IsCode(err, cerr.Unavailable))
}

func TestParseTime(t *testing.T) {
	assert.True(t, ParseTime("", ict).IsZero())
	assert.True(t, ParseTime("not a time", ict).IsZero())
	assert.True(t, ParseTime("2025-03-10T09:00:00.123", ict).Equal(time.Date(2025, 3, 10, 9, 0, 0, 123000000, ict)))
}
