package pushnotification

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/pushsubscription"
	"github.com/kazz187/techconsole/internal/pushsubscription/repositoryimpl"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

var vapid = &config.VAPIDEnv{VAPIDPublicKey: "pub", VAPIDPrivateKey: "priv", VAPIDContact: "mailto:ops@example.com"}

type recorder struct {
	mu       sync.Mutex
	messages map[string][]byte
	status   map[string]int
}

func (r *recorder) send(_ context.Context, message []byte, s *webpush.Subscription, opts *webpush.Options) (*http.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.messages == nil {
		r.messages = map[string][]byte{}
	}
	r.messages[s.Endpoint] = message
	status := http.StatusCreated
	if st, ok := r.status[s.Endpoint]; ok {
		status = st
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(strings.NewReader(""))}, nil
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.messages)
}

func seed(t *testing.T, repo pushsubscription.Repository, endpoints ...string) {
	t.Helper()
	for _, e := range endpoints {
		_, err := repo.Upsert(context.Background(), &pushsubscription.Subscription{Endpoint: e, P256dhKey: "k", AuthKey: "a"})
		require.NoError(t, err)
	}
}

func TestSendToAll(t *testing.T) {
	ctx := context.Background()
	repo := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage())
	seed(t, repo, "https://push/ok", "https://push/gone", "https://push/broken")
	rec := &recorder{status: map[string]int{
		"https://push/gone":   http.StatusGone,
		"https://push/broken": http.StatusBadRequest,
	}}
	sender := NewSender(vapid, repo).WithSendFunc(rec.send)

	res := sender.SendToAll(ctx, &NotificationPayload{Title: "t", Body: "b"})
	assert.Equal(t, Result{Sent: 1, Failed: 1, Removed: 1}, res)

	var payload NotificationPayload
	require.NoError(t, json.Unmarshal(rec.messages["https://push/ok"], &payload))
	assert.Equal(t, "t", payload.Title)

	subs, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, subs, 2, "gone subscription removed")
}

func TestSendToAllWithoutKeys(t *testing.T) {
	repo := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage())
	seed(t, repo, "https://push/ok")
	rec := &recorder{}
	sender := NewSender(&config.VAPIDEnv{}, repo).WithSendFunc(rec.send)

	assert.Equal(t, Result{}, sender.SendToAll(context.Background(), &NotificationPayload{}))
	assert.Zero(t, rec.count())
}

func TestPayloadFor(t *testing.T) {
	p := PayloadFor(&eventbus.Event{
		Type:       eventbus.EventTaskStatusChanged,
		ResourceID: "42",
		Metadata:   map[string]string{"old_status": "PENDING", "new_status": "COMPLETED", "category_name": "Pre rental QC"},
	})
	require.NotNil(t, p)
	assert.Equal(t, "Công việc #42", p.Title)
	assert.Equal(t, "Pre rental QC: Đang chờ → Hoàn thành", p.Body)
	assert.Equal(t, "/tasks/42", p.URL)

	assert.NotNil(t, PayloadFor(&eventbus.Event{Type: eventbus.EventDigestWritten, ResourceID: "2025-03-11"}))
	assert.Nil(t, PayloadFor(&eventbus.Event{Type: eventbus.EventHandoverPDFRendered}))
	assert.Nil(t, PayloadFor(nil))
}

func TestDispatcher(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	repo := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage())
	seed(t, repo, "https://push/ok")
	rec := &recorder{}
	bus := eventbus.New()
	d := NewDispatcher(bus, NewSender(vapid, repo).WithSendFunc(rec.send))

	done := make(chan struct{})
	go func() {
		d.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		bus.PublishNew(eventbus.EventTaskStatusChanged, "1", map[string]string{"old_status": "PENDING", "new_status": "IN_PROGRESS"})
		return rec.count() == 1
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("dispatcher did not stop")
	}
}

func TestServer(t *testing.T) {
	repo := repositoryimpl.NewYAMLRepository(storage.NewMemoryStorage())
	rec := &recorder{}
	r := chi.NewRouter()
	r.Use(cerr.NewConvertErrorChiMiddleware())
	NewServer(vapid, repo, NewSender(vapid, repo).WithSendFunc(rec.send)).Routes(r)

	do := func(method, target, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
		return w
	}

	w := do(http.MethodGet, "/push/vapid-public-key", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"publicKey":"pub"}`, w.Body.String())

	w = do(http.MethodPost, "/push/subscriptions", `{"endpoint":"https://push/1","p256dhKey":"k","authKey":"a"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var reg RegisterPushSubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.True(t, reg.Created)
	assert.NotEmpty(t, reg.ID)

	w = do(http.MethodPost, "/push/subscriptions", `{"endpoint":"https://push/1","p256dhKey":"k2","authKey":"a2"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var again RegisterPushSubscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &again))
	assert.False(t, again.Created)
	assert.Equal(t, reg.ID, again.ID)

	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/push/subscriptions", `{"endpoint":"not a url","p256dhKey":"k","authKey":"a"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/push/subscriptions", `{"endpoint":"https://push/2"}`).Code)

	w = do(http.MethodPost, "/push/test", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sent":1,"failed":0,"removed":0}`, w.Body.String())

	assert.Equal(t, http.StatusOK, do(http.MethodDelete, "/push/subscriptions", `{"endpoint":"https://push/1"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(http.MethodDelete, "/push/subscriptions", `{"endpoint":"https://push/1"}`).Code)

	noKeys := chi.NewRouter()
	noKeys.Use(cerr.NewConvertErrorChiMiddleware())
	NewServer(&config.VAPIDEnv{}, repo, NewSender(&config.VAPIDEnv{}, repo)).Routes(noKeys)
	w = httptest.NewRecorder()
	noKeys.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/push/vapid-public-key", nil))
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)
}
