package pushnotification

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/pushsubscription"
)

type NotificationPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
	Tag   string `json:"tag,omitempty"`
}

// SendFunc delivers one encrypted push message.
type SendFunc func(ctx context.Context, message []byte, s *webpush.Subscription, opts *webpush.Options) (*http.Response, error)

// Result summarizes one fan-out.
type Result struct {
	Sent    int
	Failed  int
	Removed int
}

type Sender struct {
	vapidEnv *config.VAPIDEnv
	repo     pushsubscription.Repository
	send     SendFunc
}

func NewSender(vapidEnv *config.VAPIDEnv, repo pushsubscription.Repository) *Sender {
	return &Sender{
		vapidEnv: vapidEnv,
		repo:     repo,
		send:     webpush.SendNotificationWithContext,
	}
}

// WithSendFunc swaps the delivery function.
func (s *Sender) WithSendFunc(f SendFunc) *Sender {
	s.send = f
	return s
}

func (s *Sender) Configured() bool {
	return s.vapidEnv != nil && s.vapidEnv.VAPIDPrivateKey != "" && s.vapidEnv.VAPIDPublicKey != ""
}

// SendToAll pushes payload to every subscription. Subscriptions the push
// service reports as gone are removed.
func (s *Sender) SendToAll(ctx context.Context, payload *NotificationPayload) Result {
	var res Result
	if !s.Configured() {
		slog.WarnContext(ctx, "push notification: VAPID keys not configured, skipping")
		return res
	}
	subs, err := s.repo.List(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "push notification: failed to list subscriptions", "error", err)
		return res
	}
	data, err := json.Marshal(payload)
	if err != nil {
		slog.ErrorContext(ctx, "push notification: failed to marshal payload", "error", err)
		return res
	}
	for _, sub := range subs {
		switch s.sendTo(ctx, sub, data) {
		case outcomeSent:
			res.Sent++
		case outcomeRemoved:
			res.Removed++
		default:
			res.Failed++
		}
	}
	return res
}

type outcome int

const (
	outcomeSent outcome = iota
	outcomeFailed
	outcomeRemoved
)

func (s *Sender) sendTo(ctx context.Context, sub *pushsubscription.Subscription, data []byte) outcome {
	resp, err := s.send(ctx, data, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}, &webpush.Options{
		VAPIDPublicKey:  s.vapidEnv.VAPIDPublicKey,
		VAPIDPrivateKey: s.vapidEnv.VAPIDPrivateKey,
		Subscriber:      s.vapidEnv.VAPIDContact,
		TTL:             3600,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		slog.ErrorContext(ctx, "push notification: failed to send", "endpoint", sub.Endpoint, "error", err)
		return outcomeFailed
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		slog.InfoContext(ctx, "push notification: subscription expired, removing", "endpoint", sub.Endpoint)
		if err := s.repo.Delete(ctx, sub.ID); err != nil {
			slog.ErrorContext(ctx, "push notification: failed to delete expired subscription", "id", sub.ID, "error", err)
		}
		return outcomeRemoved
	case resp.StatusCode >= 400:
		slog.WarnContext(ctx, "push notification: unexpected status", "endpoint", sub.Endpoint, "status", resp.StatusCode)
		return outcomeFailed
	}
	return outcomeSent
}
