package pushnotification

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/internal/config"
	"github.com/kazz187/techconsole/internal/pushsubscription"
	"github.com/kazz187/techconsole/pkg/cerr"
)

type Server struct {
	vapidEnv *config.VAPIDEnv
	repo     pushsubscription.Repository
	sender   *Sender
}

func NewServer(vapidEnv *config.VAPIDEnv, repo pushsubscription.Repository, sender *Sender) *Server {
	return &Server{
		vapidEnv: vapidEnv,
		repo:     repo,
		sender:   sender,
	}
}

type GetVapidPublicKeyResponse struct {
	PublicKey string `json:"publicKey"`
}

type RegisterPushSubscriptionRequest struct {
	Endpoint  string `json:"endpoint" validate:"required,url"`
	P256dhKey string `json:"p256dhKey" validate:"required"`
	AuthKey   string `json:"authKey" validate:"required"`
	StaffID   int64  `json:"staffId" validate:"gte=0"`
}

type RegisterPushSubscriptionResponse struct {
	ID      string `json:"id"`
	Created bool   `json:"created"`
}

type UnregisterPushSubscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
}

type SendTestNotificationResponse struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Removed int `json:"removed"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/push/vapid-public-key", s.GetVapidPublicKey)
	r.Post("/push/subscriptions", s.RegisterPushSubscription)
	r.Delete("/push/subscriptions", s.UnregisterPushSubscription)
	r.Post("/push/test", s.SendTestNotification)
}

func (s *Server) GetVapidPublicKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if s.vapidEnv.VAPIDPublicKey == "" {
		cerr.SetNewJSONError(ctx, cerr.FailedPrecondition, "VAPID keys not configured", nil)
		return
	}
	cerr.SetJSONResponse(ctx, &GetVapidPublicKeyResponse{PublicKey: s.vapidEnv.VAPIDPublicKey})
}

// RegisterPushSubscription is idempotent per endpoint; registering again
// refreshes the keys.
func (s *Server) RegisterPushSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req RegisterPushSubscriptionRequest
	if err := cerr.DecodeJSONBody(r, &req); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	sub := &pushsubscription.Subscription{
		Endpoint:  req.Endpoint,
		P256dhKey: req.P256dhKey,
		AuthKey:   req.AuthKey,
		StaffID:   req.StaffID,
		CreatedAt: time.Now(),
	}
	created, err := s.repo.Upsert(ctx, sub)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	resp := &RegisterPushSubscriptionResponse{ID: sub.ID, Created: created}
	if created {
		cerr.SetJSONResponseStatus(ctx, http.StatusCreated, resp)
		return
	}
	cerr.SetJSONResponse(ctx, resp)
}

func (s *Server) UnregisterPushSubscription(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req UnregisterPushSubscriptionRequest
	if err := cerr.DecodeJSONBody(r, &req); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if err := s.repo.DeleteByEndpoint(ctx, req.Endpoint); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, struct{}{})
}

func (s *Server) SendTestNotification(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if !s.sender.Configured() {
		cerr.SetNewJSONError(ctx, cerr.FailedPrecondition, "VAPID keys not configured", nil)
		return
	}
	res := s.sender.SendToAll(ctx, &NotificationPayload{
		Title: "Kiểm tra thông báo",
		Body:  "Thông báo đẩy đang hoạt động",
	})
	cerr.SetJSONResponse(ctx, &SendTestNotificationResponse{Sent: res.Sent, Failed: res.Failed, Removed: res.Removed})
}
