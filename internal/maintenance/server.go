package maintenance

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/pkg/cerr"
)

type Server struct {
	repo Repository
	now  func() time.Time
}

func NewServer(repo Repository, now func() time.Time) *Server {
	if now == nil {
		now = time.Now
	}
	return &Server{repo: repo, now: now}
}

type ListSchedulesResponse struct {
	Schedules []Row `json:"schedules"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/maintenance", s.ListSchedules)
}

func (s *Server) ListSchedules(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	active, err := s.repo.ListActive(ctx)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	inactive, err := s.repo.ListInactive(ctx)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &ListSchedulesResponse{Schedules: Rows(active, inactive, s.now())})
}
