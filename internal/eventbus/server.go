package eventbus

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/pkg/cerr"
)

type ListEventsResponse struct {
	Date   string   `json:"date"`
	Events []*Event `json:"events"`
}

func (j *Journal) Routes(r chi.Router) {
	r.Get("/events", j.ListEvents)
}

// ListEvents serves the journal of ?date=YYYY-MM-DD, today by default.
func (j *Journal) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	day := time.Now().In(j.loc)
	if s := r.URL.Query().Get("date"); s != "" {
		d, err := time.ParseInLocation(time.DateOnly, s, j.loc)
		if err != nil {
			cerr.SetNewJSONError(ctx, cerr.InvalidArgument, "date must be YYYY-MM-DD", err)
			return
		}
		day = d
	}
	events, err := j.Read(ctx, day)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if events == nil {
		events = []*Event{}
	}
	cerr.SetJSONResponse(ctx, &ListEventsResponse{Date: day.Format(time.DateOnly), Events: events})
}
