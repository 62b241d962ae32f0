package daily

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/clog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Server struct {
	builder *Builder
}

func NewServer(builder *Builder) *Server {
	return &Server{builder: builder}
}

type GetDailyResponse struct {
	View *View `json:"view"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/daily", s.GetDaily)
	r.Get("/daily.xlsx", s.ExportDaily)
}

// dateParam reads ?date=, defaulting to today when the parameter is absent.
func (s *Server) dateParam(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return s.builder.Today(), nil
	}
	date, err := ParseDate(raw, s.builder.Location())
	if err != nil {
		return time.Time{}, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", raw), err)
	}
	return date, nil
}

func (s *Server) GetDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := s.dateParam(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	v, err := s.builder.Build(ctx, date)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &GetDailyResponse{View: v})
}

func (s *Server) ExportDaily(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	date, err := s.dateParam(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	v, err := s.builder.Build(ctx, date)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	f, err := NewWorkbook(v)
	if err != nil {
		cerr.SetNewJSONError(ctx, cerr.Internal, "failed to build workbook", err)
		return
	}
	defer f.Close()

	cerr.MarkWritten(ctx)
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="cong-viec-%s.xlsx"`, v.Date))
	if _, err := f.WriteTo(w); err != nil {
		clog.AddError(ctx, err)
	}
}
