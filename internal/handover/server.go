package handover

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/render"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/clog"
)

// PDFRenderer turns a layout into PDF bytes. *render.Renderer satisfies it.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, l render.Layout, opts render.PackOptions) ([]byte, error)
}

// Service loads a report with its context and assembles or prints it.
type Service struct {
	reports    ReportRepository
	orders     OrderRepository
	conditions ConditionRepository
	archive    ArchiveRepository // nil disables archiving
	renderer   PDFRenderer
	eventBus   *eventbus.Bus
}

func NewService(
	reports ReportRepository,
	orders OrderRepository,
	conditions ConditionRepository,
	archive ArchiveRepository,
	renderer PDFRenderer,
	eventBus *eventbus.Bus,
) *Service {
	return &Service{
		reports:    reports,
		orders:     orders,
		conditions: conditions,
		archive:    archive,
		renderer:   renderer,
		eventBus:   eventBus,
	}
}

// Document assembles the report with its order and the condition catalogue.
// A missing order is not an error; its columns print as placeholders.
func (s *Service) Document(ctx context.Context, id int64) (*Document, error) {
	report, err := s.reports.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	var order *Order
	if report.OrderID != 0 {
		order, err = s.orders.Get(ctx, report.OrderID)
		if err != nil && !cerr.IsCode(err, cerr.NotFound) {
			return nil, err
		}
	}
	defs, err := s.conditions.List(ctx)
	if err != nil {
		return nil, err
	}
	return Assemble(report, order, defs), nil
}

// PDF renders the report and archives the result when an archive is set.
func (s *Service) PDF(ctx context.Context, id int64) (*Document, []byte, error) {
	doc, err := s.Document(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	pdf, err := s.renderer.RenderPDF(ctx, doc.Layout(), render.PackOptions{
		Title:   fmt.Sprintf("%s %s", doc.Header.Title, doc.Header.Code),
		Author:  doc.Header.CreatedBy,
		Creator: "techconsole",
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, cerr.NewError(cerr.Canceled, "render cancelled", err)
		}
		return nil, nil, cerr.NewError(cerr.Internal, "failed to render report", err)
	}

	meta := map[string]string{"file_name": doc.FileName(), "bytes": strconv.Itoa(len(pdf))}
	if s.archive != nil {
		path, err := s.archive.Put(ctx, id, pdf)
		if err != nil {
			clog.AddError(ctx, err)
		} else {
			meta["archive_path"] = path
		}
	}
	s.eventBus.PublishNew(eventbus.EventHandoverPDFRendered, strconv.FormatInt(id, 10), meta)
	return doc, pdf, nil
}

type Server struct {
	service *Service
}

func NewServer(service *Service) *Server {
	return &Server{service: service}
}

type GetReportResponse struct {
	Document *Document `json:"document"`
}

type ListArchiveResponse struct {
	Paths []string `json:"paths"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/handover-reports/{id}", s.GetReport)
	r.Get("/handover-reports/{id}/pdf", s.GetReportPDF)
	r.Get("/handover-reports/{id}/archive", s.ListArchive)
}

func parseID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid id %q", raw), err)
	}
	return id, nil
}

func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	doc, err := s.service.Document(ctx, id)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &GetReportResponse{Document: doc})
}

func (s *Server) GetReportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	doc, pdf, err := s.service.PDF(ctx, id)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.MarkWritten(ctx)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s"`, doc.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	if _, err := w.Write(pdf); err != nil {
		clog.AddError(ctx, err)
	}
}

func (s *Server) ListArchive(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := parseID(r)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if s.service.archive == nil {
		cerr.SetNewJSONError(ctx, cerr.Unimplemented, "report archive is disabled", nil)
		return
	}
	paths, err := s.service.archive.List(ctx, id)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	if paths == nil {
		paths = []string{}
	}
	cerr.SetJSONResponse(ctx, &ListArchiveResponse{Paths: paths})
}
