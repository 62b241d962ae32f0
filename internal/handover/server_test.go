package handover_test

import (
	"bytes"
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
	"github.com/kazz187/techconsole/internal/handover"
	"github.com/kazz187/techconsole/internal/handover/repositoryimpl"
	"github.com/kazz187/techconsole/internal/render"
	"github.com/kazz187/techconsole/pkg/cerr"
	"github.com/kazz187/techconsole/pkg/storage"
)

type fixture struct {
	router  http.Handler
	archive *repositoryimpl.ArchiveRepository
	events  <-chan *eventbus.Event
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	st := storage.NewMemoryStorage()

	reports := repositoryimpl.NewReportRepository(st)
	orders := repositoryimpl.NewOrderRepository(st)
	conditions := repositoryimpl.NewConditionRepository(st)
	archive := repositoryimpl.NewArchiveRepository(st)

	require.NoError(t, reports.Save(ctx, &handover.Report{
		HandoverReportID: 9,
		OrderID:          77,
		HandoverType:     handover.TypeCheckin,
		Technician:       handover.Party{Name: "Trần Văn Kỹ"},
		Customer:         handover.Party{Name: "Nguyễn Thị Khách"},
		Discrepancies: []handover.Discrepancy{
			{DiscrepancyType: "DAMAGE", DeviceID: 101, ConditionDefinitionID: 3, PenaltyAmount: 150000},
		},
		CustomerSigned: true,
	}))
	require.NoError(t, reports.Save(ctx, &handover.Report{HandoverReportID: 10, OrderID: 404, HandoverType: handover.TypeCheckout}))
	require.NoError(t, orders.Save(ctx, &handover.Order{
		OrderID: 77,
		OrderDetails: []handover.OrderDetail{{
			DeviceModelName: "Sony A7 IV", Quantity: 1,
			Allocations: []handover.Allocation{{Device: handover.Device{DeviceID: 101, SerialNumber: "SN-001"}}},
		}},
	}))
	require.NoError(t, conditions.SaveAll(ctx, []handover.ConditionDefinition{{ConditionDefinitionID: 3, Name: "Vỡ màn hình"}}))

	renderer, err := render.New(render.Options{PageWidth: 400, ImageConcurrency: 1, ImageTimeout: time.Second})
	require.NoError(t, err)
	bus := eventbus.New()
	_, events := bus.Subscribe(4)

	r := chi.NewRouter()
	r.Use(cerr.NewConvertErrorChiMiddleware())
	handover.NewServer(handover.NewService(reports, orders, conditions, archive, renderer, bus)).Routes(r)
	return fixture{router: r, archive: archive, events: events}
}

func (f fixture) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetReport(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/handover-reports/9")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handover.GetReportResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	doc := resp.Document
	assert.Equal(t, handover.RoleCustomer, doc.PartyA.Role)
	require.Len(t, doc.Discrepancies, 1)
	assert.Equal(t, "Hư hỏng", doc.Discrepancies[0].Type)
	assert.Equal(t, "SN-001", doc.Discrepancies[0].SerialNumber)
	assert.Equal(t, "Vỡ màn hình", doc.Discrepancies[0].Condition)
	assert.Equal(t, "150.000 ₫", doc.Discrepancies[0].Penalty)

	rec = f.get("/handover-reports/10")
	require.Equal(t, http.StatusOK, rec.Code, "a missing order degrades to placeholders")

	assert.Equal(t, http.StatusNotFound, f.get("/handover-reports/11").Code)
	assert.Equal(t, http.StatusBadRequest, f.get("/handover-reports/x").Code)
}

func TestGetReportPDF(t *testing.T) {
	f := newFixture(t)

	rec := f.get("/handover-reports/9/pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "bien-ban-checkin-9.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	select {
	case ev := <-f.events:
		assert.Equal(t, eventbus.EventHandoverPDFRendered, ev.Type)
		assert.Equal(t, "9", ev.ResourceID)
		assert.NotEmpty(t, ev.Metadata["archive_path"])
	case <-time.After(time.Second):
		t.Fatal("render event not published")
	}

	paths, err := f.archive.List(context.Background(), 9)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	rec = f.get("/handover-reports/9/archive")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp handover.ListArchiveResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, paths, resp.Paths)

	assert.Equal(t, http.StatusNotFound, f.get("/handover-reports/12/pdf").Code)
}
