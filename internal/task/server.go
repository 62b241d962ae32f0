package task

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kazz187/techconsole/internal/eventbus"
	"github.com/kazz187/techconsole/internal/vocab"
	"github.com/kazz187/techconsole/pkg/cerr"
)

type Server struct {
	repo     Repository
	eventBus *eventbus.Bus
}

func NewServer(repo Repository, eventBus *eventbus.Bus) *Server {
	return &Server{
		repo:     repo,
		eventBus: eventBus,
	}
}

// View is a task as the console shows it.
type View struct {
	*Task
	Classification Classification `json:"classification"`
	StatusLabel    vocab.Label    `json:"statusLabel"`
	RoleLabel      string         `json:"roleLabel,omitempty"`
}

func NewView(t *Task) View {
	return View{
		Task:           t,
		Classification: Classify(t),
		StatusLabel:    vocab.TaskStatus(string(t.Status)),
		RoleLabel:      vocab.StaffRole(t.AssignedStaffRole),
	}
}

type ListTasksResponse struct {
	Tasks []View `json:"tasks"`
}

type GetTaskResponse struct {
	Task View `json:"task"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED FAILED"`
}

type UpdateTaskStatusResponse struct {
	Task View `json:"task"`
}

func (s *Server) Routes(r chi.Router) {
	r.Get("/tasks", s.ListTasks)
	r.Get("/tasks/{id}", s.GetTask)
	r.Patch("/tasks/{id}/status", s.UpdateTaskStatus)
}

func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	status := Status(r.URL.Query().Get("status"))
	if status != "" && !status.Valid() {
		cerr.SetNewJSONError(ctx, cerr.InvalidArgument, fmt.Sprintf("unknown status %q", status), nil)
		return
	}
	tasks, err := s.repo.List(ctx, status)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewView(t))
	}
	cerr.SetJSONResponse(ctx, &ListTasksResponse{Tasks: views})
}

func (s *Server) GetTask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &GetTaskResponse{Task: NewView(t)})
}

func (s *Server) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, err := ParseID(chi.URLParam(r, "id"))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	var req UpdateTaskStatusRequest
	if err := cerr.DecodeJSONBody(r, &req); err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	t, err := ChangeStatus(ctx, s.repo, s.eventBus, id, Status(req.Status))
	if err != nil {
		cerr.SetJSONError(ctx, err)
		return
	}
	cerr.SetJSONResponse(ctx, &UpdateTaskStatusResponse{Task: NewView(t)})
}

// ChangeStatus moves a task to status. Completed and cancelled tasks are
// frozen, failed ones may be reopened; asking for the current status is a
// no-op.
func ChangeStatus(ctx context.Context, repo Repository, bus *eventbus.Bus, id int64, status Status) (*Task, error) {
	if !status.Valid() {
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown status %q", status), nil)
	}
	t, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status == status {
		return t, nil
	}
	if t.Status.Terminal() {
		return nil, cerr.NewError(
			cerr.FailedPrecondition,
			fmt.Sprintf("task %d is already %s", id, t.Status),
			nil,
		)
	}
	oldStatus := t.Status
	updated, err := repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	bus.PublishNew(
		eventbus.EventTaskStatusChanged,
		strconv.FormatInt(updated.ID, 10),
		map[string]string{
			"old_status":    string(oldStatus),
			"new_status":    string(updated.Status),
			"category_name": updated.CategoryName,
		},
	)
	return updated, nil
}

// ParseID parses a numeric path id.
func ParseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid id %q", s), err)
	}
	return id, nil
}
