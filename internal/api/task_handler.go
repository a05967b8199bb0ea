package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/emberhq/portfolio-api/internal/api/middleware"
	"github.com/emberhq/portfolio-api/internal/task"
)

// TaskHandler handles background task endpoints. Tasks are visible to
// their creator and to admins.
type TaskHandler struct {
	registry *task.Registry
	runner   *task.Runner
	logger   *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(registry *task.Registry, runner *task.Runner, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskHandler{
		registry: registry,
		runner:   runner,
		logger:   logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	t := task.New(callerID, middleware.GetUsername(r), req.Name, req.Description, req.Duration)

	if err := h.runner.Submit(t); err != nil {
		h.logger.Warn("task submission rejected",
			slog.String("task_id", t.ID.String()),
			slog.String("error", err.Error()))
		RespondWithError(w, r, http.StatusServiceUnavailable, "Task queue is full")
		return
	}

	h.logger.Info("task created",
		slog.String("task_id", t.ID.String()),
		slog.String("created_by", callerID.String()),
		slog.Int("duration", req.Duration))

	snapshot, err := h.registry.Get(t.ID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, TaskResponse{
		Message: "Task created successfully",
		Task:    snapshot,
	})
}

// List handles GET /api/tasks. Admins see every task; other callers see
// only their own.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}

	tasks := h.registry.List(callerID, middleware.IsAdmin(r))

	RespondWithJSON(w, r, http.StatusOK, TaskListResponse{Tasks: tasks})
}

// Get handles GET /api/tasks/{id} (creator or admin).
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.registry.Get(id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	if !middleware.IsAdmin(r) && callerID != t.CreatedBy {
		RespondWithError(w, r, http.StatusForbidden, "Not authorized to access this task")
		return
	}

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{Task: t})
}

// Cancel handles POST /api/tasks/{id}/cancel (creator or admin).
func (h *TaskHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id, ok := getPathUUID(w, r, "id")
	if !ok {
		return
	}

	t, err := h.registry.Get(id)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	callerID, ok := getUserIDFromContext(w, r)
	if !ok {
		return
	}
	if !middleware.IsAdmin(r) && callerID != t.CreatedBy {
		RespondWithError(w, r, http.StatusForbidden, "Not authorized to cancel this task")
		return
	}

	t, err = h.registry.Cancel(id)
	if err != nil {
		if errors.Is(err, task.ErrNotCancellable) {
			RespondWithError(w, r, http.StatusBadRequest, "Task cannot be cancelled")
			return
		}
		RespondWithMappedError(w, r, err)
		return
	}

	h.logger.Info("task cancelled",
		slog.String("task_id", id.String()),
		slog.String("cancelled_by", callerID.String()))

	RespondWithJSON(w, r, http.StatusOK, TaskResponse{
		Message: "Task cancelled successfully",
		Task:    t,
	})
}
