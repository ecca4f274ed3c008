package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/tasklist-api/internal/api/shared"
	"github.com/phrazzld/tasklist-api/internal/domain"
	"github.com/phrazzld/tasklist-api/internal/platform/logger"
	"github.com/phrazzld/tasklist-api/internal/service"
)

// TaskHandler handles the task routes of a single owner.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// ListTasks handles GET /api/v1/tasks/{token}
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasksDetailed(r.Context(), getToken(r))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tasks)
}

// GetTask handles GET /api/v1/tasks/{id}/{token}
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), getToken(r), taskID)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// CreateTask handles POST /api/v1/tasks/{token}
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithFailure(w, r, http.StatusBadRequest, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), getToken(r), *req.Title, req.Description)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, task)
}

// UpdateTask handles PUT /api/v1/tasks/{id}/{token}
// An unreadable body is passed on as a nil patch: the service still has to
// report a missing task (404) before it rejects the body (400).
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var patch *domain.TaskPatch
	if err := shared.DecodeJSON(r, &patch); err != nil {
		logger.FromContext(r.Context()).Debug("unusable update body",
			slog.String("error", err.Error()))
		patch = nil
	}

	task, err := h.taskService.UpdateTask(r.Context(), getToken(r), taskID, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, task)
}

// DeleteTask handles DELETE /api/v1/tasks/{id}/{token}
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := getTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), getToken(r), taskID); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithResult(w, r, http.StatusOK)
}
