package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/service"
)

// TaskService defines task operations for the authenticated user.
type TaskService interface {
	List(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error)
	Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
	Create(ctx context.Context, userID uuid.UUID, params service.CreateTaskParams) (model.Task, error)
	Update(ctx context.Context, userID, taskID uuid.UUID, params service.CreateTaskParams) (model.Task, error)
	ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error)
	SetStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (model.Task, error)
	Delete(ctx context.Context, userID, taskID uuid.UUID) error
}

// UserResolver resolves the authenticated username to its account.
type UserResolver interface {
	Get(ctx context.Context, username string) (model.User, error)
}

// Task handles the /api/tasks endpoints.
type Task struct {
	taskService    TaskService
	users          UserResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates the task handler.
func NewTask(taskService TaskService, users UserResolver, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		users:          users,
		contextManager: contextManager,
		logger:         logger,
	}
}

type taskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
	CategoryID  *uuid.UUID `json:"categoryId"`
}

type taskResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsCompleted bool       `json:"isCompleted"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(task model.Task) taskResponse {
	return taskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.Completed,
		Status:      string(task.Status),
		Priority:    string(task.Priority),
		DueDate:     task.DueDate,
		CompletedAt: task.CompletedAt,
		CategoryID:  task.CategoryID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func toTaskResponses(tasks []model.Task) []taskResponse {
	out := make([]taskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toTaskResponse(task))
	}
	return out
}

func (r taskRequest) toParams() service.CreateTaskParams {
	return service.CreateTaskParams{
		Title:       r.Title,
		Description: r.Description,
		Status:      model.TaskStatus(r.Status),
		Priority:    model.TaskPriority(r.Priority),
		DueDate:     r.DueDate,
		CategoryID:  r.CategoryID,
	}
}

// userID resolves the caller's account ID from the request context.
func (h *Task) userID(r *http.Request) (uuid.UUID, bool) {
	username, ok := h.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	user, err := h.users.Get(r.Context(), username)
	if err != nil {
		return uuid.Nil, false
	}
	return user.ID, true
}

func pathID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue("id"))
}

// List handles GET /api/tasks with optional categoryId and isCompleted
// query filters.
func (h *Task) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	var filter model.TaskFilter
	if raw := r.URL.Query().Get("categoryId"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			handleValidationError(w, "invalid categoryId")
			return
		}
		filter.CategoryID = &categoryID
	}
	if raw := r.URL.Query().Get("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			handleValidationError(w, "invalid isCompleted")
			return
		}
		filter.Completed = &completed
	}

	tasks, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *Task) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid task id")
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Create handles POST /api/tasks.
func (h *Task) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Title == "" {
		handleValidationError(w, "task title is required")
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.toParams())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *Task) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid task id")
		return
	}

	var req taskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Title == "" {
		handleValidationError(w, "task title is required")
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, req.toParams())
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Toggle handles PATCH /api/tasks/{id}/toggle.
func (h *Task) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid task id")
		return
	}

	task, err := h.taskService.ToggleCompletion(r.Context(), userID, taskID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// SetStatus handles PATCH /api/tasks/{id}/status?status=IN_PROGRESS.
func (h *Task) SetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid task id")
		return
	}

	status := r.URL.Query().Get("status")
	if status == "" {
		handleValidationError(w, "status is required")
		return
	}

	task, err := h.taskService.SetStatus(r.Context(), userID, taskID, model.TaskStatus(strings.ToUpper(status)))
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *Task) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	taskID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid task id")
		return
	}

	if err := h.taskService.Delete(r.Context(), userID, taskID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
