package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

// Task implements task CRUD with per-user ownership enforcement. Every
// read or write of an existing task verifies the caller owns it before
// touching it.
type Task struct {
	tasks      model.TaskStore
	categories model.CategoryStore
	logger     *logger.Logger
}

// NewTask creates the task service.
func NewTask(tasks model.TaskStore, categories model.CategoryStore, logger *logger.Logger) *Task {
	return &Task{
		tasks:      tasks,
		categories: categories,
		logger:     logger,
	}
}

// CreateTaskParams carries the caller-supplied fields for a new task.
type CreateTaskParams struct {
	Title       string
	Description string
	Status      model.TaskStatus
	Priority    model.TaskPriority
	DueDate     *time.Time
	CategoryID  *uuid.UUID
}

// List returns the caller's tasks, optionally narrowed by category and
// completion state.
func (s *Task) List(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns a single task the caller owns.
func (s *Task) Get(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	return s.owned(ctx, userID, taskID)
}

// Create stores a new task for the caller. A referenced category must
// exist and belong to the caller. Missing status and priority default to
// TODO and MEDIUM.
func (s *Task) Create(ctx context.Context, userID uuid.UUID, params CreateTaskParams) (model.Task, error) {
	if params.Status == "" {
		params.Status = model.TaskStatusTodo
	}
	if params.Priority == "" {
		params.Priority = model.TaskPriorityMedium
	}
	if !params.Status.Valid() || !params.Priority.Valid() {
		return model.Task{}, apierr.NewErrValidation("invalid status or priority")
	}

	if err := s.checkCategory(ctx, userID, params.CategoryID); err != nil {
		return model.Task{}, err
	}

	now := time.Now()
	task := model.Task{
		ID:          uuid.New(),
		UserID:      userID,
		CategoryID:  params.CategoryID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		Priority:    params.Priority,
		DueDate:     params.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	applyStatus(&task, params.Status, now)

	saved, err := s.tasks.Create(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("Task service: task created", "task_id", saved.ID, "user_id", userID)

	return saved, nil
}

// Update replaces the mutable fields of a task the caller owns.
func (s *Task) Update(ctx context.Context, userID, taskID uuid.UUID, params CreateTaskParams) (model.Task, error) {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	if params.Status == "" {
		params.Status = task.Status
	}
	if params.Priority == "" {
		params.Priority = task.Priority
	}
	if !params.Status.Valid() || !params.Priority.Valid() {
		return model.Task{}, apierr.NewErrValidation("invalid status or priority")
	}

	if err := s.checkCategory(ctx, userID, params.CategoryID); err != nil {
		return model.Task{}, err
	}

	task.Title = params.Title
	task.Description = params.Description
	task.Priority = params.Priority
	task.DueDate = params.DueDate
	task.CategoryID = params.CategoryID
	task.UpdatedAt = time.Now()
	applyStatus(&task, params.Status, task.UpdatedAt)

	saved, err := s.tasks.Update(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

// ToggleCompletion flips a task between completed and not completed.
func (s *Task) ToggleCompletion(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	now := time.Now()
	task.UpdatedAt = now
	if task.Completed {
		applyStatus(&task, model.TaskStatusTodo, now)
	} else {
		applyStatus(&task, model.TaskStatusCompleted, now)
	}

	saved, err := s.tasks.Update(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to toggle task: %w", err)
	}

	return saved, nil
}

// SetStatus moves a task to the given workflow state.
func (s *Task) SetStatus(ctx context.Context, userID, taskID uuid.UUID, status model.TaskStatus) (model.Task, error) {
	if !status.Valid() {
		return model.Task{}, apierr.NewErrValidation("invalid status")
	}

	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	task.UpdatedAt = time.Now()
	applyStatus(&task, status, task.UpdatedAt)

	saved, err := s.tasks.Update(ctx, task)
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to set task status: %w", err)
	}

	return saved, nil
}

// Delete removes a task the caller owns.
func (s *Task) Delete(ctx context.Context, userID, taskID uuid.UUID) error {
	task, err := s.owned(ctx, userID, taskID)
	if err != nil {
		return err
	}

	if err := s.tasks.Delete(ctx, task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info("Task service: task deleted", "task_id", taskID, "user_id", userID)

	return nil
}

// owned loads a task and rejects callers that do not own it. A foreign
// task reports forbidden rather than not-found so ownership bugs surface
// loudly during development.
func (s *Task) owned(ctx context.Context, userID, taskID uuid.UUID) (model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, apierr.NewErrTaskNotFound()
	}
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if task.UserID != userID {
		return model.Task{}, apierr.NewErrNotOwner("task")
	}

	return task, nil
}

// checkCategory verifies the referenced category exists and belongs to the
// caller. A nil categoryID means no category and always passes.
func (s *Task) checkCategory(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) error {
	if categoryID == nil {
		return nil
	}

	category, err := s.categories.GetByID(ctx, *categoryID)
	if errors.Is(err, model.ErrNotFound) {
		return apierr.NewErrCategoryNotFound()
	}
	if err != nil {
		return fmt.Errorf("failed to get category: %w", err)
	}

	if category.UserID != userID {
		return apierr.NewErrNotOwner("category")
	}

	return nil
}

// applyStatus sets the workflow state and keeps Completed and CompletedAt
// consistent with it.
func applyStatus(task *model.Task, status model.TaskStatus, now time.Time) {
	task.Status = status
	if status == model.TaskStatusCompleted {
		task.Completed = true
		if task.CompletedAt == nil {
			task.CompletedAt = &now
		}
	} else {
		task.Completed = false
		task.CompletedAt = nil
	}
}
