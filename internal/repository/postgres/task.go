package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tronghn/taskhub/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{db: db}
}

const taskColumns = `id, user_id, category_id, title, description, is_completed, status, priority, due_date, completed_at, created_at, updated_at`

func scanTask(row pgx.Row) (model.Task, error) {
	var t model.Task
	err := row.Scan(
		&t.ID, &t.UserID, &t.CategoryID, &t.Title, &t.Description,
		&t.Completed, &t.Status, &t.Priority, &t.DueDate, &t.CompletedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TaskRepository) List(ctx context.Context, userID uuid.UUID, filter model.TaskFilter) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
			  WHERE user_id = $1
			    AND ($2::uuid IS NULL OR category_id = $2)
			    AND ($3::boolean IS NULL OR is_completed = $3)
			  ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID, filter.CategoryID, filter.Completed)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	t, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (id, user_id, category_id, title, description, is_completed, status, priority, due_date, completed_at, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.UserID, task.CategoryID, task.Title, task.Description,
		task.Completed, task.Status, task.Priority, task.DueDate, task.CompletedAt,
		task.CreatedAt, task.UpdatedAt,
	))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks
			  SET category_id = $2, title = $3, description = $4, is_completed = $5,
			      status = $6, priority = $7, due_date = $8, completed_at = $9, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query,
		task.ID, task.CategoryID, task.Title, task.Description, task.Completed,
		task.Status, task.Priority, task.DueDate, task.CompletedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
