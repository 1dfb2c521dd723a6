package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tronghn/taskhub/internal/model"
)

var _ model.CategoryStore = (*CategoryRepository)(nil)

type CategoryRepository struct {
	db *Connection
}

func NewCategoryRepository(db *Connection) *CategoryRepository {
	return &CategoryRepository{db: db}
}

const categoryColumns = `id, user_id, name, description, color_code, created_at, updated_at`

func scanCategory(row pgx.Row) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Description, &c.ColorCode, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	c, err := scanCategory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, model.ErrNotFound
		}
		return model.Category{}, fmt.Errorf("failed to get category by id: %w", err)
	}

	return c, nil
}

func (r *CategoryRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM categories WHERE name = $1 AND user_id = $2)`,
		name, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name existence: %w", err)
	}
	return exists, nil
}

func (r *CategoryRepository) Create(ctx context.Context, category model.Category) (model.Category, error) {
	query := `INSERT INTO categories (id, user_id, name, description, color_code, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + categoryColumns

	saved, err := scanCategory(r.db.QueryRow(ctx, query,
		category.ID, category.UserID, category.Name, category.Description,
		category.ColorCode, category.CreatedAt, category.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.Category{}, model.ErrConflict
		}
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	return saved, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category model.Category) (model.Category, error) {
	query := `UPDATE categories
			  SET name = $2, description = $3, color_code = $4, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + categoryColumns

	saved, err := scanCategory(r.db.QueryRow(ctx, query,
		category.ID, category.Name, category.Description, category.ColorCode,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Category{}, model.ErrNotFound
		}
		if isUniqueViolation(err) {
			return model.Category{}, model.ErrConflict
		}
		return model.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	return saved, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
