package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// DefaultCategoryColor is assigned when a category is created without one.
const DefaultCategoryColor = "#007bff"

// Category groups a user's tasks.
type Category struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Name        string
	Description string
	ColorCode   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CategoryStore defines persistence operations for categories.
type CategoryStore interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Category, error)
	GetByID(ctx context.Context, id uuid.UUID) (Category, error)
	ExistsByNameAndUser(ctx context.Context, name string, userID uuid.UUID) (bool, error)
	Create(ctx context.Context, category Category) (Category, error)
	Update(ctx context.Context, category Category) (Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
