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

// Category implements category CRUD. Category names are unique per user,
// not globally.
type Category struct {
	categories model.CategoryStore
	logger     *logger.Logger
}

// NewCategory creates the category service.
func NewCategory(categories model.CategoryStore, logger *logger.Logger) *Category {
	return &Category{categories: categories, logger: logger}
}

// CreateCategoryParams carries the caller-supplied fields for a category.
type CreateCategoryParams struct {
	Name        string
	Description string
	ColorCode   string
}

// List returns the caller's categories.
func (s *Category) List(ctx context.Context, userID uuid.UUID) ([]model.Category, error) {
	categories, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// Get returns a single category the caller owns.
func (s *Category) Get(ctx context.Context, userID, categoryID uuid.UUID) (model.Category, error) {
	return s.owned(ctx, userID, categoryID)
}

// Create stores a new category for the caller. An empty color code gets
// the default.
func (s *Category) Create(ctx context.Context, userID uuid.UUID, params CreateCategoryParams) (model.Category, error) {
	taken, err := s.categories.ExistsByNameAndUser(ctx, params.Name, userID)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to check category name: %w", err)
	}
	if taken {
		return model.Category{}, apierr.NewErrCategoryNameTaken()
	}

	if params.ColorCode == "" {
		params.ColorCode = model.DefaultCategoryColor
	}

	now := time.Now()
	category := model.Category{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        params.Name,
		Description: params.Description,
		ColorCode:   params.ColorCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.categories.Create(ctx, category)
	if errors.Is(err, model.ErrConflict) {
		return model.Category{}, apierr.NewErrCategoryNameTaken()
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info("Category service: category created", "category_id", saved.ID, "user_id", userID)

	return saved, nil
}

// Update replaces the mutable fields of a category the caller owns.
// Renaming onto another of the caller's category names is rejected.
func (s *Category) Update(ctx context.Context, userID, categoryID uuid.UUID, params CreateCategoryParams) (model.Category, error) {
	category, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return model.Category{}, err
	}

	if params.Name != category.Name {
		taken, err := s.categories.ExistsByNameAndUser(ctx, params.Name, userID)
		if err != nil {
			return model.Category{}, fmt.Errorf("failed to check category name: %w", err)
		}
		if taken {
			return model.Category{}, apierr.NewErrCategoryNameTaken()
		}
	}

	category.Name = params.Name
	category.Description = params.Description
	if params.ColorCode != "" {
		category.ColorCode = params.ColorCode
	}
	category.UpdatedAt = time.Now()

	saved, err := s.categories.Update(ctx, category)
	if errors.Is(err, model.ErrConflict) {
		return model.Category{}, apierr.NewErrCategoryNameTaken()
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	return saved, nil
}

// Delete removes a category the caller owns. Tasks referencing it keep
// existing with their category cleared by the store's foreign key.
func (s *Category) Delete(ctx context.Context, userID, categoryID uuid.UUID) error {
	category, err := s.owned(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	if err := s.categories.Delete(ctx, category.ID); err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.logger.Info("Category service: category deleted", "category_id", categoryID, "user_id", userID)

	return nil
}

func (s *Category) owned(ctx context.Context, userID, categoryID uuid.UUID) (model.Category, error) {
	category, err := s.categories.GetByID(ctx, categoryID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Category{}, apierr.NewErrCategoryNotFound()
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to get category: %w", err)
	}

	if category.UserID != userID {
		return model.Category{}, apierr.NewErrNotOwner("category")
	}

	return category, nil
}
