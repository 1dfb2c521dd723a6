package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/service"
)

// CategoryService defines category operations for the authenticated user.
type CategoryService interface {
	List(ctx context.Context, userID uuid.UUID) ([]model.Category, error)
	Get(ctx context.Context, userID, categoryID uuid.UUID) (model.Category, error)
	Create(ctx context.Context, userID uuid.UUID, params service.CreateCategoryParams) (model.Category, error)
	Update(ctx context.Context, userID, categoryID uuid.UUID, params service.CreateCategoryParams) (model.Category, error)
	Delete(ctx context.Context, userID, categoryID uuid.UUID) error
}

// Category handles the /api/categories endpoints.
type Category struct {
	categoryService CategoryService
	users           UserResolver
	contextManager  model.ContextManager
	logger          *logger.Logger
}

// NewCategory creates the category handler.
func NewCategory(categoryService CategoryService, users UserResolver, contextManager model.ContextManager, logger *logger.Logger) *Category {
	return &Category{
		categoryService: categoryService,
		users:           users,
		contextManager:  contextManager,
		logger:          logger,
	}
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ColorCode   string `json:"colorCode"`
}

type categoryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ColorCode   string    `json:"colorCode"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toCategoryResponse(category model.Category) categoryResponse {
	return categoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		ColorCode:   category.ColorCode,
		CreatedAt:   category.CreatedAt,
		UpdatedAt:   category.UpdatedAt,
	}
}

func (h *Category) userID(r *http.Request) (uuid.UUID, bool) {
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

// List handles GET /api/categories.
func (h *Category) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	categories, err := h.categoryService.List(r.Context(), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, category := range categories {
		out = append(out, toCategoryResponse(category))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /api/categories/{id}.
func (h *Category) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	categoryID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid category id")
		return
	}

	category, err := h.categoryService.Get(r.Context(), userID, categoryID)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Create handles POST /api/categories.
func (h *Category) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Name == "" {
		handleValidationError(w, "category name is required")
		return
	}

	category, err := h.categoryService.Create(r.Context(), userID, service.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Update handles PUT /api/categories/{id}.
func (h *Category) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	categoryID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid category id")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Name == "" {
		handleValidationError(w, "category name is required")
		return
	}

	category, err := h.categoryService.Update(r.Context(), userID, categoryID, service.CreateCategoryParams{
		Name:        req.Name,
		Description: req.Description,
		ColorCode:   req.ColorCode,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toCategoryResponse(category))
}

// Delete handles DELETE /api/categories/{id}.
func (h *Category) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	categoryID, err := pathID(r)
	if err != nil {
		handleValidationError(w, "invalid category id")
		return
	}

	if err := h.categoryService.Delete(r.Context(), userID, categoryID); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
