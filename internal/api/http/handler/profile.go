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

// ProfileService defines self-service account operations.
type ProfileService interface {
	Get(ctx context.Context, username string) (model.User, error)
	Update(ctx context.Context, username string, params service.UpdateProfileParams) (model.User, error)
	ChangePassword(ctx context.Context, username, currentPassword, newPassword, confirmPassword string) (string, error)
	Delete(ctx context.Context, username string) error
}

// Profile handles the /api/profile endpoints.
type Profile struct {
	profileService ProfileService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewProfile creates the profile handler.
func NewProfile(profileService ProfileService, contextManager model.ContextManager, logger *logger.Logger) *Profile {
	return &Profile{
		profileService: profileService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type updateProfileRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Phone     *string `json:"phone"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type profileResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Phone      string    `json:"phone"`
	IsVerified bool      `json:"isVerified"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toProfileResponse(user model.User) profileResponse {
	return profileResponse{
		ID:         user.ID,
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		IsVerified: user.Verified,
		IsActive:   user.Active,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}

func (h *Profile) username(r *http.Request) (string, bool) {
	return h.contextManager.GetUsernameFromContext(r.Context())
}

// Get handles GET /api/profile.
func (h *Profile) Get(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	user, err := h.profileService.Get(r.Context(), username)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

// Update handles PUT /api/profile.
func (h *Profile) Update(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}

	user, err := h.profileService.Update(r.Context(), username, service.UpdateProfileParams{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(user))
}

// ChangePassword handles PUT /api/profile/change-password.
func (h *Profile) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		handleValidationError(w, "currentPassword and newPassword are required")
		return
	}

	message, err := h.profileService.ChangePassword(r.Context(), username, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, message)
}

// Delete handles DELETE /api/profile.
func (h *Profile) Delete(w http.ResponseWriter, r *http.Request) {
	username, ok := h.username(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	if err := h.profileService.Delete(r.Context(), username); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Account deleted successfully")
}
