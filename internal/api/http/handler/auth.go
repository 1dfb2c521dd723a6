package handler

import (
	"context"
	"net/http"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

// AuthService defines the account lifecycle operations.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, error)
	VerifyAccount(ctx context.Context, email, code string) (model.AuthResponse, error)
	Login(ctx context.Context, usernameOrEmail, password string) (model.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) (string, error)
	Logout(ctx context.Context, username string) error
	ResendVerification(ctx context.Context, email string) (string, error)
}

// Auth handles the /api/auth endpoints.
type Auth struct {
	authService    AuthService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuth creates the auth handler.
func NewAuth(authService AuthService, contextManager model.ContextManager, logger *logger.Logger) *Auth {
	return &Auth{
		authService:    authService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type verifyRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type loginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

type authResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	Type         string `json:"type"`
	Username     string `json:"username"`
	Email        string `json:"email"`
}

func toAuthResponse(resp model.AuthResponse) authResponse {
	return authResponse{
		Token:        resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Type:         "Bearer",
		Username:     resp.Username,
		Email:        resp.Email,
	}
}

// Register handles POST /api/auth/register.
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		handleValidationError(w, "username, email and password are required")
		return
	}

	message, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Debug("Auth handler: registration rejected",
			"username", req.Username,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeMessage(w, message)
}

// VerifyAccount handles POST /api/auth/verify.
func (h *Auth) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Email == "" || req.OTP == "" {
		handleValidationError(w, "email and otp are required")
		return
	}

	resp, err := h.authService.VerifyAccount(r.Context(), req.Email, req.OTP)
	if err != nil {
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(resp))
}

// ResendVerification handles POST /api/auth/resend-verification. The
// email arrives as a query parameter.
func (h *Auth) ResendVerification(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		handleValidationError(w, "email is required")
		return
	}

	message, err := h.authService.ResendVerification(r.Context(), email)
	if err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, message)
}

// Login handles POST /api/auth/login.
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.UsernameOrEmail == "" || req.Password == "" {
		handleValidationError(w, "usernameOrEmail and password are required")
		return
	}

	resp, err := h.authService.Login(r.Context(), req.UsernameOrEmail, req.Password)
	if err != nil {
		h.logger.Debug("Auth handler: login rejected",
			"username_or_email", req.UsernameOrEmail,
			"error", err.Error())
		handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(resp))
}

// ForgotPassword handles POST /api/auth/forgot-password.
func (h *Auth) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Email == "" {
		handleValidationError(w, "email is required")
		return
	}

	message, err := h.authService.ForgotPassword(r.Context(), req.Email)
	if err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, message)
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *Auth) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		handleValidationError(w, err.Error())
		return
	}
	if req.Email == "" || req.OTP == "" || req.NewPassword == "" {
		handleValidationError(w, "email, otp and newPassword are required")
		return
	}

	message, err := h.authService.ResetPassword(r.Context(), req.Email, req.OTP, req.NewPassword)
	if err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, message)
}

// Logout handles POST /api/auth/logout. The route sits behind the
// authenticate middleware, so the username is always in context.
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	username, ok := h.contextManager.GetUsernameFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing authorization token"})
		return
	}

	if err := h.authService.Logout(r.Context(), username); err != nil {
		handleError(w, err)
		return
	}

	writeMessage(w, "Logged out successfully")
}
