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
	"github.com/tronghn/taskhub/internal/password"
)

// Auth orchestrates the registration → verification → login →
// forgot-password → reset-password → logout protocol. It composes the
// user store, the OTP engine, and the session service; every domain error
// is constructed here at the point of detection.
type Auth struct {
	users    model.UserStore
	otp      *OTP
	sessions *Session
	logger   *logger.Logger
}

// NewAuth creates the auth orchestrator.
func NewAuth(users model.UserStore, otp *OTP, sessions *Session, logger *logger.Logger) *Auth {
	return &Auth{
		users:    users,
		otp:      otp,
		sessions: sessions,
		logger:   logger,
	}
}

// Register creates an unverified, inactive account and issues a
// verification code to its email. The uniqueness checks here are
// optimistic; a constraint violation from the store is translated back
// into the same taken-username/email errors.
func (a *Auth) Register(ctx context.Context, username, email, plainPassword string) (string, error) {
	a.logger.Debug("Auth service: starting registration", "username", username)

	taken, err := a.users.ExistsByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return "", apierr.NewErrUsernameTaken()
	}

	taken, err = a.users.ExistsByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if taken {
		return "", apierr.NewErrEmailTaken()
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Verified:     false,
		Active:       false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	saved, err := a.users.Create(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		return "", a.classifyConflict(ctx, username)
	}
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	if err := a.otp.SendVerificationCode(ctx, saved.Email, saved.Username); err != nil {
		return "", err
	}

	a.logger.Info("Auth service: registration completed", "username", username)

	return "Registration successful. Please check your email for verification code.", nil
}

// classifyConflict decides which uniqueness constraint rejected a racing
// create, so the caller sees the same error as if the optimistic check
// had caught it.
func (a *Auth) classifyConflict(ctx context.Context, username string) error {
	taken, err := a.users.ExistsByUsername(ctx, username)
	if err == nil && taken {
		return apierr.NewErrUsernameTaken()
	}
	return apierr.NewErrEmailTaken()
}

// VerifyAccount consumes a live verification code and, on success, flips
// the account to verified+active and issues its first session.
func (a *Auth) VerifyAccount(ctx context.Context, email, code string) (model.AuthResponse, error) {
	ok, err := a.otp.Verify(ctx, email, code, model.OTPPurposeVerifyAccount)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !ok {
		return model.AuthResponse{}, apierr.NewErrInvalidOTP()
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.AuthResponse{}, apierr.NewErrUserNotFound()
	}
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	user.Verified = true
	user.Active = true
	saved, err := a.users.Update(ctx, user)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	access, refresh, err := a.sessions.Issue(ctx, saved.Username)
	if err != nil {
		return model.AuthResponse{}, err
	}

	a.logger.Info("Auth service: account verified", "username", saved.Username)

	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     saved.Username,
		Email:        saved.Email,
	}, nil
}

// Login authenticates by username or email. The preconditions are checked
// in a fixed order: exists, password, active, verified. A disabled account
// reports disabled rather than leaking its verification status.
func (a *Auth) Login(ctx context.Context, usernameOrEmail, plainPassword string) (model.AuthResponse, error) {
	user, err := a.users.GetByUsername(ctx, usernameOrEmail)
	if errors.Is(err, model.ErrNotFound) {
		user, err = a.users.GetByEmail(ctx, usernameOrEmail)
	}
	if errors.Is(err, model.ErrNotFound) {
		return model.AuthResponse{}, apierr.NewErrUserNotFound()
	}
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !password.Verify(user.PasswordHash, plainPassword) {
		return model.AuthResponse{}, apierr.NewErrInvalidPassword()
	}

	if !user.Active {
		return model.AuthResponse{}, apierr.NewErrAccountDisabled()
	}

	if !user.Verified {
		return model.AuthResponse{}, apierr.NewErrAccountNotVerified()
	}

	access, refresh, err := a.sessions.Issue(ctx, user.Username)
	if err != nil {
		return model.AuthResponse{}, err
	}

	a.logger.Info("Auth service: login successful", "username", user.Username)

	return model.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		Email:        user.Email,
	}, nil
}

// ForgotPassword issues a password-reset code for a verified account.
func (a *Auth) ForgotPassword(ctx context.Context, email string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierr.NewErrUserNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if !user.Verified {
		return "", apierr.NewErrAccountNotVerified()
	}

	if err := a.otp.SendPasswordResetCode(ctx, user.Email, user.Username); err != nil {
		return "", err
	}

	return "Password reset code sent to your email.", nil
}

// ResetPassword consumes a live reset code, replaces the credential, and
// revokes all standing sessions so every device must log in again.
func (a *Auth) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	ok, err := a.otp.Verify(ctx, email, code, model.OTPPurposeResetPassword)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", apierr.NewErrInvalidOTP()
	}

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierr.NewErrUserNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	if _, err := a.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	if err := a.sessions.RevokeAll(ctx, user.Username); err != nil {
		return "", err
	}

	a.logger.Info("Auth service: password reset completed", "username", user.Username)

	return "Password reset successfully. Please login with your new password.", nil
}

// Logout revokes both standing tokens for the authenticated caller.
// Calling it without a live session is a no-op.
func (a *Auth) Logout(ctx context.Context, username string) error {
	return a.sessions.RevokeAll(ctx, username)
}

// ResendVerification reissues a verification code for a still-unverified
// account, replacing any live code.
func (a *Auth) ResendVerification(ctx context.Context, email string) (string, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return "", apierr.NewErrUserNotFound()
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if user.Verified {
		return "", apierr.NewErrAlreadyVerified()
	}

	if err := a.otp.SendVerificationCode(ctx, user.Email, user.Username); err != nil {
		return "", err
	}

	return "Verification code resent to your email.", nil
}
