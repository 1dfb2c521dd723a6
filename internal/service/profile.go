package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/password"
)

// Profile implements self-service account management for an authenticated
// user: viewing and editing the profile, changing the password, and
// deleting the account. Changes that affect identity or credentials
// revoke the user's sessions.
type Profile struct {
	users    model.UserStore
	otp      *OTP
	sessions *Session
	logger   *logger.Logger
}

// NewProfile creates the profile service.
func NewProfile(users model.UserStore, otp *OTP, sessions *Session, logger *logger.Logger) *Profile {
	return &Profile{
		users:    users,
		otp:      otp,
		sessions: sessions,
		logger:   logger,
	}
}

// UpdateProfileParams carries the editable profile fields. Nil fields are
// left unchanged.
type UpdateProfileParams struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Phone     *string
}

// Get returns the caller's account.
func (s *Profile) Get(ctx context.Context, username string) (model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return model.User{}, apierr.NewErrUserNotFound()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// Update edits the caller's profile. Changing the email resets the
// verified flag and sends a fresh verification code to the new address.
// Changing the username revokes all sessions, since standing tokens are
// bound to the old name.
func (s *Profile) Update(ctx context.Context, username string, params UpdateProfileParams) (model.User, error) {
	user, err := s.Get(ctx, username)
	if err != nil {
		return model.User{}, err
	}

	usernameChanged := false
	emailChanged := false

	if params.Username != nil && *params.Username != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, *params.Username)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return model.User{}, apierr.NewErrUsernameTaken()
		}
		user.Username = *params.Username
		usernameChanged = true
	}

	if params.Email != nil && *params.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, *params.Email)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return model.User{}, apierr.NewErrEmailTaken()
		}
		user.Email = *params.Email
		user.Verified = false
		emailChanged = true
	}

	if params.FirstName != nil {
		user.FirstName = *params.FirstName
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Phone != nil {
		user.Phone = *params.Phone
	}
	user.UpdatedAt = time.Now()

	saved, err := s.users.Update(ctx, user)
	if errors.Is(err, model.ErrConflict) {
		if usernameChanged {
			return model.User{}, apierr.NewErrUsernameTaken()
		}
		return model.User{}, apierr.NewErrEmailTaken()
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	if emailChanged {
		if err := s.otp.SendVerificationCode(ctx, saved.Email, saved.Username); err != nil {
			return model.User{}, err
		}
	}

	if usernameChanged || emailChanged {
		if err := s.sessions.RevokeAll(ctx, username); err != nil {
			return model.User{}, err
		}
	}

	s.logger.Info("Profile service: profile updated", "username", saved.Username)

	return saved, nil
}

// ChangePassword replaces the caller's password after checking the
// current one, then revokes all sessions.
func (s *Profile) ChangePassword(ctx context.Context, username, currentPassword, newPassword, confirmPassword string) (string, error) {
	if newPassword != confirmPassword {
		return "", apierr.NewErrPasswordMismatch()
	}

	user, err := s.Get(ctx, username)
	if err != nil {
		return "", err
	}

	if !password.Verify(user.PasswordHash, currentPassword) {
		return "", apierr.NewErrInvalidPassword()
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	if _, err := s.users.Update(ctx, user); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.sessions.RevokeAll(ctx, username); err != nil {
		return "", err
	}

	s.logger.Info("Profile service: password changed", "username", username)

	return "Password changed successfully. Please login again.", nil
}

// Delete removes the caller's account and revokes all sessions. Tasks and
// categories go with it through the store's foreign keys.
func (s *Profile) Delete(ctx context.Context, username string) error {
	user, err := s.Get(ctx, username)
	if err != nil {
		return err
	}

	if err := s.sessions.RevokeAll(ctx, username); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("Profile service: account deleted", "username", username)

	return nil
}
