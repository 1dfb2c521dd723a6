package service

import (
	"context"
	"fmt"
	"time"

	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

// Session mints token pairs and keeps the single currently-valid pair per
// account in the ephemeral store. It composes the TokenManager and
// SessionStore.
type Session struct {
	manager    model.TokenManager
	store      model.SessionStore
	logger     *logger.Logger
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewSession creates the session service. The TTLs apply to the store
// entries and should match the lifetimes the token manager embeds.
func NewSession(manager model.TokenManager, store model.SessionStore, logger *logger.Logger, accessTTL, refreshTTL time.Duration) *Session {
	return &Session{
		manager:    manager,
		store:      store,
		logger:     logger,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Issue mints an access/refresh pair for username and stores both,
// overwriting any previous session. Last login wins.
func (s *Session) Issue(ctx context.Context, username string) (accessToken string, refreshToken string, err error) {
	access, err := s.manager.GenerateAccessToken(username)
	if err != nil {
		return "", "", fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(username)
	if err != nil {
		return "", "", fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.Put(ctx, username, model.TokenClassAccess, access, s.accessTTL); err != nil {
		return "", "", fmt.Errorf("persist access: %w", err)
	}
	if err := s.store.Put(ctx, username, model.TokenClassRefresh, refresh, s.refreshTTL); err != nil {
		return "", "", fmt.Errorf("persist refresh: %w", err)
	}

	s.logger.Debug("Session service: token pair issued", "username", username)

	return access, refresh, nil
}

// Authenticate resolves an access token to its username. The token must
// carry a valid signature and expiry, and must still be the current token
// for that account: a structurally valid token is rejected once superseded
// by a newer login or revoked by a logout.
func (s *Session) Authenticate(ctx context.Context, accessToken string) (string, error) {
	username, err := s.manager.ParseAccessToken(accessToken)
	if err != nil {
		return "", err
	}

	current, err := s.store.IsCurrent(ctx, username, model.TokenClassAccess, accessToken)
	if err != nil {
		return "", fmt.Errorf("failed to check session: %w", err)
	}
	if !current {
		return "", fmt.Errorf("%w: session superseded or revoked", model.ErrInvalidToken)
	}

	return username, nil
}

// RevokeAll invalidates both standing tokens for username. Idempotent.
func (s *Session) RevokeAll(ctx context.Context, username string) error {
	if err := s.store.RevokeAll(ctx, username); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}

	s.logger.Info("Session service: sessions revoked", "username", username)

	return nil
}
