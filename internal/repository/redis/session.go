package redis

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tronghn/taskhub/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

const (
	accessKeyPrefix  = "jwt:"
	refreshKeyPrefix = "refresh:"
)

// SessionRepository holds the single currently-valid token per (username,
// class). The store TTL runs independently of the expiry embedded in the
// token itself.
type SessionRepository struct {
	rdb *redis.Client
}

// NewSessionRepository creates a SessionRepository backed by the given client.
func NewSessionRepository(rdb *redis.Client) *SessionRepository {
	return &SessionRepository{rdb: rdb}
}

func sessionKey(class model.TokenClass, username string) string {
	switch class {
	case model.TokenClassAccess:
		return accessKeyPrefix + username
	case model.TokenClassRefresh:
		return refreshKeyPrefix + username
	}
	return "session:" + class.String() + ":" + username
}

// Put stores the token, unconditionally overwriting the previous one.
// Last writer wins: the superseded token stops passing IsCurrent.
func (r *SessionRepository) Put(ctx context.Context, username string, class model.TokenClass, token string, ttl time.Duration) error {
	if err := r.rdb.Set(ctx, sessionKey(class, username), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s token: %w", class, err)
	}
	return nil
}

// Get returns the stored token or model.ErrNotFound when the slot is empty.
func (r *SessionRepository) Get(ctx context.Context, username string, class model.TokenClass) (string, error) {
	token, err := r.rdb.Get(ctx, sessionKey(class, username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("failed to get %s token: %w", class, err)
	}
	return token, nil
}

// IsCurrent reports whether presented equals the stored token. An empty
// slot and a mismatch both yield false.
func (r *SessionRepository) IsCurrent(ctx context.Context, username string, class model.TokenClass, presented string) (bool, error) {
	stored, err := r.Get(ctx, username, class)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1, nil
}

// RevokeAll deletes both token slots for the username. Deleting absent
// keys is a no-op, so repeated calls are harmless.
func (r *SessionRepository) RevokeAll(ctx context.Context, username string) error {
	keys := []string{
		sessionKey(model.TokenClassAccess, username),
		sessionKey(model.TokenClassRefresh, username),
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to revoke sessions: %w", err)
	}
	return nil
}
