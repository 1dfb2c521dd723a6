package model

import (
	"context"
	"time"
)

// TokenClass distinguishes the two session slots held per account.
type TokenClass uint8

const (
	TokenClassAccess TokenClass = iota
	TokenClassRefresh
)

// String returns a stable name used in Redis keys and log fields.
func (c TokenClass) String() string {
	switch c {
	case TokenClassAccess:
		return "access"
	case TokenClassRefresh:
		return "refresh"
	}
	return "unknown"
}

// SessionStore persists the single currently-valid token per (username,
// class). Put overwrites unconditionally: last login wins, and the
// superseded token stops passing IsCurrent even while its signature is
// still cryptographically valid. That overwrite is the enforcement
// mechanism for single active session and remote logout.
type SessionStore interface {
	Put(ctx context.Context, username string, class TokenClass, token string, ttl time.Duration) error
	// Get returns the stored token or ErrNotFound when the slot is empty.
	Get(ctx context.Context, username string, class TokenClass) (string, error)
	// IsCurrent reports whether presented equals the stored token. An empty
	// slot or a mismatch both yield false without error.
	IsCurrent(ctx context.Context, username string, class TokenClass, presented string) (bool, error)
	// RevokeAll deletes both slots for the username. Idempotent.
	RevokeAll(ctx context.Context, username string) error
}
