// Package context moves the authenticated username between middleware
// and handlers through the request context.
package context

import (
	"context"
)

type contextKey string

const usernameKey contextKey = "username"

// Manager implements model.ContextManager over a private context key, so
// no other package can inject a username.
type Manager struct{}

// NewManager creates a context manager.
func NewManager() *Manager {
	return &Manager{}
}

// SetUsernameToContext returns a child context carrying username.
func (m *Manager) SetUsernameToContext(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// GetUsernameFromContext returns the username set by the authenticate
// middleware, or false when the request never passed through it.
func (m *Manager) GetUsernameFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	if !ok || username == "" {
		return "", false
	}
	return username, true
}
