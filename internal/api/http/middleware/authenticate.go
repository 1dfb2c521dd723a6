package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/logger"
	"github.com/tronghn/taskhub/internal/model"
)

// SessionService resolves usernames from bearer tokens.
type SessionService interface {
	Authenticate(ctx context.Context, accessToken string) (string, error)
}

// Authenticate validates bearer tokens and injects the username into the
// request context. Requests without a valid, still-current token never
// reach the wrapped handler.
type Authenticate struct {
	sessions       SessionService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates the authenticate middleware.
func NewAuthenticate(sessions SessionService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{sessions: sessions, contextManager: contextManager, logger: logger}
}

// Handle wraps next with bearer-token authentication.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		username, authErr := m.authenticate(r.Context(), tokenString)
		if authErr != nil {
			writeAuthError(w, authErr)
			return
		}

		ctx := m.contextManager.SetUsernameToContext(r.Context(), username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (string, *apierr.APIError) {
	if tokenString == "" {
		return "", apierr.NewErrMissingToken()
	}

	username, err := m.sessions.Authenticate(ctx, tokenString)
	if err != nil {
		m.logger.Debug("authenticate middleware: token rejected", "error", err.Error())
		return "", apierr.NewErrInvalidToken()
	}

	return username, nil
}

func writeAuthError(w http.ResponseWriter, apiErr *apierr.APIError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	w.Write([]byte(`{"error":"` + apiErr.Message + `"}`))
}
