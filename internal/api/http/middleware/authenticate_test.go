package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	httpctx "github.com/tronghn/taskhub/internal/api/http/context"
	"github.com/tronghn/taskhub/internal/model"
	"github.com/tronghn/taskhub/internal/testutil"
)

type mockSessionService struct {
	mock.Mock
}

func (m *mockSessionService) Authenticate(ctx context.Context, accessToken string) (string, error) {
	args := m.Called(ctx, accessToken)
	return args.String(0), args.Error(1)
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		authHeader   string
		sessionUser  string
		sessionErr   error
		wantStatus   int
		wantUsername string
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer garbage",
			sessionErr: model.ErrInvalidToken,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:         "valid token",
			authHeader:   "Bearer good-token",
			sessionUser:  "alice",
			wantStatus:   http.StatusOK,
			wantUsername: "alice",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sessions := &mockSessionService{}
			if tt.authHeader != "" {
				sessions.On("Authenticate", mock.Anything, mock.Anything).Return(tt.sessionUser, tt.sessionErr)
			}

			ctxMgr := httpctx.NewManager()
			mw := NewAuthenticate(sessions, ctxMgr, testutil.MakeNoopLogger())

			var gotUsername string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUsername, _ = ctxMgr.GetUsernameFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			mw.Handle(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUsername, gotUsername)
		})
	}
}

func TestAuthenticate_SupersededTokenRejected(t *testing.T) {
	sessions := &mockSessionService{}
	sessions.On("Authenticate", mock.Anything, "stale").Return("", errors.New("session superseded or revoked"))

	mw := NewAuthenticate(sessions, httpctx.NewManager(), testutil.MakeNoopLogger())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Authorization", "Bearer stale")
	rec := httptest.NewRecorder()

	mw.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}
