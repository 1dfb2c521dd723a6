package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tronghn/taskhub/internal/apierr"
	"github.com/tronghn/taskhub/internal/model"
)

func TestHandleError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "api error keeps its status",
			err:        apierr.NewErrAccountDisabled(),
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"account is disabled"}`,
		},
		{
			name:       "wrapped api error unwraps",
			err:        fmt.Errorf("login: %w", apierr.NewErrInvalidPassword()),
			wantStatus: http.StatusUnauthorized,
			wantBody:   `{"error":"invalid password"}`,
		},
		{
			name:       "store not found",
			err:        model.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"not found"}`,
		},
		{
			name:       "unknown error hides detail",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"internal server error"}`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		})
	}
}
