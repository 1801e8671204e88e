package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"multitrackscheduling/internal/delivery/http/helpers"
	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenVerifier implements domain.TokenVerifier for tests.
type fakeTokenVerifier struct {
	userID string
	err    error
}

func (f *fakeTokenVerifier) Verify(_ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.userID, nil
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name          string
		authHeader    string
		verifier      domain.TokenVerifier
		wantStatus    int
		wantMessage   string
		nextCalled    bool
		wantContextID string
	}{
		{
			name:          "valid token sets context and calls next",
			authHeader:    "Bearer valid-token",
			verifier:      &fakeTokenVerifier{userID: "user-123"},
			wantStatus:    http.StatusOK,
			nextCalled:    true,
			wantContextID: "user-123",
		},
		{
			name:        "missing authorization header",
			verifier:    &fakeTokenVerifier{userID: "user-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing authorization header",
		},
		{
			name:        "no Bearer prefix",
			authHeader:  "Basic abc",
			verifier:    &fakeTokenVerifier{userID: "user-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid authorization format",
		},
		{
			name:        "empty token after Bearer",
			authHeader:  "Bearer   ",
			verifier:    &fakeTokenVerifier{userID: "user-123"},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "missing token",
		},
		{
			name:        "verifier returns error",
			authHeader:  "Bearer bad-token",
			verifier:    &fakeTokenVerifier{err: errors.New("token is expired")},
			wantStatus:  http.StatusUnauthorized,
			wantMessage: "invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			var capturedUserID string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				capturedUserID, _ = UserIDFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
			handler := RequireAuth(tt.verifier, logger)(next)

			req := httptest.NewRequest(http.MethodGet, "http://test/users/me/schedule", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			assert.Equal(t, tt.nextCalled, nextCalled, "next handler called")
			if tt.nextCalled {
				assert.Equal(t, tt.wantContextID, capturedUserID, "user ID in context")
				return
			}
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
			assert.Equal(t, tt.wantMessage, envelope.Error.Message)
		})
	}
}
