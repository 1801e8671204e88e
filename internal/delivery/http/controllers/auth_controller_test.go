package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return f.token, f.user, f.err
}

func TestAuthController_Login(t *testing.T) {
	user := &domain.User{ID: "u1", Email: "ada@example.com", Roles: []domain.Role{domain.RoleSpeaker}, PasswordHash: "secret-hash"}
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{name: "success", body: `{"email":"ada@example.com","password":"pw"}`, svc: &fakeAuthService{token: "tok", user: user}, wantStatus: http.StatusOK},
		{name: "bad credentials", body: `{"email":"ada@example.com","password":"pw"}`, svc: &fakeAuthService{err: domain.ErrInvalidCredentials}, wantStatus: http.StatusUnauthorized, wantCode: "unauthorized"},
		{name: "missing password", body: `{"email":"ada@example.com"}`, svc: &fakeAuthService{}, wantStatus: http.StatusBadRequest, wantCode: "bad_request"},
		{name: "failure", body: `{"email":"ada@example.com","password":"pw"}`, svc: &fakeAuthService{err: errBoom}, wantStatus: http.StatusInternalServerError, wantCode: "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewAuthController(discardLogger(), tt.svc).Login(rr, httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, decode(t, rr).Error.Code)
				return
			}
			assert.NotContains(t, rr.Body.String(), "secret-hash")
			got := decodeData[LoginResponse](t, rr)
			assert.Equal(t, "tok", got.Token)
			assert.Equal(t, "u1", got.User.ID)
		})
	}
}
