package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePasswordHasher struct{}

func (fakePasswordHasher) GenerateSalt() (string, error) { return "salt", nil }
func (fakePasswordHasher) Hash(salt, password string) (string, error) {
	return salt + ":" + password, nil
}
func (fakePasswordHasher) Compare(hash, salt, password string) error {
	if hash != salt+":"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type fakeTokenIssuer struct {
	err    error
	roles  []string
	expiry time.Duration
}

func (f *fakeTokenIssuer) Issue(userID, email string, roles []string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.roles = roles
	f.expiry = expiry
	return "token-" + userID, nil
}

type failingUserRepo struct{ fakeUserRepo }

func (failingUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, errBoom
}

func TestAuthService_Login(t *testing.T) {
	u := user("u1", domain.RoleSpeaker, domain.RoleAttendee)
	u.Email = "ada@example.com"
	u.Salt = "pepper"
	u.PasswordHash = "pepper:secret123"

	tests := []struct {
		name      string
		repo      domain.UserRepository
		issuerErr error
		email     string
		password  string
		wantToken string
		wantErr   error
	}{
		{name: "success", repo: newFakeUserRepo(u), email: "ada@example.com", password: "secret123", wantToken: "token-u1"},
		{name: "email normalized", repo: newFakeUserRepo(u), email: "  ADA@example.com ", password: "secret123", wantToken: "token-u1"},
		{name: "unknown email", repo: newFakeUserRepo(u), email: "bob@example.com", password: "secret123", wantErr: domain.ErrInvalidCredentials},
		{name: "wrong password", repo: newFakeUserRepo(u), email: "ada@example.com", password: "nope", wantErr: domain.ErrInvalidCredentials},
		{name: "repository failure", repo: &failingUserRepo{}, email: "ada@example.com", password: "secret123", wantErr: errBoom},
		{name: "issuer failure", repo: newFakeUserRepo(u), issuerErr: errBoom, email: "ada@example.com", password: "secret123", wantErr: errBoom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issuer := &fakeTokenIssuer{err: tt.issuerErr}
			svc := NewAuthService(tt.repo, fakePasswordHasher{}, issuer, time.Hour)

			token, got, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, "u1", got.ID)
			assert.Equal(t, []string{"speaker", "attendee"}, issuer.roles)
			assert.Equal(t, time.Hour, issuer.expiry)
		})
	}
}
