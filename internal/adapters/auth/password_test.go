package auth

import (
	"regexp"
	"strings"
	"testing"

	"multitrackscheduling/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt, "salt should be 64 hex characters")
		assert.False(t, seen[salt], "salts must not repeat")
		seen[salt] = true
	}
}

func TestBcryptHasher_Compare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)
	long := strings.Repeat("x", 100)

	hash, err := h.Hash(salt, long)
	require.NoError(t, err)

	tests := []struct {
		name     string
		salt     string
		password string
		wantErr  error
	}{
		{"match", salt, long, nil},
		{"wrong password", salt, long[:99], domain.ErrInvalidCredentials},
		{"wrong salt", otherSalt, long, domain.ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(hash, tt.salt, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBcryptHasher_Compare_MalformedHash(t *testing.T) {
	err := NewBcryptHasher(bcrypt.MinCost).Compare("not-a-hash", "salt", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}
