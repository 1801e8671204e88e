package domain

import (
	"context"
	"time"
)

// Role is the part a user plays at the conference.
type Role string

const (
	RoleAttendee  Role = "attendee"
	RoleSpeaker   Role = "speaker"
	RoleOrganizer Role = "organizer"
)

// User is a registered conference participant.
// swagger:model User
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Salt         string    `json:"-"`
	Roles        []Role    `json:"roles"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// HasRole reports whether the user holds role r.
func (u *User) HasRole(r Role) bool {
	for _, have := range u.Roles {
		if have == r {
			return true
		}
	}
	return false
}

// RoleCodes returns the user's roles as plain strings, e.g. for token claims.
func (u *User) RoleCodes() []string {
	out := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		out = append(out, string(r))
	}
	return out
}

// UserDirectory answers membership questions about speakers and attendees.
// The scheduling core only queries it.
type UserDirectory interface {
	IsKnownSpeaker(id string) bool
	IsKnownAttendee(id string) bool
	ListIDsByRole(role Role) []string
}

// UserRepository defines the interface for user storage.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	ListIDsByRole(ctx context.Context, role Role) ([]string, error)
}

// PasswordHasher handles salt generation, hashing, and verification.
type PasswordHasher interface {
	GenerateSalt() (string, error)
	Hash(salt, password string) (hash string, err error)
	Compare(hash, salt, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, roles []string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// AuthService authenticates users against stored credentials.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
