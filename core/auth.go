package core

import (
	"context"
	"errors"
	"time"
)

// User represents an authenticated principal returned to handlers.
// It never carries the password hash.
type User struct {
	ID        int64
	Email     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

var (
	// ErrInvalidCredentials is returned when email/password is wrong.
	// It never distinguishes an unknown account from a bad password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrTokenRejected covers every token failure: bad signature, expired,
	// malformed payload, missing subject, unknown subject.
	ErrTokenRejected = errors.New("token rejected")
	// ErrInactiveUser means the token resolved to a deactivated account.
	ErrInactiveUser = errors.New("inactive user")
	// ErrForbidden means the acting user does not own the target resource.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound means the target row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrRateLimited means too many login attempts from one client.
	ErrRateLimited = errors.New("rate limited")
)

// AuthService defines authentication behaviour.
type AuthService interface {
	Authenticate(ctx context.Context, email, password string) (User, error)
	ResolveSession(ctx context.Context, tokenString string) (User, error)
}

// Authorize allows a mutation only when the acting user owns the target row.
func Authorize(u User, ownerID int64) error {
	if u.ID != ownerID {
		return ErrForbidden
	}
	return nil
}
