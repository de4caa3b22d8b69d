package core

import (
	"context"
	"errors"
)

// RepositoryAuthService implements AuthService on top of the user repository,
// the bcrypt hasher, and the token service.
type RepositoryAuthService struct {
	users  UserRepository
	tokens *TokenService
}

func NewRepositoryAuthService(users UserRepository, tokens *TokenService) *RepositoryAuthService {
	return &RepositoryAuthService{users: users, tokens: tokens}
}

// Authenticate verifies an email/password pair against stored credentials.
// Unknown email and wrong password both return ErrInvalidCredentials; the
// unknown-email path still runs a bcrypt comparison so response timing does
// not reveal whether the account exists.
func (s *RepositoryAuthService) Authenticate(ctx context.Context, email, password string) (User, error) {
	if email == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			VerifyPassword(password, dummyHash)
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if !VerifyPassword(password, u.HashedPassword) {
		return User{}, ErrInvalidCredentials
	}
	return userFromRecord(u), nil
}

// ResolveSession validates a bearer token and resolves its subject to a live
// account. Invalid tokens and unknown subjects both yield ErrTokenRejected;
// a resolved but deactivated account yields ErrInactiveUser.
func (s *RepositoryAuthService) ResolveSession(ctx context.Context, tokenString string) (User, error) {
	subject, err := s.tokens.Validate(tokenString)
	if err != nil {
		return User{}, ErrTokenRejected
	}

	u, err := s.users.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrTokenRejected
		}
		return User{}, err
	}

	if !u.IsActive {
		return User{}, ErrInactiveUser
	}
	return userFromRecord(u), nil
}

func userFromRecord(u *UserRecord) User {
	return User{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
