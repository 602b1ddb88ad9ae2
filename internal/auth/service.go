package auth

import (
	"context"
	"errors"
	"time"

	"libraryql/internal/user"
)

var (
	// ErrNotAuthenticated is returned when an operation requiring a caller
	// identity runs with an anonymous context.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrInvalidCredentials is returned on a login mismatch.
	ErrInvalidCredentials = errors.New("wrong credentials")
)

// Service issues and verifies credential tokens. Accounts carry no stored
// password: login succeeds only with the single configured credential value.
type Service struct {
	secret   string
	password string
	ttl      time.Duration
	users    *user.Service
}

// NewService creates an auth service. password is the fixed credential
// value every login is checked against.
func NewService(secret, password string, ttl time.Duration, users *user.Service) *Service {
	return &Service{secret: secret, password: password, ttl: ttl, users: users}
}

// Login verifies the username and the fixed credential and returns a signed
// token. Unknown users and wrong passwords are indistinguishable to the
// caller; store failures are surfaced as-is.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if password != s.password {
		return "", ErrInvalidCredentials
	}
	return GenerateToken(s.secret, u.Username, u.ID, s.ttl)
}

// Authenticate verifies a token and resolves it to the user it was issued
// for.
func (s *Service) Authenticate(ctx context.Context, token string) (user.User, error) {
	claims, err := ParseToken(s.secret, token)
	if err != nil {
		return user.User{}, err
	}
	return s.users.GetByID(ctx, claims.UserID)
}
