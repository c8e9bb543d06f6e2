package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/roster-hq/roster/internal/identity"
)

// Service orchestrates signup and login against the user store.
type Service struct {
	repo   identity.Repository
	hasher PasswordHasher
	tokens *TokenService
}

// NewService creates a new authentication service.
func NewService(repo identity.Repository, hasher PasswordHasher, tokens *TokenService) *Service {
	return &Service{repo: repo, hasher: hasher, tokens: tokens}
}

// Signup registers a new account and issues a session token for it. The very
// first account in an empty store becomes the admin; everyone after is a
// regular user. The store's unique index on email is the final word on
// uniqueness, so a duplicate reported at write time surfaces the same way as
// one caught by the pre-check.
func (s *Service) Signup(ctx context.Context, fullName, email, password string) (identity.User, string, error) {
	normalized := identity.NormalizeEmail(email)

	if _, err := s.repo.FindByEmail(ctx, normalized); err == nil {
		return identity.User{}, "", identity.ErrDuplicateEmail
	}

	count, err := s.repo.Count(ctx)
	if err != nil {
		return identity.User{}, "", err
	}
	role := identity.RoleUser
	if count == 0 {
		role = identity.RoleAdmin
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return identity.User{}, "", err
	}

	user := identity.User{
		ID:           uuid.NewString(),
		Email:        normalized,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		Status:       identity.StatusActive,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return identity.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return identity.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a session token. Unknown email and
// wrong password fail identically so callers cannot tell which one it was.
// The deactivation check runs only after the password verifies.
func (s *Service) Login(ctx context.Context, email, password string) (identity.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, identity.NormalizeEmail(email))
	if err != nil {
		return identity.User{}, "", identity.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return identity.User{}, "", identity.ErrInvalidCredentials
	}
	if user.Status == identity.StatusInactive {
		return identity.User{}, "", identity.ErrAccountDeactivated
	}

	now := time.Now().UTC()
	user, err = s.repo.Update(ctx, user.ID, identity.UserUpdate{LastLoginAt: &now})
	if err != nil {
		return identity.User{}, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return identity.User{}, "", err
	}
	return user, token, nil
}
