package identity

import "context"

// CredentialHasher is the one-way password transform the service verifies
// and replaces credentials with.
type CredentialHasher interface {
	Hash(plaintext string) ([]byte, error)
	Verify(plaintext string, hash []byte) bool
}

// Pagination describes a page of the user roster.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

// Service manages roster and profile operations for existing users.
type Service struct {
	repo   Repository
	hasher CredentialHasher
}

// NewService creates a new identity service.
func NewService(repo Repository, hasher CredentialHasher) *Service {
	return &Service{repo: repo, hasher: hasher}
}

// List returns one roster page, newest accounts first.
func (s *Service) List(ctx context.Context, page, limit int) ([]User, Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	users, err := s.repo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, Pagination{}, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, Pagination{}, err
	}

	pages := (total + limit - 1) / limit
	return users, Pagination{Page: page, Limit: limit, Total: total, Pages: pages}, nil
}

// UpdateStatus activates or deactivates the target account. A requester can
// never deactivate their own account, regardless of role.
func (s *Service) UpdateStatus(ctx context.Context, requesterID, targetID string, status Status) (User, error) {
	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return User{}, err
	}
	if targetID == requesterID && status == StatusInactive {
		return User{}, ErrSelfDeactivation
	}
	return s.repo.Update(ctx, targetID, UserUpdate{Status: &status})
}

// UpdateProfile changes the user's display name and/or email. An email change
// is checked for uniqueness against all other accounts; the store's unique
// index backstops the race between that check and the write.
func (s *Service) UpdateProfile(ctx context.Context, userID, fullName, email string) (User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return User{}, err
	}

	upd := UserUpdate{}
	if fullName != "" {
		upd.FullName = &fullName
	}
	if email != "" {
		normalized := NormalizeEmail(email)
		if normalized != user.Email {
			if other, err := s.repo.FindByEmail(ctx, normalized); err == nil && other.ID != userID {
				return User{}, ErrDuplicateEmail
			}
			upd.Email = &normalized
		}
	}
	return s.repo.Update(ctx, userID, upd)
}

// ChangePassword replaces the credential after verifying the current one.
// Previously issued tokens stay valid until they expire.
// TODO: bump a per-user token epoch here and check it during token
// verification so a password change revokes outstanding sessions.
func (s *Service) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(currentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	_, err = s.repo.Update(ctx, userID, UserUpdate{PasswordHash: hash})
	return err
}
