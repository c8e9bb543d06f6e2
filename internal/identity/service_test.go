package identity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type bcryptHasher struct{}

func (bcryptHasher) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.MinCost)
}

func (bcryptHasher) Verify(plaintext string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}

func seedUser(t *testing.T, repo Repository, email string, role Role, createdAt time.Time) User {
	t.Helper()
	hash, err := bcryptHasher{}.Hash("Pw12345A")
	require.NoError(t, err)

	user := User{
		ID:           uuid.NewString(),
		Email:        email,
		FullName:     "Test User",
		PasswordHash: hash,
		Role:         role,
		Status:       StatusActive,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestListPaginates(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcryptHasher{})
	ctx := context.Background()

	base := time.Now().UTC()
	for i := 0; i < 5; i++ {
		seedUser(t, repo, fmt.Sprintf("u%d@x.com", i), RoleUser, base.Add(time.Duration(i)*time.Second))
	}

	users, pagination, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, Pagination{Page: 1, Limit: 2, Total: 5, Pages: 3}, pagination)
	// Newest first.
	assert.Equal(t, "u4@x.com", users[0].Email)

	users, pagination, err = svc.List(ctx, 3, 2)
	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, 3, pagination.Pages)

	users, _, err = svc.List(ctx, 10, 2)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestUpdateStatusBlocksSelfDeactivation(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcryptHasher{})
	ctx := context.Background()

	admin := seedUser(t, repo, "admin@x.com", RoleAdmin, time.Now().UTC())
	other := seedUser(t, repo, "user@x.com", RoleUser, time.Now().UTC())

	_, err := svc.UpdateStatus(ctx, admin.ID, admin.ID, StatusInactive)
	assert.ErrorIs(t, err, ErrSelfDeactivation)

	// Re-activating yourself is allowed.
	updated, err := svc.UpdateStatus(ctx, admin.ID, admin.ID, StatusActive)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, updated.Status)

	updated, err = svc.UpdateStatus(ctx, admin.ID, other.ID, StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, StatusInactive, updated.Status)
}

func TestUpdateStatusUnknownTarget(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcryptHasher{})

	admin := seedUser(t, repo, "admin@x.com", RoleAdmin, time.Now().UTC())

	_, err := svc.UpdateStatus(context.Background(), admin.ID, uuid.NewString(), StatusInactive)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProfileEmailClash(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcryptHasher{})
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", RoleUser, time.Now().UTC())
	seedUser(t, repo, "bob@x.com", RoleUser, time.Now().UTC())

	_, err := svc.UpdateProfile(ctx, alice.ID, "", "Bob@X.com")
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Keeping your own email in a different case is not a clash.
	updated, err := svc.UpdateProfile(ctx, alice.ID, "Alice Renamed", "Alice@X.com")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", updated.Email)
	assert.Equal(t, "Alice Renamed", updated.FullName)
}

func TestChangePassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcryptHasher{})
	ctx := context.Background()

	user := seedUser(t, repo, "alice@x.com", RoleUser, time.Now().UTC())

	err := svc.ChangePassword(ctx, user.ID, "wrong", "NewPw12345A")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "Pw12345A", "NewPw12345A"))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, bcryptHasher{}.Verify("NewPw12345A", stored.PasswordHash))
	assert.False(t, bcryptHasher{}.Verify("Pw12345A", stored.PasswordHash))
}

func TestPublicStripsCredential(t *testing.T) {
	repo := NewMemoryRepository()
	user := seedUser(t, repo, "alice@x.com", RoleUser, time.Now().UTC())

	profile := user.Public()
	assert.Equal(t, user.ID, profile.ID)
	assert.Equal(t, user.Email, profile.Email)
}
