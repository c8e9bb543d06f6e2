package identity

import (
	"context"
	"sort"
	"strings"
	"sync"
)

type memoryRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by id
}

// NewMemoryRepository builds an in-memory user store for development mode and
// tests. It enforces the same email uniqueness semantics as the Postgres
// implementation.
func NewMemoryRepository() Repository {
	return &memoryRepository{users: make(map[string]User)}
}

func (r *memoryRepository) Create(_ context.Context, user User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *memoryRepository) FindByEmail(_ context.Context, email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memoryRepository) FindByID(_ context.Context, id string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

func (r *memoryRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.users), nil
}

func (r *memoryRepository) List(_ context.Context, offset, limit int) ([]User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	// Newest first, id as tiebreaker for stable pagination.
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.After(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})

	if offset >= len(users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(users) {
		end = len(users)
	}
	return users[offset:end], nil
}

func (r *memoryRepository) Update(_ context.Context, id string, upd UserUpdate) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	if upd.Email != nil && *upd.Email != user.Email {
		for _, other := range r.users {
			if other.ID != id && other.Email == *upd.Email {
				return User{}, ErrDuplicateEmail
			}
		}
		user.Email = *upd.Email
	}
	if upd.FullName != nil {
		user.FullName = *upd.FullName
	}
	if upd.PasswordHash != nil {
		user.PasswordHash = append([]byte(nil), upd.PasswordHash...)
	}
	if upd.Status != nil {
		user.Status = *upd.Status
	}
	if upd.LastLoginAt != nil {
		t := upd.LastLoginAt.UTC()
		user.LastLoginAt = &t
	}
	// Assigning to an existing string key rebinds the stored key to this id.
	// Callers may pass ids backed by reusable request buffers (fiber Params),
	// so clone before the string outlives the call.
	r.users[strings.Clone(id)] = user
	return user, nil
}
