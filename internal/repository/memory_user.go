package repository

import (
	"context"
	"sync"

	"propertyhub-api/internal/model"
)

// MemoryUserRepository backs development and tests when no document store is
// available.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]model.User // email -> User
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: map[string]model.User{},
	}
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return ErrAlreadyExists
	}
	r.users[user.Email] = *user
	return nil
}
