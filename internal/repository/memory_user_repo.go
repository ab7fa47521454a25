package repository

import (
	"context"
	"sync"

	"user_register/internal/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryUserRepository keeps users in a map keyed by email.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]model.User
}

// NewMemoryUserRepository creates an empty in-memory store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]model.User)}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *model.User) error {
	if err := validateUser(user); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return ErrDuplicateKey
	}
	user.ID = primitive.NewObjectID()
	r.users[user.Email] = *user
	return nil
}

func (r *MemoryUserRepository) Ping(_ context.Context) error { return nil }

func (r *MemoryUserRepository) Close(_ context.Context) error { return nil }

// Len returns the number of stored users.
func (r *MemoryUserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// Get returns the user stored under email, if any.
func (r *MemoryUserRepository) Get(email string) (model.User, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	return u, ok
}
