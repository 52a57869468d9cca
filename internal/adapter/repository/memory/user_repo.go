package memory

import (
	"context"

	"github.com/avolkov/minibank/internal/domain"
)

// UserRepository implements usecase.UserRepository over a Store.
type UserRepository struct {
	store *Store
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user. A duplicate email fails with ErrEmailTaken.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.byEmail[user.Email]; exists {
		return domain.ErrEmailTaken
	}

	stored := cloneUser(user)
	r.store.users = append(r.store.users, stored)
	r.store.byEmail[stored.Email] = stored

	return nil
}

// GetByEmail retrieves a user by email. A missing user is not an error.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	user, ok := r.store.byEmail[email]
	if !ok {
		return nil, nil
	}

	return cloneUser(user), nil
}
