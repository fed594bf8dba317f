package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/panwartanish/SubSentry/internal/models"
)

func userKeyByEmail(email string) string { return "user:" + email }
func userKeyByID(id string) string       { return "user:id:" + id }

// kvUserRepository implements UserRepository on top of the KeyValueStore.
type kvUserRepository struct {
	store KeyValueStore
}

// NewUserRepository creates a UserRepository over the given store.
func NewUserRepository(store KeyValueStore) UserRepository {
	return &kvUserRepository{store: store}
}

func (r *kvUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for GetByEmail operation")
	}
	var user models.User
	if err := r.store.Get(ctx, userKeyByEmail(email), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *kvUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, errors.New("id cannot be empty for GetByID operation")
	}
	var user models.User
	if err := r.store.Get(ctx, userKeyByID(id), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Save writes the record under both key forms. Both copies carry identical
// contents; a partial write leaves the mirrors out of sync, which callers
// treat as a storage failure.
func (r *kvUserRepository) Save(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" || user.ID == "" {
		return errors.New("user with email and id is required for Save operation")
	}
	if err := r.store.Set(ctx, userKeyByEmail(user.Email), user); err != nil {
		return fmt.Errorf("failed to save user by email: %w", err)
	}
	if err := r.store.Set(ctx, userKeyByID(user.ID), user); err != nil {
		return fmt.Errorf("failed to save user mirror by id: %w", err)
	}
	return nil
}
