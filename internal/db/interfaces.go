package db

import (
	"context"

	"github.com/panwartanish/SubSentry/internal/models"
)

// UserRepository defines storage operations for mirrored user profiles.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// Save writes both key forms of the user record (by email and by
	// provider id) so the mirror invariant holds.
	Save(ctx context.Context, user *models.User) error
}

// SubscriptionRepository defines storage operations for a user's
// subscription collection. The collection is always read and written whole.
type SubscriptionRepository interface {
	// List returns the owner's subscriptions in insertion order. A user
	// with no stored collection gets an empty slice, not an error.
	List(ctx context.Context, email string) ([]models.Subscription, error)
	// Replace overwrites the owner's entire collection.
	Replace(ctx context.Context, email string, subs []models.Subscription) error
}
