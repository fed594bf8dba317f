package db

import (
	"context"
	"errors"

	"github.com/panwartanish/SubSentry/internal/models"
)

func subscriptionsKey(email string) string { return "subscriptions:" + email }

// kvSubscriptionRepository implements SubscriptionRepository on top of the
// KeyValueStore. The whole collection lives under one key per owner, so
// writes are last-write-wins at collection granularity.
type kvSubscriptionRepository struct {
	store KeyValueStore
}

// NewSubscriptionRepository creates a SubscriptionRepository over the given
// store.
func NewSubscriptionRepository(store KeyValueStore) SubscriptionRepository {
	return &kvSubscriptionRepository{store: store}
}

func (r *kvSubscriptionRepository) List(ctx context.Context, email string) ([]models.Subscription, error) {
	if email == "" {
		return nil, errors.New("email cannot be empty for List operation")
	}
	var subs []models.Subscription
	if err := r.store.Get(ctx, subscriptionsKey(email), &subs); err != nil {
		if errors.Is(err, ErrKeyNotFound) {
			return []models.Subscription{}, nil
		}
		return nil, err
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	return subs, nil
}

func (r *kvSubscriptionRepository) Replace(ctx context.Context, email string, subs []models.Subscription) error {
	if email == "" {
		return errors.New("email cannot be empty for Replace operation")
	}
	if subs == nil {
		subs = []models.Subscription{}
	}
	return r.store.Set(ctx, subscriptionsKey(email), subs)
}
