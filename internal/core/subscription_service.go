package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/db"
	"github.com/panwartanish/SubSentry/internal/models"
	"github.com/panwartanish/SubSentry/pkg/cache"
	"github.com/panwartanish/SubSentry/pkg/messagequeue"
)

// subscriptionService implements the SubscriptionService interface. Every
// mutation is a full read-modify-write of the owner's collection with no
// optimistic-concurrency check: concurrent writers to the same collection
// are last-write-wins.
type subscriptionService struct {
	subs       db.SubscriptionRepository
	cache      cache.Cache              // optional; nil disables analytics caching
	events     messagequeue.MessageQueue // optional; nil disables change events
	alertQueue string
	logger     *zap.Logger
}

// NewSubscriptionService creates a new SubscriptionService instance. cache
// and events may be nil.
func NewSubscriptionService(
	subs db.SubscriptionRepository,
	c cache.Cache,
	events messagequeue.MessageQueue,
	alertQueue string,
	logger *zap.Logger,
) SubscriptionService {
	return &subscriptionService{subs: subs, cache: c, events: events, alertQueue: alertQueue, logger: logger}
}

func (s *subscriptionService) List(ctx context.Context, email string) ([]models.Subscription, error) {
	return s.subs.List(ctx, email)
}

// Add validates the draft, assigns a collision-resistant id and creation
// timestamp, and appends to the end of the owner's sequence.
func (s *subscriptionService) Add(ctx context.Context, email string, draft models.SubscriptionDraft) (*models.Subscription, []models.Subscription, error) {
	if err := validateDraft(draft); err != nil {
		return nil, nil, err
	}
	if draft.Currency == "" {
		draft.Currency = models.DefaultPreferredCurrency
	}
	if draft.Category == "" {
		draft.Category = models.DefaultCategory
	}

	existing, err := s.subs.List(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	sub := models.Subscription{
		ID:          uuid.NewString(),
		Name:        draft.Name,
		Cost:        draft.Cost,
		Currency:    draft.Currency,
		RenewalDate: draft.RenewalDate,
		Category:    draft.Category,
		CreatedAt:   time.Now().UTC(),
	}
	updated := append(existing, sub)

	if err := s.subs.Replace(ctx, email, updated); err != nil {
		return nil, nil, err
	}
	s.afterMutation(ctx, email, "subscription.added", sub.ID)
	return &sub, updated, nil
}

// Update performs a shallow merge of the typed patch onto the stored record
// and stamps updatedAt.
func (s *subscriptionService) Update(ctx context.Context, email, id string, patch models.SubscriptionPatch) (*models.Subscription, []models.Subscription, error) {
	existing, err := s.subs.List(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	index := -1
	for i := range existing {
		if existing[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, nil, fmt.Errorf("%w: id '%s' for '%s'", ErrSubscriptionNotFound, id, email)
	}

	merged := existing[index]
	patch.ApplyTo(&merged)
	if err := validateStored(merged); err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	merged.UpdatedAt = &now
	existing[index] = merged

	if err := s.subs.Replace(ctx, email, existing); err != nil {
		return nil, nil, err
	}
	s.afterMutation(ctx, email, "subscription.updated", id)
	return &merged, existing, nil
}

// Delete removes one subscription by id. A miss fails with
// ErrSubscriptionNotFound and leaves the stored sequence untouched.
func (s *subscriptionService) Delete(ctx context.Context, email, id string) ([]models.Subscription, error) {
	existing, err := s.subs.List(ctx, email)
	if err != nil {
		return nil, err
	}

	remaining := make([]models.Subscription, 0, len(existing))
	for _, sub := range existing {
		if sub.ID != id {
			remaining = append(remaining, sub)
		}
	}
	if len(remaining) == len(existing) {
		return nil, fmt.Errorf("%w: id '%s' for '%s'", ErrSubscriptionNotFound, id, email)
	}

	if err := s.subs.Replace(ctx, email, remaining); err != nil {
		return nil, err
	}
	s.afterMutation(ctx, email, "subscription.deleted", id)
	return remaining, nil
}

// Clear unconditionally replaces the owner's sequence with empty. Always
// succeeds, so clearing an already-empty collection is a no-op.
func (s *subscriptionService) Clear(ctx context.Context, email string) error {
	if err := s.subs.Replace(ctx, email, []models.Subscription{}); err != nil {
		return err
	}
	s.afterMutation(ctx, email, "subscriptions.cleared", "")
	return nil
}

// afterMutation invalidates the cached analytics summary and publishes a
// change event. Both are best-effort; a failure never fails the mutation.
func (s *subscriptionService) afterMutation(ctx context.Context, email, eventType, subscriptionID string) {
	if s.cache != nil {
		if err := s.cache.Delete(ctx, analyticsCacheKey(email)); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.String("email", email), zap.Error(err))
		}
	}
	if s.events != nil {
		body, err := json.Marshal(map[string]string{
			"type":           eventType,
			"email":          email,
			"subscriptionId": subscriptionID,
			"occurredAt":     time.Now().UTC().Format(time.RFC3339),
		})
		if err == nil {
			err = s.events.Publish(s.alertQueue, body)
		}
		if err != nil {
			s.logger.Warn("failed to publish subscription event",
				zap.String("email", email), zap.String("type", eventType), zap.Error(err))
		}
	}
}

func validateDraft(draft models.SubscriptionDraft) error {
	switch {
	case draft.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidSubscription)
	case draft.Cost == 0:
		return fmt.Errorf("%w: cost is required", ErrInvalidSubscription)
	case draft.Cost < 0:
		return fmt.Errorf("%w: cost must be positive", ErrInvalidSubscription)
	case draft.RenewalDate == "":
		return fmt.Errorf("%w: renewalDate is required", ErrInvalidSubscription)
	}
	if draft.Currency != "" && !models.IsKnownCurrency(draft.Currency) {
		return fmt.Errorf("%w: unknown currency %q", ErrInvalidSubscription, draft.Currency)
	}
	if draft.Category != "" && !models.IsKnownCategory(draft.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidSubscription, draft.Category)
	}
	return nil
}

func validateStored(sub models.Subscription) error {
	return validateDraft(models.SubscriptionDraft{
		Name:        sub.Name,
		Cost:        sub.Cost,
		Currency:    sub.Currency,
		RenewalDate: sub.RenewalDate,
		Category:    sub.Category,
	})
}
