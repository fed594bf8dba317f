package core

import (
	"context"

	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/models"
)

// UserService defines user-facing account operations. Credential handling is
// forwarded to the auth gateway; this service owns the mirrored profile.
type UserService interface {
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, *auth.Session, error)
	GoogleLogin(ctx context.Context, accessToken string) (*models.User, error)
	VerifySession(ctx context.Context, accessToken string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePreferredCurrency(ctx context.Context, email, currency string) (*models.User, error)
}

// SubscriptionService defines CRUD over a user's subscription collection.
// Mutations return the full updated sequence so clients never re-fetch.
type SubscriptionService interface {
	List(ctx context.Context, email string) ([]models.Subscription, error)
	Add(ctx context.Context, email string, draft models.SubscriptionDraft) (*models.Subscription, []models.Subscription, error)
	Update(ctx context.Context, email, id string, patch models.SubscriptionPatch) (*models.Subscription, []models.Subscription, error)
	Delete(ctx context.Context, email, id string) ([]models.Subscription, error)
	Clear(ctx context.Context, email string) error
}

// AnalyticsService computes the spending summary for one user.
type AnalyticsService interface {
	Summary(ctx context.Context, email string) (*AnalyticsSummary, error)
}
