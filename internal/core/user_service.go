package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/db"
	"github.com/panwartanish/SubSentry/internal/models"
	"github.com/panwartanish/SubSentry/pkg/cache"
	"github.com/panwartanish/SubSentry/pkg/mailer"
)

// userService implements the UserService interface.
type userService struct {
	users   db.UserRepository
	gateway auth.Gateway
	cache   cache.Cache   // optional; nil disables analytics cache invalidation
	mail    mailer.Mailer // optional; nil disables welcome email
	logger  *zap.Logger
}

// NewUserService creates a new UserService instance. c and mail may be nil.
func NewUserService(users db.UserRepository, gateway auth.Gateway, c cache.Cache, mail mailer.Mailer, logger *zap.Logger) UserService {
	return &userService{users: users, gateway: gateway, cache: c, mail: mail, logger: logger}
}

// SignUp registers credentials with the identity provider and writes the
// mirrored profile. A second signup for the same email fails with
// ErrUserExists before the provider is contacted.
func (s *userService) SignUp(ctx context.Context, name, email, password string) (*models.User, error) {
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to check for existing user '%s': %w", email, err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrUserExists, email)
	}

	providerID, err := s.gateway.CreateAccount(ctx, email, password, name)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:                providerID,
		Name:              name,
		Email:             email,
		PreferredCurrency: models.DefaultPreferredCurrency,
		CreatedAt:         time.Now().UTC(),
		AuthProvider:      "email",
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist user profile for '%s': %w", email, err)
	}

	if s.mail != nil {
		// A failed welcome email never fails the signup.
		if mailErr := s.mail.Send(email, "Welcome to SubSentry",
			fmt.Sprintf("<html><p>Hi %s, your SubSentry account is ready.</p></html>", name)); mailErr != nil {
			s.logger.Warn("failed to send welcome email", zap.String("email", email), zap.Error(mailErr))
		}
	}

	return user, nil
}

// Login authenticates against the identity provider. If the local mirror is
// missing (accounts created before the mirror existed, or directly with the
// provider) one is synthesized and persisted from provider profile fields.
func (s *userService) Login(ctx context.Context, email, password string) (*models.User, *auth.Session, error) {
	providerUser, session, err := s.gateway.PasswordLogin(ctx, email, password)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.getOrSynthesize(ctx, email, providerUser, "email")
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// GoogleLogin resolves the account behind an OAuth access token, creating
// the mirrored profile on first login.
func (s *userService) GoogleLogin(ctx context.Context, accessToken string) (*models.User, error) {
	providerUser, err := s.gateway.OAuthUserFromToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.getOrSynthesize(ctx, providerUser.Email, providerUser, "google")
}

// VerifySession validates an access token and returns the mirrored profile,
// synthesizing it when absent so the caller always gets a user back.
func (s *userService) VerifySession(ctx context.Context, accessToken string) (*models.User, error) {
	providerUser, err := s.gateway.VerifyToken(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	return s.getOrSynthesize(ctx, providerUser.Email, providerUser, "email")
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
		}
		return nil, fmt.Errorf("failed to get user '%s': %w", email, err)
	}
	return user, nil
}

// UpdatePreferredCurrency changes the display currency. The code is
// validated against the currency table; accepting arbitrary strings would
// silently break every converted total downstream.
func (s *userService) UpdatePreferredCurrency(ctx context.Context, email, currency string) (*models.User, error) {
	if !models.IsKnownCurrency(currency) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, currency)
	}
	user, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PreferredCurrency = currency
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist preference update for '%s': %w", email, err)
	}
	// The cached summary carries figures in the old currency; drop it so the
	// next analytics read recomputes. Best-effort, like mutation side effects.
	if s.cache != nil {
		if err := s.cache.Delete(ctx, analyticsCacheKey(email)); err != nil {
			s.logger.Warn("failed to invalidate analytics cache", zap.String("email", email), zap.Error(err))
		}
	}
	return user, nil
}

// getOrSynthesize returns the mirrored profile for email, lazily creating
// one from provider-supplied fields when it does not exist yet.
func (s *userService) getOrSynthesize(ctx context.Context, email string, providerUser *auth.ProviderUser, provider string) (*models.User, error) {
	// Tokens without an email claim cannot be mirrored; treat them as
	// unusable credentials rather than letting an empty key reach storage.
	if email == "" {
		return nil, fmt.Errorf("%w: token carries no email", auth.ErrInvalidToken)
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, db.ErrKeyNotFound) {
		return nil, fmt.Errorf("failed to get user '%s': %w", email, err)
	}

	name := providerUser.Name
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}
	user = &models.User{
		ID:                providerUser.ID,
		Name:              name,
		Email:             email,
		PreferredCurrency: models.DefaultPreferredCurrency,
		CreatedAt:         time.Now().UTC(),
		AuthProvider:      provider,
		Avatar:            providerUser.Avatar,
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to persist synthesized profile for '%s': %w", email, err)
	}
	s.logger.Info("synthesized user profile from provider data",
		zap.String("email", email), zap.String("provider", provider))
	return user, nil
}
