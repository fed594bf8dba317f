package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/auth"
	"github.com/panwartanish/SubSentry/internal/db"
	"github.com/panwartanish/SubSentry/internal/models"
)

func newTestUserService(store *memStore, gw auth.Gateway, mail *recordingMailer) UserService {
	repo := db.NewUserRepository(store)
	if mail == nil {
		return NewUserService(repo, gw, nil, nil, zap.NewNop())
	}
	return NewUserService(repo, gw, nil, mail, zap.NewNop())
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	gw := newFakeGateway()
	mail := &recordingMailer{}
	svc := newTestUserService(store, gw, mail)

	user, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if user.ID != "uid-alice@example.com" {
		t.Errorf("ID = %s, want provider-assigned id", user.ID)
	}
	if user.PreferredCurrency != models.DefaultPreferredCurrency {
		t.Errorf("PreferredCurrency = %s, want %s", user.PreferredCurrency, models.DefaultPreferredCurrency)
	}
	if user.AuthProvider != "email" {
		t.Errorf("AuthProvider = %s, want email", user.AuthProvider)
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not stamped")
	}

	// Both key forms of the mirror must exist.
	for _, key := range []string{"user:alice@example.com", "user:id:uid-alice@example.com"} {
		var stored models.User
		if err := store.Get(ctx, key, &stored); err != nil {
			t.Errorf("mirror key %s not written: %v", key, err)
		}
	}

	if len(mail.recipients) != 1 || mail.recipients[0] != "alice@example.com" {
		t.Errorf("welcome email recipients = %v", mail.recipients)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	svc := newTestUserService(newMemStore(), gw, nil)

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, err := svc.SignUp(ctx, "Alice Again", "alice@example.com", "other"); !errors.Is(err, ErrUserExists) {
		t.Errorf("second SignUp err = %v, want ErrUserExists", err)
	}
	if len(gw.created) != 1 {
		t.Errorf("provider contacted %d times, want 1 (duplicate rejected locally)", len(gw.created))
	}
}

func TestSignUpSurvivesMailFailure(t *testing.T) {
	svc := newTestUserService(newMemStore(), newFakeGateway(), &recordingMailer{failWith: errors.New("smtp down")})
	if _, err := svc.SignUp(context.Background(), "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Errorf("SignUp failed on mail error: %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	svc := newTestUserService(newMemStore(), gw, nil)

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, session, err := svc.Login(ctx, "alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Email != "alice@example.com" || user.Name != "Alice" {
		t.Errorf("user = %+v", user)
	}
	if session == nil || session.AccessToken == "" {
		t.Errorf("session = %+v, want access token", session)
	}

	if _, _, err := svc.Login(ctx, "alice@example.com", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginSynthesizesMissingMirror(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	// Account exists at the provider but was never mirrored locally.
	gw.accounts["bob@example.com"] = "pw"
	svc := newTestUserService(newMemStore(), gw, nil)

	user, _, err := svc.Login(ctx, "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.Name != "bob" {
		t.Errorf("Name = %s, want email local part as fallback", user.Name)
	}
	if user.PreferredCurrency != models.DefaultPreferredCurrency {
		t.Errorf("PreferredCurrency = %s, want default", user.PreferredCurrency)
	}

	// A second login must reuse the persisted mirror, not resynthesize it.
	again, _, err := svc.Login(ctx, "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("second Login: %v", err)
	}
	if !again.CreatedAt.Equal(user.CreatedAt) {
		t.Errorf("mirror recreated on second login: %v vs %v", again.CreatedAt, user.CreatedAt)
	}
}

func TestGoogleLogin(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	gw := newFakeGateway()
	// Account exists at the provider only; first OAuth login mirrors it.
	gw.accounts["carol@example.com"] = ""
	gw.names["carol@example.com"] = "Carol"
	gw.avatars["carol@example.com"] = "https://example.com/carol.png"
	svc := newTestUserService(store, gw, nil)

	user, err := svc.GoogleLogin(ctx, "token-carol@example.com")
	if err != nil {
		t.Fatalf("GoogleLogin: %v", err)
	}
	if user.Name != "Carol" || user.Email != "carol@example.com" {
		t.Errorf("user = %+v", user)
	}
	if user.AuthProvider != "google" {
		t.Errorf("AuthProvider = %s, want google", user.AuthProvider)
	}
	if user.Avatar != "https://example.com/carol.png" {
		t.Errorf("Avatar = %s, want provider photo carried over", user.Avatar)
	}
	if user.PreferredCurrency != models.DefaultPreferredCurrency {
		t.Errorf("PreferredCurrency = %s, want default", user.PreferredCurrency)
	}

	// The synthesized mirror is persisted under both key forms.
	var stored models.User
	if err := store.Get(ctx, "user:carol@example.com", &stored); err != nil {
		t.Errorf("mirror by email not written: %v", err)
	}
	if err := store.Get(ctx, "user:id:uid-carol@example.com", &stored); err != nil {
		t.Errorf("mirror by id not written: %v", err)
	}

	if _, err := svc.GoogleLogin(ctx, "garbage"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("bad token err = %v, want ErrInvalidToken", err)
	}
}

// noEmailGateway resolves tokens to a profile missing the email claim.
type noEmailGateway struct {
	*fakeGateway
}

func (g *noEmailGateway) OAuthUserFromToken(ctx context.Context, token string) (*auth.ProviderUser, error) {
	return &auth.ProviderUser{ID: "uid-anon"}, nil
}

func TestGoogleLoginRejectsTokenWithoutEmail(t *testing.T) {
	store := newMemStore()
	svc := newTestUserService(store, &noEmailGateway{newFakeGateway()}, nil)

	_, err := svc.GoogleLogin(context.Background(), "opaque-token")
	if !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
	if len(store.data) != 0 {
		t.Errorf("store written despite rejected token: %v", store.data)
	}
}

func TestVerifySession(t *testing.T) {
	ctx := context.Background()
	gw := newFakeGateway()
	svc := newTestUserService(newMemStore(), gw, nil)

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, err := svc.VerifySession(ctx, "token-alice@example.com")
	if err != nil {
		t.Fatalf("VerifySession: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("user = %+v", user)
	}

	if _, err := svc.VerifySession(ctx, "garbage"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Errorf("bad token err = %v, want ErrInvalidToken", err)
	}
}

func TestGetByEmailMissing(t *testing.T) {
	svc := newTestUserService(newMemStore(), newFakeGateway(), nil)
	if _, err := svc.GetByEmail(context.Background(), "ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdatePreferredCurrency(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	svc := newTestUserService(store, newFakeGateway(), nil)

	if _, err := svc.SignUp(ctx, "Alice", "alice@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	user, err := svc.UpdatePreferredCurrency(ctx, "alice@example.com", "EUR")
	if err != nil {
		t.Fatalf("UpdatePreferredCurrency: %v", err)
	}
	if user.PreferredCurrency != "EUR" {
		t.Errorf("PreferredCurrency = %s, want EUR", user.PreferredCurrency)
	}

	// Persisted, not just returned.
	var stored models.User
	if err := store.Get(ctx, "user:alice@example.com", &stored); err != nil {
		t.Fatalf("Get mirror: %v", err)
	}
	if stored.PreferredCurrency != "EUR" {
		t.Errorf("stored PreferredCurrency = %s, want EUR", stored.PreferredCurrency)
	}

	if _, err := svc.UpdatePreferredCurrency(ctx, "alice@example.com", "DOGE"); !errors.Is(err, ErrUnknownCurrency) {
		t.Errorf("unknown code err = %v, want ErrUnknownCurrency", err)
	}
	if _, err := svc.UpdatePreferredCurrency(ctx, "ghost@example.com", "EUR"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("missing user err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdatePreferredCurrencyInvalidatesAnalyticsCache(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	c := newRecordingCache()
	users := db.NewUserRepository(store)
	subs := db.NewSubscriptionRepository(store)
	userSvc := NewUserService(users, newFakeGateway(), c, nil, zap.NewNop())
	analyticsSvc := NewAnalyticsService(subs, users, c, zap.NewNop())

	if err := users.Save(ctx, &models.User{
		ID: "uid-1", Email: "a@example.com", Name: "A", PreferredCurrency: "USD",
	}); err != nil {
		t.Fatalf("Save user: %v", err)
	}
	if err := subs.Replace(ctx, "a@example.com", []models.Subscription{
		{ID: "s1", Name: "Netflix", Cost: 10, Currency: "USD", Category: "Entertainment", RenewalDate: "2026-09-01"},
	}); err != nil {
		t.Fatalf("Replace subs: %v", err)
	}

	first, err := analyticsSvc.Summary(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("first Summary: %v", err)
	}
	if first.Currency != "USD" {
		t.Fatalf("first summary currency = %s, want USD", first.Currency)
	}

	if _, err := userSvc.UpdatePreferredCurrency(ctx, "a@example.com", "EUR"); err != nil {
		t.Fatalf("UpdatePreferredCurrency: %v", err)
	}

	// The cached USD summary must not survive the preference change.
	second, err := analyticsSvc.Summary(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("second Summary: %v", err)
	}
	if second.Currency != "EUR" {
		t.Errorf("summary after preference change = %s, want EUR", second.Currency)
	}
	found := false
	for _, key := range c.deleted {
		if key == "analytics:a@example.com" {
			found = true
		}
	}
	if !found {
		t.Errorf("cache deletes = %v, want analytics:a@example.com", c.deleted)
	}
}
