package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
)

const identityToolkitLoginURL = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// firebaseGateway implements Gateway against Firebase Authentication. The
// Admin SDK covers account creation and token verification; password login
// goes through the Identity Toolkit REST API because the Admin SDK has no
// password grant.
type firebaseGateway struct {
	client     *fbauth.Client
	webAPIKey  string
	httpClient *http.Client
}

// NewFirebaseGateway creates a Gateway backed by Firebase Authentication.
func NewFirebaseGateway(client *fbauth.Client, webAPIKey string) Gateway {
	return &firebaseGateway{
		client:     client,
		webAPIKey:  webAPIKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *firebaseGateway) CreateAccount(ctx context.Context, email, password, name string) (string, error) {
	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(name).
		EmailVerified(true) // no email server is configured, confirm up front
	record, err := g.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to create provider account for '%s': %w", email, err)
	}
	return record.UID, nil
}

// signInResponse is the subset of the Identity Toolkit response we consume.
type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

func (g *firebaseGateway) PasswordLogin(ctx context.Context, email, password string) (*ProviderUser, *Session, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to encode login payload: %w", err)
	}

	url := identityToolkitLoginURL + "?key=" + g.webAPIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// The toolkit reports EMAIL_NOT_FOUND / INVALID_PASSWORD / etc. with
		// 400; all of them surface to the caller as bad credentials.
		return nil, nil, ErrInvalidCredentials
	}

	var body signInResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, nil, fmt.Errorf("failed to decode login response: %w", err)
	}

	user := &ProviderUser{ID: body.LocalID, Email: body.Email, Name: body.DisplayName}
	session := &Session{AccessToken: body.IDToken, RefreshToken: body.RefreshToken}
	if secs, err := strconv.ParseInt(body.ExpiresIn, 10, 64); err == nil {
		session.ExpiresIn = secs
	}
	return user, session, nil
}

func (g *firebaseGateway) VerifyToken(ctx context.Context, token string) (*ProviderUser, error) {
	decoded, err := g.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return g.resolveUser(ctx, decoded)
}

func (g *firebaseGateway) OAuthUserFromToken(ctx context.Context, token string) (*ProviderUser, error) {
	decoded, err := g.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return g.resolveUser(ctx, decoded)
}

// resolveUser builds a ProviderUser from the verified token, preferring the
// full user record and falling back to token claims if the lookup fails.
func (g *firebaseGateway) resolveUser(ctx context.Context, decoded *fbauth.Token) (*ProviderUser, error) {
	user := &ProviderUser{ID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		user.Email = email
	}
	if name, ok := decoded.Claims["name"].(string); ok {
		user.Name = name
	}
	if picture, ok := decoded.Claims["picture"].(string); ok {
		user.Avatar = picture
	}

	record, err := g.client.GetUser(ctx, decoded.UID)
	if err != nil {
		// Claims alone are enough to mirror a profile.
		return user, nil
	}
	if record.Email != "" {
		user.Email = record.Email
	}
	if record.DisplayName != "" {
		user.Name = record.DisplayName
	}
	if record.PhotoURL != "" {
		user.Avatar = record.PhotoURL
	}
	return user, nil
}
