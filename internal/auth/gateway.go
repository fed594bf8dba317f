// Package auth wraps the hosted identity provider. Credential storage,
// password hashing and token issuance all live with the provider; this
// package only forwards calls and surfaces the minimal profile fields the
// rest of the application mirrors.
package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when a password login is rejected.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned when an access token fails verification.
	ErrInvalidToken = errors.New("invalid or expired session token")
)

// ProviderUser is the profile the identity provider reports for an account.
type ProviderUser struct {
	ID     string
	Email  string
	Name   string
	Avatar string
}

// Session is the token bundle issued on a successful password login.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"` // seconds
}

// Gateway is the contract with the hosted identity provider.
type Gateway interface {
	// CreateAccount registers credentials with the provider and returns the
	// provider-assigned user id.
	CreateAccount(ctx context.Context, email, password, name string) (string, error)
	// PasswordLogin verifies credentials and returns the provider profile
	// plus a session. Fails with ErrInvalidCredentials on rejection.
	PasswordLogin(ctx context.Context, email, password string) (*ProviderUser, *Session, error)
	// VerifyToken validates an access token and resolves its account.
	// Fails with ErrInvalidToken on rejection.
	VerifyToken(ctx context.Context, token string) (*ProviderUser, error)
	// OAuthUserFromToken resolves the account behind an OAuth-obtained
	// access token, including avatar when the provider supplies one.
	OAuthUserFromToken(ctx context.Context, token string) (*ProviderUser, error)
}
