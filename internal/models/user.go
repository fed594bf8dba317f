package models

import "time"

// User is the profile mirrored from the identity provider. The provider owns
// credentials; this record only carries display data and preferences.
// It is stored twice in the key/value store, under "user:<email>" and
// "user:id:<id>", and both copies must stay identical.
type User struct {
	ID                string    `json:"id"` // provider-assigned UID
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PreferredCurrency string    `json:"preferredCurrency"`
	CreatedAt         time.Time `json:"createdAt"`
	AuthProvider      string    `json:"authProvider"` // "email" or "google"
	Avatar            string    `json:"avatar,omitempty"`
}

// DefaultPreferredCurrency is assigned on signup and first OAuth login.
const DefaultPreferredCurrency = "USD"
