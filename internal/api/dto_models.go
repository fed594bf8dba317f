package api

// ErrorResponse is a generic structure for returning errors via API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenRequest is the body of POST /auth/google and POST /auth/verify.
type TokenRequest struct {
	AccessToken string `json:"access_token"`
}

// UpdatePreferencesRequest is the body of PUT /user/:email/preferences.
type UpdatePreferencesRequest struct {
	PreferredCurrency string `json:"preferredCurrency"`
}
