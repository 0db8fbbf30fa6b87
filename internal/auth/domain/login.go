package domain

import "time"

// LoginInput contains the credentials submitted to the login endpoint.
type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginOutput contains the issued access token.
//
// TokenType is always "bearer" so clients know how to present the token
// on subsequent requests.
type LoginOutput struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}
