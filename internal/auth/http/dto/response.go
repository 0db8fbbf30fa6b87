package dto

import (
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// LoginResponse contains the issued access token.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// NewLoginResponse converts a login output into its response representation.
func NewLoginResponse(output *authDomain.LoginOutput) LoginResponse {
	return LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresAt:   output.ExpiresAt,
	}
}
