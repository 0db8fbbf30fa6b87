// Package usecase defines business logic interfaces for authentication operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// UserRepository defines the user lookups required by authentication.
// Implementations must support transaction-aware operations via context propagation.
type UserRepository interface {
	// GetByID retrieves a user by ID. Returns ErrUserNotFound if not found.
	GetByID(ctx context.Context, id int64) (*userDomain.User, error)

	// GetByUsername retrieves a user by username. Returns ErrUserNotFound if not found.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// AuthUseCase defines business logic operations for credential verification
// and bearer token authentication.
type AuthUseCase interface {
	// Login verifies the submitted credentials and issues a signed access token.
	//
	// Returns ErrBadCredentials for unknown usernames, wrong passwords and
	// deactivated accounts to prevent user enumeration attacks.
	Login(ctx context.Context, input *authDomain.LoginInput) (*authDomain.LoginOutput, error)

	// Authenticate validates an access token and resolves it to the user it
	// was issued for.
	//
	// Returns ErrMalformedToken, ErrInvalidSignature or ErrTokenExpired when
	// the token itself is rejected, ErrUnknownSubject when the token is valid
	// but the user no longer exists, and ErrUserInactive when the user has
	// been deactivated since the token was issued.
	Authenticate(ctx context.Context, token string) (*userDomain.User, error)
}
