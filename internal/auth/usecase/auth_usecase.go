// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"errors"
	"strconv"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authService "github.com/allisson/accounts/internal/auth/service"
	"github.com/allisson/accounts/internal/config"
	userDomain "github.com/allisson/accounts/internal/user/domain"
)

// authUseCase implements AuthUseCase using a user repository, a password
// service and a token service.
type authUseCase struct {
	config          *config.Config
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// Login verifies the submitted credentials and issues a signed access token.
//
// Security Notes:
//   - Returns ErrBadCredentials for unknown usernames, wrong passwords and
//     deactivated accounts to prevent user enumeration attacks
//   - Password verification runs against the stored hash only; the plain
//     password is never persisted or logged
func (a *authUseCase) Login(
	ctx context.Context,
	input *authDomain.LoginInput,
) (*authDomain.LoginOutput, error) {
	user, err := a.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		// Unknown username maps to the generic credential error.
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrBadCredentials
		}
		return nil, err
	}

	if !a.passwordService.Verify(input.Password, user.PasswordHash) {
		return nil, authDomain.ErrBadCredentials
	}

	// A deactivated account gets the same generic error as bad credentials,
	// so login responses never confirm that the password was correct.
	if !user.IsActive {
		return nil, authDomain.ErrBadCredentials
	}

	subject := strconv.FormatInt(user.ID, 10)
	token, expiresAt, err := a.tokenService.Issue(subject, user.Username, a.config.JWTExpiration)
	if err != nil {
		return nil, err
	}

	return &authDomain.LoginOutput{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

// Authenticate validates an access token and resolves it to the user it was
// issued for.
//
// This method:
// 1. Verifies the token structure, signature and expiration
// 2. Parses the subject claim into a user ID
// 3. Loads the user and checks it is still active
//
// Security Notes:
//   - Token rejection reasons (malformed, bad signature, expired) are
//     propagated from the token service so the transport layer can pick the
//     right response without re-inspecting the token
//   - A valid token whose subject no longer resolves to a user returns
//     ErrUnknownSubject; a deactivated user returns ErrUserInactive
func (a *authUseCase) Authenticate(ctx context.Context, token string) (*userDomain.User, error) {
	claims, err := a.tokenService.Validate(token)
	if err != nil {
		return nil, err
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, authDomain.ErrMalformedToken
	}

	user, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userDomain.ErrUserNotFound) {
			return nil, authDomain.ErrUnknownSubject
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, authDomain.ErrUserInactive
	}

	return user, nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	config *config.Config,
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	return &authUseCase{
		config:          config,
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}
