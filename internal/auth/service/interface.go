// Package service provides authentication services for password hashing and
// access token encoding/decoding.
package service

import (
	"time"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
)

// PasswordService hashes and verifies user passwords.
type PasswordService interface {
	// Hash produces a new salted hash. Two calls with the same password
	// produce different hashes; both verify against the password.
	Hash(plainPassword string) (string, error)

	// Verify reports whether plainPassword matches hashedPassword using the
	// hashing library's constant-time comparison. A malformed hash yields
	// false, never an error or a panic.
	Verify(plainPassword string, hashedPassword string) bool
}

// TokenService encodes and decodes signed, time-bounded access tokens.
type TokenService interface {
	// Issue signs a token for the given subject. A non-positive ttl falls
	// back to the configured default.
	Issue(subject, username string, ttl time.Duration) (token string, expiresAt time.Time, err error)

	// Validate parses and verifies a token string. Failures are reported as
	// the distinct kinds in the auth domain package: ErrMalformedToken,
	// ErrInvalidSignature or ErrTokenExpired, checked in that order.
	Validate(token string) (*authDomain.Claims, error)
}
