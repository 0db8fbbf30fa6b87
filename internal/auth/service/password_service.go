package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/accounts/internal/errors"
)

// passwordService implements PasswordService on top of go-pwdhash.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash produces a new salted hash of the password. Salts are random, so
// hashing the same password twice yields different strings.
func (s *passwordService) Hash(plainPassword string) (string, error) {
	hashed, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashed, nil
}

// Verify performs a constant-time comparison between a plain password and its
// hash. Malformed stored hashes are treated as a non-match.
func (s *passwordService) Verify(plainPassword string, hashedPassword string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a PasswordService using the interactive hashing
// policy, suited for user-facing login latency.
func NewPasswordService() (PasswordService, error) {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create password hasher")
	}

	return &passwordService{hasher: hasher}, nil
}
