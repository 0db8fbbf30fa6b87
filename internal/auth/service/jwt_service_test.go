package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

const testSecret = "test-secret-key-for-signing"

// fixedClock returns a clock frozen at the given instant.
func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func newTestTokenService(t *testing.T, now func() time.Time) TokenService {
	t.Helper()

	svc, err := NewJWTTokenService(testSecret, "HS256", 30*time.Minute, now)
	require.NoError(t, err)
	return svc
}

func TestNewJWTTokenService(t *testing.T) {
	t.Run("supported algorithms", func(t *testing.T) {
		for _, alg := range []string{"HS256", "HS384", "HS512"} {
			svc, err := NewJWTTokenService(testSecret, alg, time.Minute, nil)
			assert.NoError(t, err)
			assert.NotNil(t, svc)
		}
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := NewJWTTokenService(testSecret, "RS256", time.Minute, nil)
		assert.Error(t, err)
	})

	t.Run("empty secret", func(t *testing.T) {
		_, err := NewJWTTokenService("", "HS256", time.Minute, nil)
		assert.Error(t, err)
	})
}

func TestJWTTokenService_RoundTrip(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, fixedClock(now))

	token, expiresAt, err := svc.Issue("42", "alice", 30*time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, now.Add(30*time.Minute), expiresAt)

	claims, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

func TestJWTTokenService_Issue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("zero ttl uses configured default", func(t *testing.T) {
		svc := newTestTokenService(t, fixedClock(now))

		_, expiresAt, err := svc.Issue("42", "alice", 0)
		require.NoError(t, err)
		assert.Equal(t, now.Add(30*time.Minute), expiresAt)
	})

	t.Run("empty subject is rejected", func(t *testing.T) {
		svc := newTestTokenService(t, fixedClock(now))

		_, _, err := svc.Issue("", "alice", time.Minute)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})

	t.Run("empty username is allowed", func(t *testing.T) {
		svc := newTestTokenService(t, fixedClock(now))

		token, _, err := svc.Issue("42", "", time.Minute)
		require.NoError(t, err)

		claims, err := svc.Validate(token)
		require.NoError(t, err)
		assert.Empty(t, claims.Username)
	})
}

func TestJWTTokenService_Validate_Expired(t *testing.T) {
	issuedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	issuer := newTestTokenService(t, fixedClock(issuedAt))

	token, _, err := issuer.Issue("42", "alice", 30*time.Minute)
	require.NoError(t, err)

	t.Run("valid before expiration", func(t *testing.T) {
		verifier := newTestTokenService(t, fixedClock(issuedAt.Add(29*time.Minute)))

		_, err := verifier.Validate(token)
		assert.NoError(t, err)
	})

	t.Run("expired after expiration", func(t *testing.T) {
		verifier := newTestTokenService(t, fixedClock(issuedAt.Add(31*time.Minute)))

		_, err := verifier.Validate(token)
		assert.ErrorIs(t, err, authDomain.ErrTokenExpired)
		// expiry on a signature-valid token is never reported as a signature failure
		assert.NotErrorIs(t, err, authDomain.ErrInvalidSignature)
	})
}

func TestJWTTokenService_Validate_InvalidSignature(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, fixedClock(now))

	t.Run("token signed with a different secret", func(t *testing.T) {
		other, err := NewJWTTokenService("another-secret", "HS256", 30*time.Minute, fixedClock(now))
		require.NoError(t, err)

		token, _, err := other.Issue("42", "alice", 30*time.Minute)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSignature)
	})

	t.Run("tampered token", func(t *testing.T) {
		token, _, err := svc.Issue("42", "alice", 30*time.Minute)
		require.NoError(t, err)

		// flip the last character of the signature segment
		last := token[len(token)-1]
		flipped := byte('A')
		if last == 'A' {
			flipped = 'B'
		}
		tampered := token[:len(token)-1] + string(flipped)

		_, err = svc.Validate(tampered)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSignature)
	})

	t.Run("token signed with a different algorithm", func(t *testing.T) {
		other, err := NewJWTTokenService(testSecret, "HS512", 30*time.Minute, fixedClock(now))
		require.NoError(t, err)

		token, _, err := other.Issue("42", "alice", 30*time.Minute)
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, authDomain.ErrInvalidSignature)
	})
}

func TestJWTTokenService_Validate_Malformed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, fixedClock(now))

	tests := []struct {
		name  string
		token string
	}{
		{"empty string", ""},
		{"not a token", "not-a-token"},
		{"two segments", "aGVhZGVy.cGF5bG9hZA"},
		{"garbage segments", "a.b.c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Validate(tt.token)
			assert.ErrorIs(t, err, authDomain.ErrMalformedToken)
		})
	}
}

func TestJWTTokenService_Validate_MissingClaims(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := newTestTokenService(t, fixedClock(now))

	t.Run("missing subject", func(t *testing.T) {
		// signature-correct token without a sub claim
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		})
		token, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, authDomain.ErrMalformedToken)
	})

	t.Run("missing expiration", func(t *testing.T) {
		raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject: "42",
		})
		token, err := raw.SignedString([]byte(testSecret))
		require.NoError(t, err)

		_, err = svc.Validate(token)
		assert.ErrorIs(t, err, authDomain.ErrMalformedToken)
	})
}
