package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	apperrors "github.com/allisson/accounts/internal/errors"
)

// accessClaims is the wire representation of the token payload.
type accessClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
}

// jwtTokenService implements TokenService using HMAC-signed JWTs.
// The secret, algorithm and default ttl are fixed at construction; the clock
// is injectable for deterministic expiry tests.
type jwtTokenService struct {
	secret     []byte
	method     *jwt.SigningMethodHMAC
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWTTokenService creates a TokenService signing with the given secret and
// HMAC algorithm (HS256, HS384 or HS512). A nil now function defaults to
// time.Now.
func NewJWTTokenService(
	secret string,
	algorithm string,
	defaultTTL time.Duration,
	now func() time.Time,
) (TokenService, error) {
	var method *jwt.SigningMethodHMAC
	switch algorithm {
	case "HS256":
		method = jwt.SigningMethodHS256
	case "HS384":
		method = jwt.SigningMethodHS384
	case "HS512":
		method = jwt.SigningMethodHS512
	default:
		return nil, fmt.Errorf("unsupported signing algorithm: %q", algorithm)
	}

	if secret == "" {
		return nil, fmt.Errorf("signing secret must not be empty")
	}

	if now == nil {
		now = time.Now
	}

	return &jwtTokenService{
		secret:     []byte(secret),
		method:     method,
		defaultTTL: defaultTTL,
		now:        now,
	}, nil
}

// Issue signs a token for the subject with expiration now+ttl. The signing
// itself is pure; only the clock and static configuration are read.
func (s *jwtTokenService) Issue(
	subject, username string,
	ttl time.Duration,
) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is required")
	}

	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	issuedAt := s.now().UTC()
	expiresAt := issuedAt.Add(ttl)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Username: username,
	}

	token, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, apperrors.Wrap(err, "failed to sign token")
	}

	return token, expiresAt, nil
}

// Validate parses and verifies an untrusted token string.
//
// Checks run in order: structure, signature, expiry. The order matters so a
// signature-valid but expired token always surfaces as ErrTokenExpired and a
// tampered token always surfaces as ErrInvalidSignature. No leeway window is
// applied to the expiration check.
func (s *jwtTokenService) Validate(tokenString string) (*authDomain.Claims, error) {
	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&accessClaims{},
		func(token *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, authDomain.ErrMalformedToken
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, authDomain.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenUnverifiable):
			// wrong or forbidden signing method
			return nil, authDomain.ErrInvalidSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, authDomain.ErrTokenExpired
		default:
			// invalid claims (e.g. missing exp)
			return nil, authDomain.ErrMalformedToken
		}
	}

	claims, ok := parsed.Claims.(*accessClaims)
	if !ok || !parsed.Valid {
		return nil, authDomain.ErrMalformedToken
	}

	// A token without a subject is never valid, even if signature-correct.
	if claims.Subject == "" {
		return nil, authDomain.ErrMalformedToken
	}

	return &authDomain.Claims{
		Subject:   claims.Subject,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
