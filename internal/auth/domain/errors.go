package domain

import "github.com/allisson/accounts/internal/errors"

// Authentication failure kinds. Each kind is a distinct sentinel so callers
// can react precisely (e.g. "log in again" vs "session expired"), while all
// of them still map to 401 through the shared ErrUnauthorized chain.
var (
	// ErrMissingCredentials indicates the request carried no usable
	// Authorization header (absent, wrong scheme or empty token).
	ErrMissingCredentials = errors.Wrap(errors.ErrUnauthorized, "missing credentials")

	// ErrMalformedToken indicates the token is not structurally a signed
	// token, or lacks a subject claim.
	ErrMalformedToken = errors.Wrap(errors.ErrUnauthorized, "malformed token")

	// ErrInvalidSignature indicates the token signature does not match the
	// configured secret and algorithm.
	ErrInvalidSignature = errors.Wrap(errors.ErrUnauthorized, "invalid token signature")

	// ErrTokenExpired indicates the token expiration time has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrUnknownSubject indicates the token subject does not resolve to an
	// existing user. A deleted user implicitly invalidates all of their
	// outstanding tokens through this failure.
	ErrUnknownSubject = errors.Wrap(errors.ErrUnauthorized, "unknown subject")

	// ErrBadCredentials indicates a failed login. The same kind covers
	// unknown usernames and wrong passwords to avoid a username
	// enumeration side channel.
	ErrBadCredentials = errors.Wrap(errors.ErrUnauthorized, "incorrect username or password")

	// ErrUserInactive indicates the resolved user exists but is deactivated.
	ErrUserInactive = errors.Wrap(errors.ErrForbidden, "user is inactive")
)
