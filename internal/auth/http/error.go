package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/httputil"
)

// handleAuthErrorGin maps authentication failures to HTTP responses.
//
// Response policy:
//   - Bad login credentials and expired tokens get specific messages: the
//     caller already proved they hold (or held) something, so telling them
//     "wrong password" or "expired" leaks nothing new and lets clients
//     prompt for re-login
//   - All other token failures (missing, malformed, bad signature, unknown
//     subject) share one generic message so the response does not reveal
//     why a forged or probed token was rejected
//   - Every 401 carries a WWW-Authenticate: Bearer header
//   - Errors outside the authentication taxonomy fall through to the shared
//     handler (403 for inactive users, 500 for infrastructure failures)
func handleAuthErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	var message string

	switch {
	case errors.Is(err, authDomain.ErrBadCredentials):
		message = "Incorrect username or password"
	case errors.Is(err, authDomain.ErrTokenExpired):
		message = "Token has expired"
	case errors.Is(err, authDomain.ErrMissingCredentials),
		errors.Is(err, authDomain.ErrMalformedToken),
		errors.Is(err, authDomain.ErrInvalidSignature),
		errors.Is(err, authDomain.ErrUnknownSubject):
		message = "Could not validate credentials"
	default:
		httputil.HandleErrorGin(c, err, logger)
		return
	}

	if logger != nil {
		logger.Debug("authentication failed", slog.Any("error", err))
	}

	c.Header("WWW-Authenticate", "Bearer")
	c.JSON(http.StatusUnauthorized, httputil.ErrorResponse{
		Error:   "unauthorized",
		Message: message,
	})
}
