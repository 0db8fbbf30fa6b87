package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
)

// AuthenticationMiddleware provides authentication via Bearer token in the Authorization header.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Validates the token and resolves the user via authUseCase.Authenticate()
// 3. Stores the authenticated user in the request context
// 4. Allows downstream handlers to access the user via GetUser()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Malformed/tampered/expired token → 401 Unauthorized (from AuthUseCase.Authenticate)
//   - Token subject without a matching user → 401 Unauthorized
//   - Inactive user → 403 Forbidden
//   - Other errors → 500 Internal Server Error
//
// Usage:
//
//	router.Use(AuthenticationMiddleware(authUseCase, logger))
//	router.GET("/protected", func(c *gin.Context) {
//	    user, ok := GetUser(c.Request.Context())
//	    if !ok {
//	        // Should never happen if middleware is working correctly
//	        c.JSON(401, gin.H{"error": "unauthorized"})
//	        return
//	    }
//	    // Use user for authorization checks
//	})
func AuthenticationMiddleware(
	authUseCase authUseCase.AuthUseCase,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Extract Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			handleAuthErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			handleAuthErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		token := authHeader[len(bearerPrefix):]
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			handleAuthErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		// Validate the token and resolve the user
		user, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			handleAuthErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store authenticated user in context
		ctx := WithUser(c.Request.Context(), user)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.Int64("user_id", user.ID),
			slog.String("username", user.Username))

		// Continue to next handler
		c.Next()
	}
}

// AdminRequiredMiddleware restricts a route to users with the admin role.
//
// This middleware MUST be used after AuthenticationMiddleware, as it requires
// an authenticated user to be present in the request context.
func AdminRequiredMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetUser(c.Request.Context())
		if !ok || user == nil {
			logger.Debug("authorization failed: no authenticated user in context")
			handleAuthErrorGin(c, authDomain.ErrMissingCredentials, logger)
			c.Abort()
			return
		}

		if !user.IsAdmin() {
			logger.Debug("authorization failed: admin role required",
				slog.Int64("user_id", user.ID),
				slog.String("role", string(user.Role)))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		c.Next()
	}
}
