package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/accounts/internal/auth/domain"
	"github.com/allisson/accounts/internal/auth/http/dto"
	authUseCase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/httputil"
	customValidation "github.com/allisson/accounts/internal/validation"
)

// AuthHandler handles HTTP requests for authentication operations.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new authentication handler with required dependencies.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// LoginHandler verifies credentials and issues an access token.
// POST /v1/auth/login - No authentication required (this is the authentication endpoint).
// Returns 200 OK with the access token and its expiration time.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	// Parse and bind JSON
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	// Validate request
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := &authDomain.LoginInput{
		Username: req.Username,
		Password: req.Password,
	}

	// Call use case
	output, err := h.authUseCase.Login(c.Request.Context(), input)
	if err != nil {
		handleAuthErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.NewLoginResponse(output))
}
