// Package http provides HTTP handlers for user-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/allisson/accounts/internal/httputil"
	"github.com/allisson/accounts/internal/user/http/dto"
	"github.com/allisson/accounts/internal/user/usecase"
)

// UserHandler handles user-related HTTP requests
type UserHandler struct {
	userUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(userUseCase usecase.UseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
	}
}

// RegisterUserHandler creates a new user account.
// POST /v1/users
// Returns 201 Created with the user representation (password hash excluded).
func (h *UserHandler) RegisterUserHandler(c *gin.Context) {
	var req dto.RegisterUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.RegisterUser(c.Request.Context(), dto.ToRegisterUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// GetUserHandler retrieves a user by ID.
// GET /v1/users/:id
func (h *UserHandler) GetUserHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.GetUserByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsersHandler retrieves a page of users.
// GET /v1/users?skip=0&limit=10
func (h *UserHandler) ListUsersHandler(c *gin.Context) {
	skip, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	users, total, err := h.userUseCase.ListUsers(c.Request.Context(), skip, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	page := httputil.PageNumber(skip, limit)
	c.JSON(http.StatusOK, dto.ToListUsersResponse(users, total, page, limit))
}

// UpdateUserHandler applies a partial update to a user.
// PUT /v1/users/:id
func (h *UserHandler) UpdateUserHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	user, err := h.userUseCase.UpdateUser(c.Request.Context(), id, dto.ToUpdateUserInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// DeleteUserHandler removes a user account.
// DELETE /v1/users/:id
// Returns 204 No Content on success.
func (h *UserHandler) DeleteUserHandler(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.userUseCase.DeleteUser(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseUserID extracts and validates the numeric id path parameter.
func parseUserID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid user id: must be a positive integer")
	}
	return id, nil
}
