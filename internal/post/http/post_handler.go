// Package http provides HTTP handlers for post-related operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/httputil"
	"github.com/allisson/accounts/internal/post/http/dto"
	"github.com/allisson/accounts/internal/post/usecase"
)

// PostHandler handles post-related HTTP requests
type PostHandler struct {
	postUseCase usecase.UseCase
	logger      *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postUseCase usecase.UseCase, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		logger:      logger,
	}
}

// CreatePostHandler creates a new post authored by the authenticated user.
// POST /v1/posts (auth required)
// Returns 201 Created with the post representation.
func (h *PostHandler) CreatePostHandler(c *gin.Context) {
	user, ok := authHTTP.GetUser(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, h.logger)
		return
	}

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), user.ID, dto.ToCreatePostInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// GetPostHandler retrieves a post by ID.
// GET /v1/posts/:id
func (h *PostHandler) GetPostHandler(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	post, err := h.postUseCase.GetPostByID(c.Request.Context(), id)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// ListPostsHandler retrieves a page of posts.
// GET /v1/posts?skip=0&limit=10
func (h *PostHandler) ListPostsHandler(c *gin.Context) {
	skip, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	posts, total, err := h.postUseCase.ListPosts(c.Request.Context(), skip, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	page := httputil.PageNumber(skip, limit)
	c.JSON(http.StatusOK, dto.ToListPostsResponse(posts, total, page, limit))
}

// UpdatePostHandler applies a partial update to a post.
// PUT /v1/posts/:id (auth required)
func (h *PostHandler) UpdatePostHandler(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	post, err := h.postUseCase.UpdatePost(c.Request.Context(), id, dto.ToUpdatePostInput(req))
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// DeletePostHandler soft-deletes a post.
// DELETE /v1/posts/:id (auth required)
// Returns 204 No Content on success.
func (h *PostHandler) DeletePostHandler(c *gin.Context) {
	id, err := parsePostID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), id); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// parsePostID extracts and validates the numeric id path parameter.
func parsePostID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid post id: must be a positive integer")
	}
	return id, nil
}
