// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/allisson/accounts/internal/post/domain"
	"github.com/allisson/accounts/internal/post/usecase"
)

// CreatePostRequest contains the parameters for creating a new post.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// ToCreatePostInput converts the request to a use case input.
func ToCreatePostInput(req CreatePostRequest) usecase.CreatePostInput {
	return usecase.CreatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
}

// UpdatePostRequest contains the optional fields for a partial post update.
type UpdatePostRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// ToUpdatePostInput converts the request to a use case input.
func ToUpdatePostInput(req UpdatePostRequest) usecase.UpdatePostInput {
	return usecase.UpdatePostInput{
		Title:   req.Title,
		Content: req.Content,
		Status:  req.Status,
	}
}

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Status    string    `json:"status"`
	AuthorID  int64     `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToPostResponse converts a domain post to its response representation.
func ToPostResponse(post *domain.Post) PostResponse {
	return PostResponse{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Status:    string(post.Status),
		AuthorID:  post.AuthorID,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// ListPostsResponse represents a paginated list of posts in API responses.
type ListPostsResponse struct {
	Data     []PostResponse `json:"data"`
	Total    int64          `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ToListPostsResponse converts a page of domain posts to a list response.
func ToListPostsResponse(posts []*domain.Post, total int64, page, pageSize int) ListPostsResponse {
	data := make([]PostResponse, 0, len(posts))
	for _, post := range posts {
		data = append(data, ToPostResponse(post))
	}

	return ListPostsResponse{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
