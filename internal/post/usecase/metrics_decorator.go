package usecase

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/metrics"
	"github.com/allisson/accounts/internal/post/domain"
)

// postUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type postUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewPostUseCaseWithMetrics wraps a post UseCase with metrics recording.
func NewPostUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &postUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// CreatePost records metrics for post creation operations.
func (p *postUseCaseWithMetrics) CreatePost(
	ctx context.Context,
	authorID int64,
	input CreatePostInput,
) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.CreatePost(ctx, authorID, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "create", status)
	p.metrics.RecordDuration(ctx, "post", "create", time.Since(start), status)

	return post, err
}

// GetPostByID records metrics for post retrieval operations.
func (p *postUseCaseWithMetrics) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.GetPostByID(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "get", status)
	p.metrics.RecordDuration(ctx, "post", "get", time.Since(start), status)

	return post, err
}

// ListPosts records metrics for post list operations.
func (p *postUseCaseWithMetrics) ListPosts(
	ctx context.Context,
	skip, limit int,
) ([]*domain.Post, int64, error) {
	start := time.Now()
	posts, total, err := p.next.ListPosts(ctx, skip, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "list", status)
	p.metrics.RecordDuration(ctx, "post", "list", time.Since(start), status)

	return posts, total, err
}

// UpdatePost records metrics for post update operations.
func (p *postUseCaseWithMetrics) UpdatePost(
	ctx context.Context,
	id int64,
	input UpdatePostInput,
) (*domain.Post, error) {
	start := time.Now()
	post, err := p.next.UpdatePost(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "update", status)
	p.metrics.RecordDuration(ctx, "post", "update", time.Since(start), status)

	return post, err
}

// DeletePost records metrics for post deletion operations.
func (p *postUseCaseWithMetrics) DeletePost(ctx context.Context, id int64) error {
	start := time.Now()
	err := p.next.DeletePost(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	p.metrics.RecordOperation(ctx, "post", "delete", status)
	p.metrics.RecordDuration(ctx, "post", "delete", time.Since(start), status)

	return err
}
