// Package usecase implements the post business logic and orchestrates post domain operations.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/allisson/accounts/internal/post/domain"
	appValidation "github.com/allisson/accounts/internal/validation"
)

// CreatePostInput contains the input data for post creation.
type CreatePostInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status"`
}

// UpdatePostInput contains the optional fields for a partial post update.
// Nil fields are left unchanged.
type UpdatePostInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
	Status  *string `json:"status"`
}

// UseCase defines the interface for post business logic operations
type UseCase interface {
	CreatePost(ctx context.Context, authorID int64, input CreatePostInput) (*domain.Post, error)
	GetPostByID(ctx context.Context, id int64) (*domain.Post, error)
	ListPosts(ctx context.Context, skip, limit int) ([]*domain.Post, int64, error)
	UpdatePost(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error)
	DeletePost(ctx context.Context, id int64) error
}

// PostRepository interface defines post repository operations
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, skip, limit int) ([]*domain.Post, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, post *domain.Post) error
	SoftDelete(ctx context.Context, id int64) error
}

// PostUseCase handles post-related business logic
type PostUseCase struct {
	postRepo PostRepository
}

// NewPostUseCase creates a new PostUseCase
func NewPostUseCase(postRepo PostRepository) UseCase {
	return &PostUseCase{
		postRepo: postRepo,
	}
}

// validateCreatePostInput validates the creation input.
func (uc *PostUseCase) validateCreatePostInput(input CreatePostInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Title,
			validation.Required.Error("title is required"),
			appValidation.NotBlank,
			validation.Length(1, 255).Error("title must be between 1 and 255 characters"),
		),
		validation.Field(&input.Content,
			validation.Required.Error("content is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// CreatePost creates a new post for the given author.
//
// The author always comes from the authenticated identity, never from the
// request body. An empty status defaults to draft; the deleted status cannot
// be set directly.
func (uc *PostUseCase) CreatePost(ctx context.Context, authorID int64, input CreatePostInput) (*domain.Post, error) {
	if err := uc.validateCreatePostInput(input); err != nil {
		return nil, err
	}

	status := domain.Status(input.Status)
	if input.Status == "" {
		status = domain.StatusDraft
	}
	if !status.IsValid() || status == domain.StatusDeleted {
		return nil, domain.ErrInvalidStatus
	}

	post := &domain.Post{
		Title:    strings.TrimSpace(input.Title),
		Content:  input.Content,
		Status:   status,
		AuthorID: authorID,
	}

	if err := uc.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// GetPostByID retrieves a post by ID
func (uc *PostUseCase) GetPostByID(ctx context.Context, id int64) (*domain.Post, error) {
	return uc.postRepo.GetByID(ctx, id)
}

// ListPosts retrieves a page of posts and the total post count.
func (uc *PostUseCase) ListPosts(ctx context.Context, skip, limit int) ([]*domain.Post, int64, error) {
	posts, err := uc.postRepo.List(ctx, skip, limit)
	if err != nil {
		return nil, 0, err
	}

	total, err := uc.postRepo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// UpdatePost applies a partial update to an existing post.
func (uc *PostUseCase) UpdatePost(ctx context.Context, id int64, input UpdatePostInput) (*domain.Post, error) {
	if input.Status != nil {
		status := domain.Status(*input.Status)
		if !status.IsValid() || status == domain.StatusDeleted {
			return nil, domain.ErrInvalidStatus
		}
	}

	post, err := uc.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, appValidation.WrapValidationError(
				validation.NewError("validation_not_blank", "title: must not be blank"),
			)
		}
		post.Title = strings.TrimSpace(*input.Title)
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Status != nil {
		post.Status = domain.Status(*input.Status)
	}

	if err := uc.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// DeletePost marks a post as deleted. The row survives for audit purposes but
// disappears from every read path.
func (uc *PostUseCase) DeletePost(ctx context.Context, id int64) error {
	return uc.postRepo.SoftDelete(ctx, id)
}
