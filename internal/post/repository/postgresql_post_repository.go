// Package repository provides data persistence implementations for post entities.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/allisson/accounts/internal/database"
	apperrors "github.com/allisson/accounts/internal/errors"
	"github.com/allisson/accounts/internal/post/domain"
)

// PostgreSQLPostRepository handles post persistence for PostgreSQL
type PostgreSQLPostRepository struct {
	db *sql.DB
}

// NewPostgreSQLPostRepository creates a new PostgreSQLPostRepository
func NewPostgreSQLPostRepository(db *sql.DB) *PostgreSQLPostRepository {
	return &PostgreSQLPostRepository{
		db: db,
	}
}

// Create inserts a new post and fills in the generated ID and timestamps.
func (r *PostgreSQLPostRepository) Create(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `INSERT INTO posts (title, content, status, author_id, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err := querier.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Status, post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return apperrors.Wrap(err, "failed to create post")
	}
	return nil
}

// GetByID retrieves a post by ID. Deleted posts are not visible.
func (r *PostgreSQLPostRepository) GetByID(ctx context.Context, id int64) (*domain.Post, error) {
	var post domain.Post
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, content, status, author_id, created_at, updated_at
			  FROM posts WHERE id = $1 AND status != 'deleted'`

	err := querier.QueryRowContext(ctx, query, id).Scan(
		&post.ID, &post.Title, &post.Content, &post.Status, &post.AuthorID,
		&post.CreatedAt, &post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPostNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get post by id")
	}

	return &post, nil
}

// List retrieves non-deleted posts ordered by ID with skip/limit pagination.
func (r *PostgreSQLPostRepository) List(ctx context.Context, skip, limit int) ([]*domain.Post, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT id, title, content, status, author_id, created_at, updated_at
			  FROM posts WHERE status != 'deleted' ORDER BY id LIMIT $1 OFFSET $2`

	rows, err := querier.QueryContext(ctx, query, limit, skip)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list posts")
	}
	defer rows.Close()

	var posts []*domain.Post
	for rows.Next() {
		var post domain.Post
		if err := rows.Scan(
			&post.ID, &post.Title, &post.Content, &post.Status, &post.AuthorID,
			&post.CreatedAt, &post.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan post")
		}
		posts = append(posts, &post)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate posts")
	}

	return posts, nil
}

// Count returns the number of non-deleted posts.
func (r *PostgreSQLPostRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var count int64
	err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE status != 'deleted'`).Scan(&count)
	if err != nil {
		return 0, apperrors.Wrap(err, "failed to count posts")
	}

	return count, nil
}

// Update modifies an existing post. Returns ErrPostNotFound if no row matched.
func (r *PostgreSQLPostRepository) Update(ctx context.Context, post *domain.Post) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE posts
			  SET title = $1, content = $2, status = $3, updated_at = NOW()
			  WHERE id = $4 AND status != 'deleted'`

	result, err := querier.ExecContext(ctx, query, post.Title, post.Content, post.Status, post.ID)
	if err != nil {
		return apperrors.Wrap(err, "failed to update post")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrPostNotFound
	}

	return nil
}

// SoftDelete marks a post as deleted. Returns ErrPostNotFound if no row matched.
func (r *PostgreSQLPostRepository) SoftDelete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	query := `UPDATE posts SET status = 'deleted', updated_at = NOW()
			  WHERE id = $1 AND status != 'deleted'`

	result, err := querier.ExecContext(ctx, query, id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete post")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to get affected rows")
	}
	if affected == 0 {
		return domain.ErrPostNotFound
	}

	return nil
}
