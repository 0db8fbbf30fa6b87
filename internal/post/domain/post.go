// Package domain defines the core post domain entities and types.
package domain

import (
	"time"

	"github.com/allisson/accounts/internal/errors"
)

// Status identifies the lifecycle state of a post.
type Status string

// Available post statuses. Deleted posts stay in storage but are hidden from
// all read paths.
const (
	StatusDraft       Status = "draft"
	StatusPublished   Status = "published"
	StatusUnpublished Status = "unpublished"
	StatusDeleted     Status = "deleted"
)

// IsValid reports whether the status is one of the known values.
func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusUnpublished, StatusDeleted:
		return true
	}
	return false
}

// Post represents a content entry authored by a user.
type Post struct {
	ID        int64
	Title     string
	Content   string
	Status    Status
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for post operations.
var (
	// ErrPostNotFound indicates the requested post does not exist or is deleted.
	ErrPostNotFound = errors.Wrap(errors.ErrNotFound, "post not found")

	// ErrInvalidStatus indicates the status is not one of the known values.
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid post status")
)
