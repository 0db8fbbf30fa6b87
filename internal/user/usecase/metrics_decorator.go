package usecase

import (
	"context"
	"time"

	"github.com/allisson/accounts/internal/metrics"
	"github.com/allisson/accounts/internal/user/domain"
)

// userUseCaseWithMetrics decorates UseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a user UseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UseCase, m metrics.BusinessMetrics) UseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// RegisterUser records metrics for user registration operations.
func (u *userUseCaseWithMetrics) RegisterUser(
	ctx context.Context,
	input RegisterUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.RegisterUser(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "register", status)
	u.metrics.RecordDuration(ctx, "user", "register", time.Since(start), status)

	return user, err
}

// GetUserByID records metrics for user retrieval operations.
func (u *userUseCaseWithMetrics) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.GetUserByID(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "get", status)
	u.metrics.RecordDuration(ctx, "user", "get", time.Since(start), status)

	return user, err
}

// ListUsers records metrics for user list operations.
func (u *userUseCaseWithMetrics) ListUsers(
	ctx context.Context,
	skip, limit int,
) ([]*domain.User, int64, error) {
	start := time.Now()
	users, total, err := u.next.ListUsers(ctx, skip, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "list", status)
	u.metrics.RecordDuration(ctx, "user", "list", time.Since(start), status)

	return users, total, err
}

// UpdateUser records metrics for user update operations.
func (u *userUseCaseWithMetrics) UpdateUser(
	ctx context.Context,
	id int64,
	input UpdateUserInput,
) (*domain.User, error) {
	start := time.Now()
	user, err := u.next.UpdateUser(ctx, id, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "update", status)
	u.metrics.RecordDuration(ctx, "user", "update", time.Since(start), status)

	return user, err
}

// DeleteUser records metrics for user deletion operations.
func (u *userUseCaseWithMetrics) DeleteUser(ctx context.Context, id int64) error {
	start := time.Now()
	err := u.next.DeleteUser(ctx, id)

	status := "success"
	if err != nil {
		status = "error"
	}

	u.metrics.RecordOperation(ctx, "user", "delete", status)
	u.metrics.RecordDuration(ctx, "user", "delete", time.Since(start), status)

	return err
}
