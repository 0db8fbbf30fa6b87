package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	t.Run("wraps error with context", func(t *testing.T) {
		wrapped := Wrap(ErrNotFound, "user lookup")

		assert.EqualError(t, wrapped, "user lookup: not found")
		assert.True(t, errors.Is(wrapped, ErrNotFound))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, "context"))
	})

	t.Run("chain survives multiple wraps", func(t *testing.T) {
		wrapped := Wrap(Wrap(ErrConflict, "inner"), "outer")

		assert.True(t, errors.Is(wrapped, ErrConflict))
		assert.EqualError(t, wrapped, "outer: inner: conflict")
	})
}

func TestIs(t *testing.T) {
	assert.True(t, Is(Wrap(ErrUnauthorized, "token"), ErrUnauthorized))
	assert.False(t, Is(Wrap(ErrUnauthorized, "token"), ErrForbidden))
	assert.False(t, Is(nil, ErrNotFound))
}

func TestAs(t *testing.T) {
	type customError struct{ error }

	custom := customError{errors.New("custom")}
	wrapped := Wrap(custom, "context")

	var target customError
	assert.True(t, As(wrapped, &target))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{ErrNotFound, ErrConflict, ErrInvalidInput, ErrUnauthorized, ErrForbidden}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b))
		}
	}
}
