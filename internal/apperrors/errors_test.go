package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("convert failed: %w", NewValidationError("Amount must be positive"))

	assert.ErrorIs(t, err, ErrValidation)
	assert.NotErrorIs(t, err, ErrInput)
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestAppErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewPersistenceError("failed to save conversion", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, "failed to save conversion: connection reset", err.Error())
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.False(t, IsTransient(errors.New("boom")))
	assert.True(t, IsTransient(Wrap(KindTransientProvider, "rate limit reached", nil)))
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("row 2: %w", New(KindRateUnavailable, "Exchange rate not available for currency: XYZ"))

	assert.Equal(t, "Exchange rate not available for currency: XYZ", UserMessage(wrapped))
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
	assert.Equal(t, "", UserMessage(nil))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "transient_provider", KindTransientProvider.String())
	assert.Equal(t, "internal", ErrorKind(99).String())
}
