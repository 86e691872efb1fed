package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewIOError("disk full")))
	assert.True(t, IsRetryable(NewInternalError("worker crashed")))
	assert.False(t, IsRetryable(NewValidationError("BAD", "bad input")))
	assert.False(t, IsRetryable(ErrEmptyDataset))
	assert.False(t, IsRetryable(nil))

	// Retryability survives fmt.Errorf wrapping.
	wrapped := fmt.Errorf("exporting dataset: %w", NewIOError("disk full"))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(fmt.Errorf("plain failure")))
}

func TestIsType(t *testing.T) {
	assert.True(t, IsType(ErrDuplicateEmployee, ErrorTypeConflict))
	assert.True(t, IsType(Wrap(ErrEmptyDataset, "labeling"), ErrorTypeBusiness))
	assert.False(t, IsType(ErrPatternNotFound, ErrorTypeValidation))
	assert.False(t, IsType(nil, ErrorTypeInternal))
}
