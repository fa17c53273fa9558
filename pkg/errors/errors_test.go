package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New(ErrNotFound, "thing is missing")

	assert.Equal(t, ErrNotFound, err.Code)
	assert.Equal(t, "[NOT_FOUND] thing is missing", err.Error())
	assert.Nil(t, err.Wrapped)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrInvalidName, "name %q is reserved", "func")

	assert.Equal(t, `[INVALID_NAME] name "func" is reserved`, err.Error())
}

func TestWrap(t *testing.T) {
	t.Run("wraps underlying error", func(t *testing.T) {
		cause := fmt.Errorf("disk on fire")
		err := Wrap(cause, ErrIOFailure, "backup failed")

		assert.Equal(t, "[IO_FAILURE] backup failed: disk on fire", err.Error())
		assert.Equal(t, cause, errors.Unwrap(err))
	})

	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, ErrIOFailure, "ignored"))
		assert.Nil(t, Wrapf(nil, ErrIOFailure, "ignored %d", 1))
	})
}

func TestIs(t *testing.T) {
	err := Wrap(fmt.Errorf("cause"), ErrConstantBinding, "refused")

	assert.True(t, errors.Is(err, New(ErrConstantBinding, "any message")))
	assert.False(t, errors.Is(err, New(ErrNotFound, "any message")))
}

func TestIsErrorCode(t *testing.T) {
	err := New(ErrOperationFailed, "op blew up")

	assert.True(t, IsErrorCode(err, ErrOperationFailed))
	assert.False(t, IsErrorCode(err, ErrIOFailure))
	assert.False(t, IsErrorCode(fmt.Errorf("plain"), ErrOperationFailed))
	assert.False(t, IsErrorCode(nil, ErrOperationFailed))
}

func TestIsErrorCode_WrappedChain(t *testing.T) {
	inner := New(ErrInvalidName, "bad name")
	outer := fmt.Errorf("assign: %w", inner)

	assert.True(t, IsErrorCode(outer, ErrInvalidName))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrNotFound, GetErrorCode(New(ErrNotFound, "x")))
	assert.Equal(t, ErrUnknown, GetErrorCode(fmt.Errorf("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrIOFailure, "rename failed").
		WithDetail("path", "/tmp/x").
		WithDetail("backup", "/tmp/x_0001beef")

	details := GetErrorDetails(err)
	assert.Equal(t, "/tmp/x", details["path"])
	assert.Equal(t, "/tmp/x_0001beef", details["backup"])
	assert.Nil(t, GetErrorDetails(fmt.Errorf("plain")))
}
