package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("matches direct coded error", func(t *testing.T) {
		err := New(CodeNotFound, "student not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeConflict))
	})

	t.Run("matches through wrapping", func(t *testing.T) {
		inner := New(CodeConflict, "username taken")
		err := fmt.Errorf("register: %w", inner)
		assert.True(t, HasCode(err, CodeConflict))
	})

	t.Run("uncoded error matches nothing", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestErrorIs(t *testing.T) {
	t.Run("same code and message match", func(t *testing.T) {
		err := New(CodeUnauthorized, "invalid token")
		require.ErrorIs(t, err, New(CodeUnauthorized, "invalid token"))
	})

	t.Run("empty target message matches any message", func(t *testing.T) {
		err := New(CodeUnauthorized, "invalid token")
		require.ErrorIs(t, err, New(CodeUnauthorized, ""))
	})

	t.Run("different code does not match", func(t *testing.T) {
		err := New(CodeUnauthorized, "invalid token")
		assert.NotErrorIs(t, err, New(CodeNotFound, "invalid token"))
	})
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "failed to save student")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "failed to save student", MessageOf(err))
	// Cause text stays out of the caller-safe message.
	assert.NotContains(t, MessageOf(err), "connection refused")
}

func TestCodeOfDefaultsToInternal(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("raw")))
	assert.Equal(t, "", MessageOf(errors.New("raw")))
}
