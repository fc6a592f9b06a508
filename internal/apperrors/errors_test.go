package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapAndCode(t *testing.T) {
	cause := errors.New("boom")
	err := fmt.Errorf("outer: %w", Wrap(CodeComputationFailed, "basic tier failed", cause))

	require.True(t, IsCode(err, CodeComputationFailed))
	require.False(t, IsCode(err, CodeInvalidInput))
	require.ErrorIs(t, err, cause)
	require.Equal(t, "basic tier failed", MessageOf(err))
	require.Equal(t, "outer: basic tier failed: boom", err.Error())
}

func TestMessageOf_PlainError(t *testing.T) {
	require.Equal(t, "plain", MessageOf(errors.New("plain")))
	require.Equal(t, "", MessageOf(nil))
	require.Equal(t, "", CodeOf(errors.New("plain")))
}

func TestWrap_NilCause(t *testing.T) {
	err := Wrap(CodeInvalidInput, "latitude out of range", nil)
	require.Equal(t, "latitude out of range", err.Error())
	require.NoError(t, errors.Unwrap(err))
}
