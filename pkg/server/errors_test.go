package server

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapErrorf(t *testing.T) {
	cause := errors.New("boom")
	err := WrapErrorf(cause, ErrNotFound, "route %d not found", 7)

	assert.Equal(t, "route 7 not found: boom", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrNotFound, CodeOf(err))

	wrapped := fmt.Errorf("query: %w", err)
	assert.Equal(t, ErrNotFound, CodeOf(wrapped))
}

func TestNewErrorf(t *testing.T) {
	err := NewErrorf(ErrBadParamInput, "invalid vehicle_type %q", "tank")
	assert.Equal(t, `invalid vehicle_type "tank"`, err.Error())
	assert.Equal(t, ErrBadParamInput, CodeOf(err))
	assert.Equal(t, ErrUnknown, CodeOf(errors.New("plain")))
	assert.Equal(t, "bad param input", ErrBadParamInput.String())
}
