package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	wrapped := fmt.Errorf("toggle like: %w", NewNotFoundError("post", 7))
	assert.Equal(t, CodeNotFound, ErrorCode(wrapped))
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.Equal(t, "post 7 not found", UserMessage(wrapped))

	plain := errors.New("disk full")
	assert.Equal(t, CodeInternal, ErrorCode(plain))
	assert.False(t, IsCode(nil, CodeInternal))
}

func TestUserMessageHidesInternalDetail(t *testing.T) {
	err := NewInternalError(errors.New("sql: connection refused"))
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotContains(t, UserMessage(err), "connection refused")
	assert.ErrorIs(t, err, err.Err)
}

func TestPostKindValid(t *testing.T) {
	for _, tc := range []struct {
		in string
		ok bool
	}{
		{"story", true},
		{"quote", true},
		{"Story", false},
		{"poem", false},
		{"", false},
	} {
		assert.Equal(t, tc.ok, PostKind(tc.in).Valid(), tc.in)
	}
}
