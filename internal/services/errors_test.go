package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatching(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", ErrAlreadyFriends)
	assert.ErrorIs(t, wrapped, ErrAlreadyFriends)
	assert.NotErrorIs(t, wrapped, ErrRequestAlreadyExists)
	assert.Equal(t, KindConflict, KindOf(wrapped))

	copied := &Error{Kind: KindConflict, Message: ErrAlreadyFriends.Message}
	assert.ErrorIs(t, copied, ErrAlreadyFriends)
}

func TestStorageError(t *testing.T) {
	cause := errors.New("connection reset")
	err := storageError("load user", cause)

	assert.Equal(t, KindStorage, KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "load user: connection reset")
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, KindStorage, KindOf(errors.New("boom")))
}
