package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAdd_ExpiredTokenIsIgnored(t *testing.T) {
	b := NewTokenBlacklist(nil)
	assert.NoError(t, b.Add(context.Background(), "jti", time.Now().Add(-time.Minute)))
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(context.Background(), "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
