package stream

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateToken(t *testing.T) {
	p := NewTokenProvider("key", "secret")
	assert.Equal(t, "key", p.APIKey())

	signed, err := p.CreateToken("user-1")
	require.NoError(t, err)

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "HS256", token.Method.Alg())
	assert.Equal(t, "user-1", claims["user_id"])
	assert.NotContains(t, claims, "exp")
}

func TestCreateToken_Errors(t *testing.T) {
	_, err := NewTokenProvider("", "").CreateToken("user-1")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewTokenProvider("key", "secret").CreateToken("")
	assert.Error(t, err)
}
