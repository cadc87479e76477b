package jwt

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBlacklist map[string]time.Time

func (m memBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	m[jti] = expiresAt
	return nil
}

func (m memBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	_, ok := m[jti]
	return ok, nil
}

type brokenBlacklist struct{}

func (brokenBlacklist) Add(ctx context.Context, jti string, expiresAt time.Time) error { return nil }
func (brokenBlacklist) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	return false, errors.New("redis down")
}

const secret = "test-secret"

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken("652f1c0e8b3a4d0012345678", "a@example.com", secret, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(context.Background(), token, secret, nil)
	require.NoError(t, err)
	assert.Equal(t, "652f1c0e8b3a4d0012345678", claims.UserID)
	assert.Equal(t, "a@example.com", claims.Email)
	assert.Equal(t, "langbridge", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateToken_Rejects(t *testing.T) {
	ctx := context.Background()

	token, err := GenerateToken("u1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)
	_, err = ValidateToken(ctx, token, "other-secret", nil)
	assert.Error(t, err)

	expired, err := GenerateToken("u1", "a@example.com", secret, -time.Minute)
	require.NoError(t, err)
	_, err = ValidateToken(ctx, expired, secret, nil)
	assert.Error(t, err)

	_, err = ValidateToken(ctx, "not-a-token", secret, nil)
	assert.Error(t, err)
}

func TestValidateToken_Blacklist(t *testing.T) {
	ctx := context.Background()
	bl := memBlacklist{}

	token, err := GenerateToken("u1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)
	claims, err := ValidateToken(ctx, token, secret, bl)
	require.NoError(t, err)

	require.NoError(t, bl.Add(ctx, claims.ID, claims.ExpiresAt.Time))
	_, err = ValidateToken(ctx, token, secret, bl)
	assert.ErrorIs(t, err, ErrRevoked)

	_, err = ValidateToken(ctx, token, secret, brokenBlacklist{})
	assert.Error(t, err)
}

func TestTokensAreUnique(t *testing.T) {
	a, err := GenerateToken("u1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateToken("u1", "a@example.com", secret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
