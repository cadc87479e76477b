// Package stream issues user tokens for the hosted chat and video service.
// Messages and calls never pass through this server; clients connect to the
// service directly with the token returned here.
package stream

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

var ErrNotConfigured = errors.New("stream credentials are not configured")

type TokenProvider struct {
	apiKey    string
	apiSecret string
}

func NewTokenProvider(apiKey, apiSecret string) *TokenProvider {
	return &TokenProvider{apiKey: apiKey, apiSecret: apiSecret}
}

// APIKey is the public key the client SDKs are initialised with.
func (p *TokenProvider) APIKey() string { return p.apiKey }

// CreateToken returns a user token signed with the API secret. The service expects
// an HS256 JWT carrying a user_id claim and no expiry.
func (p *TokenProvider) CreateToken(userID string) (string, error) {
	if p.apiKey == "" || p.apiSecret == "" {
		return "", ErrNotConfigured
	}
	if userID == "" {
		return "", errors.New("user id is required")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": userID})
	signed, err := token.SignedString([]byte(p.apiSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign stream token: %w", err)
	}
	return signed, nil
}
