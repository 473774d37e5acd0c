package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken marks tokens that cannot be decoded at all.
	ErrMalformedToken = errors.New("malformed token")
	// ErrExpiredToken marks tokens whose exp claim is in the past.
	ErrExpiredToken = errors.New("expired token")
)

// DecodeSessionClaims extracts the claim set from an upstream-issued bearer
// token without verifying its signature. The decode is advisory: it decides
// what the gateway renders, while the upstream backend re-validates the same
// token on every privileged request it receives.
func DecodeSessionClaims(tokenString string, now time.Time) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}
