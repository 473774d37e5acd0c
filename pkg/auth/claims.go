package auth

import (
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the projection of the upstream bearer token the gateway
// relies on. The token is minted and verified by the upstream backend; the
// gateway only reads it to gate views, so no local key material exists.
type SessionClaims struct {
	Email string     `json:"email,omitempty"`
	Name  string     `json:"name,omitempty"`
	Role  enums.Role `json:"role"`
	jwt.RegisteredClaims
}
