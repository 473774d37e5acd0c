package middleware

import (
	"context"

	"github.com/campuseats/ordering-gateway/pkg/auth"
	"github.com/campuseats/ordering-gateway/pkg/enums"
)

type contextKey string

const (
	ctxSessionID contextKey = "session_id"
	ctxToken     contextKey = "upstream_token"
	ctxClaims    contextKey = "session_claims"
)

func SessionIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxSessionID).(string); ok {
		return v
	}
	return ""
}

// TokenFromContext returns the bearer token the guard resolved for this
// request; empty on unauthenticated routes.
func TokenFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxToken).(string); ok {
		return v
	}
	return ""
}

func ClaimsFromContext(ctx context.Context) *auth.SessionClaims {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxClaims).(*auth.SessionClaims); ok {
		return v
	}
	return nil
}

func RoleFromContext(ctx context.Context) enums.Role {
	if claims := ClaimsFromContext(ctx); claims != nil {
		return claims.Role
	}
	return ""
}

// WithSessionID injects the session identifier into the context.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxSessionID, sessionID)
}

// WithSession injects the guard's allow verdict for downstream handlers.
func WithSession(ctx context.Context, token string, claims *auth.SessionClaims) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxToken, token)
	return context.WithValue(ctx, ctxClaims, claims)
}
