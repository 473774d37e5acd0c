package session

import (
	"context"
	"errors"
	"time"

	"github.com/campuseats/ordering-gateway/pkg/auth"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

const (
	loginPath   = "/login"
	denyMessage = "insufficient permission"
)

// Outcome is the guard's verdict kind.
type Outcome string

const (
	OutcomeAllow    Outcome = "allow"
	OutcomeRedirect Outcome = "redirect"
	OutcomeDeny     Outcome = "deny"
)

// Decision is the guard's answer for one request. Allow carries the decoded
// claims and the raw token so callers can forward it upstream; Redirect
// carries the target path; Deny carries the user-facing message.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
	Message    string
	Token      string
	Claims     *auth.SessionClaims
}

// Guard gates views on the persisted session token. The check is advisory
// and UX-only: the upstream backend re-validates the same token on every
// privileged request, so the guard grants no authority of its own.
type Guard struct {
	tokens *Tokens
	logg   *logger.Logger
	now    func() time.Time
}

// NewGuard builds the session guard.
func NewGuard(tokens *Tokens, logg *logger.Logger) (*Guard, error) {
	if tokens == nil {
		return nil, errors.New("token store is required")
	}
	return &Guard{tokens: tokens, logg: logg, now: time.Now}, nil
}

// Authorize decides allow, redirect-to-login or deny for the session. A
// missing, malformed or expired token redirects; a valid token with the
// wrong role denies but stays persisted, since the user is legitimately
// logged in and merely viewing the wrong area. requiredRole empty means any
// valid session passes. The returned error reports state-store failures
// only, never an authorization verdict.
func (g *Guard) Authorize(ctx context.Context, sessionID string, requiredRole enums.Role) (Decision, error) {
	token, ok, err := g.tokens.Token(ctx, sessionID)
	if err != nil {
		return Decision{}, err
	}
	if !ok || token == "" {
		return Decision{Outcome: OutcomeRedirect, RedirectTo: loginPath}, nil
	}

	claims, decodeErr := auth.DecodeSessionClaims(token, g.now())
	if decodeErr != nil {
		if g.logg != nil {
			g.logg.Warn(ctx, "discarding unusable session token: "+decodeErr.Error())
		}
		if err := g.tokens.Clear(ctx, sessionID); err != nil {
			return Decision{}, err
		}
		return Decision{Outcome: OutcomeRedirect, RedirectTo: loginPath}, nil
	}

	if requiredRole != "" && claims.Role != requiredRole {
		return Decision{Outcome: OutcomeDeny, Message: denyMessage, Claims: claims}, nil
	}
	return Decision{Outcome: OutcomeAllow, Token: token, Claims: claims}, nil
}
