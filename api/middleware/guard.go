package middleware

import (
	"net/http"

	"github.com/campuseats/ordering-gateway/api/responses"
	"github.com/campuseats/ordering-gateway/internal/session"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	pkgerrors "github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

// Guard gates the wrapped routes on the session guard's verdict. A redirect
// verdict renders as 401 with the login path; a deny as 403 with the guard's
// message, leaving the token persisted. On allow the token and claims are
// stashed in the request context for handlers to forward upstream.
func Guard(guard *session.Guard, requiredRole enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			decision, err := guard.Authorize(ctx, SessionIDFromContext(ctx), requiredRole)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "authorizing session"))
				return
			}

			switch decision.Outcome {
			case session.OutcomeRedirect:
				responses.WriteRedirect(w, decision.RedirectTo)
			case session.OutcomeDeny:
				responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeForbidden, decision.Message))
			default:
				ctx = WithSession(ctx, decision.Token, decision.Claims)
				if logg != nil && decision.Claims != nil {
					ctx = logg.WithActorRole(ctx, decision.Claims.Role.String())
				}
				next.ServeHTTP(w, r.WithContext(ctx))
			}
		})
	}
}
