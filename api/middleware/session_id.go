package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

// SessionID resolves the opaque per-client session identifier from the
// configured header, minting one for first-time clients. The identifier
// keys every state slot the gateway holds for the client, so it is echoed
// back on every response.
func SessionID(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	header := cfg.HeaderName
	if header == "" {
		header = "X-Session-Id"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := r.Header.Get(header)
			if sessionID == "" {
				sessionID = uuid.NewString()
			}

			w.Header().Set(header, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
