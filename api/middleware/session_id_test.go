package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/campuseats/ordering-gateway/pkg/config"
)

func TestSessionIDEchoesExistingHeader(t *testing.T) {
	t.Parallel()

	var seen string
	handler := SessionID(config.SessionConfig{HeaderName: "X-Session-Id"}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = SessionIDFromContext(r.Context())
		}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Session-Id", "sess-42")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "sess-42" {
		t.Fatalf("context session id = %q", seen)
	}
	if got := rec.Header().Get("X-Session-Id"); got != "sess-42" {
		t.Fatalf("echoed header = %q", got)
	}
}

func TestSessionIDMintsWhenAbsent(t *testing.T) {
	t.Parallel()

	var seen string
	handler := SessionID(config.SessionConfig{}, nil)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = SessionIDFromContext(r.Context())
		}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if seen == "" {
		t.Fatal("expected a minted session id")
	}
	if got := rec.Header().Get("X-Session-Id"); got != seen {
		t.Fatalf("header %q does not match context %q", got, seen)
	}
}
