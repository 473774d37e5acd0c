package routes

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campuseats/ordering-gateway/internal/auth"
	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/catalog"
	"github.com/campuseats/ordering-gateway/internal/checkout"
	"github.com/campuseats/ordering-gateway/internal/inventory"
	"github.com/campuseats/ordering-gateway/internal/media"
	"github.com/campuseats/ordering-gateway/internal/orders"
	"github.com/campuseats/ordering-gateway/internal/restaurants"
	"github.com/campuseats/ordering-gateway/internal/session"
	"github.com/campuseats/ordering-gateway/internal/state"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	jwtauth "github.com/campuseats/ordering-gateway/pkg/auth"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

func mintToken(t *testing.T, role enums.Role) string {
	t.Helper()

	claims := jwtauth.SessionClaims{
		Email: "ana@campus.edu",
		Name:  "Ana",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("upstream-secret"))
	if err != nil {
		t.Fatalf("minting token: %v", err)
	}
	return token
}

func newTestRouter(t *testing.T, upstreamHandler http.Handler) http.Handler {
	t.Helper()

	server := httptest.NewServer(upstreamHandler)
	t.Cleanup(server.Close)

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.Upstream.BaseURL = server.URL
	cfg.Upstream.Timeout = time.Second
	cfg.Session.HeaderName = "X-Session-Id"
	cfg.Cart.DefaultStockLimit = 99
	cfg.Checkout.Timeout = time.Second
	cfg.Checkout.SuccessNoticeTTL = time.Second
	cfg.CORS.AllowedOrigins = []string{"*"}
	cfg.Blob.MaxUploadMB = 1

	logg := logger.New(logger.Options{Output: io.Discard})
	backend := state.NewMemoryStore()

	client, err := upstream.NewClient(cfg.Upstream, logg, nil)
	if err != nil {
		t.Fatalf("building upstream client: %v", err)
	}

	cartStore, err := cart.NewStore(backend)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	cartSvc, err := cart.NewService(cartStore, nil, cfg.Cart.DefaultStockLimit)
	if err != nil {
		t.Fatalf("cart.NewService: %v", err)
	}

	tokens, err := session.NewTokens(backend)
	if err != nil {
		t.Fatalf("NewTokens: %v", err)
	}
	guard, err := session.NewGuard(tokens, logg)
	if err != nil {
		t.Fatalf("NewGuard: %v", err)
	}

	authSvc, err := auth.NewService(client, tokens, logg)
	if err != nil {
		t.Fatalf("auth.NewService: %v", err)
	}
	catalogSvc, err := catalog.NewService(client, cfg.Catalog)
	if err != nil {
		t.Fatalf("catalog.NewService: %v", err)
	}
	restaurantsSvc, err := restaurants.NewService(client)
	if err != nil {
		t.Fatalf("restaurants.NewService: %v", err)
	}
	ordersSvc, err := orders.NewService(client)
	if err != nil {
		t.Fatalf("orders.NewService: %v", err)
	}

	validator, err := inventory.NewValidator(client, logg)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	submitter, err := checkout.NewUpstreamSubmitter(client)
	if err != nil {
		t.Fatalf("NewUpstreamSubmitter: %v", err)
	}
	orchestrator, err := checkout.NewOrchestrator(cartStore, validator, submitter, backend, catalogSvc, logg, nil, cfg.Checkout)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}

	return NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		State:       backend,
		Guard:       guard,
		Auth:        authSvc,
		Cart:        cartSvc,
		Checkout:    orchestrator,
		Catalog:     catalogSvc,
		Restaurants: restaurantsSvc,
		Orders:      ordersSvc,
		Media:       media.NewService(nil, logg),
	})
}

func loginUpstream(t *testing.T, role enums.Role) http.Handler {
	t.Helper()

	token := mintToken(t, role)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/login" {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(map[string]string{"token": token})
			return
		}
		http.NotFound(w, r)
	})
}

func doLogin(t *testing.T, router http.Handler, sessionID string) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login",
		strings.NewReader(`{"email":"ana@campus.edu","password":"secreta"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", sessionID)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestHealthLive(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if env := rec.Header().Get("X-CampusEats-Env"); env != "test" {
		t.Fatalf("env header = %q", env)
	}
}

func TestCustomerSurfaceRedirectsAnonymousClients(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "anon-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"/login"`) {
		t.Fatalf("expected login redirect, got %s", rec.Body.String())
	}
}

func TestSessionHeaderIsMintedWhenAbsent(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, http.NotFoundHandler())

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Header().Get("X-Session-Id") == "" {
		t.Fatal("expected a minted session id header")
	}
}

func TestLoginThenCartFlow(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loginUpstream(t, enums.RoleCliente))
	doLogin(t, router, "sess-flow")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items",
		strings.NewReader(`{"productId":"p1","name":"Arepa","price":5000,"stock":3}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-Id", "sess-flow")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("add item status = %d, body %s", rec.Code, rec.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "sess-flow")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"Arepa"`) {
		t.Fatalf("expected the added line, got %s", rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"total":"5000"`) {
		t.Fatalf("expected recomputed total, got %s", rec.Body.String())
	}
}

func TestCustomerSurfaceDeniesPOSRole(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loginUpstream(t, enums.RolePOS))
	doLogin(t, router, "sess-pos")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Session-Id", "sess-pos")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestPOSSurfaceDeniesCustomerRole(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loginUpstream(t, enums.RoleCliente))
	doLogin(t, router, "sess-cliente")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/pos/orders", nil)
	req.Header.Set("X-Session-Id", "sess-cliente")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestCatalogReadsAcceptAnySignedInRole(t *testing.T) {
	t.Parallel()

	token := mintToken(t, enums.RolePOS)
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/login":
			json.NewEncoder(w).Encode(map[string]string{"token": token})
		case r.Method == http.MethodGet && r.URL.Path == "/products":
			json.NewEncoder(w).Encode([]map[string]any{{"_id": "p1", "name": "Arepa", "price": 5000}})
		default:
			http.NotFound(w, r)
		}
	})

	router := newTestRouter(t, backend)
	doLogin(t, router, "sess-browse")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	req.Header.Set("X-Session-Id", "sess-browse")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"Arepa"`) {
		t.Fatalf("expected product list, got %s", rec.Body.String())
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, loginUpstream(t, enums.RoleCliente))
	doLogin(t, router, "sess-empty")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req.Header.Set("X-Session-Id", "sess-empty")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "El carrito está vacío.") {
		t.Fatalf("expected empty-cart message, got %s", rec.Body.String())
	}
}
