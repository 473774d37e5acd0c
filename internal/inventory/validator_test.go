package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuseats/ordering-gateway/internal/cart"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/config"
)

func newTestValidator(t *testing.T, handler http.HandlerFunc) *Validator {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := upstream.NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	validator, err := NewValidator(client, nil)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}
	return validator
}

func twoLineCart() cart.Cart {
	return cart.Cart{Lines: []cart.Line{
		{ProductID: "A", Quantity: 2},
		{ProductID: "B", Quantity: 1},
	}}
}

func TestValidateSendsEveryLine(t *testing.T) {
	t.Parallel()

	var got validateRequest
	validator := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/inventory/validate-stock" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := validator.Validate(context.Background(), "tok", twoLineCart()); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	want := []validateLine{{ProductID: "A", Quantity: 2}, {ProductID: "B", Quantity: 1}}
	if len(got.Products) != len(want) {
		t.Fatalf("expected %d lines, got %+v", len(want), got.Products)
	}
	for i := range want {
		if got.Products[i] != want[i] {
			t.Fatalf("line %d: expected %+v, got %+v", i, want[i], got.Products[i])
		}
	}
}

func TestValidateRelaysConflictVerbatim(t *testing.T) {
	t.Parallel()

	validator := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"stock insuficiente"}`))
	})

	err := validator.Validate(context.Background(), "tok", twoLineCart())
	conflict, ok := AsStockConflict(err)
	if !ok {
		t.Fatalf("expected StockConflict, got %v", err)
	}
	if conflict.Message != "stock insuficiente" {
		t.Fatalf("backend message must be relayed verbatim, got %q", conflict.Message)
	}
	if conflict.Transport {
		t.Fatal("a structured verdict is not a transport failure")
	}
}

func TestValidateFallsBackWhenConflictBodyUnusable(t *testing.T) {
	t.Parallel()

	validator := newTestValidator(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`not json`))
	})

	err := validator.Validate(context.Background(), "tok", twoLineCart())
	conflict, ok := AsStockConflict(err)
	if !ok || conflict.Message != "Error al validar el stock." {
		t.Fatalf("expected fallback conflict message, got %v", err)
	}
}

func TestValidateMarksTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	client, err := upstream.NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	validator, err := NewValidator(client, nil)
	if err != nil {
		t.Fatalf("NewValidator: %v", err)
	}

	verdict := validator.Validate(context.Background(), "tok", twoLineCart())
	conflict, ok := AsStockConflict(verdict)
	if !ok {
		t.Fatalf("expected StockConflict, got %v", verdict)
	}
	if !conflict.Transport {
		t.Fatal("unreachable server must be flagged as transport failure")
	}
	if conflict.Message != "Error al conectar con el servidor para validar el stock." {
		t.Fatalf("unexpected transport message %q", conflict.Message)
	}
}
