package restaurants

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/errors"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *Service {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := upstream.NewClient(config.UpstreamConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, nil, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	svc, err := NewService(client)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestListDecodesRestaurants(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/restaurants" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`[{"_id":"r1","name":"Embarcadero","latitude":4.86,"longitude":-74.03,"menu":"/blobs/menus/embarcadero.pdf"}]`))
	})

	restaurants, err := svc.List(context.Background(), "tok")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(restaurants) != 1 || restaurants[0].ID != "r1" || restaurants[0].Menu == "" {
		t.Fatalf("unexpected restaurants %+v", restaurants)
	}
}

func TestCreateSendsFullPayload(t *testing.T) {
	t.Parallel()

	var got RestaurantInput
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding payload: %v", err)
		}
		w.Write([]byte(`{"_id":"r1","name":"Embarcadero","latitude":4.86,"longitude":-74.03}`))
	})

	input := RestaurantInput{
		Name:      "Embarcadero",
		Horario:   "8:00 - 20:00",
		Latitude:  4.86,
		Longitude: -74.03,
		Image:     "/blobs/restaurants/embarcadero.png",
	}
	created, err := svc.Create(context.Background(), "tok", input)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "r1" {
		t.Fatalf("unexpected created %+v", created)
	}
	if got != input {
		t.Fatalf("payload mismatch: sent %+v, upstream saw %+v", input, got)
	}
}

func TestUpdateAndDeleteHitRestaurantPath(t *testing.T) {
	t.Parallel()

	var paths []string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		w.Write([]byte(`{"_id":"r1","name":"Embarcadero","latitude":0,"longitude":0}`))
	})
	ctx := context.Background()

	if _, err := svc.Update(ctx, "tok", "r1", RestaurantInput{Name: "Embarcadero"}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if err := svc.Delete(ctx, "tok", "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(paths) != 2 || paths[0] != "PUT /restaurants/r1" || paths[1] != "DELETE /restaurants/r1" {
		t.Fatalf("unexpected upstream calls %v", paths)
	}
}

func TestGetMissingRestaurantIsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Restaurante no encontrado"}`))
	})

	_, err := svc.Get(context.Background(), "tok", "ghost")
	coded := errors.As(err)
	if coded == nil || coded.Code() != errors.CodeNotFound || coded.Message() != "Restaurante no encontrado" {
		t.Fatalf("expected not found with upstream text, got %v", err)
	}
}
