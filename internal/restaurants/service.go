package restaurants

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/url"

	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/errors"
)

const (
	transportMessage = "Error al conectar con el servidor."
	saveFallback     = "Error al guardar el restaurante"
	listFallback     = "Error al obtener los restaurantes"
)

// Restaurant mirrors the upstream document. Image and Menu are blob-store
// URLs; Latitude/Longitude position the venue on the campus map view.
type Restaurant struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Horario     string  `json:"horario,omitempty"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Icon        string  `json:"icon,omitempty"`
	Image       string  `json:"image,omitempty"`
	Menu        string  `json:"menu,omitempty"`
}

// RestaurantInput is the POS-supplied payload for creating or updating a
// restaurant.
type RestaurantInput struct {
	Name        string  `json:"name"`
	Horario     string  `json:"horario,omitempty"`
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Icon        string  `json:"icon,omitempty"`
	Image       string  `json:"image,omitempty"`
	Menu        string  `json:"menu,omitempty"`
}

// Service relays restaurant reads and POS CRUD to the upstream.
type Service struct {
	client *upstream.Client
}

// NewService builds the restaurants service.
func NewService(client *upstream.Client) (*Service, error) {
	if client == nil {
		return nil, stdErrors.New("upstream client is required")
	}
	return &Service{client: client}, nil
}

// List returns every restaurant.
func (s *Service) List(ctx context.Context, token string) ([]Restaurant, error) {
	var restaurants []Restaurant
	if err := s.client.DoJSON(ctx, "list_restaurants", http.MethodGet, "/restaurants", token, nil, &restaurants); err != nil {
		return nil, relay(err, listFallback)
	}
	return restaurants, nil
}

// Get returns one restaurant by id.
func (s *Service) Get(ctx context.Context, token, id string) (Restaurant, error) {
	var restaurant Restaurant
	if err := s.client.DoJSON(ctx, "get_restaurant", http.MethodGet, "/restaurants/"+url.PathEscape(id), token, nil, &restaurant); err != nil {
		return Restaurant{}, relay(err, listFallback)
	}
	return restaurant, nil
}

// Create registers a new restaurant.
func (s *Service) Create(ctx context.Context, token string, input RestaurantInput) (Restaurant, error) {
	var created Restaurant
	if err := s.client.DoJSON(ctx, "create_restaurant", http.MethodPost, "/restaurants", token, input, &created); err != nil {
		return Restaurant{}, relay(err, saveFallback)
	}
	return created, nil
}

// Update replaces the restaurant's fields.
func (s *Service) Update(ctx context.Context, token, id string, input RestaurantInput) (Restaurant, error) {
	var updated Restaurant
	if err := s.client.DoJSON(ctx, "update_restaurant", http.MethodPut, "/restaurants/"+url.PathEscape(id), token, input, &updated); err != nil {
		return Restaurant{}, relay(err, saveFallback)
	}
	return updated, nil
}

// Delete removes the restaurant.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.client.DoJSON(ctx, "delete_restaurant", http.MethodDelete, "/restaurants/"+url.PathEscape(id), token, nil, nil); err != nil {
		return relay(err, saveFallback)
	}
	return nil
}

func relay(err error, fallback string) error {
	statusErr, ok := upstream.AsStatusError(err)
	if !ok {
		return errors.Wrap(errors.CodeDependency, err, transportMessage)
	}
	message := statusErr.Message
	if message == "" {
		message = fallback
	}
	if statusErr.StatusCode == http.StatusNotFound {
		return errors.Wrap(errors.CodeNotFound, err, message)
	}
	return errors.Wrap(errors.CodeValidation, err, message)
}
