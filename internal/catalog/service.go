package catalog

import (
	"context"
	stdErrors "errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/campuseats/ordering-gateway/internal/upstream"
	"github.com/campuseats/ordering-gateway/pkg/config"
	"github.com/campuseats/ordering-gateway/pkg/errors"
)

const (
	listTransportMessage = "Error al conectar con el servidor."
	listFallbackMessage  = "Error al obtener los productos"
	saveFallbackMessage  = "Error al guardar el producto"
)

// Service serves the product catalog: cached listings for browsing and POS
// CRUD over the upstream inventory routes. The upstream stays authoritative;
// the cache only smooths repeat reads.
type Service struct {
	client *upstream.Client
	cache  *listCache
}

// NewService builds the catalog service.
func NewService(client *upstream.Client, cfg config.CatalogConfig) (*Service, error) {
	if client == nil {
		return nil, stdErrors.New("upstream client is required")
	}
	return &Service{
		client: client,
		cache:  newListCache(cfg.CacheTTL),
	}, nil
}

// List returns products matching the query, from cache when fresh.
func (s *Service) List(ctx context.Context, token string, q ListQuery) ([]Product, error) {
	key := q.cacheKey()
	if cached, ok := s.cache.get(key); ok {
		return cached, nil
	}

	var products []Product
	path := "/products"
	if encoded := q.encode(); encoded != "" {
		path += "?" + encoded
	}
	if err := s.client.DoJSON(ctx, "list_products", http.MethodGet, path, token, nil, &products); err != nil {
		return nil, relay(err, listFallbackMessage)
	}
	s.cache.put(key, products)
	return products, nil
}

// Get returns one product by id.
func (s *Service) Get(ctx context.Context, token, id string) (Product, error) {
	var product Product
	if err := s.client.DoJSON(ctx, "get_product", http.MethodGet, "/inventory/"+url.PathEscape(id), token, nil, &product); err != nil {
		return Product{}, relay(err, listFallbackMessage)
	}
	return product, nil
}

// Create adds a product to the catalog and invalidates cached listings.
func (s *Service) Create(ctx context.Context, token string, input ProductInput) (Product, error) {
	var created Product
	if err := s.client.DoJSON(ctx, "create_product", http.MethodPost, "/products", token, input, &created); err != nil {
		return Product{}, relay(err, saveFallbackMessage)
	}
	s.cache.invalidate()
	return created, nil
}

// Update replaces the product's fields and invalidates cached listings.
func (s *Service) Update(ctx context.Context, token, id string, input ProductInput) (Product, error) {
	var updated Product
	if err := s.client.DoJSON(ctx, "update_product", http.MethodPut, "/inventory/"+url.PathEscape(id), token, input, &updated); err != nil {
		return Product{}, relay(err, saveFallbackMessage)
	}
	s.cache.invalidate()
	return updated, nil
}

// Delete removes the product and invalidates cached listings.
func (s *Service) Delete(ctx context.Context, token, id string) error {
	if err := s.client.DoJSON(ctx, "delete_product", http.MethodDelete, "/inventory/"+url.PathEscape(id), token, nil, nil); err != nil {
		return relay(err, saveFallbackMessage)
	}
	s.cache.invalidate()
	return nil
}

// Invalidate drops every cached listing. The checkout orchestrator calls
// this after a successful order so stock shown to the next browser is fresh.
func (s *Service) Invalidate() {
	s.cache.invalidate()
}

func (q ListQuery) encode() string {
	values := url.Values{}
	if q.Name != "" {
		values.Set("name", q.Name)
	}
	if q.Category != "" {
		values.Set("category", q.Category)
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	return values.Encode()
}

func (q ListQuery) cacheKey() string {
	return q.encode()
}

func relay(err error, fallback string) error {
	statusErr, ok := upstream.AsStatusError(err)
	if !ok {
		return errors.Wrap(errors.CodeDependency, err, listTransportMessage)
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
