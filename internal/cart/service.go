package cart

import (
	"context"
	"fmt"

	"github.com/campuseats/ordering-gateway/pkg/metrics"
)

// Service applies reducer actions against the persisted cart, writing every
// mutation through synchronously.
type Service struct {
	store             *Store
	metrics           *metrics.GatewayMetrics
	defaultStockLimit int
}

// NewService builds the cart service.
func NewService(store *Store, gm *metrics.GatewayMetrics, defaultStockLimit int) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store is required")
	}
	if defaultStockLimit < 1 {
		return nil, fmt.Errorf("default stock limit must be positive, got %d", defaultStockLimit)
	}
	return &Service{store: store, metrics: gm, defaultStockLimit: defaultStockLimit}, nil
}

// Get returns the current cart without mutating it.
func (s *Service) Get(ctx context.Context, sessionID string) (Cart, error) {
	return s.store.Load(ctx, sessionID)
}

// AddItem adds one unit of the product and persists the result.
func (s *Service) AddItem(ctx context.Context, sessionID string, product Product) (Cart, error) {
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	next := Add(current, product, s.defaultStockLimit)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, err
	}
	s.metrics.IncCartMutation("add_item")
	return next, nil
}

// ChangeQuantity moves the line quantity by delta and persists the result.
// The returned notice is non-nil when the change ran into the stock limit.
func (s *Service) ChangeQuantity(ctx context.Context, sessionID, productID string, delta int) (Cart, *LimitNotice, error) {
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, nil, err
	}
	next, notice := ChangeQuantity(current, productID, delta)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, nil, err
	}
	s.metrics.IncCartMutation("change_quantity")
	return next, notice, nil
}

// RemoveItem deletes the line and persists the result.
func (s *Service) RemoveItem(ctx context.Context, sessionID, productID string) (Cart, error) {
	current, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return Cart{}, err
	}
	next := Remove(current, productID)
	if err := s.store.Save(ctx, sessionID, next); err != nil {
		return Cart{}, err
	}
	s.metrics.IncCartMutation("remove_item")
	return next, nil
}

// Clear empties the cart and removes the persisted entry.
func (s *Service) Clear(ctx context.Context, sessionID string) (Cart, error) {
	if err := s.store.Clear(ctx, sessionID); err != nil {
		return Cart{}, err
	}
	s.metrics.IncCartMutation("clear")
	return Clear(), nil
}
