package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/campuseats/ordering-gateway/internal/state"
)

// Store persists the serialized cart in the session state slot. It is the
// only owner of that slot; readers always get an independent copy.
type Store struct {
	state state.Store
}

// NewStore binds the cart store to the session state backend.
func NewStore(backend state.Store) (*Store, error) {
	if backend == nil {
		return nil, errors.New("state backend is required")
	}
	return &Store{state: backend}, nil
}

// Load returns the persisted cart, or the empty cart when none exists. A
// corrupt slot is discarded rather than wedging the session.
func (s *Store) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, ok, err := s.state.Get(ctx, sessionID, state.SlotCart)
	if err != nil {
		return Cart{}, err
	}
	if !ok {
		return Cart{}, nil
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		if delErr := s.state.Delete(ctx, sessionID, state.SlotCart); delErr != nil {
			return Cart{}, fmt.Errorf("discarding corrupt cart: %w", delErr)
		}
		return Cart{}, nil
	}
	return c, nil
}

// Save writes the full cart through to the backend.
func (s *Store) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding cart: %w", err)
	}
	return s.state.Set(ctx, sessionID, state.SlotCart, string(raw))
}

// Clear removes the persisted cart entirely.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	return s.state.Delete(ctx, sessionID, state.SlotCart)
}
