package session

import (
	"context"
	"errors"

	"github.com/campuseats/ordering-gateway/internal/state"
)

// Tokens owns the token and username slots of the session state, the
// gateway-side stand-in for the browser's local storage.
type Tokens struct {
	state state.Store
}

// NewTokens binds the token store to the session state backend.
func NewTokens(backend state.Store) (*Tokens, error) {
	if backend == nil {
		return nil, errors.New("state backend is required")
	}
	return &Tokens{state: backend}, nil
}

// Token returns the persisted bearer token, if any.
func (t *Tokens) Token(ctx context.Context, sessionID string) (string, bool, error) {
	return t.state.Get(ctx, sessionID, state.SlotToken)
}

// Save persists the token and display username after a successful login.
func (t *Tokens) Save(ctx context.Context, sessionID, token, username string) error {
	if err := t.state.Set(ctx, sessionID, state.SlotToken, token); err != nil {
		return err
	}
	return t.state.Set(ctx, sessionID, state.SlotUsername, username)
}

// Username returns the persisted display name, if any.
func (t *Tokens) Username(ctx context.Context, sessionID string) (string, bool, error) {
	return t.state.Get(ctx, sessionID, state.SlotUsername)
}

// Clear drops the token and username, ending the session locally.
func (t *Tokens) Clear(ctx context.Context, sessionID string) error {
	if err := t.state.Delete(ctx, sessionID, state.SlotToken); err != nil {
		return err
	}
	return t.state.Delete(ctx, sessionID, state.SlotUsername)
}
