package state

import (
	"context"
	"time"
)

// Slot names for the per-session state the gateway keeps on behalf of the
// client. They mirror the browser localStorage keys of the web front-end.
const (
	SlotCart     = "cart"
	SlotToken    = "token"
	SlotUsername = "username"
	SlotNotice   = "checkout_notice"
)

// Store is the durable per-session key-value surface. Every mutation is
// written through synchronously; a crash loses at most the in-flight action,
// never committed state. Implementations must serialize writes to the same
// session slot.
type Store interface {
	// Get returns the slot value and whether it exists.
	Get(ctx context.Context, sessionID, slot string) (string, bool, error)
	// Set writes the slot value, replacing any previous value.
	Set(ctx context.Context, sessionID, slot, value string) error
	// Delete removes the slot; deleting a missing slot is not an error.
	Delete(ctx context.Context, sessionID, slot string) error
	// SetEphemeral writes a slot that expires after ttl, for transient
	// user-facing notices.
	SetEphemeral(ctx context.Context, sessionID, slot, value string, ttl time.Duration) error
}
