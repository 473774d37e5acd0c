package models

import "time"

// SessionSlot is one named state slot for a client session (cart, token,
// username). It is the durable analog of the browser's local storage entry.
type SessionSlot struct {
	ID        uint   `gorm:"primaryKey"`
	SessionID string `gorm:"size:64;not null;uniqueIndex:idx_session_slot,priority:1"`
	Slot      string `gorm:"size:32;not null;uniqueIndex:idx_session_slot,priority:2"`
	Value     string `gorm:"type:text;not null"`
	// ExpiresAt is set only for ephemeral slots such as checkout notices.
	ExpiresAt *time.Time
	UpdatedAt time.Time
}

// TableName pins the table name.
func (SessionSlot) TableName() string { return "session_slots" }
