package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuseats/ordering-gateway/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLiteStore keeps session slots in the embedded SQLite file, for
// single-instance and local deployments where Redis is not available.
type SQLiteStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLiteStore binds the store to the provided GORM handle.
func NewSQLiteStore(db *gorm.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("db handle is required")
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, sessionID, slot string) (string, bool, error) {
	var record models.SessionSlot
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND slot = ?", sessionID, slot).
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading session slot: %w", err)
	}
	if record.ExpiresAt != nil && !record.ExpiresAt.After(s.now()) {
		// Lazy expiry; the row is gone as far as callers are concerned.
		_ = s.db.WithContext(ctx).Delete(&models.SessionSlot{}, record.ID).Error
		return "", false, nil
	}
	return record.Value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, sessionID, slot, value string) error {
	return s.upsert(ctx, sessionID, slot, value, nil)
}

func (s *SQLiteStore) Delete(ctx context.Context, sessionID, slot string) error {
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND slot = ?", sessionID, slot).
		Delete(&models.SessionSlot{}).Error
	if err != nil {
		return fmt.Errorf("deleting session slot: %w", err)
	}
	return nil
}

// Ping reports whether the backing database answers.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.WithContext(ctx).DB()
	if err != nil {
		return fmt.Errorf("resolving sql handle: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

func (s *SQLiteStore) SetEphemeral(ctx context.Context, sessionID, slot, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ephemeral slot needs a positive ttl")
	}
	expiresAt := s.now().Add(ttl)
	return s.upsert(ctx, sessionID, slot, value, &expiresAt)
}

func (s *SQLiteStore) upsert(ctx context.Context, sessionID, slot, value string, expiresAt *time.Time) error {
	record := models.SessionSlot{
		SessionID: sessionID,
		Slot:      slot,
		Value:     value,
		ExpiresAt: expiresAt,
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "slot"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
		}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("writing session slot: %w", err)
	}
	return nil
}
