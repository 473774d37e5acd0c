package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisclient "github.com/campuseats/ordering-gateway/pkg/redis"
)

// RedisStore keeps session slots in Redis, the shared backend for
// multi-instance deployments.
type RedisStore struct {
	client     *redisclient.Client
	sessionTTL time.Duration
}

// NewRedisStore binds the store to the provided client. sessionTTL bounds how
// long idle session state is retained; zero means no expiry.
func NewRedisStore(client *redisclient.Client, sessionTTL time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	return &RedisStore{client: client, sessionTTL: sessionTTL}, nil
}

func (s *RedisStore) Get(ctx context.Context, sessionID, slot string) (string, bool, error) {
	value, err := s.client.Get(ctx, s.client.SessionSlotKey(sessionID, slot))
	if errors.Is(err, redisclient.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading session slot: %w", err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, sessionID, slot, value string) error {
	if err := s.client.Set(ctx, s.client.SessionSlotKey(sessionID, slot), value, s.sessionTTL); err != nil {
		return fmt.Errorf("writing session slot: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, sessionID, slot string) error {
	if err := s.client.Del(ctx, s.client.SessionSlotKey(sessionID, slot)); err != nil {
		return fmt.Errorf("deleting session slot: %w", err)
	}
	return nil
}

// Ping reports whether the backing Redis answers.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *RedisStore) SetEphemeral(ctx context.Context, sessionID, slot, value string, ttl time.Duration) error {
	if ttl <= 0 {
		return errors.New("ephemeral slot needs a positive ttl")
	}
	if err := s.client.Set(ctx, s.client.SessionSlotKey(sessionID, slot), value, ttl); err != nil {
		return fmt.Errorf("writing ephemeral slot: %w", err)
	}
	return nil
}
