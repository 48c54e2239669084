// Package presence implements driver presence on Redis. Each connected
// driver holds a key refreshed by heartbeats; the key's TTL is the
// liveness window, so a crashed client simply ages out.
package presence

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"fulfillment/internal/core/domain/model/kernel"
)

const keyPrefix = "presence:driver:"

// RedisPresenceStore implements PresenceStore on a Redis client.
type RedisPresenceStore struct {
	client *redis.Client
}

// NewRedisPresenceStore creates a presence store on an existing client.
func NewRedisPresenceStore(client *redis.Client) *RedisPresenceStore {
	return &RedisPresenceStore{client: client}
}

// Heartbeat refreshes the driver's presence entry with the given TTL.
func (s *RedisPresenceStore) Heartbeat(ctx context.Context, driverID kernel.UUID, ttl time.Duration) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if err := s.client.Set(ctx, key(driverID), time.Now().UTC().Format(time.RFC3339), ttl).Err(); err != nil {
		return fmt.Errorf("presence heartbeat for driver %s: %w", driverID, err)
	}
	return nil
}

// Remove deletes the driver's presence entry immediately.
func (s *RedisPresenceStore) Remove(ctx context.Context, driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	if err := s.client.Del(ctx, key(driverID)).Err(); err != nil {
		return fmt.Errorf("presence remove for driver %s: %w", driverID, err)
	}
	return nil
}

// IsOnline reports whether the driver has a live presence entry.
func (s *RedisPresenceStore) IsOnline(ctx context.Context, driverID kernel.UUID) (bool, error) {
	if err := driverID.Validate(); err != nil {
		return false, err
	}

	n, err := s.client.Exists(ctx, key(driverID)).Result()
	if err != nil {
		return false, fmt.Errorf("presence lookup for driver %s: %w", driverID, err)
	}
	return n > 0, nil
}

func key(driverID kernel.UUID) string {
	return keyPrefix + driverID.String()
}
