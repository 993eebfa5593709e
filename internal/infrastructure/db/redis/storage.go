package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

const keyPrefix = "meetdesk:client:"

// StorageProvider hands out per-client key/value stores backed by Redis.
// Key format: meetdesk:client:<client_id>:<key>
type StorageProvider struct {
	client *redis.Client
}

// NewStorageProvider wraps the given Redis client.
func NewStorageProvider(client *redis.Client) *StorageProvider {
	return &StorageProvider{client: client}
}

// ForClient returns the storage scoped to clientID.
func (p *StorageProvider) ForClient(clientID string) ports.KeyValueStore {
	return &clientStore{client: p.client, prefix: keyPrefix + clientID + ":"}
}

type clientStore struct {
	client *redis.Client
	prefix string
}

func (s *clientStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: get %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return v, true, nil
}

func (s *clientStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", domain.ErrStorageUnavailable, key, err)
	}
	return nil
}

func (s *clientStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = s.prefix + k
	}
	if err := s.client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("%w: delete: %v", domain.ErrStorageUnavailable, err)
	}
	return nil
}
