package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/meetdesk/dashboard/internal/core/domain"
)

func TestClientStore_UnreachableServer(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer rdb.Close()

	store := NewStorageProvider(rdb).ForClient("abc")
	ctx := context.Background()

	if _, _, err := store.Get(ctx, "token"); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("Get: expected ErrStorageUnavailable, got %v", err)
	}
	if err := store.Set(ctx, "token", "x"); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("Set: expected ErrStorageUnavailable, got %v", err)
	}
	if err := store.Delete(ctx, "token"); !errors.Is(err, domain.ErrStorageUnavailable) {
		t.Fatalf("Delete: expected ErrStorageUnavailable, got %v", err)
	}
	if err := store.Delete(ctx); err != nil {
		t.Fatalf("Delete without keys: %v", err)
	}
}

func TestStorageProvider_KeyLayout(t *testing.T) {
	store := NewStorageProvider(nil).ForClient("abc").(*clientStore)
	if store.prefix != "meetdesk:client:abc:" {
		t.Fatalf("prefix = %q", store.prefix)
	}
}
