package ports

import "context"

// Storage keys persisted per client.
const (
	KeyToken       = "token"
	KeyUserID      = "userId"
	KeyTheme       = "theme"
	KeyColorScheme = "colorScheme"
	KeyLanguage    = "language"
)

// KeyValueStore is the durable string key/value storage of one client.
// Get reports ok=false for absent keys; errors mean the backend could not be used.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// StorageProvider hands out the storage scoped to a client id.
type StorageProvider interface {
	ForClient(clientID string) KeyValueStore
}
