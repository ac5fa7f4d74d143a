package repository

import "context"

// KeyValueStore is the durable local store the front desk keeps working
// from while the cloud database is unreachable. Values are JSON blobs.
type KeyValueStore interface {
	// Get returns the raw value, or localstore.ErrNotFound when absent
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists every stored key
	Keys(ctx context.Context) ([]string, error)
}

// SyncQueueStore persists the ids waiting to be written remotely.
type SyncQueueStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
}
