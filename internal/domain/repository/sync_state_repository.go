package repository

import "context"

// SyncStateStore remembers when the queues were last fully drained
type SyncStateStore interface {
	LastSync(ctx context.Context) (int64, error)
	SetLastSync(ctx context.Context, ts int64) error
}
