package localstore

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type syncStateStore struct {
	kv repository.KeyValueStore
}

// NewSyncStateStore creates the last-sync bookkeeping store
func NewSyncStateStore(kv repository.KeyValueStore) repository.SyncStateStore {
	return &syncStateStore{kv: kv}
}

func (s *syncStateStore) LastSync(ctx context.Context) (int64, error) {
	var ts int64
	if _, err := readJSON(ctx, s.kv, KeyLastSync, &ts); err != nil {
		return 0, err
	}
	return ts, nil
}

func (s *syncStateStore) SetLastSync(ctx context.Context, ts int64) error {
	return writeJSON(ctx, s.kv, KeyLastSync, ts)
}
