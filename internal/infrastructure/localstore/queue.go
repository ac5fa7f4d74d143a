package localstore

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

// QueueStore persists one sync queue as a JSON array of ids.
type QueueStore struct {
	kv  repository.KeyValueStore
	key string
}

// NewQueueStore binds a queue to its local-store key
func NewQueueStore(kv repository.KeyValueStore, key string) *QueueStore {
	return &QueueStore{kv: kv, key: key}
}

func (q *QueueStore) Load(ctx context.Context) ([]string, error) {
	var ids []string
	if _, err := readJSON(ctx, q.kv, q.key, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func (q *QueueStore) Save(ctx context.Context, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return writeJSON(ctx, q.kv, q.key, ids)
}
