package localstore

import (
	"context"
	"sync"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type idempotencyRepository struct {
	mu sync.Mutex
	kv repository.KeyValueStore
}

// NewIdempotencyRepository stores processed request keys in the local store
func NewIdempotencyRepository(kv repository.KeyValueStore) repository.IdempotencyRepository {
	return &idempotencyRepository{kv: kv}
}

func idempotencyMapKey(key, userID string) string {
	return userID + "|" + key
}

func (r *idempotencyRepository) load(ctx context.Context) (map[string]entity.IdempotencyKey, error) {
	keys := make(map[string]entity.IdempotencyKey)
	if _, err := readJSON(ctx, r.kv, KeyIdempotency, &keys); err != nil {
		return nil, err
	}
	if keys == nil {
		keys = make(map[string]entity.IdempotencyKey)
	}
	return keys, nil
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, userID string) (*entity.IdempotencyKey, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	ikey, ok := keys[idempotencyMapKey(key, userID)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.load(ctx)
	if err != nil {
		return err
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now()
	}
	keys[idempotencyMapKey(ikey.Key, ikey.UserID)] = *ikey
	return writeJSON(ctx, r.kv, KeyIdempotency, keys)
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys, err := r.load(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	for k, v := range keys {
		if now.After(v.ExpiresAt) {
			delete(keys, k)
		}
	}
	return writeJSON(ctx, r.kv, KeyIdempotency, keys)
}
