package localstore

import (
	"context"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type menuCache struct {
	kv  repository.KeyValueStore
	now func() time.Time
}

// NewMenuCache creates the read-through menu copy
func NewMenuCache(kv repository.KeyValueStore) repository.MenuCache {
	return &menuCache{kv: kv, now: time.Now}
}

func (c *menuCache) Load(ctx context.Context) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	if _, err := readJSON(ctx, c.kv, KeyMenuItems, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *menuCache) Save(ctx context.Context, items []entity.MenuItem) error {
	if items == nil {
		items = []entity.MenuItem{}
	}
	if err := writeJSON(ctx, c.kv, KeyMenuItems, items); err != nil {
		return err
	}
	return writeJSON(ctx, c.kv, KeyMenuLastSync, c.now().UnixMilli())
}

func (c *menuCache) LastSync(ctx context.Context) (int64, error) {
	var ts int64
	if _, err := readJSON(ctx, c.kv, KeyMenuLastSync, &ts); err != nil {
		return 0, err
	}
	return ts, nil
}
