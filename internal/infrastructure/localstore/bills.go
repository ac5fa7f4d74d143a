package localstore

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type billCache struct {
	mu sync.Mutex
	kv repository.KeyValueStore
}

// NewBillCache creates the local restaurant bill list
func NewBillCache(kv repository.KeyValueStore) repository.BillCache {
	return &billCache{kv: kv}
}

func (c *billCache) load(ctx context.Context) ([]entity.Bill, error) {
	var bills []entity.Bill
	if _, err := readJSON(ctx, c.kv, KeyBills, &bills); err != nil {
		return nil, err
	}
	return bills, nil
}

func (c *billCache) List(ctx context.Context) ([]entity.Bill, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *billCache) Get(ctx context.Context, id string) (*entity.Bill, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bills, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range bills {
		if bills[i].ID == id {
			b := bills[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (c *billCache) Add(ctx context.Context, bill *entity.Bill) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bills, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, b := range bills {
		if b.ID == bill.ID {
			return fmt.Errorf("bill %s already stored", bill.ID)
		}
	}
	return writeJSON(ctx, c.kv, KeyBills, append(bills, *bill))
}

func (c *billCache) SetSynced(ctx context.Context, id string, synced bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	bills, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range bills {
		if bills[i].ID == id {
			bills[i].Synced = synced
			return writeJSON(ctx, c.kv, KeyBills, bills)
		}
	}
	return ErrNotFound
}

func (c *billCache) CountWithPrefix(ctx context.Context, prefix string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	bills, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, b := range bills {
		if strings.HasPrefix(b.BillNumber, prefix) {
			n++
		}
	}
	return n, nil
}
