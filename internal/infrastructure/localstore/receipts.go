package localstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type receiptCache struct {
	mu sync.Mutex
	kv repository.KeyValueStore
}

// NewReceiptCache creates the local receipt ledger
func NewReceiptCache(kv repository.KeyValueStore) repository.ReceiptCache {
	return &receiptCache{kv: kv}
}

func (c *receiptCache) load(ctx context.Context) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	if _, err := readJSON(ctx, c.kv, KeyReceipts, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

func (c *receiptCache) save(ctx context.Context, receipts []entity.Receipt) error {
	if receipts == nil {
		receipts = []entity.Receipt{}
	}
	return writeJSON(ctx, c.kv, KeyReceipts, receipts)
}

func (c *receiptCache) List(ctx context.Context) ([]entity.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

func (c *receiptCache) Get(ctx context.Context, id string) (*entity.Receipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			r := receipts[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (c *receiptCache) Add(ctx context.Context, receipt *entity.Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts, err := c.load(ctx)
	if err != nil {
		return err
	}
	for _, r := range receipts {
		if r.ID == receipt.ID {
			return fmt.Errorf("receipt %s already stored", receipt.ID)
		}
	}
	return c.save(ctx, append(receipts, *receipt))
}

func (c *receiptCache) SetSynced(ctx context.Context, id string, synced bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts, err := c.load(ctx)
	if err != nil {
		return err
	}
	for i := range receipts {
		if receipts[i].ID == id {
			receipts[i].Synced = synced
			return c.save(ctx, receipts)
		}
	}
	return ErrNotFound
}

func (c *receiptCache) MergeMissing(ctx context.Context, remote []entity.Receipt) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts, err := c.load(ctx)
	if err != nil {
		return 0, err
	}
	seen := make(map[string]struct{}, len(receipts))
	for _, r := range receipts {
		seen[r.ID] = struct{}{}
	}

	added := 0
	for _, r := range remote {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		seen[r.ID] = struct{}{}
		r.Synced = true
		receipts = append(receipts, r)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, c.save(ctx, receipts)
}

func (c *receiptCache) MarkCheckedOut(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	receipts, err := c.load(ctx)
	if err != nil {
		return err
	}
	want := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		want[id] = struct{}{}
	}
	for i := range receipts {
		if _, ok := want[receipts[i].ID]; ok {
			receipts[i].CheckedOut = true
		}
	}
	return c.save(ctx, receipts)
}

func (c *receiptCache) NextSerialNumber(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	counter := initialSerialNumber
	if _, err := readJSON(ctx, c.kv, KeyReceiptCounter, &counter); err != nil {
		return "", err
	}
	counter++
	if err := writeJSON(ctx, c.kv, KeyReceiptCounter, counter); err != nil {
		return "", err
	}
	return fmt.Sprintf("AH-%d", counter), nil
}
