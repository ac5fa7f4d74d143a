package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// BillCache is the local restaurant bill list
type BillCache interface {
	List(ctx context.Context) ([]entity.Bill, error)
	Get(ctx context.Context, id string) (*entity.Bill, error)
	Add(ctx context.Context, bill *entity.Bill) error
	SetSynced(ctx context.Context, id string, synced bool) error
	CountWithPrefix(ctx context.Context, prefix string) (int, error)
}

// RemoteBillRepository is the restaurant_bills table
type RemoteBillRepository interface {
	Insert(ctx context.Context, bill *entity.Bill) error
	List(ctx context.Context, filter entity.BillFilter) ([]entity.Bill, error)
}
