package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// ReceiptCache is the local receipt ledger
type ReceiptCache interface {
	List(ctx context.Context) ([]entity.Receipt, error)
	// Get returns nil, nil when the receipt is not cached
	Get(ctx context.Context, id string) (*entity.Receipt, error)
	Add(ctx context.Context, receipt *entity.Receipt) error
	SetSynced(ctx context.Context, id string, synced bool) error
	// MergeMissing appends remote receipts whose ids are not cached yet and
	// returns how many were added. Cached receipts are never overwritten.
	MergeMissing(ctx context.Context, receipts []entity.Receipt) (int, error)
	MarkCheckedOut(ctx context.Context, ids []string) error
	// NextSerialNumber advances the per-install counter and formats it
	NextSerialNumber(ctx context.Context) (string, error)
}

// RemoteReceiptRepository is the receipts table of the cloud database
type RemoteReceiptRepository interface {
	Insert(ctx context.Context, receipt *entity.Receipt) error
	List(ctx context.Context) ([]entity.Receipt, error)
	MarkCheckedOut(ctx context.Context, ids []string) error
}
