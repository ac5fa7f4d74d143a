package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates the remote receipts table
func NewReceiptRepository(db *gorm.DB) domainRepo.RemoteReceiptRepository {
	return &receiptRepository{db: db}
}

// Insert writes a receipt once. Receipts are append-only, so a replayed
// insert only carries the checked-out flag forward.
func (r *receiptRepository) Insert(ctx context.Context, receipt *entity.Receipt) error {
	row, err := toReceiptRow(receipt)
	if err != nil {
		return err
	}
	return upsertReceipt(r.db.WithContext(ctx), row).Error
}

// upsertReceipt never clears checked_out: a replay from a device holding a
// stale copy cannot reopen a stay another device already closed.
func upsertReceipt(tx *gorm.DB, row *receiptRow) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"checked_out": gorm.Expr("receipts.checked_out OR excluded.checked_out"),
		}),
	}).Create(row)
}

func (r *receiptRepository) List(ctx context.Context) ([]entity.Receipt, error) {
	var rows []receiptRow
	if err := r.db.WithContext(ctx).Order("timestamp DESC").Find(&rows).Error; err != nil {
		return nil, err
	}

	receipts := make([]entity.Receipt, 0, len(rows))
	for i := range rows {
		receipt, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		receipts = append(receipts, receipt)
	}
	return receipts, nil
}

func (r *receiptRepository) MarkCheckedOut(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&receiptRow{}).
		Where("id IN ?", ids).
		Update("checked_out", true).Error
}
