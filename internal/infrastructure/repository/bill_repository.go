package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type billRepository struct {
	db *gorm.DB
}

// NewBillRepository creates the remote restaurant_bills table
func NewBillRepository(db *gorm.DB) domainRepo.RemoteBillRepository {
	return &billRepository{db: db}
}

// Insert ignores a replay of a bill that is already stored
func (r *billRepository) Insert(ctx context.Context, bill *entity.Bill) error {
	row, err := toBillRow(bill)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "id"}}, DoNothing: true}).
		Create(row).Error
}

func (r *billRepository) List(ctx context.Context, filter entity.BillFilter) ([]entity.Bill, error) {
	query := r.db.WithContext(ctx).Model(&billRow{})
	if filter.RoomNumber != "" {
		query = query.Where("room_number = ?", filter.RoomNumber)
	}
	if filter.Location != "" {
		query = query.Scopes(LocationScope("room_location", filter.Location))
	}

	var rows []billRow
	if err := query.Scopes(GuestScope(filter.GuestName)).Order("timestamp ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	bills := make([]entity.Bill, 0, len(rows))
	for i := range rows {
		bill, err := rows[i].toEntity()
		if err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, nil
}
