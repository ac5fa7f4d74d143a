package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	domainRepo "github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const roomBatchSize = 100

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates the remote rooms table
func NewRoomRepository(db *gorm.DB) domainRepo.RemoteRoomRepository {
	return &roomRepository{db: db}
}

func upsertByID() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}
}

func (r *roomRepository) Upsert(ctx context.Context, room *entity.Room) error {
	return r.db.WithContext(ctx).Clauses(upsertByID()).Create(toRoomRow(room)).Error
}

func (r *roomRepository) UpsertBatch(ctx context.Context, rooms []entity.Room) error {
	if len(rooms) == 0 {
		return nil
	}
	rows := make([]roomRow, 0, len(rooms))
	for i := range rooms {
		rows = append(rows, *toRoomRow(&rooms[i]))
	}
	return r.db.WithContext(ctx).Clauses(upsertByID()).CreateInBatches(&rows, roomBatchSize).Error
}

func (r *roomRepository) ListByLocation(ctx context.Context, location string) ([]entity.Room, error) {
	var rows []roomRow
	err := r.db.WithContext(ctx).
		Scopes(LocationScope("location", location)).
		Order("floor ASC, number ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	rooms := make([]entity.Room, 0, len(rows))
	for i := range rows {
		rooms = append(rooms, rows[i].toEntity())
	}
	return rooms, nil
}
