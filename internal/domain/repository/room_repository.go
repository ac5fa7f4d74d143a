package repository

import (
	"context"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

// RoomCache keeps rooms grouped by location
type RoomCache interface {
	ListByLocation(ctx context.Context, location string) ([]entity.Room, error)
	SaveLocation(ctx context.Context, location string, rooms []entity.Room) error
	// Get finds a room by its full id; nil, nil when unknown
	Get(ctx context.Context, id string) (*entity.Room, error)
	Put(ctx context.Context, room *entity.Room) error
	SetSynced(ctx context.Context, id string, synced bool) error
}

// RemoteRoomRepository is the rooms table of the cloud database. Writes
// are upserts keyed by room id.
type RemoteRoomRepository interface {
	Upsert(ctx context.Context, room *entity.Room) error
	UpsertBatch(ctx context.Context, rooms []entity.Room) error
	ListByLocation(ctx context.Context, location string) ([]entity.Room, error)
}
