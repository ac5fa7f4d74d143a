package localstore

import (
	"context"
	"sync"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

type roomCache struct {
	mu sync.Mutex
	kv repository.KeyValueStore
}

// NewRoomCache creates the local room map, keyed by location
func NewRoomCache(kv repository.KeyValueStore) repository.RoomCache {
	return &roomCache{kv: kv}
}

func (c *roomCache) load(ctx context.Context) (map[string][]entity.Room, error) {
	rooms := make(map[string][]entity.Room)
	if _, err := readJSON(ctx, c.kv, KeyRooms, &rooms); err != nil {
		return nil, err
	}
	if rooms == nil {
		rooms = make(map[string][]entity.Room)
	}
	return rooms, nil
}

func (c *roomCache) ListByLocation(ctx context.Context, location string) ([]entity.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return rooms[location], nil
}

func (c *roomCache) SaveLocation(ctx context.Context, location string, list []entity.Room) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.load(ctx)
	if err != nil {
		return err
	}
	rooms[location] = list
	return writeJSON(ctx, c.kv, KeyRooms, rooms)
}

func (c *roomCache) Get(ctx context.Context, id string) (*entity.Room, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, list := range rooms {
		for i := range list {
			if list[i].ID == id {
				r := list[i]
				return &r, nil
			}
		}
	}
	return nil, nil
}

func (c *roomCache) Put(ctx context.Context, room *entity.Room) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.load(ctx)
	if err != nil {
		return err
	}
	list := rooms[room.Location]
	replaced := false
	for i := range list {
		if list[i].ID == room.ID {
			list[i] = *room
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, *room)
	}
	rooms[room.Location] = list
	return writeJSON(ctx, c.kv, KeyRooms, rooms)
}

func (c *roomCache) SetSynced(ctx context.Context, id string, synced bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rooms, err := c.load(ctx)
	if err != nil {
		return err
	}
	for loc, list := range rooms {
		for i := range list {
			if list[i].ID == id {
				list[i].Synced = synced
				rooms[loc] = list
				return writeJSON(ctx, c.kv, KeyRooms, rooms)
			}
		}
	}
	return ErrNotFound
}
