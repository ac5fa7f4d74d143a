package service

import (
	"context"
	"errors"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
)

func TestManagerRoomRejectsEveryTransition(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	loc := entity.LocationAdelekeAdedoyin

	before, err := env.rooms.Get(ctx, loc, "2")
	if err != nil {
		t.Fatal(err)
	}
	if !before.IsManagerRoom {
		t.Fatal("room 2 should be the manager's room")
	}

	attempts := map[string]func() error{
		"check-in": func() error {
			_, err := env.rooms.CheckIn(ctx, loc, "2", "Intruder", "2026-03-14")
			return err
		},
		"check-out": func() error {
			_, err := env.rooms.CheckOut(ctx, loc, "2", "")
			return err
		},
		"maintenance": func() error {
			_, err := env.rooms.SetMaintenance(ctx, loc, "2")
			return err
		},
		"available": func() error {
			_, err := env.rooms.SetAvailable(ctx, loc, "2")
			return err
		},
	}
	for name, attempt := range attempts {
		if err := attempt(); !errors.Is(err, ErrManagerRoomLocked) {
			t.Errorf("%s: err = %v, want ErrManagerRoomLocked", name, err)
		}
	}

	after, err := env.rooms.Get(ctx, loc, "2")
	if err != nil {
		t.Fatal(err)
	}
	if *after != *before {
		t.Errorf("manager room changed: %+v -> %+v", before, after)
	}
}

func TestCanTransition(t *testing.T) {
	const (
		a = enum.RoomStatusAvailable
		o = enum.RoomStatusOccupied
		m = enum.RoomStatusMaintenance
	)
	tests := []struct {
		from, to enum.RoomStatus
		want     bool
	}{
		{a, o, true},
		{a, m, true},
		{a, a, false},
		{o, a, true},
		{o, m, true},
		{o, o, false},
		{m, a, true},
		{m, o, false},
		{m, m, false},
	}
	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestCheckInRequiresGuest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	_, err := env.rooms.CheckIn(ctx, entity.LocationAdelekeAdedoyin, "4", " ", "2026-03-14")
	if err == nil || apperror.GetAppError(err).Code != 422 {
		t.Fatalf("err = %v, want validation error", err)
	}
	room, _ := env.rooms.Get(ctx, entity.LocationAdelekeAdedoyin, "4")
	if room.Status != enum.RoomStatusAvailable {
		t.Errorf("status = %s after rejected check-in", room.Status)
	}
}

func TestCheckOutClearsGuest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	loc := entity.LocationAdelekeAdedoyin

	if _, err := env.rooms.CheckIn(ctx, loc, "6", "Halima", "2026-03-12"); err != nil {
		t.Fatal(err)
	}
	res, err := env.rooms.CheckOut(ctx, loc, "6", "2026-03-14")
	if err != nil {
		t.Fatal(err)
	}
	if res.GuestName != "Halima" || res.CheckIn != "2026-03-12" || res.CheckOut != "2026-03-14" {
		t.Errorf("checkout result = %+v", res)
	}
	if res.Room.GuestName != "" || res.Room.CheckIn != "" || res.Room.CheckOut != "" {
		t.Errorf("guest fields kept after checkout: %+v", res.Room)
	}
	if res.Room.Status != enum.RoomStatusAvailable {
		t.Errorf("status = %s", res.Room.Status)
	}

	remote := env.remoteRooms.rows[entity.RoomID(loc, "6")]
	if remote.Status != enum.RoomStatusAvailable || remote.GuestName != "" {
		t.Errorf("remote room = %+v", remote)
	}
}

func TestMaintenanceFromOccupiedClearsGuest(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	loc := entity.LocationAdelekeAdedoyin

	if _, err := env.rooms.CheckIn(ctx, loc, "7", "Ife", "2026-03-12"); err != nil {
		t.Fatal(err)
	}
	room, err := env.rooms.SetMaintenance(ctx, loc, "7")
	if err != nil {
		t.Fatal(err)
	}
	if room.GuestName != "" || room.Synced {
		t.Errorf("room = %+v", room)
	}
	if _, err := env.rooms.CheckOut(ctx, loc, "7", ""); !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("checkout from maintenance: err = %v", err)
	}
	if _, err := env.rooms.SetAvailable(ctx, loc, "7"); err != nil {
		t.Fatal(err)
	}
	assertQueueConsistent(t, env)
}

func TestInitializeRoomsSeedsDefaults(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	rooms, err := env.rooms.InitializeRooms(ctx, entity.LocationMusaYaradua)
	if err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 23 {
		t.Fatalf("rooms = %d, want 23", len(rooms))
	}
	for _, r := range rooms {
		if !r.Synced {
			t.Errorf("room %s not synced after online seed", r.ID)
		}
	}
	if len(env.remoteRooms.rows) != 23 {
		t.Errorf("remote rooms = %d", len(env.remoteRooms.rows))
	}
	assertQueueConsistent(t, env)
}

func TestInitializeRoomsRemoteWinsExceptQueued(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)
	loc := entity.LocationAdelekeAdedoyin

	if _, err := env.rooms.InitializeRooms(ctx, loc); err != nil {
		t.Fatal(err)
	}
	// push the seeded set, then change room 5 offline
	env.monitor.Set(true)
	if _, err := env.sync.SyncAll(ctx); err != nil {
		t.Fatal(err)
	}
	env.monitor.Set(false)
	if _, err := env.rooms.SetMaintenance(ctx, loc, "5"); err != nil {
		t.Fatal(err)
	}

	// another device checked a guest into room 9
	other := env.remoteRooms.rows[entity.RoomID(loc, "9")]
	other.Status = enum.RoomStatusOccupied
	other.GuestName = "Remote Guest"
	env.remoteRooms.rows[other.ID] = other

	env.monitor.Set(true)
	rooms, err := env.rooms.InitializeRooms(ctx, loc)
	if err != nil {
		t.Fatal(err)
	}
	byNumber := make(map[string]entity.Room)
	for _, r := range rooms {
		byNumber[r.Number] = r
	}
	if byNumber["9"].GuestName != "Remote Guest" {
		t.Errorf("remote change lost: %+v", byNumber["9"])
	}
	if byNumber["5"].Status != enum.RoomStatusMaintenance || byNumber["5"].Synced {
		t.Errorf("queued local change overwritten: %+v", byNumber["5"])
	}
	assertQueueConsistent(t, env)
}

func TestListSortsCombinedRooms(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	rooms, err := env.rooms.List(ctx, entity.LocationMusaYaradua)
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, r := range rooms {
		order = append(order, r.Number)
	}
	want := []string{"10", "11/13", "12"}
	for i, n := range order {
		if n == "10" {
			for j, w := range want {
				if order[i+j] != w {
					t.Fatalf("order around 10 = %v, want %v", order[i:i+3], want)
				}
			}
			return
		}
	}
	t.Fatal("room 10 missing")
}

func TestStatsAndAvailable(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	loc := entity.LocationAdelekeAdedoyin

	if _, err := env.rooms.CheckIn(ctx, loc, "1", "Jide", "2026-03-14"); err != nil {
		t.Fatal(err)
	}
	if _, err := env.rooms.SetMaintenance(ctx, loc, "3"); err != nil {
		t.Fatal(err)
	}

	stats, err := env.rooms.Stats(ctx, loc)
	if err != nil {
		t.Fatal(err)
	}
	want := entity.RoomStats{Total: 30, Available: 28, Occupied: 1, Maintenance: 1}
	if *stats != want {
		t.Errorf("stats = %+v, want %+v", *stats, want)
	}

	available, err := env.rooms.Available(ctx, loc)
	if err != nil {
		t.Fatal(err)
	}
	// the manager's room is never offered
	if len(available) != 27 {
		t.Errorf("available = %d, want 27", len(available))
	}

	floors, err := env.rooms.ByFloor(ctx, loc)
	if err != nil {
		t.Fatal(err)
	}
	if len(floors) != 3 || len(floors[1]) != 10 {
		t.Errorf("floors = %d, first floor = %d", len(floors), len(floors[1]))
	}
}

func TestUnknownLocation(t *testing.T) {
	env := newTestEnv(t, false)
	if _, err := env.rooms.List(context.Background(), "ikoyi"); !errors.Is(err, ErrUnknownLocation) {
		t.Errorf("err = %v", err)
	}
}
