package localstore

import (
	"context"
	"errors"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
)

func TestReceiptCacheSerialNumbers(t *testing.T) {
	ctx := context.Background()
	cache := NewReceiptCache(NewMemoryStore())

	for _, want := range []string{"AH-1001", "AH-1002", "AH-1003"} {
		got, err := cache.NextSerialNumber(ctx)
		if err != nil {
			t.Fatalf("NextSerialNumber: %v", err)
		}
		if got != want {
			t.Errorf("NextSerialNumber = %q, want %q", got, want)
		}
	}
}

func TestReceiptCacheMergeMissing(t *testing.T) {
	ctx := context.Background()
	cache := NewReceiptCache(NewMemoryStore())

	local := &entity.Receipt{ID: "a", CustomerName: "Local Copy"}
	if err := cache.Add(ctx, local); err != nil {
		t.Fatal(err)
	}
	if err := cache.Add(ctx, local); err == nil {
		t.Fatal("duplicate Add should fail")
	}

	remote := []entity.Receipt{
		{ID: "a", CustomerName: "Remote Copy"},
		{ID: "b", CustomerName: "New"},
		{ID: "b", CustomerName: "New Again"},
	}
	added, err := cache.MergeMissing(ctx, remote)
	if err != nil || added != 1 {
		t.Fatalf("MergeMissing = %d, %v", added, err)
	}

	a, _ := cache.Get(ctx, "a")
	if a.CustomerName != "Local Copy" {
		t.Errorf("local record overwritten: %q", a.CustomerName)
	}
	b, _ := cache.Get(ctx, "b")
	if b == nil || !b.Synced {
		t.Errorf("merged record = %+v", b)
	}

	added, _ = cache.MergeMissing(ctx, remote)
	if added != 0 {
		t.Errorf("second merge added %d", added)
	}
}

func TestReceiptCacheCheckoutAndSynced(t *testing.T) {
	ctx := context.Background()
	cache := NewReceiptCache(NewMemoryStore())
	_ = cache.Add(ctx, &entity.Receipt{ID: "a"})
	_ = cache.Add(ctx, &entity.Receipt{ID: "b"})

	if err := cache.MarkCheckedOut(ctx, []string{"b"}); err != nil {
		t.Fatal(err)
	}
	if err := cache.SetSynced(ctx, "a", true); err != nil {
		t.Fatal(err)
	}
	if err := cache.SetSynced(ctx, "zzz", true); !errors.Is(err, ErrNotFound) {
		t.Errorf("SetSynced unknown err = %v", err)
	}

	list, _ := cache.List(ctx)
	if !list[0].Synced || list[0].CheckedOut || !list[1].CheckedOut {
		t.Errorf("list = %+v", list)
	}
}

func TestRoomCache(t *testing.T) {
	ctx := context.Background()
	cache := NewRoomCache(NewMemoryStore())

	rooms := entity.DefaultRooms(entity.LocationAdelekeAdedoyin, 1)
	if err := cache.SaveLocation(ctx, entity.LocationAdelekeAdedoyin, rooms); err != nil {
		t.Fatal(err)
	}

	id := entity.RoomID(entity.LocationAdelekeAdedoyin, "5")
	r, err := cache.Get(ctx, id)
	if err != nil || r == nil {
		t.Fatalf("Get = %v, %v", r, err)
	}
	r.Status = enum.RoomStatusOccupied
	r.GuestName = "Ada"
	if err := cache.Put(ctx, r); err != nil {
		t.Fatal(err)
	}
	if err := cache.SetSynced(ctx, id, true); err != nil {
		t.Fatal(err)
	}

	list, _ := cache.ListByLocation(ctx, entity.LocationAdelekeAdedoyin)
	if len(list) != 30 {
		t.Fatalf("len = %d", len(list))
	}
	if list[4].Status != enum.RoomStatusOccupied || !list[4].Synced || list[4].GuestName != "Ada" {
		t.Errorf("room 5 = %+v", list[4])
	}

	other, _ := cache.ListByLocation(ctx, entity.LocationMusaYaradua)
	if len(other) != 0 {
		t.Errorf("other location has %d rooms", len(other))
	}
}

func TestBillCacheCountWithPrefix(t *testing.T) {
	ctx := context.Background()
	cache := NewBillCache(NewMemoryStore())
	_ = cache.Add(ctx, &entity.Bill{ID: "1", BillNumber: "REST-20250101-0001"})
	_ = cache.Add(ctx, &entity.Bill{ID: "2", BillNumber: "REST-20250101-0002"})
	_ = cache.Add(ctx, &entity.Bill{ID: "3", BillNumber: "REST-20250102-0001"})

	n, err := cache.CountWithPrefix(ctx, "REST-20250101")
	if err != nil || n != 2 {
		t.Errorf("CountWithPrefix = %d, %v", n, err)
	}
}

func TestQueueStore(t *testing.T) {
	ctx := context.Background()
	q := NewQueueStore(NewMemoryStore(), KeyReceiptsQueue)

	ids, err := q.Load(ctx)
	if err != nil || len(ids) != 0 {
		t.Fatalf("Load empty = %v, %v", ids, err)
	}
	_ = q.Save(ctx, []string{"x", "y"})
	ids, _ = q.Load(ctx)
	if len(ids) != 2 || ids[1] != "y" {
		t.Errorf("Load = %v", ids)
	}
}

func TestUserStoreSession(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore(NewMemoryStore())

	sess, err := s.GetSession(ctx)
	if err != nil || sess != nil {
		t.Fatalf("GetSession empty = %v, %v", sess, err)
	}
	_ = s.SaveSession(ctx, &entity.Session{Username: "admin"})
	sess, _ = s.GetSession(ctx)
	if sess == nil || sess.Username != "admin" {
		t.Fatalf("GetSession = %+v", sess)
	}
	_ = s.ClearSession(ctx)
	sess, _ = s.GetSession(ctx)
	if sess != nil {
		t.Errorf("session not cleared")
	}
}
