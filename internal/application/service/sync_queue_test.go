package service

import (
	"context"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
)

func TestOfflineReceiptsSyncOnReconnect(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	for _, room := range []string{"3", "4", "5"} {
		r, err := env.receipts.Create(ctx, singleRoomInput(room, "Guest "+room))
		if err != nil {
			t.Fatalf("Create(%s): %v", room, err)
		}
		if r.Synced {
			t.Errorf("receipt for room %s synced while offline", room)
		}
	}

	if n, _ := env.receipts.PendingCount(ctx); n != 3 {
		t.Fatalf("pending receipts = %d, want 3", n)
	}
	assertQueueConsistent(t, env)

	env.monitor.Set(true)
	result, err := env.sync.SyncAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 0 {
		t.Errorf("failed = %d, want 0", result.Failed)
	}

	if n, _ := env.receipts.PendingCount(ctx); n != 0 {
		t.Errorf("pending receipts after drain = %d, want 0", n)
	}
	if n, _ := env.rooms.PendingCount(ctx); n != 0 {
		t.Errorf("pending rooms after drain = %d, want 0", n)
	}
	receipts, _ := env.receipts.ListAll(ctx)
	for _, r := range receipts {
		if !r.Synced {
			t.Errorf("receipt %s not synced", r.SerialNumber)
		}
	}
	if len(env.remoteReceipts.rows) != 3 {
		t.Errorf("remote receipts = %d, want 3", len(env.remoteReceipts.rows))
	}
	assertQueueConsistent(t, env)
}

func TestDrainTwiceDoesNotRewrite(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("7", "Chidi")); err != nil {
		t.Fatal(err)
	}
	env.monitor.Set(true)

	if _, err := env.sync.SyncAll(ctx); err != nil {
		t.Fatal(err)
	}
	receiptWrites, roomWrites := env.remoteReceipts.inserts, env.remoteRooms.upserts

	result, err := env.sync.SyncAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Success != 0 || result.Failed != 0 {
		t.Errorf("second drain = %+v, want zero", result)
	}
	if env.remoteReceipts.inserts != receiptWrites {
		t.Errorf("receipt writes %d -> %d", receiptWrites, env.remoteReceipts.inserts)
	}
	if env.remoteRooms.upserts != roomWrites {
		t.Errorf("room writes %d -> %d", roomWrites, env.remoteRooms.upserts)
	}
}

func TestDrainOfflineIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("8", "Dayo")); err != nil {
		t.Fatal(err)
	}
	result, err := env.receipts.Queue().Drain(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result != (entity.SyncResult{}) {
		t.Errorf("offline drain = %+v, want zero", result)
	}
	if env.remoteReceipts.inserts != 0 {
		t.Errorf("remote written while offline")
	}
}

func TestDrainKeepsFailuresQueued(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	env.remoteReceipts.fail = true

	r, err := env.receipts.Create(ctx, singleRoomInput("9", "Efe"))
	if err != nil {
		t.Fatalf("remote failure leaked to caller: %v", err)
	}
	if r.Synced {
		t.Fatal("receipt marked synced after failed push")
	}

	result, err := env.receipts.Queue().Drain(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 1 || result.Success != 0 {
		t.Errorf("drain = %+v, want 1 failed", result)
	}
	if ok, _ := env.receipts.Queue().Contains(ctx, r.ID); !ok {
		t.Error("failed receipt left the queue")
	}
	assertQueueConsistent(t, env)

	env.remoteReceipts.fail = false
	result, err = env.receipts.Queue().Drain(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Success != 1 {
		t.Errorf("drain = %+v, want 1 success", result)
	}
	assertQueueConsistent(t, env)
}

func TestDrainDropsOrphanedIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	if err := env.receipts.Queue().Enqueue(ctx, "missing"); err != nil {
		t.Fatal(err)
	}
	if err := env.receipts.Queue().Enqueue(ctx, "missing"); err != nil {
		t.Fatal(err)
	}
	if n, _ := env.receipts.Queue().Len(ctx); n != 1 {
		t.Fatalf("Enqueue not idempotent, len = %d", n)
	}

	result, err := env.receipts.Queue().Drain(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Success != 0 || result.Failed != 0 {
		t.Errorf("drain = %+v", result)
	}
	if n, _ := env.receipts.Queue().Len(ctx); n != 0 {
		t.Errorf("orphan still queued")
	}
}

func TestReconcileRequeuesUnsynced(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	r, err := env.receipts.Create(ctx, singleRoomInput("10", "Funke"))
	if err != nil {
		t.Fatal(err)
	}
	// simulate a crash between the local write and the enqueue
	if err := env.receipts.Queue().Dequeue(ctx, r.ID); err != nil {
		t.Fatal(err)
	}

	n, err := env.receipts.Queue().Reconcile(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("requeued = %d, want 1", n)
	}
	assertQueueConsistent(t, env)
}

func TestSyncStatusCounts(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("11", "Gbenga")); err != nil {
		t.Fatal(err)
	}
	status, err := env.sync.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Online {
		t.Error("status online while offline")
	}
	if status.PendingReceipts != 1 {
		t.Errorf("PendingReceipts = %d, want 1", status.PendingReceipts)
	}
	// the seeded rooms are queued once each, the checked-in room included
	if status.PendingRooms != 30 {
		t.Errorf("PendingRooms = %d, want 30", status.PendingRooms)
	}

	env.monitor.Set(true)
	if _, err := env.sync.SyncAll(ctx); err != nil {
		t.Fatal(err)
	}
	status, err = env.sync.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.PendingReceipts+status.PendingRooms+status.PendingBills != 0 {
		t.Errorf("pending after sync = %+v", status)
	}
	if status.LastSyncAt != testNow.UnixMilli() {
		t.Errorf("LastSyncAt = %d", status.LastSyncAt)
	}
}
