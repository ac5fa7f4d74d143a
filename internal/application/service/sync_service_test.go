package service

import (
	"context"
	"testing"
	"time"
)

func TestSyncAllDrainsEveryQueueAfterReconnect(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("3", "Kemi")); err != nil {
		t.Fatal(err)
	}

	status, err := env.sync.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.Online || status.PendingReceipts != 1 || status.PendingRooms == 0 {
		t.Fatalf("offline status = %+v", status)
	}

	result, err := env.sync.SyncAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Success != 0 || result.Failed != 0 {
		t.Errorf("offline drain = %+v, want zero", result)
	}

	env.monitor.Set(true)
	result, err = env.sync.SyncAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 0 || result.Success < 2 {
		t.Errorf("online drain = %+v", result)
	}

	status, err = env.sync.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.PendingReceipts != 0 || status.PendingRooms != 0 || status.PendingBills != 0 {
		t.Errorf("pending after drain = %+v", status)
	}
	if status.LastSyncAt != testNow.UnixMilli() {
		t.Errorf("last sync = %d, want %d", status.LastSyncAt, testNow.UnixMilli())
	}
	if len(env.remoteReceipts.rows) != 1 {
		t.Errorf("remote receipts = %d, want 1", len(env.remoteReceipts.rows))
	}
	assertQueueConsistent(t, env)
}

func TestSyncAllKeepsFailuresQueued(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("4", "Lanre")); err != nil {
		t.Fatal(err)
	}

	env.remoteReceipts.fail = true
	env.monitor.Set(true)

	result, err := env.sync.SyncAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 1 {
		t.Errorf("failed = %d, want 1", result.Failed)
	}

	status, err := env.sync.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if status.PendingReceipts != 1 {
		t.Errorf("pending receipts = %d, want 1", status.PendingReceipts)
	}
	if status.LastSyncAt != 0 {
		t.Errorf("last sync recorded despite failures: %d", status.LastSyncAt)
	}
	assertQueueConsistent(t, env)
}

func TestRunDrainsOnReconnect(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	env := newTestEnv(t, false)

	if _, err := env.receipts.Create(ctx, singleRoomInput("5", "Musa")); err != nil {
		t.Fatal(err)
	}

	done := make(chan struct{})
	go func() {
		env.sync.Run(ctx)
		close(done)
	}()

	// Run subscribes before the first select; give it a moment
	time.Sleep(20 * time.Millisecond)
	env.monitor.Set(true)

	deadline := time.Now().Add(2 * time.Second)
	for {
		n, err := env.receipts.PendingCount(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("receipt still pending after reconnect")
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	<-done
}
