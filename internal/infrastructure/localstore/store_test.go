package localstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

func TestMemoryStore(t *testing.T) {
	testKeyValueStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	defer fs.Close()
	testKeyValueStore(t, fs)
}

func testKeyValueStore(t *testing.T, kv repository.KeyValueStore) {
	t.Helper()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get(missing) err = %v, want ErrNotFound", err)
	}
	if err := kv.Set(ctx, "b", []byte(`[1,2]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := kv.Set(ctx, "a", []byte(`{"x":1}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := kv.Get(ctx, "b")
	if err != nil || string(got) != `[1,2]` {
		t.Fatalf("Get(b) = %s, %v", got, err)
	}
	keys, _ := kv.Keys(ctx)
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys = %v", keys)
	}
	if err := kv.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := kv.Get(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete err = %v", err)
	}
}

func TestFileStorePersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("OpenFileStore: %v", err)
	}
	cache := NewReceiptCache(fs)
	if err := cache.Add(ctx, &entity.Receipt{ID: "r1", SerialNumber: "AH-1001", PaymentMode: enum.PaymentModeBTC}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := fs.Set(ctx, "long", []byte(`"aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"`)); err != nil {
		t.Fatal(err)
	}
	if err := fs.Set(ctx, "long", []byte(`"a"`)); err != nil {
		t.Fatal(err)
	}
	fs.Close()

	fs, err = OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer fs.Close()

	r, err := NewReceiptCache(fs).Get(ctx, "r1")
	if err != nil || r == nil {
		t.Fatalf("Get after reopen = %v, %v", r, err)
	}
	if r.PaymentMode != enum.PaymentModeBTC {
		t.Errorf("payment mode = %v", r.PaymentMode)
	}
}

func TestFileStoreRejectsNonJSON(t *testing.T) {
	fs, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	if err != nil {
		t.Fatal(err)
	}
	defer fs.Close()
	if err := fs.Set(context.Background(), "k", []byte("not json")); err == nil {
		t.Error("expected error for non-JSON value")
	}
}

func TestMalformedBlobPropagates(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryStore()
	_ = kv.Set(ctx, KeyReceipts, []byte(`{not json`))

	if _, err := NewReceiptCache(kv).List(ctx); err == nil {
		t.Error("expected decode error for corrupted receipts blob")
	}
}
