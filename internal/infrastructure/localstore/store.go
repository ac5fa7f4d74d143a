// Package localstore keeps the front desk's working copy of receipts,
// rooms and bills on the local machine. Every entity type is stored as a
// single JSON blob under a namespaced key and rewritten as a whole.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
)

// ErrNotFound is returned by KeyValueStore.Get for a missing key.
var ErrNotFound = errors.New("localstore: key not found")

// Keys of the local store.
const (
	KeyReceipts         = "atlantic_hotel_receipts"
	KeyReceiptCounter   = "atlantic_hotel_receipt_counter"
	KeyReceiptsQueue    = "atlantic_hotel_sync_queue"
	KeyRooms            = "atlantic_hotel_rooms"
	KeyRoomsQueue       = "atlantic_hotel_rooms_sync_queue"
	KeyBills            = "atlantic_hotel_bills"
	KeyBillsQueue       = "atlantic_hotel_bills_sync_queue"
	KeyMenuItems        = "atlantic_hotel_menu_items"
	KeyMenuLastSync     = "atlantic_hotel_menu_last_sync"
	KeyBankAccount      = "atlantic_bank_accounts"
	KeySession          = "atlantic_hotel_session"
	KeyUsers            = "atlantic_hotel_users"
	KeyIdempotency      = "atlantic_hotel_idempotency"
	KeyLastSync         = "atlantic_hotel_last_sync"
	initialSerialNumber = 1000
)

// readJSON decodes key into v. It reports false when the key is absent.
func readJSON(ctx context.Context, kv repository.KeyValueStore, key string, v interface{}) (bool, error) {
	raw, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func writeJSON(ctx context.Context, kv repository.KeyValueStore, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
