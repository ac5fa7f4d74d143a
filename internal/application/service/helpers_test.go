package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/connectivity"
	"github.com/atlantichotel/frontdesk-api/internal/infrastructure/localstore"
	"go.uber.org/zap"
)

var errRemoteDown = errors.New("remote down")

type fakeReceiptRemote struct {
	mu      sync.Mutex
	rows    map[string]entity.Receipt
	inserts int
	fail    bool
	// gate, when set, holds every Insert until it is closed
	gate chan struct{}
}

func newFakeReceiptRemote() *fakeReceiptRemote {
	return &fakeReceiptRemote{rows: make(map[string]entity.Receipt)}
}

func (f *fakeReceiptRemote) Insert(_ context.Context, r *entity.Receipt) error {
	if f.gate != nil {
		<-f.gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errRemoteDown
	}
	f.inserts++
	if existing, ok := f.rows[r.ID]; ok {
		existing.CheckedOut = existing.CheckedOut || r.CheckedOut
		f.rows[r.ID] = existing
		return nil
	}
	row := *r
	row.Synced = false
	f.rows[r.ID] = row
	return nil
}

func (f *fakeReceiptRemote) List(_ context.Context) ([]entity.Receipt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemoteDown
	}
	out := make([]entity.Receipt, 0, len(f.rows))
	for _, r := range f.rows {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReceiptRemote) MarkCheckedOut(_ context.Context, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errRemoteDown
	}
	for _, id := range ids {
		if r, ok := f.rows[id]; ok {
			r.CheckedOut = true
			f.rows[id] = r
		}
	}
	return nil
}

type fakeRoomRemote struct {
	mu      sync.Mutex
	rows    map[string]entity.Room
	upserts int
	fail    bool
}

func newFakeRoomRemote() *fakeRoomRemote {
	return &fakeRoomRemote{rows: make(map[string]entity.Room)}
}

func (f *fakeRoomRemote) Upsert(_ context.Context, r *entity.Room) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errRemoteDown
	}
	f.upserts++
	f.rows[r.ID] = *r
	return nil
}

func (f *fakeRoomRemote) UpsertBatch(ctx context.Context, rooms []entity.Room) error {
	for i := range rooms {
		if err := f.Upsert(ctx, &rooms[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeRoomRemote) ListByLocation(_ context.Context, location string) ([]entity.Room, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemoteDown
	}
	var out []entity.Room
	for _, r := range f.rows {
		if r.Location == location {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeBillRemote struct {
	mu      sync.Mutex
	rows    map[string]entity.Bill
	inserts int
	fail    bool
}

func newFakeBillRemote() *fakeBillRemote {
	return &fakeBillRemote{rows: make(map[string]entity.Bill)}
}

func (f *fakeBillRemote) Insert(_ context.Context, b *entity.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errRemoteDown
	}
	f.inserts++
	f.rows[b.ID] = *b
	return nil
}

func (f *fakeBillRemote) List(_ context.Context, filter entity.BillFilter) ([]entity.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemoteDown
	}
	var out []entity.Bill
	for _, b := range f.rows {
		if filter.RoomNumber != "" && b.RoomNumber != filter.RoomNumber {
			continue
		}
		if filter.Location != "" && b.RoomLocation != filter.Location {
			continue
		}
		if filter.GuestName != "" && !strings.EqualFold(b.GuestName, filter.GuestName) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

type fakeMenuRemote struct {
	mu    sync.Mutex
	items map[string]entity.MenuItem
	fail  bool
}

func newFakeMenuRemote(items ...entity.MenuItem) *fakeMenuRemote {
	f := &fakeMenuRemote{items: make(map[string]entity.MenuItem)}
	for _, it := range items {
		f.items[it.ID] = it
	}
	return f
}

func (f *fakeMenuRemote) ListAvailable(_ context.Context) ([]entity.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemoteDown
	}
	var out []entity.MenuItem
	for _, it := range f.items {
		if it.Available {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (f *fakeMenuRemote) Get(_ context.Context, id string) (*entity.MenuItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return nil, errRemoteDown
	}
	it, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (f *fakeMenuRemote) Create(_ context.Context, item *entity.MenuItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[item.ID] = *item
	return nil
}

func (f *fakeMenuRemote) Update(_ context.Context, item *entity.MenuItem) error {
	return f.Create(context.Background(), item)
}

func (f *fakeMenuRemote) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

type fakeBankRemote struct {
	accounts []entity.BankAccount
	fail     bool
}

func (f *fakeBankRemote) Latest(_ context.Context, location string) (*entity.BankAccount, error) {
	if f.fail {
		return nil, errRemoteDown
	}
	for i := len(f.accounts) - 1; i >= 0; i-- {
		a := f.accounts[i]
		if a.Location == location || a.Location == entity.BankAccountAllLocations {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeBankRemote) Create(_ context.Context, a *entity.BankAccount) error {
	f.accounts = append(f.accounts, *a)
	return nil
}

func (f *fakeBankRemote) Update(_ context.Context, a *entity.BankAccount) error {
	for i := range f.accounts {
		if f.accounts[i].ID == a.ID {
			f.accounts[i] = *a
			return nil
		}
	}
	return errors.New("not found")
}

type testEnv struct {
	kv       *localstore.MemoryStore
	monitor  *connectivity.Monitor
	receipts *ReceiptService
	rooms    *RoomService
	bills    *BillService
	menu     *MenuService
	banks    *BankAccountService
	invoices *InvoiceService
	sync     *SyncService
	auth     *AuthService

	remoteReceipts *fakeReceiptRemote
	remoteRooms    *fakeRoomRemote
	remoteBills    *fakeBillRemote
	remoteMenu     *fakeMenuRemote
	remoteBanks    *fakeBankRemote
}

var testNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T, online bool) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	kv := localstore.NewMemoryStore()
	monitor := connectivity.NewMonitor(nil, time.Minute, time.Second, logger)
	monitor.Set(online)

	env := &testEnv{
		kv:             kv,
		monitor:        monitor,
		remoteReceipts: newFakeReceiptRemote(),
		remoteRooms:    newFakeRoomRemote(),
		remoteBills:    newFakeBillRemote(),
		remoteMenu: newFakeMenuRemote(
			entity.MenuItem{ID: "m1", Name: "Jollof Rice", Category: "Mains", Price: 4500, Available: true},
			entity.MenuItem{ID: "m2", Name: "Chapman", Category: "Drinks", Price: 2500, Available: true},
			entity.MenuItem{ID: "m3", Name: "Pepper Soup", Category: "Mains", Price: 6000, Available: false},
		),
		remoteBanks: &fakeBankRemote{},
	}

	env.rooms = NewRoomService(
		localstore.NewRoomCache(kv), env.remoteRooms,
		localstore.NewQueueStore(kv, localstore.KeyRoomsQueue), monitor, logger)
	env.rooms.now = func() time.Time { return testNow }

	env.receipts = NewReceiptService(
		localstore.NewReceiptCache(kv), env.remoteReceipts,
		localstore.NewQueueStore(kv, localstore.KeyReceiptsQueue), env.rooms, monitor, 0, logger)
	env.receipts.now = func() time.Time { return testNow }

	env.menu = NewMenuService(localstore.NewMenuCache(kv), env.remoteMenu, monitor, logger)

	env.bills = NewBillService(
		localstore.NewBillCache(kv), env.remoteBills,
		localstore.NewQueueStore(kv, localstore.KeyBillsQueue), env.menu, monitor, logger)
	env.bills.now = func() time.Time { return testNow }

	env.banks = NewBankAccountService(localstore.NewBankAccountCache(kv), env.remoteBanks, monitor, logger)
	env.invoices = NewInvoiceService(env.receipts, env.bills, env.rooms, env.banks, logger)
	env.invoices.now = func() time.Time { return testNow }

	env.sync = NewSyncService(env.receipts, env.rooms, env.bills, env.menu,
		localstore.NewSyncStateStore(kv), monitor, time.Minute, logger)
	env.sync.now = func() time.Time { return testNow }

	return env
}

func singleRoomInput(room, guest string) *CreateReceiptInput {
	return &CreateReceiptInput{
		CustomerName:     guest,
		RoomNumber:       room,
		NumberOfDays:     2,
		DailyRate:        25000,
		PaymentMode:      enum.PaymentModeCash,
		ReceptionistName: "Ada",
		Location:         entity.LocationAdelekeAdedoyin,
	}
}

// assertQueueConsistent checks that the synced flag and queue membership agree
func assertQueueConsistent(t *testing.T, env *testEnv) {
	t.Helper()
	ctx := context.Background()

	receipts, err := env.receipts.cache.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range receipts {
		queued, err := env.receipts.Queue().Contains(ctx, r.ID)
		if err != nil {
			t.Fatal(err)
		}
		if queued == r.Synced {
			t.Errorf("receipt %s: synced=%v queued=%v", r.SerialNumber, r.Synced, queued)
		}
	}

	for _, loc := range entity.Locations() {
		rooms, err := env.rooms.cache.ListByLocation(ctx, loc.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, r := range rooms {
			queued, err := env.rooms.Queue().Contains(ctx, r.ID)
			if err != nil {
				t.Fatal(err)
			}
			if queued == r.Synced {
				t.Errorf("room %s: synced=%v queued=%v", r.ID, r.Synced, queued)
			}
		}
	}

	bills, err := env.bills.cache.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, b := range bills {
		queued, err := env.bills.Queue().Contains(ctx, b.ID)
		if err != nil {
			t.Fatal(err)
		}
		if queued == b.Synced {
			t.Errorf("bill %s: synced=%v queued=%v", b.BillNumber, b.Synced, queued)
		}
	}
}
