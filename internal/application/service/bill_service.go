package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/tax"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

const billNumberPrefix = "REST-"

// BillService records restaurant bills with the same write-through queue
// as receipts.
type BillService struct {
	cache  repository.BillCache
	remote repository.RemoteBillRepository
	menu   *MenuService
	queue  *SyncQueue
	conn   Connectivity
	logger *zap.Logger
	now    func() time.Time
}

// NewBillService creates a new bill service
func NewBillService(
	cache repository.BillCache,
	remote repository.RemoteBillRepository,
	queueStore repository.SyncQueueStore,
	menu *MenuService,
	conn Connectivity,
	logger *zap.Logger,
) *BillService {
	s := &BillService{
		cache:  cache,
		remote: remote,
		menu:   menu,
		conn:   conn,
		logger: logger.With(zap.String("service", "bills")),
		now:    time.Now,
	}
	s.queue = NewSyncQueue("bills", queueStore, &billSyncTarget{s}, conn, logger)
	return s
}

// Queue exposes the bills sync queue
func (s *BillService) Queue() *SyncQueue {
	return s.queue
}

// BillItemInput represents an item on a bill. Name and price fall back to
// the cached menu entry when MenuItemID is set.
type BillItemInput struct {
	MenuItemID   string
	Name         string
	Quantity     int
	PricePerUnit float64
}

// CreateBillInput represents the create bill input
type CreateBillInput struct {
	CustomerName string
	RoomNumber   string
	RoomLocation string
	GuestName    string
	Items        []BillItemInput
	StaffName    string
	IncludeTax   bool
}

// Create records a bill and pushes it once
func (s *BillService) Create(ctx context.Context, input *CreateBillInput) (*entity.Bill, error) {
	items, err := s.resolveItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	var errs []apperror.FieldError
	if strings.TrimSpace(input.StaffName) == "" {
		errs = append(errs, apperror.FieldError{Field: "staffName", Message: "Staff name is required"})
	}
	if input.RoomNumber != "" {
		if _, ok := entity.GetLocation(input.RoomLocation); !ok {
			errs = append(errs, apperror.FieldError{Field: "roomLocation", Message: "A room bill needs a known location"})
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	now := s.now()
	number, err := s.nextBillNumber(ctx, now)
	if err != nil {
		return nil, err
	}

	subs := make([]float64, 0, len(items))
	for _, it := range items {
		subs = append(subs, it.Subtotal)
	}
	subtotal := tax.Sum(subs...)

	bill := &entity.Bill{
		ID:           utils.NewID(),
		BillNumber:   number,
		CustomerName: strings.TrimSpace(input.CustomerName),
		RoomNumber:   strings.TrimSpace(input.RoomNumber),
		RoomLocation: input.RoomLocation,
		GuestName:    strings.TrimSpace(input.GuestName),
		Items:        items,
		Subtotal:     subtotal,
		Total:        subtotal,
		Date:         now.Format("2006-01-02"),
		Timestamp:    now.UnixMilli(),
		StaffName:    strings.TrimSpace(input.StaffName),
		IncludeTax:   input.IncludeTax,
	}
	if input.IncludeTax {
		b := tax.Compute(subtotal)
		bill.VATAmount = b.VAT
		bill.ConsumptionTaxAmount = b.ConsumptionTax
		bill.TotalWithTax = b.TotalWithTax
		bill.Total = b.TotalWithTax
	}

	if err := s.cache.Add(ctx, bill); err != nil {
		return nil, err
	}
	synced, err := s.queue.Submit(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	bill.Synced = synced

	s.logger.Info("bill created",
		zap.String("id", bill.ID),
		zap.String("billNumber", bill.BillNumber),
		zap.Float64("total", bill.Total),
		zap.Bool("synced", synced),
	)
	return bill, nil
}

func (s *BillService) resolveItems(ctx context.Context, inputs []BillItemInput) ([]entity.BillItem, error) {
	if len(inputs) == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "items", Message: "At least one item is required"},
		})
	}

	var menuByID map[string]entity.MenuItem
	var errs []apperror.FieldError
	items := make([]entity.BillItem, 0, len(inputs))
	for i, in := range inputs {
		field := fmt.Sprintf("items[%d]", i)
		name, price := strings.TrimSpace(in.Name), in.PricePerUnit

		if in.MenuItemID != "" && (name == "" || price == 0) {
			if menuByID == nil {
				var err error
				if menuByID, err = s.menu.index(ctx); err != nil {
					return nil, err
				}
			}
			if m, ok := menuByID[in.MenuItemID]; ok {
				if name == "" {
					name = m.Name
				}
				if price == 0 {
					price = m.Price
				}
			}
		}

		switch {
		case name == "":
			errs = append(errs, apperror.FieldError{Field: field, Message: "Item name is required"})
		case in.Quantity <= 0:
			errs = append(errs, apperror.FieldError{Field: field, Message: "Quantity must be at least 1"})
		case price < 0:
			errs = append(errs, apperror.FieldError{Field: field, Message: "Price cannot be negative"})
		}

		items = append(items, entity.BillItem{
			ID:           utils.NewID(),
			MenuItemID:   in.MenuItemID,
			Name:         name,
			Quantity:     in.Quantity,
			PricePerUnit: price,
			Subtotal:     tax.Mul(float64(in.Quantity), price),
		})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}
	return items, nil
}

// nextBillNumber counts today's stored bills. Two devices billing on the
// same day can produce the same number; nothing here prevents that.
func (s *BillService) nextBillNumber(ctx context.Context, now time.Time) (string, error) {
	prefix := billNumberPrefix + now.Format("20060102") + "-"
	n, err := s.cache.CountWithPrefix(ctx, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, n+1), nil
}

// List returns the cached bills, newest first
func (s *BillService) List(ctx context.Context) ([]entity.Bill, error) {
	bills, err := s.cache.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].Timestamp > bills[j].Timestamp
	})
	return bills, nil
}

// Get retrieves a bill by ID
func (s *BillService) Get(ctx context.Context, id string) (*entity.Bill, error) {
	bill, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, apperror.NewNotFoundError("Bill")
	}
	return bill, nil
}

// FetchForRoom returns the bills charged to a room, optionally narrowed to
// one guest. Remote results are merged with local bills not yet pushed;
// when the remote query is unavailable the local list is used alone.
func (s *BillService) FetchForRoom(ctx context.Context, roomNumber, location, guestName string) ([]entity.Bill, error) {
	filter := entity.BillFilter{
		RoomNumber: strings.TrimSpace(roomNumber),
		Location:   location,
		GuestName:  strings.TrimSpace(guestName),
	}

	local, err := s.cache.List(ctx)
	if err != nil {
		return nil, err
	}

	var remote []entity.Bill
	fromRemote := false
	if s.conn.IsOnline() {
		remote, err = s.remote.List(ctx, filter)
		if err != nil {
			s.logger.Warn("fetch room bills failed, using local bills", zap.String("room", roomNumber), zap.Error(err))
		} else {
			fromRemote = true
		}
	}

	seen := make(map[string]struct{})
	out := make([]entity.Bill, 0)
	keep := func(b entity.Bill) {
		if _, dup := seen[b.ID]; dup || !billMatches(&b, filter) {
			return
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}

	for _, b := range remote {
		b.Synced = true
		keep(b)
	}
	for _, b := range local {
		if fromRemote && b.Synced {
			continue
		}
		keep(b)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out, nil
}

func billMatches(b *entity.Bill, f entity.BillFilter) bool {
	if f.RoomNumber != "" && strings.TrimSpace(b.RoomNumber) != f.RoomNumber {
		return false
	}
	if f.Location != "" && b.RoomLocation != f.Location {
		return false
	}
	if f.GuestName != "" && !strings.EqualFold(strings.TrimSpace(b.GuestName), f.GuestName) {
		return false
	}
	return true
}

// PendingCount is the number of bills waiting to be written remotely
func (s *BillService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Len(ctx)
}

type billSyncTarget struct {
	s *BillService
}

func (t *billSyncTarget) Pending(ctx context.Context, id string) (bool, bool, error) {
	b, err := t.s.cache.Get(ctx, id)
	if err != nil || b == nil {
		return false, false, err
	}
	return true, !b.Synced, nil
}

func (t *billSyncTarget) Push(ctx context.Context, id string) error {
	b, err := t.s.cache.Get(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return fmt.Errorf("bill %s not cached", id)
	}
	return t.s.remote.Insert(ctx, b)
}

func (t *billSyncTarget) SetSynced(ctx context.Context, id string, synced bool) error {
	return t.s.cache.SetSynced(ctx, id, synced)
}

func (t *billSyncTarget) UnsyncedIDs(ctx context.Context) ([]string, error) {
	bills, err := t.s.cache.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, b := range bills {
		if !b.Synced {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}
