package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/internal/domain/repository"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/tax"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// ReceiptService owns the receipt ledger. Receipts are written locally
// first, pushed once, and left in the receipts queue when that fails.
type ReceiptService struct {
	cache             repository.ReceiptCache
	remote            repository.RemoteReceiptRepository
	rooms             *RoomService
	queue             *SyncQueue
	conn              Connectivity
	serviceChargeRate float64
	logger            *zap.Logger
	now               func() time.Time
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	cache repository.ReceiptCache,
	remote repository.RemoteReceiptRepository,
	queueStore repository.SyncQueueStore,
	rooms *RoomService,
	conn Connectivity,
	serviceChargeRate float64,
	logger *zap.Logger,
) *ReceiptService {
	if serviceChargeRate <= 0 {
		serviceChargeRate = tax.DefaultServiceChargeRate
	}
	s := &ReceiptService{
		cache:             cache,
		remote:            remote,
		rooms:             rooms,
		conn:              conn,
		serviceChargeRate: serviceChargeRate,
		logger:            logger.With(zap.String("service", "receipts")),
		now:               time.Now,
	}
	s.queue = NewSyncQueue("receipts", queueStore, &receiptSyncTarget{s}, conn, logger)
	return s
}

// Queue exposes the receipts sync queue
func (s *ReceiptService) Queue() *SyncQueue {
	return s.queue
}

// RoomDetailInput is one room of a booking
type RoomDetailInput struct {
	RoomNumber   string
	NumberOfDays int
	DailyRate    float64
	Subtotal     float64
	GuestName    string
}

// CreateReceiptInput represents the create receipt input
type CreateReceiptInput struct {
	CustomerName         string
	GuestNames           []string
	RoomNumber           string
	RoomDetails          []RoomDetailInput
	Amount               float64
	NumberOfDays         int
	DailyRate            float64
	PaymentMode          enum.PaymentMode
	CompanyName          string
	ReceptionistName     string
	Location             string
	Date                 string
	CheckInDate          string
	IsExtension          bool
	OriginalReceiptID    string
	PaymentForDates      string
	IncludeTax           bool
	IncludeServiceCharge bool
}

func (in *CreateReceiptInput) roomNumbers() []string {
	if len(in.RoomDetails) > 0 {
		out := make([]string, 0, len(in.RoomDetails))
		for _, d := range in.RoomDetails {
			out = append(out, strings.TrimSpace(d.RoomNumber))
		}
		return out
	}
	return entity.SplitRoomNumbers(in.RoomNumber)
}

func (in *CreateReceiptInput) validate() error {
	var errs []apperror.FieldError
	add := func(field, msg string) {
		errs = append(errs, apperror.FieldError{Field: field, Message: msg})
	}

	if strings.TrimSpace(in.CustomerName) == "" {
		add("customerName", "Customer name is required")
	}
	rooms := in.roomNumbers()
	if len(rooms) == 0 {
		add("roomNumber", "At least one room is required")
	}
	seen := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		if r == "" {
			add("roomDetails", "Room number is required")
			continue
		}
		if _, dup := seen[r]; dup {
			add("roomDetails", fmt.Sprintf("Room %s is listed twice", r))
		}
		seen[r] = struct{}{}
	}
	if _, ok := entity.GetLocation(in.Location); !ok {
		add("location", "Unknown location")
	}
	if !in.PaymentMode.IsValid() {
		add("paymentMode", "Payment mode must be Cash, Card, Transfer or BTC")
	} else if in.PaymentMode.RequiresCompany() && strings.TrimSpace(in.CompanyName) == "" {
		add("companyName", "Company name is required for Bill to Company")
	}
	if in.Amount < 0 || in.DailyRate < 0 || in.NumberOfDays < 0 {
		add("amount", "Amounts cannot be negative")
	}
	for _, d := range in.RoomDetails {
		if d.NumberOfDays < 0 || d.DailyRate < 0 || d.Subtotal < 0 {
			add("roomDetails", fmt.Sprintf("Room %s has a negative amount", d.RoomNumber))
		}
	}
	if in.IsExtension && strings.TrimSpace(in.OriginalReceiptID) == "" {
		add("originalReceiptId", "Extensions must reference the original receipt")
	}
	if strings.TrimSpace(in.ReceptionistName) == "" {
		add("receptionistName", "Receptionist name is required")
	}

	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	return nil
}

func (in *CreateReceiptInput) details() []entity.RoomDetail {
	if len(in.RoomDetails) == 0 {
		return nil
	}
	out := make([]entity.RoomDetail, 0, len(in.RoomDetails))
	for _, d := range in.RoomDetails {
		sub := d.Subtotal
		if sub == 0 {
			sub = tax.Mul(float64(d.NumberOfDays), d.DailyRate)
		}
		out = append(out, entity.RoomDetail{
			RoomNumber:   strings.TrimSpace(d.RoomNumber),
			NumberOfDays: d.NumberOfDays,
			DailyRate:    d.DailyRate,
			Subtotal:     sub,
			GuestName:    strings.TrimSpace(d.GuestName),
		})
	}
	return out
}

func (in *CreateReceiptInput) subtotal(details []entity.RoomDetail) float64 {
	if len(details) > 0 {
		subs := make([]float64, 0, len(details))
		for _, d := range details {
			subs = append(subs, d.Subtotal)
		}
		return tax.Sum(subs...)
	}
	if in.NumberOfDays > 0 && in.DailyRate > 0 {
		return tax.Mul(float64(in.NumberOfDays), in.DailyRate)
	}
	return tax.Round2(in.Amount)
}

// Create validates and records a receipt after reserving its rooms for
// the guest. Extension receipts leave already-occupied rooms as they are.
// A room taken by a concurrent booking fails the whole create.
func (s *ReceiptService) Create(ctx context.Context, input *CreateReceiptInput) (*entity.Receipt, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	if input.IsExtension {
		original, err := s.Get(ctx, input.OriginalReceiptID)
		if err != nil {
			return nil, err
		}
		if original.Location != input.Location {
			return nil, apperror.NewBadRequestError("Original receipt belongs to another location")
		}
	}

	now := s.now()
	rooms := input.roomNumbers()
	details := input.details()
	subtotal := input.subtotal(details)
	if subtotal <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "amount", Message: "Amount must be greater than zero"},
		})
	}

	date := input.Date
	if date == "" {
		date = now.Format("2006-01-02")
	}

	receipt := &entity.Receipt{
		ID:                   utils.NewID(),
		CustomerName:         strings.TrimSpace(input.CustomerName),
		GuestNames:           trimNames(input.GuestNames),
		RoomNumber:           strings.Join(rooms, ", "),
		RoomDetails:          details,
		PaymentMode:          input.PaymentMode,
		ReceptionistName:     strings.TrimSpace(input.ReceptionistName),
		Location:             input.Location,
		Date:                 date,
		Timestamp:            now.UnixMilli(),
		NumberOfDays:         input.NumberOfDays,
		DailyRate:            input.DailyRate,
		IsExtension:          input.IsExtension,
		OriginalReceiptID:    input.OriginalReceiptID,
		PaymentForDates:      input.PaymentForDates,
		IncludeTax:           input.IncludeTax,
		IncludeServiceCharge: input.IncludeServiceCharge,
	}
	if input.PaymentMode.RequiresCompany() {
		receipt.CompanyName = strings.TrimSpace(input.CompanyName)
	}

	receipt.AmountFigures = subtotal
	if input.IncludeTax {
		b := tax.Compute(subtotal)
		receipt.VATAmount = b.VAT
		receipt.ConsumptionTaxAmount = b.ConsumptionTax
		receipt.TotalWithTax = b.TotalWithTax
		receipt.AmountFigures = b.TotalWithTax
	}
	if input.IncludeServiceCharge {
		receipt.ServiceChargeAmount = tax.ServiceCharge(subtotal, s.serviceChargeRate)
	}
	receipt.AmountWords = utils.NumberToNairaWords(receipt.AmountFigures)

	var reservation *Reservation
	if input.IsExtension {
		if err := s.rooms.ValidateRooms(ctx, input.Location, rooms, enum.RoomStatusOccupied); err != nil {
			return nil, err
		}
	} else {
		checkIn := input.CheckInDate
		if checkIn == "" {
			checkIn = date
		}
		res, err := s.rooms.Reserve(ctx, input.Location, rooms, receipt.GuestForRoom, checkIn)
		if err != nil {
			return nil, err
		}
		reservation = res
	}

	if err := s.record(ctx, receipt); err != nil {
		if reservation != nil {
			reservation.Release(ctx)
		}
		return nil, err
	}

	synced, err := s.queue.Submit(ctx, receipt.ID)
	if err != nil {
		return nil, err
	}
	receipt.Synced = synced

	if reservation != nil {
		if err := reservation.Confirm(ctx); err != nil {
			return nil, err
		}
	}

	s.logger.Info("receipt created",
		zap.String("id", receipt.ID),
		zap.String("serial", receipt.SerialNumber),
		zap.String("location", receipt.Location),
		zap.Strings("rooms", rooms),
		zap.Bool("synced", synced),
	)
	return receipt, nil
}

// record assigns the next serial number and stores the receipt locally
func (s *ReceiptService) record(ctx context.Context, receipt *entity.Receipt) error {
	serial, err := s.cache.NextSerialNumber(ctx)
	if err != nil {
		return err
	}
	receipt.SerialNumber = serial
	return s.cache.Add(ctx, receipt)
}

// ListAll returns every cached receipt, newest first, one per id
func (s *ReceiptService) ListAll(ctx context.Context) ([]entity.Receipt, error) {
	receipts, err := s.cache.List(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(receipts))
	out := make([]entity.Receipt, 0, len(receipts))
	for _, r := range receipts {
		if _, dup := seen[r.ID]; dup {
			continue
		}
		seen[r.ID] = struct{}{}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out, nil
}

// ListByLocation filters ListAll to one branch
func (s *ReceiptService) ListByLocation(ctx context.Context, location string) ([]entity.Receipt, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Receipt, 0, len(all))
	for _, r := range all {
		if r.Location == location {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get retrieves a receipt by ID
func (s *ReceiptService) Get(ctx context.Context, id string) (*entity.Receipt, error) {
	receipt, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, apperror.NewNotFoundError("Receipt")
	}
	return receipt, nil
}

// Search matches query case-insensitively against serial number, room,
// customer and receptionist. An empty location searches every branch.
func (s *ReceiptService) Search(ctx context.Context, location, query string) ([]entity.Receipt, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]entity.Receipt, 0)
	for _, r := range all {
		if location != "" && r.Location != location {
			continue
		}
		if q == "" ||
			strings.Contains(strings.ToLower(r.SerialNumber), q) ||
			strings.Contains(strings.ToLower(r.RoomNumber), q) ||
			strings.Contains(strings.ToLower(r.CustomerName), q) ||
			strings.Contains(strings.ToLower(r.ReceptionistName), q) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FindForGuest returns the receipts at location covering any of rooms and
// matching guestName. Checked-out receipts belong to an earlier stay and
// are skipped unless includeCheckedOut is set.
func (s *ReceiptService) FindForGuest(ctx context.Context, location string, rooms []string, guestName string, includeCheckedOut bool) ([]entity.Receipt, error) {
	all, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]entity.Receipt, 0)
	for _, r := range all {
		if r.Location != location {
			continue
		}
		if r.CheckedOut && !includeCheckedOut {
			continue
		}
		if !coversAny(&r, rooms) {
			continue
		}
		if guestName != "" && r.MatchGuest(guestName) == entity.GuestMatchNone {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// PullRemote merges remote receipts missing locally. Local copies are
// never overwritten. Failures are logged and reported as zero merged.
func (s *ReceiptService) PullRemote(ctx context.Context) (int, error) {
	if !s.conn.IsOnline() {
		return 0, nil
	}
	remote, err := s.remote.List(ctx)
	if err != nil {
		s.logger.Warn("pull receipts failed", zap.Error(err))
		return 0, nil
	}
	added, err := s.cache.MergeMissing(ctx, remote)
	if err != nil {
		return 0, err
	}
	if added > 0 {
		s.logger.Info("merged remote receipts", zap.Int("count", added))
	}
	return added, nil
}

// MarkCheckedOut flips checkedOut on every open receipt at location that
// covers roomNumber and names guestName. The remote batch update is best
// effort; receipts it misses are queued so the flag is replayed later.
func (s *ReceiptService) MarkCheckedOut(ctx context.Context, location, roomNumber, guestName string) ([]string, error) {
	matches, err := s.FindForGuest(ctx, location, []string{roomNumber}, guestName, false)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(matches))
	for _, r := range matches {
		ids = append(ids, r.ID)
	}
	return ids, s.markCheckedOut(ctx, ids)
}

func (s *ReceiptService) markCheckedOut(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := s.cache.MarkCheckedOut(ctx, ids); err != nil {
		return err
	}

	remoteOK := false
	if s.conn.IsOnline() {
		if err := s.remote.MarkCheckedOut(ctx, ids); err != nil {
			s.logger.Warn("remote checkout update failed", zap.Strings("ids", ids), zap.Error(err))
		} else {
			remoteOK = true
		}
	}
	if remoteOK {
		return nil
	}
	for _, id := range ids {
		if err := s.queue.MarkPending(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// GuestCheckout is the outcome of CheckOutGuest
type GuestCheckout struct {
	*CheckoutResult
	CheckedOutReceipts []string `json:"checkedOutReceipts"`
}

// CheckOutGuest frees a room and closes the guest's receipts for it. A
// multi-room receipt is only closed once the guest has left every room it
// covers.
func (s *ReceiptService) CheckOutGuest(ctx context.Context, location, roomNumber string) (*GuestCheckout, error) {
	result, err := s.rooms.CheckOut(ctx, location, roomNumber, "")
	if err != nil {
		return nil, err
	}
	out := &GuestCheckout{CheckoutResult: result, CheckedOutReceipts: []string{}}
	if result.GuestName == "" {
		return out, nil
	}

	matches, err := s.FindForGuest(ctx, location, []string{roomNumber}, result.GuestName, false)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(matches))
	for i := range matches {
		vacated, err := s.guestVacatedAll(ctx, &matches[i], result.GuestName)
		if err != nil {
			return nil, err
		}
		if vacated {
			ids = append(ids, matches[i].ID)
		}
	}
	if err := s.markCheckedOut(ctx, ids); err != nil {
		return nil, err
	}
	out.CheckedOutReceipts = ids
	return out, nil
}

func (s *ReceiptService) guestVacatedAll(ctx context.Context, r *entity.Receipt, guest string) (bool, error) {
	for _, n := range r.RoomNumbers() {
		room, err := s.rooms.cache.Get(ctx, entity.RoomID(r.Location, n))
		if err != nil {
			return false, err
		}
		if room == nil || room.Status != enum.RoomStatusOccupied {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(room.GuestName), strings.TrimSpace(guest)) ||
			r.MatchGuest(room.GuestName) != entity.GuestMatchNone {
			return false, nil
		}
	}
	return true, nil
}

// PendingCount is the number of receipts waiting to be written remotely
func (s *ReceiptService) PendingCount(ctx context.Context) (int, error) {
	return s.queue.Len(ctx)
}

func coversAny(r *entity.Receipt, rooms []string) bool {
	if len(rooms) == 0 {
		return true
	}
	for _, n := range rooms {
		if r.HasRoom(n) {
			return true
		}
	}
	return false
}

func trimNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

type receiptSyncTarget struct {
	s *ReceiptService
}

func (t *receiptSyncTarget) Pending(ctx context.Context, id string) (bool, bool, error) {
	r, err := t.s.cache.Get(ctx, id)
	if err != nil || r == nil {
		return false, false, err
	}
	return true, !r.Synced, nil
}

// Push inserts the receipt. The remote insert is idempotent by id and
// only carries the checked-out flag forward on conflict.
func (t *receiptSyncTarget) Push(ctx context.Context, id string) error {
	r, err := t.s.cache.Get(ctx, id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("receipt %s not cached", id)
	}
	return t.s.remote.Insert(ctx, r)
}

func (t *receiptSyncTarget) SetSynced(ctx context.Context, id string, synced bool) error {
	return t.s.cache.SetSynced(ctx, id, synced)
}

func (t *receiptSyncTarget) UnsyncedIDs(ctx context.Context) ([]string, error) {
	receipts, err := t.s.cache.List(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, r := range receipts {
		if !r.Synced {
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}
