package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/pkg/apperror"
	"github.com/atlantichotel/frontdesk-api/pkg/tax"
	"github.com/atlantichotel/frontdesk-api/pkg/utils"
	"go.uber.org/zap"
)

// InvoiceService aggregates a guest's receipts and restaurant bills into
// one invoice.
type InvoiceService struct {
	receipts *ReceiptService
	bills    *BillService
	rooms    *RoomService
	banks    *BankAccountService
	logger   *zap.Logger
	now      func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(receipts *ReceiptService, bills *BillService, rooms *RoomService, banks *BankAccountService, logger *zap.Logger) *InvoiceService {
	return &InvoiceService{
		receipts: receipts,
		bills:    bills,
		rooms:    rooms,
		banks:    banks,
		logger:   logger.With(zap.String("service", "invoices")),
		now:      time.Now,
	}
}

// InvoiceRequest selects what goes on an invoice. GuestName defaults to
// the current occupant of the first room.
type InvoiceRequest struct {
	Location          string
	RoomNumbers       []string
	GuestName         string
	AdditionalCharges []entity.AdditionalCharge
	IssueDate         string
}

// Generate builds the invoice. Tax is the sum of what each receipt stored
// when it was paid; it is never recomputed from the combined subtotal.
func (s *InvoiceService) Generate(ctx context.Context, req *InvoiceRequest) (*entity.Invoice, error) {
	loc, ok := entity.GetLocation(req.Location)
	if !ok {
		return nil, ErrUnknownLocation
	}

	rooms := make([]string, 0, len(req.RoomNumbers))
	for _, n := range req.RoomNumbers {
		rooms = append(rooms, entity.SplitRoomNumbers(n)...)
	}
	var errs []apperror.FieldError
	if len(rooms) == 0 {
		errs = append(errs, apperror.FieldError{Field: "roomNumbers", Message: "At least one room is required"})
	}
	for i, c := range req.AdditionalCharges {
		if strings.TrimSpace(c.Description) == "" || c.Amount < 0 {
			errs = append(errs, apperror.FieldError{
				Field:   fmt.Sprintf("additionalCharges[%d]", i),
				Message: "Charge needs a description and a non-negative amount",
			})
		}
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	guest := strings.TrimSpace(req.GuestName)
	if guest == "" {
		room, err := s.rooms.Get(ctx, req.Location, rooms[0])
		if err != nil {
			return nil, err
		}
		guest = room.GuestName
	}
	if guest == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "guestName", Message: "Guest name is required when the room is not occupied"},
		})
	}

	issueDate := req.IssueDate
	if issueDate == "" {
		issueDate = s.now().Format("2006-01-02")
	}

	inv := &entity.Invoice{
		Location:        loc.ID,
		LocationName:    loc.Name,
		LocationAddress: loc.FullAddress,
		GuestName:       guest,
		IssueDate:       issueDate,
		Lines:           []entity.InvoiceLine{},
		ReceiptIDs:      []string{},
		BillIDs:         []string{},
	}

	receipts, err := s.receipts.FindForGuest(ctx, req.Location, rooms, guest, false)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(receipts, func(i, j int) bool {
		return receipts[i].Timestamp < receipts[j].Timestamp
	})

	roomSet := make(map[string]struct{})
	addRoom := func(n string) {
		if _, ok := roomSet[n]; !ok {
			roomSet[n] = struct{}{}
			inv.RoomNumbers = append(inv.RoomNumbers, n)
		}
	}
	for _, n := range rooms {
		addRoom(n)
	}

	var roomAmounts, vats, cts, charges []float64
	taxed := false
	for i := range receipts {
		r := &receipts[i]
		inv.ReceiptIDs = append(inv.ReceiptIDs, r.ID)
		inv.TotalDays += r.TotalDays()
		inv.Lines = append(inv.Lines, receiptLines(r)...)
		roomAmounts = append(roomAmounts, r.RoomSubtotal())

		if r.IncludeTax {
			taxed = true
			vats = append(vats, r.VATAmount)
			cts = append(cts, r.ConsumptionTaxAmount)
		}
		if r.IncludeServiceCharge {
			charges = append(charges, r.ServiceChargeAmount)
		}
	}

	var restaurant []float64
	seenBills := make(map[string]struct{})
	for _, n := range inv.RoomNumbers {
		bills, err := s.bills.FetchForRoom(ctx, n, req.Location, guest)
		if err != nil {
			return nil, err
		}
		for i := range bills {
			b := &bills[i]
			if _, dup := seenBills[b.ID]; dup {
				continue
			}
			seenBills[b.ID] = struct{}{}
			if b.IncludeTax {
				taxed = true
			}
			inv.BillIDs = append(inv.BillIDs, b.ID)
			restaurant = append(restaurant, b.Payable())
			inv.Lines = append(inv.Lines, entity.InvoiceLine{
				Kind:        entity.InvoiceLineRestaurant,
				Reference:   b.BillNumber,
				Description: "Restaurant bill " + b.BillNumber,
				RoomNumber:  b.RoomNumber,
				Amount:      b.Payable(),
				Date:        b.Date,
			})
		}
	}

	var additional []float64
	for _, c := range req.AdditionalCharges {
		additional = append(additional, c.Amount)
		inv.Lines = append(inv.Lines, entity.InvoiceLine{
			Kind:        entity.InvoiceLineAdditional,
			Description: strings.TrimSpace(c.Description),
			Amount:      tax.Round2(c.Amount),
		})
	}

	if len(inv.ReceiptIDs) == 0 && len(inv.BillIDs) == 0 && len(additional) == 0 {
		return nil, apperror.NewNotFoundError("Billable records for " + guest)
	}

	inv.RoomSubtotal = tax.Sum(roomAmounts...)
	inv.RestaurantSubtotal = tax.Sum(restaurant...)
	inv.AdditionalTotal = tax.Sum(additional...)
	inv.VAT = tax.Sum(vats...)
	inv.ConsumptionTax = tax.Sum(cts...)
	inv.ServiceCharge = tax.Sum(charges...)
	inv.GrandTotal = tax.Sum(
		inv.RoomSubtotal,
		inv.RestaurantSubtotal,
		inv.AdditionalTotal,
		inv.VAT,
		inv.ConsumptionTax,
		inv.ServiceCharge,
	)
	inv.GrandTotalWords = utils.NumberToNairaWords(inv.GrandTotal)
	if taxed {
		inv.VATNumber = tax.VATNumber
	}

	account, err := s.banks.Get(ctx, req.Location)
	if err != nil {
		s.logger.Warn("bank account unavailable for invoice", zap.String("location", req.Location), zap.Error(err))
	} else {
		inv.BankAccount = account
	}

	s.logger.Info("invoice generated",
		zap.String("location", inv.Location),
		zap.String("guest", guest),
		zap.Int("receipts", len(inv.ReceiptIDs)),
		zap.Int("bills", len(inv.BillIDs)),
		zap.Float64("grandTotal", inv.GrandTotal),
	)
	return inv, nil
}

func receiptLines(r *entity.Receipt) []entity.InvoiceLine {
	if len(r.RoomDetails) > 0 {
		lines := make([]entity.InvoiceLine, 0, len(r.RoomDetails))
		for _, d := range r.RoomDetails {
			lines = append(lines, entity.InvoiceLine{
				Kind:        entity.InvoiceLineRoom,
				Reference:   r.SerialNumber,
				Description: roomLineDescription(r, d.RoomNumber),
				RoomNumber:  d.RoomNumber,
				Quantity:    d.NumberOfDays,
				Rate:        d.DailyRate,
				Amount:      d.Subtotal,
				Date:        r.Date,
			})
		}
		return lines
	}
	return []entity.InvoiceLine{{
		Kind:        entity.InvoiceLineRoom,
		Reference:   r.SerialNumber,
		Description: roomLineDescription(r, r.RoomNumber),
		RoomNumber:  r.RoomNumber,
		Quantity:    r.NumberOfDays,
		Rate:        r.DailyRate,
		Amount:      r.RoomSubtotal(),
		Date:        r.Date,
	}}
}

func roomLineDescription(r *entity.Receipt, room string) string {
	desc := "Accommodation - Room " + room
	if r.IsExtension {
		desc += " (extension)"
	}
	if r.PaymentForDates != "" {
		desc += ", " + r.PaymentForDates
	}
	return desc
}
