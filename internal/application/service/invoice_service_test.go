package service

import (
	"context"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/pkg/tax"
)

func TestInvoiceSumsStoredTax(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)
	loc := entity.LocationAdelekeAdedoyin

	// an earlier, already checked-out stay in the same room
	prior := singleRoomInput("23", "Wale")
	prior.NumberOfDays, prior.DailyRate = 3, 10000
	if _, err := env.receipts.Create(ctx, prior); err != nil {
		t.Fatal(err)
	}
	if _, err := env.receipts.CheckOutGuest(ctx, loc, "23"); err != nil {
		t.Fatal(err)
	}

	taxed := singleRoomInput("23", "Wale")
	taxed.NumberOfDays, taxed.DailyRate = 1, 10000
	taxed.IncludeTax = true
	first, err := env.receipts.Create(ctx, taxed)
	if err != nil {
		t.Fatal(err)
	}
	if first.VATAmount != 750 || first.ConsumptionTaxAmount != 500 {
		t.Fatalf("stored tax = %v/%v", first.VATAmount, first.ConsumptionTaxAmount)
	}

	untaxed := singleRoomInput("23", "Wale")
	untaxed.NumberOfDays, untaxed.DailyRate = 1, 10000
	untaxed.IsExtension = true
	untaxed.OriginalReceiptID = first.ID
	if _, err := env.receipts.Create(ctx, untaxed); err != nil {
		t.Fatal(err)
	}

	if _, err := env.bills.Create(ctx, &CreateBillInput{
		RoomNumber:   "23",
		RoomLocation: loc,
		GuestName:    "wale",
		Items:        []BillItemInput{{MenuItemID: "m1", Quantity: 2}},
		StaffName:    "Kunle",
	}); err != nil {
		t.Fatal(err)
	}
	env.remoteBanks.accounts = append(env.remoteBanks.accounts, entity.BankAccount{
		ID: "b1", BankName: "Zenith", AccountNumber: "1012345678", AccountName: "Atlantic Hotel", Location: entity.BankAccountAllLocations,
	})

	inv, err := env.invoices.Generate(ctx, &InvoiceRequest{
		Location:          loc,
		RoomNumbers:       []string{"23"},
		AdditionalCharges: []entity.AdditionalCharge{{Description: "Laundry", Amount: 1500}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if inv.GuestName != "Wale" {
		t.Errorf("guest = %q", inv.GuestName)
	}
	if len(inv.ReceiptIDs) != 2 {
		t.Errorf("receipts = %d, want 2 (checked-out stay excluded)", len(inv.ReceiptIDs))
	}
	if inv.VAT != 750 || inv.ConsumptionTax != 500 {
		t.Errorf("invoice tax = %v/%v, want 750/500", inv.VAT, inv.ConsumptionTax)
	}

	// recomputing on the blended subtotal would give 1500/1000
	recomputed := tax.Compute(inv.RoomSubtotal)
	if inv.VAT == recomputed.VAT {
		t.Error("invoice VAT was recomputed from the aggregate")
	}

	checks := []struct {
		name      string
		got, want float64
	}{
		{"room subtotal", inv.RoomSubtotal, 20000},
		{"restaurant", inv.RestaurantSubtotal, 9000},
		{"additional", inv.AdditionalTotal, 1500},
		{"service charge", inv.ServiceCharge, 0},
		{"grand total", inv.GrandTotal, 31750},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if inv.TotalDays != 2 {
		t.Errorf("total days = %d", inv.TotalDays)
	}
	if inv.VATNumber != tax.VATNumber {
		t.Errorf("VAT number = %q", inv.VATNumber)
	}
	if inv.GrandTotalWords != "Thirty One Thousand Seven Hundred and Fifty Naira Only" {
		t.Errorf("words = %q", inv.GrandTotalWords)
	}
	if inv.BankAccount == nil || inv.BankAccount.BankName != "Zenith" {
		t.Errorf("bank account = %+v", inv.BankAccount)
	}
	if len(inv.Lines) != 4 {
		t.Errorf("lines = %d, want 4", len(inv.Lines))
	}
}

func TestInvoiceSubtractsEmbeddedTax(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	in := singleRoomInput("24", "Yemi")
	in.NumberOfDays, in.DailyRate = 2, 50000
	in.IncludeTax = true
	in.IncludeServiceCharge = true
	r, err := env.receipts.Create(ctx, in)
	if err != nil {
		t.Fatal(err)
	}
	if r.AmountFigures != 112500 {
		t.Fatalf("amountFigures = %v", r.AmountFigures)
	}

	inv, err := env.invoices.Generate(ctx, &InvoiceRequest{
		Location:    entity.LocationAdelekeAdedoyin,
		RoomNumbers: []string{"24"},
		GuestName:   "yemi",
	})
	if err != nil {
		t.Fatal(err)
	}
	if inv.RoomSubtotal != 100000 {
		t.Errorf("room subtotal = %v, want 100000", inv.RoomSubtotal)
	}
	if inv.ServiceCharge != 10000 {
		t.Errorf("service charge = %v", inv.ServiceCharge)
	}
	if inv.GrandTotal != 122500 {
		t.Errorf("grand total = %v, want 122500", inv.GrandTotal)
	}
}

func TestInvoiceNothingToBill(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, true)

	_, err := env.invoices.Generate(ctx, &InvoiceRequest{
		Location:    entity.LocationAdelekeAdedoyin,
		RoomNumbers: []string{"25"},
		GuestName:   "Nobody",
	})
	if err == nil {
		t.Fatal("expected not found")
	}
}
