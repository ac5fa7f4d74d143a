package repository

import (
	"reflect"
	"strings"
	"testing"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestReceiptRowKeepsRoomDetails(t *testing.T) {
	in := entity.Receipt{
		ID:            "r1",
		SerialNumber:  "AH-1001",
		CustomerName:  "Peju",
		GuestNames:    []string{"Peju", "Tunde"},
		RoomNumber:    "12, 13",
		PaymentMode:   enum.PaymentModeBTC,
		CompanyName:   "Acme Ltd",
		Location:      entity.LocationAdelekeAdedoyin,
		AmountFigures: 112987.5,
		RoomDetails: []entity.RoomDetail{
			{RoomNumber: "12", NumberOfDays: 2, DailyRate: 30000, Subtotal: 60000},
			{RoomNumber: "13", NumberOfDays: 3, DailyRate: 13333.33, Subtotal: 39999.99, GuestName: "Tunde"},
		},
		IncludeTax:           true,
		VATAmount:            7500,
		ConsumptionTaxAmount: 5000,
		TotalWithTax:         112500,
		CheckedOut:           true,
	}

	row, err := toReceiptRow(&in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := row.toEntity()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(out.RoomDetails, in.RoomDetails) {
		t.Errorf("room details = %+v, want %+v", out.RoomDetails, in.RoomDetails)
	}
	if !reflect.DeepEqual(out.GuestNames, in.GuestNames) {
		t.Errorf("guest names = %v", out.GuestNames)
	}
	if out.AmountFigures != 112987.5 || out.VATAmount != 7500 || out.PaymentMode != enum.PaymentModeBTC {
		t.Errorf("scalars = %+v", out)
	}
	if !out.Synced || !out.CheckedOut {
		t.Errorf("flags synced=%v checkedOut=%v", out.Synced, out.CheckedOut)
	}
}

func TestReceiptRowWithoutDetails(t *testing.T) {
	row, err := toReceiptRow(&entity.Receipt{ID: "r2", RoomNumber: "4"})
	if err != nil {
		t.Fatal(err)
	}
	out, err := row.toEntity()
	if err != nil {
		t.Fatal(err)
	}
	if out.RoomDetails != nil || out.GuestNames != nil {
		t.Errorf("expected nil slices, got %v / %v", out.RoomDetails, out.GuestNames)
	}
}

func TestRoomAndBillRows(t *testing.T) {
	room := entity.Room{
		ID: "musa-yaradua-11/13", Number: "11/13", Floor: 2, Status: enum.RoomStatusOccupied,
		GuestName: "Ada", CheckIn: "2026-03-14", LinkedRoom: "13", Location: entity.LocationMusaYaradua,
	}
	gotRoom := toRoomRow(&room).toEntity()
	room.Synced = true
	if gotRoom != room {
		t.Errorf("room = %+v, want %+v", gotRoom, room)
	}

	bill := entity.Bill{
		ID: "b1", BillNumber: "REST-20260314-0001", RoomNumber: "4", RoomLocation: entity.LocationAdelekeAdedoyin,
		Items:    []entity.BillItem{{ID: "i1", MenuItemID: "m1", Name: "Jollof Rice", Quantity: 2, PricePerUnit: 4500, Subtotal: 9000}},
		Subtotal: 9000, Total: 9000, StaffName: "Kunle",
	}
	row, err := toBillRow(&bill)
	if err != nil {
		t.Fatal(err)
	}
	gotBill, err := row.toEntity()
	if err != nil {
		t.Fatal(err)
	}
	bill.Synced = true
	if !reflect.DeepEqual(gotBill, bill) {
		t.Errorf("bill = %+v, want %+v", gotBill, bill)
	}
}

func TestReceiptReplayKeepsCheckedOut(t *testing.T) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "host=localhost user=frontdesk dbname=frontdesk sslmode=disable",
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	if err != nil {
		t.Fatal(err)
	}

	row, err := toReceiptRow(&entity.Receipt{ID: "r5", RoomNumber: "9", CheckedOut: false})
	if err != nil {
		t.Fatal(err)
	}
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB { return upsertReceipt(tx, row) })

	if !strings.Contains(sql, "ON CONFLICT") {
		t.Fatalf("no upsert clause in %s", sql)
	}
	if !strings.Contains(sql, "receipts.checked_out OR excluded.checked_out") {
		t.Errorf("checked_out can be cleared by a replay: %s", sql)
	}
}
