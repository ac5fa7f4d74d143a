package entity

import "testing"

func TestReceiptRoomNumbers(t *testing.T) {
	r := &Receipt{RoomNumber: "101, 102 ,"}
	got := r.RoomNumbers()
	if len(got) != 2 || got[0] != "101" || got[1] != "102" {
		t.Fatalf("RoomNumbers = %v", got)
	}

	r.RoomDetails = []RoomDetail{{RoomNumber: "7"}}
	if !r.HasRoom("7") || r.HasRoom("101") {
		t.Errorf("room details should win over roomNumber")
	}
}

func TestReceiptMatchGuestPrecedence(t *testing.T) {
	r := &Receipt{
		CustomerName: "Ada Obi",
		GuestNames:   []string{"ada obi", "Tunde Bello"},
		RoomDetails:  []RoomDetail{{RoomNumber: "3", GuestName: "Chidi Eze"}},
	}

	tests := []struct {
		name string
		want GuestMatch
	}{
		{" ADA OBI ", GuestMatchCustomerName},
		{"tunde bello", GuestMatchGuestNames},
		{"Chidi Eze", GuestMatchRoomDetails},
		{"Someone Else", GuestMatchNone},
		{"", GuestMatchNone},
	}
	for _, tt := range tests {
		if got := r.MatchGuest(tt.name); got != tt.want {
			t.Errorf("MatchGuest(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestReceiptRoomSubtotal(t *testing.T) {
	tests := []struct {
		name string
		r    Receipt
		want float64
	}{
		{"room details", Receipt{RoomDetails: []RoomDetail{{Subtotal: 20000}, {Subtotal: 15000.5}}, AmountFigures: 1}, 35000.5},
		{"tax inclusive", Receipt{IncludeTax: true, AmountFigures: 11250, VATAmount: 750, ConsumptionTaxAmount: 500}, 10000},
		{"plain", Receipt{AmountFigures: 8000}, 8000},
	}
	for _, tt := range tests {
		if got := tt.r.RoomSubtotal(); got != tt.want {
			t.Errorf("%s: RoomSubtotal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestDefaultRooms(t *testing.T) {
	rooms := DefaultRooms(LocationMusaYaradua, 1)
	if len(rooms) != 23 {
		t.Fatalf("musa-yaradua rooms = %d, want 23", len(rooms))
	}
	if rooms[10].Number != "11/13" || rooms[10].LinkedRoom != "13" || rooms[10].Floor != 2 {
		t.Errorf("combined room = %+v", rooms[10])
	}
	if rooms[10].ID != "musa-yaradua-11/13" {
		t.Errorf("id = %q", rooms[10].ID)
	}

	rooms = DefaultRooms(LocationAdelekeAdedoyin, 1)
	if len(rooms) != 30 || !rooms[1].IsManagerRoom || rooms[29].Floor != 3 {
		t.Errorf("adeleke-adedoyin layout wrong: %d rooms, room 2 %+v", len(rooms), rooms[1])
	}

	if DefaultRooms("nowhere", 1) != nil {
		t.Error("unknown location should have no rooms")
	}
}
