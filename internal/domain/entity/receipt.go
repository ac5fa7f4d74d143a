package entity

import (
	"strings"

	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/atlantichotel/frontdesk-api/pkg/tax"
)

// RoomDetail is one room line of a multi-room booking.
type RoomDetail struct {
	RoomNumber   string  `json:"roomNumber"`
	NumberOfDays int     `json:"numberOfDays"`
	DailyRate    float64 `json:"dailyRate"`
	Subtotal     float64 `json:"subtotal"`
	GuestName    string  `json:"guestName,omitempty"`
}

// Receipt is a payment record for one or more rooms under one guest stay.
// Receipts are append-only; the only mutations after creation are the
// sync flag and the checked-out flag.
type Receipt struct {
	ID                   string           `json:"id"`
	SerialNumber         string           `json:"serialNumber"`
	CustomerName         string           `json:"customerName"`
	GuestNames           []string         `json:"guestNames,omitempty"`
	RoomNumber           string           `json:"roomNumber"`
	RoomDetails          []RoomDetail     `json:"roomDetails,omitempty"`
	AmountFigures        float64          `json:"amountFigures"`
	AmountWords          string           `json:"amountWords"`
	PaymentMode          enum.PaymentMode `json:"paymentMode"`
	CompanyName          string           `json:"companyName,omitempty"`
	ReceptionistName     string           `json:"receptionistName"`
	Location             string           `json:"location"`
	Date                 string           `json:"date"`
	Timestamp            int64            `json:"timestamp"`
	NumberOfDays         int              `json:"numberOfDays,omitempty"`
	DailyRate            float64          `json:"dailyRate,omitempty"`
	IsExtension          bool             `json:"isExtension"`
	OriginalReceiptID    string           `json:"originalReceiptId,omitempty"`
	PaymentForDates      string           `json:"paymentForDates,omitempty"`
	IncludeTax           bool             `json:"includeTax"`
	VATAmount            float64          `json:"vatAmount"`
	ConsumptionTaxAmount float64          `json:"consumptionTaxAmount"`
	TotalWithTax         float64          `json:"totalWithTax"`
	IncludeServiceCharge bool             `json:"includeServiceCharge"`
	ServiceChargeAmount  float64          `json:"serviceChargeAmount"`
	CheckedOut           bool             `json:"checkedOut"`
	Synced               bool             `json:"synced"`
}

// GuestMatch names the receipt field a guest name was matched against.
type GuestMatch string

const (
	GuestMatchNone         GuestMatch = ""
	GuestMatchCustomerName GuestMatch = "customerName"
	GuestMatchGuestNames   GuestMatch = "guestNames"
	GuestMatchRoomDetails  GuestMatch = "roomDetails"
)

// RoomNumbers returns every room the receipt pays for. Structured room
// details win over the comma-joined roomNumber field.
func (r *Receipt) RoomNumbers() []string {
	if len(r.RoomDetails) > 0 {
		out := make([]string, 0, len(r.RoomDetails))
		for _, d := range r.RoomDetails {
			out = append(out, strings.TrimSpace(d.RoomNumber))
		}
		return out
	}
	return SplitRoomNumbers(r.RoomNumber)
}

// HasRoom reports whether the receipt covers room number n.
func (r *Receipt) HasRoom(n string) bool {
	n = strings.TrimSpace(n)
	for _, rn := range r.RoomNumbers() {
		if rn == n {
			return true
		}
	}
	return false
}

// MatchGuest compares name case-insensitively against customerName, then
// guestNames, then roomDetails[].guestName, and reports the first field
// that matched.
func (r *Receipt) MatchGuest(name string) GuestMatch {
	name = normalizeName(name)
	if name == "" {
		return GuestMatchNone
	}
	if normalizeName(r.CustomerName) == name {
		return GuestMatchCustomerName
	}
	for _, g := range r.GuestNames {
		if normalizeName(g) == name {
			return GuestMatchGuestNames
		}
	}
	for _, d := range r.RoomDetails {
		if normalizeName(d.GuestName) == name {
			return GuestMatchRoomDetails
		}
	}
	return GuestMatchNone
}

// GuestForRoom returns the guest staying in room n: the room detail's own
// guest when set, otherwise the customer name.
func (r *Receipt) GuestForRoom(n string) string {
	for _, d := range r.RoomDetails {
		if d.RoomNumber == n && strings.TrimSpace(d.GuestName) != "" {
			return d.GuestName
		}
	}
	return r.CustomerName
}

// RoomSubtotal is the pre-tax room charge carried by the receipt.
// amountFigures is tax-inclusive when tax was charged, so the stored tax
// is subtracted back out when there are no room details to sum.
func (r *Receipt) RoomSubtotal() float64 {
	if len(r.RoomDetails) > 0 {
		subtotals := make([]float64, 0, len(r.RoomDetails))
		for _, d := range r.RoomDetails {
			subtotals = append(subtotals, d.Subtotal)
		}
		return tax.Sum(subtotals...)
	}
	if r.IncludeTax {
		return tax.Sum(r.AmountFigures, -r.VATAmount, -r.ConsumptionTaxAmount)
	}
	return r.AmountFigures
}

// TotalDays sums the nights paid for across all rooms.
func (r *Receipt) TotalDays() int {
	if len(r.RoomDetails) > 0 {
		days := 0
		for _, d := range r.RoomDetails {
			days += d.NumberOfDays
		}
		return days
	}
	return r.NumberOfDays
}

// SplitRoomNumbers splits a comma-joined room list.
func SplitRoomNumbers(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
