package request

import "github.com/atlantichotel/frontdesk-api/internal/domain/enum"

// RoomDetailRequest is one room of a multi-room booking
type RoomDetailRequest struct {
	RoomNumber   string  `json:"roomNumber" binding:"required"`
	NumberOfDays int     `json:"numberOfDays" binding:"min=0"`
	DailyRate    float64 `json:"dailyRate" binding:"min=0"`
	Subtotal     float64 `json:"subtotal" binding:"min=0"`
	GuestName    string  `json:"guestName"`
}

// CreateReceiptRequest represents a receipt issued at the desk. Field
// rules beyond JSON shape are checked by the receipt service so that every
// failing field is reported at once.
type CreateReceiptRequest struct {
	CustomerName         string              `json:"customerName"`
	GuestNames           []string            `json:"guestNames"`
	RoomNumber           string              `json:"roomNumber"`
	RoomDetails          []RoomDetailRequest `json:"roomDetails" binding:"dive"`
	Amount               float64             `json:"amount"`
	NumberOfDays         int                 `json:"numberOfDays"`
	DailyRate            float64             `json:"dailyRate"`
	PaymentMode          enum.PaymentMode    `json:"paymentMode"`
	CompanyName          string              `json:"companyName"`
	ReceptionistName     string              `json:"receptionistName"`
	Location             string              `json:"location"`
	Date                 string              `json:"date"`
	CheckInDate          string              `json:"checkInDate"`
	IsExtension          bool                `json:"isExtension"`
	OriginalReceiptID    string              `json:"originalReceiptId"`
	PaymentForDates      string              `json:"paymentForDates"`
	IncludeTax           bool                `json:"includeTax"`
	IncludeServiceCharge bool                `json:"includeServiceCharge"`
}

// ReceiptFilterRequest narrows the receipt list
type ReceiptFilterRequest struct {
	Location string `form:"location"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// GuestCheckoutRequest checks a guest out of one room
type GuestCheckoutRequest struct {
	Location   string `json:"location" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
}

// MarkCheckedOutRequest flags the receipts of a guest in a room
type MarkCheckedOutRequest struct {
	Location   string `json:"location" binding:"required"`
	RoomNumber string `json:"roomNumber" binding:"required"`
	GuestName  string `json:"guestName" binding:"required"`
}
