package mongorepo

import (
	"strings"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
)

// Documents use the same snake_case field names as the SQL tables.

type roomDetailDoc struct {
	RoomNumber   string  `bson:"room_number"`
	NumberOfDays int     `bson:"number_of_days"`
	DailyRate    float64 `bson:"daily_rate"`
	Subtotal     float64 `bson:"subtotal"`
	GuestName    string  `bson:"guest_name,omitempty"`
}

type receiptDoc struct {
	ID                   string          `bson:"_id"`
	SerialNumber         string          `bson:"serial_number"`
	CustomerName         string          `bson:"customer_name"`
	GuestNames           []string        `bson:"guest_names,omitempty"`
	RoomNumber           string          `bson:"room_number"`
	RoomDetails          []roomDetailDoc `bson:"room_details,omitempty"`
	AmountFigures        float64         `bson:"amount_figures"`
	AmountWords          string          `bson:"amount_words"`
	PaymentMode          string          `bson:"payment_mode"`
	CompanyName          string          `bson:"company_name,omitempty"`
	ReceptionistName     string          `bson:"receptionist_name"`
	Location             string          `bson:"location"`
	Date                 string          `bson:"date"`
	Timestamp            int64           `bson:"timestamp"`
	NumberOfDays         int             `bson:"number_of_days"`
	DailyRate            float64         `bson:"daily_rate"`
	IsExtension          bool            `bson:"is_extension"`
	OriginalReceiptID    string          `bson:"original_receipt_id,omitempty"`
	PaymentForDates      string          `bson:"payment_for_dates,omitempty"`
	IncludeTax           bool            `bson:"include_tax"`
	VATAmount            float64         `bson:"vat_amount"`
	ConsumptionTaxAmount float64         `bson:"consumption_tax_amount"`
	TotalWithTax         float64         `bson:"total_with_tax"`
	IncludeServiceCharge bool            `bson:"include_service_charge"`
	ServiceChargeAmount  float64         `bson:"service_charge_amount"`
	CheckedOut           bool            `bson:"checked_out"`
}

type roomDoc struct {
	ID            string `bson:"_id"`
	Number        string `bson:"number"`
	Floor         int    `bson:"floor"`
	Status        string `bson:"status"`
	GuestName     string `bson:"guest_name,omitempty"`
	CheckIn       string `bson:"check_in,omitempty"`
	CheckOut      string `bson:"check_out,omitempty"`
	LastUpdated   int64  `bson:"last_updated"`
	IsManagerRoom bool   `bson:"is_manager_room"`
	LinkedRoom    string `bson:"linked_room,omitempty"`
	Location      string `bson:"location"`
}

type billItemDoc struct {
	ID           string  `bson:"id"`
	MenuItemID   string  `bson:"menu_item_id"`
	Name         string  `bson:"name"`
	Quantity     int     `bson:"quantity"`
	PricePerUnit float64 `bson:"price_per_unit"`
	Subtotal     float64 `bson:"subtotal"`
}

type billDoc struct {
	ID                   string        `bson:"_id"`
	BillNumber           string        `bson:"bill_number"`
	CustomerName         string        `bson:"customer_name,omitempty"`
	RoomNumber           string        `bson:"room_number,omitempty"`
	RoomLocation         string        `bson:"room_location,omitempty"`
	GuestName            string        `bson:"guest_name,omitempty"`
	GuestNameLower       string        `bson:"guest_name_lower,omitempty"`
	Items                []billItemDoc `bson:"items"`
	Subtotal             float64       `bson:"subtotal"`
	Total                float64       `bson:"total"`
	Date                 string        `bson:"date"`
	Timestamp            int64         `bson:"timestamp"`
	StaffName            string        `bson:"staff_name"`
	IncludeTax           bool          `bson:"include_tax"`
	VATAmount            float64       `bson:"vat_amount"`
	ConsumptionTaxAmount float64       `bson:"consumption_tax_amount"`
	TotalWithTax         float64       `bson:"total_with_tax"`
}

type menuItemDoc struct {
	ID          string  `bson:"_id"`
	Name        string  `bson:"name"`
	Category    string  `bson:"category"`
	Price       float64 `bson:"price"`
	Available   bool    `bson:"available"`
	Description string  `bson:"description,omitempty"`
}

type bankAccountDoc struct {
	ID            string    `bson:"_id"`
	BankName      string    `bson:"bank_name"`
	AccountNumber string    `bson:"account_number"`
	AccountName   string    `bson:"account_name"`
	Location      string    `bson:"location"`
	CreatedAt     time.Time `bson:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

func toReceiptDoc(r *entity.Receipt) *receiptDoc {
	doc := &receiptDoc{
		ID:                   r.ID,
		SerialNumber:         r.SerialNumber,
		CustomerName:         r.CustomerName,
		GuestNames:           r.GuestNames,
		RoomNumber:           r.RoomNumber,
		AmountFigures:        r.AmountFigures,
		AmountWords:          r.AmountWords,
		PaymentMode:          r.PaymentMode.String(),
		CompanyName:          r.CompanyName,
		ReceptionistName:     r.ReceptionistName,
		Location:             r.Location,
		Date:                 r.Date,
		Timestamp:            r.Timestamp,
		NumberOfDays:         r.NumberOfDays,
		DailyRate:            r.DailyRate,
		IsExtension:          r.IsExtension,
		OriginalReceiptID:    r.OriginalReceiptID,
		PaymentForDates:      r.PaymentForDates,
		IncludeTax:           r.IncludeTax,
		VATAmount:            r.VATAmount,
		ConsumptionTaxAmount: r.ConsumptionTaxAmount,
		TotalWithTax:         r.TotalWithTax,
		IncludeServiceCharge: r.IncludeServiceCharge,
		ServiceChargeAmount:  r.ServiceChargeAmount,
		CheckedOut:           r.CheckedOut,
	}
	for _, d := range r.RoomDetails {
		doc.RoomDetails = append(doc.RoomDetails, roomDetailDoc(d))
	}
	return doc
}

func (d *receiptDoc) toEntity() (entity.Receipt, error) {
	mode, err := enum.ParsePaymentMode(d.PaymentMode)
	if err != nil {
		return entity.Receipt{}, err
	}
	r := entity.Receipt{
		ID:                   d.ID,
		SerialNumber:         d.SerialNumber,
		CustomerName:         d.CustomerName,
		GuestNames:           d.GuestNames,
		RoomNumber:           d.RoomNumber,
		AmountFigures:        d.AmountFigures,
		AmountWords:          d.AmountWords,
		PaymentMode:          mode,
		CompanyName:          d.CompanyName,
		ReceptionistName:     d.ReceptionistName,
		Location:             d.Location,
		Date:                 d.Date,
		Timestamp:            d.Timestamp,
		NumberOfDays:         d.NumberOfDays,
		DailyRate:            d.DailyRate,
		IsExtension:          d.IsExtension,
		OriginalReceiptID:    d.OriginalReceiptID,
		PaymentForDates:      d.PaymentForDates,
		IncludeTax:           d.IncludeTax,
		VATAmount:            d.VATAmount,
		ConsumptionTaxAmount: d.ConsumptionTaxAmount,
		TotalWithTax:         d.TotalWithTax,
		IncludeServiceCharge: d.IncludeServiceCharge,
		ServiceChargeAmount:  d.ServiceChargeAmount,
		CheckedOut:           d.CheckedOut,
		Synced:               true,
	}
	for _, rd := range d.RoomDetails {
		r.RoomDetails = append(r.RoomDetails, entity.RoomDetail(rd))
	}
	return r, nil
}

func toRoomDoc(r *entity.Room) *roomDoc {
	return &roomDoc{
		ID:            r.ID,
		Number:        r.Number,
		Floor:         r.Floor,
		Status:        r.Status.String(),
		GuestName:     r.GuestName,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		LastUpdated:   r.LastUpdated,
		IsManagerRoom: r.IsManagerRoom,
		LinkedRoom:    r.LinkedRoom,
		Location:      r.Location,
	}
}

func (d *roomDoc) toEntity() (entity.Room, error) {
	status, err := enum.ParseRoomStatus(d.Status)
	if err != nil {
		return entity.Room{}, err
	}
	return entity.Room{
		ID:            d.ID,
		Number:        d.Number,
		Floor:         d.Floor,
		Status:        status,
		GuestName:     d.GuestName,
		CheckIn:       d.CheckIn,
		CheckOut:      d.CheckOut,
		LastUpdated:   d.LastUpdated,
		IsManagerRoom: d.IsManagerRoom,
		LinkedRoom:    d.LinkedRoom,
		Location:      d.Location,
		Synced:        true,
	}, nil
}

func toBillDoc(b *entity.Bill) *billDoc {
	doc := &billDoc{
		ID:                   b.ID,
		BillNumber:           b.BillNumber,
		CustomerName:         b.CustomerName,
		RoomNumber:           b.RoomNumber,
		RoomLocation:         b.RoomLocation,
		GuestName:            b.GuestName,
		GuestNameLower:       strings.ToLower(strings.TrimSpace(b.GuestName)),
		Items:                make([]billItemDoc, 0, len(b.Items)),
		Subtotal:             b.Subtotal,
		Total:                b.Total,
		Date:                 b.Date,
		Timestamp:            b.Timestamp,
		StaffName:            b.StaffName,
		IncludeTax:           b.IncludeTax,
		VATAmount:            b.VATAmount,
		ConsumptionTaxAmount: b.ConsumptionTaxAmount,
		TotalWithTax:         b.TotalWithTax,
	}
	for _, item := range b.Items {
		doc.Items = append(doc.Items, billItemDoc(item))
	}
	return doc
}

func (d *billDoc) toEntity() entity.Bill {
	b := entity.Bill{
		ID:                   d.ID,
		BillNumber:           d.BillNumber,
		CustomerName:         d.CustomerName,
		RoomNumber:           d.RoomNumber,
		RoomLocation:         d.RoomLocation,
		GuestName:            d.GuestName,
		Items:                make([]entity.BillItem, 0, len(d.Items)),
		Subtotal:             d.Subtotal,
		Total:                d.Total,
		Date:                 d.Date,
		Timestamp:            d.Timestamp,
		StaffName:            d.StaffName,
		IncludeTax:           d.IncludeTax,
		VATAmount:            d.VATAmount,
		ConsumptionTaxAmount: d.ConsumptionTaxAmount,
		TotalWithTax:         d.TotalWithTax,
		Synced:               true,
	}
	for _, item := range d.Items {
		b.Items = append(b.Items, entity.BillItem(item))
	}
	return b
}

func toBankAccountDoc(a *entity.BankAccount) *bankAccountDoc {
	doc := &bankAccountDoc{
		ID:            a.ID,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		Location:      a.Location,
	}
	if t, err := time.Parse(time.RFC3339, a.CreatedAt); err == nil {
		doc.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, a.UpdatedAt); err == nil {
		doc.UpdatedAt = t
	}
	return doc
}

func (d *bankAccountDoc) toEntity() entity.BankAccount {
	return entity.BankAccount{
		ID:            d.ID,
		BankName:      d.BankName,
		AccountNumber: d.AccountNumber,
		AccountName:   d.AccountName,
		Location:      d.Location,
		CreatedAt:     d.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     d.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
