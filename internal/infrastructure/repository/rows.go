package repository

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/atlantichotel/frontdesk-api/internal/domain/entity"
	"github.com/atlantichotel/frontdesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Row types mirror the cloud tables. Column names are snake_case; the
// entity JSON shape is camelCase, so every table has an explicit mapping.

type receiptRow struct {
	ID                   string           `gorm:"primaryKey;type:varchar(64)"`
	SerialNumber         string           `gorm:"column:serial_number;index"`
	CustomerName         string           `gorm:"column:customer_name"`
	GuestNames           datatypes.JSON   `gorm:"column:guest_names"`
	RoomNumber           string           `gorm:"column:room_number"`
	RoomDetails          datatypes.JSON   `gorm:"column:room_details"`
	AmountFigures        decimal.Decimal  `gorm:"column:amount_figures;type:decimal(12,2)"`
	AmountWords          string           `gorm:"column:amount_words"`
	PaymentMode          enum.PaymentMode `gorm:"column:payment_mode;type:varchar(20)"`
	CompanyName          string           `gorm:"column:company_name"`
	ReceptionistName     string           `gorm:"column:receptionist_name"`
	Location             string           `gorm:"column:location;index"`
	Date                 string           `gorm:"column:date;type:varchar(10)"`
	Timestamp            int64            `gorm:"column:timestamp"`
	NumberOfDays         int              `gorm:"column:number_of_days"`
	DailyRate            decimal.Decimal  `gorm:"column:daily_rate;type:decimal(12,2)"`
	IsExtension          bool             `gorm:"column:is_extension"`
	OriginalReceiptID    string           `gorm:"column:original_receipt_id"`
	PaymentForDates      string           `gorm:"column:payment_for_dates"`
	IncludeTax           bool             `gorm:"column:include_tax"`
	VATAmount            decimal.Decimal  `gorm:"column:vat_amount;type:decimal(12,2)"`
	ConsumptionTaxAmount decimal.Decimal  `gorm:"column:consumption_tax_amount;type:decimal(12,2)"`
	TotalWithTax         decimal.Decimal  `gorm:"column:total_with_tax;type:decimal(12,2)"`
	IncludeServiceCharge bool             `gorm:"column:include_service_charge"`
	ServiceChargeAmount  decimal.Decimal  `gorm:"column:service_charge_amount;type:decimal(12,2)"`
	CheckedOut           bool             `gorm:"column:checked_out;default:false"`
	CreatedAt            time.Time
}

func (receiptRow) TableName() string { return "receipts" }

type roomRow struct {
	ID            string          `gorm:"primaryKey;type:varchar(64)"`
	Number        string          `gorm:"column:number"`
	Floor         int             `gorm:"column:floor"`
	Status        enum.RoomStatus `gorm:"column:status;type:varchar(20)"`
	GuestName     string          `gorm:"column:guest_name"`
	CheckIn       string          `gorm:"column:check_in"`
	CheckOut      string          `gorm:"column:check_out"`
	LastUpdated   int64           `gorm:"column:last_updated"`
	IsManagerRoom bool            `gorm:"column:is_manager_room"`
	LinkedRoom    string          `gorm:"column:linked_room"`
	Location      string          `gorm:"column:location;index"`
}

func (roomRow) TableName() string { return "rooms" }

type billRow struct {
	ID                   string          `gorm:"primaryKey;type:varchar(64)"`
	BillNumber           string          `gorm:"column:bill_number;index"`
	CustomerName         string          `gorm:"column:customer_name"`
	RoomNumber           string          `gorm:"column:room_number;index"`
	RoomLocation         string          `gorm:"column:room_location"`
	GuestName            string          `gorm:"column:guest_name"`
	Items                datatypes.JSON  `gorm:"column:items"`
	Subtotal             decimal.Decimal `gorm:"column:subtotal;type:decimal(12,2)"`
	Total                decimal.Decimal `gorm:"column:total;type:decimal(12,2)"`
	Date                 string          `gorm:"column:date;type:varchar(10)"`
	Timestamp            int64           `gorm:"column:timestamp"`
	StaffName            string          `gorm:"column:staff_name"`
	IncludeTax           bool            `gorm:"column:include_tax"`
	VATAmount            decimal.Decimal `gorm:"column:vat_amount;type:decimal(12,2)"`
	ConsumptionTaxAmount decimal.Decimal `gorm:"column:consumption_tax_amount;type:decimal(12,2)"`
	TotalWithTax         decimal.Decimal `gorm:"column:total_with_tax;type:decimal(12,2)"`
	CreatedAt            time.Time
}

func (billRow) TableName() string { return "restaurant_bills" }

type menuItemRow struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)"`
	Name        string          `gorm:"column:name"`
	Category    string          `gorm:"column:category;index"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(12,2)"`
	Available   bool            `gorm:"column:available"`
	Description string          `gorm:"column:description"`
}

func (menuItemRow) TableName() string { return "menu_items" }

type bankAccountRow struct {
	ID            string    `gorm:"primaryKey;type:varchar(64)"`
	BankName      string    `gorm:"column:bank_name"`
	AccountNumber string    `gorm:"column:account_number"`
	AccountName   string    `gorm:"column:account_name"`
	Location      string    `gorm:"column:location"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (bankAccountRow) TableName() string { return "bank_accounts" }

// Models lists every table for AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&receiptRow{},
		&roomRow{},
		&billRow{},
		&menuItemRow{},
		&bankAccountRow{},
	}
}

func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

func marshalJSON(v interface{}) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

func unmarshalJSON(raw datatypes.JSON, v interface{}) error {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func toReceiptRow(r *entity.Receipt) (*receiptRow, error) {
	guests, err := marshalJSON(r.GuestNames)
	if err != nil {
		return nil, fmt.Errorf("encode guest_names: %w", err)
	}
	details, err := marshalJSON(r.RoomDetails)
	if err != nil {
		return nil, fmt.Errorf("encode room_details: %w", err)
	}
	return &receiptRow{
		ID:                   r.ID,
		SerialNumber:         r.SerialNumber,
		CustomerName:         r.CustomerName,
		GuestNames:           guests,
		RoomNumber:           r.RoomNumber,
		RoomDetails:          details,
		AmountFigures:        money(r.AmountFigures),
		AmountWords:          r.AmountWords,
		PaymentMode:          r.PaymentMode,
		CompanyName:          r.CompanyName,
		ReceptionistName:     r.ReceptionistName,
		Location:             r.Location,
		Date:                 r.Date,
		Timestamp:            r.Timestamp,
		NumberOfDays:         r.NumberOfDays,
		DailyRate:            money(r.DailyRate),
		IsExtension:          r.IsExtension,
		OriginalReceiptID:    r.OriginalReceiptID,
		PaymentForDates:      r.PaymentForDates,
		IncludeTax:           r.IncludeTax,
		VATAmount:            money(r.VATAmount),
		ConsumptionTaxAmount: money(r.ConsumptionTaxAmount),
		TotalWithTax:         money(r.TotalWithTax),
		IncludeServiceCharge: r.IncludeServiceCharge,
		ServiceChargeAmount:  money(r.ServiceChargeAmount),
		CheckedOut:           r.CheckedOut,
	}, nil
}

func (row *receiptRow) toEntity() (entity.Receipt, error) {
	r := entity.Receipt{
		ID:                   row.ID,
		SerialNumber:         row.SerialNumber,
		CustomerName:         row.CustomerName,
		RoomNumber:           row.RoomNumber,
		AmountFigures:        toFloat(row.AmountFigures),
		AmountWords:          row.AmountWords,
		PaymentMode:          row.PaymentMode,
		CompanyName:          row.CompanyName,
		ReceptionistName:     row.ReceptionistName,
		Location:             row.Location,
		Date:                 row.Date,
		Timestamp:            row.Timestamp,
		NumberOfDays:         row.NumberOfDays,
		DailyRate:            toFloat(row.DailyRate),
		IsExtension:          row.IsExtension,
		OriginalReceiptID:    row.OriginalReceiptID,
		PaymentForDates:      row.PaymentForDates,
		IncludeTax:           row.IncludeTax,
		VATAmount:            toFloat(row.VATAmount),
		ConsumptionTaxAmount: toFloat(row.ConsumptionTaxAmount),
		TotalWithTax:         toFloat(row.TotalWithTax),
		IncludeServiceCharge: row.IncludeServiceCharge,
		ServiceChargeAmount:  toFloat(row.ServiceChargeAmount),
		CheckedOut:           row.CheckedOut,
		Synced:               true,
	}
	if err := unmarshalJSON(row.GuestNames, &r.GuestNames); err != nil {
		return r, fmt.Errorf("decode guest_names of %s: %w", row.ID, err)
	}
	if err := unmarshalJSON(row.RoomDetails, &r.RoomDetails); err != nil {
		return r, fmt.Errorf("decode room_details of %s: %w", row.ID, err)
	}
	return r, nil
}

func toRoomRow(r *entity.Room) *roomRow {
	return &roomRow{
		ID:            r.ID,
		Number:        r.Number,
		Floor:         r.Floor,
		Status:        r.Status,
		GuestName:     r.GuestName,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
		LastUpdated:   r.LastUpdated,
		IsManagerRoom: r.IsManagerRoom,
		LinkedRoom:    r.LinkedRoom,
		Location:      r.Location,
	}
}

func (row *roomRow) toEntity() entity.Room {
	return entity.Room{
		ID:            row.ID,
		Number:        row.Number,
		Floor:         row.Floor,
		Status:        row.Status,
		GuestName:     row.GuestName,
		CheckIn:       row.CheckIn,
		CheckOut:      row.CheckOut,
		LastUpdated:   row.LastUpdated,
		IsManagerRoom: row.IsManagerRoom,
		LinkedRoom:    row.LinkedRoom,
		Location:      row.Location,
		Synced:        true,
	}
}

func toBillRow(b *entity.Bill) (*billRow, error) {
	items, err := marshalJSON(b.Items)
	if err != nil {
		return nil, fmt.Errorf("encode items: %w", err)
	}
	return &billRow{
		ID:                   b.ID,
		BillNumber:           b.BillNumber,
		CustomerName:         b.CustomerName,
		RoomNumber:           b.RoomNumber,
		RoomLocation:         b.RoomLocation,
		GuestName:            b.GuestName,
		Items:                items,
		Subtotal:             money(b.Subtotal),
		Total:                money(b.Total),
		Date:                 b.Date,
		Timestamp:            b.Timestamp,
		StaffName:            b.StaffName,
		IncludeTax:           b.IncludeTax,
		VATAmount:            money(b.VATAmount),
		ConsumptionTaxAmount: money(b.ConsumptionTaxAmount),
		TotalWithTax:         money(b.TotalWithTax),
	}, nil
}

func (row *billRow) toEntity() (entity.Bill, error) {
	b := entity.Bill{
		ID:                   row.ID,
		BillNumber:           row.BillNumber,
		CustomerName:         row.CustomerName,
		RoomNumber:           row.RoomNumber,
		RoomLocation:         row.RoomLocation,
		GuestName:            row.GuestName,
		Subtotal:             toFloat(row.Subtotal),
		Total:                toFloat(row.Total),
		Date:                 row.Date,
		Timestamp:            row.Timestamp,
		StaffName:            row.StaffName,
		IncludeTax:           row.IncludeTax,
		VATAmount:            toFloat(row.VATAmount),
		ConsumptionTaxAmount: toFloat(row.ConsumptionTaxAmount),
		TotalWithTax:         toFloat(row.TotalWithTax),
		Synced:               true,
	}
	if err := unmarshalJSON(row.Items, &b.Items); err != nil {
		return b, fmt.Errorf("decode items of %s: %w", row.ID, err)
	}
	return b, nil
}

func toMenuItemRow(m *entity.MenuItem) *menuItemRow {
	return &menuItemRow{
		ID:          m.ID,
		Name:        m.Name,
		Category:    m.Category,
		Price:       money(m.Price),
		Available:   m.Available,
		Description: m.Description,
	}
}

func (row *menuItemRow) toEntity() entity.MenuItem {
	return entity.MenuItem{
		ID:          row.ID,
		Name:        row.Name,
		Category:    row.Category,
		Price:       toFloat(row.Price),
		Available:   row.Available,
		Description: row.Description,
	}
}

func toBankAccountRow(a *entity.BankAccount) *bankAccountRow {
	row := &bankAccountRow{
		ID:            a.ID,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountName:   a.AccountName,
		Location:      a.Location,
	}
	if t, err := time.Parse(time.RFC3339, a.CreatedAt); err == nil {
		row.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, a.UpdatedAt); err == nil {
		row.UpdatedAt = t
	}
	return row
}

func (row *bankAccountRow) toEntity() entity.BankAccount {
	return entity.BankAccount{
		ID:            row.ID,
		BankName:      row.BankName,
		AccountNumber: row.AccountNumber,
		AccountName:   row.AccountName,
		Location:      row.Location,
		CreatedAt:     row.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     row.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
