package entity

// BillItem is one line on a restaurant bill.
type BillItem struct {
	ID           string  `json:"id"`
	MenuItemID   string  `json:"menuItemId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"pricePerUnit"`
	Subtotal     float64 `json:"subtotal"`
}

// Bill is a restaurant charge, optionally linked to a room and guest.
// Bills are immutable once created.
type Bill struct {
	ID                   string     `json:"id"`
	BillNumber           string     `json:"billNumber"`
	CustomerName         string     `json:"customerName,omitempty"`
	RoomNumber           string     `json:"roomNumber,omitempty"`
	RoomLocation         string     `json:"roomLocation,omitempty"`
	GuestName            string     `json:"guestName,omitempty"`
	Items                []BillItem `json:"items"`
	Subtotal             float64    `json:"subtotal"`
	Total                float64    `json:"total"`
	Date                 string     `json:"date"`
	Timestamp            int64      `json:"timestamp"`
	StaffName            string     `json:"staffName"`
	IncludeTax           bool       `json:"includeTax"`
	VATAmount            float64    `json:"vatAmount"`
	ConsumptionTaxAmount float64    `json:"consumptionTaxAmount"`
	TotalWithTax         float64    `json:"totalWithTax"`
	Synced               bool       `json:"synced"`
}

// Payable is what the guest owes for the bill.
func (b *Bill) Payable() float64 {
	if b.IncludeTax {
		return b.TotalWithTax
	}
	return b.Total
}

// BillFilter narrows a remote bill query.
type BillFilter struct {
	RoomNumber string
	Location   string
	GuestName  string
}
