package entity

// InvoiceLineKind tags where an invoice line came from.
type InvoiceLineKind string

const (
	InvoiceLineRoom       InvoiceLineKind = "room"
	InvoiceLineRestaurant InvoiceLineKind = "restaurant"
	InvoiceLineAdditional InvoiceLineKind = "additional"
)

// InvoiceLine is a single pre-tax line on a guest invoice.
type InvoiceLine struct {
	Kind        InvoiceLineKind `json:"kind"`
	Reference   string          `json:"reference,omitempty"`
	Description string          `json:"description"`
	RoomNumber  string          `json:"roomNumber,omitempty"`
	Quantity    int             `json:"quantity,omitempty"`
	Rate        float64         `json:"rate,omitempty"`
	Amount      float64         `json:"amount"`
	Date        string          `json:"date,omitempty"`
}

// AdditionalCharge is an ad hoc line added at invoice time.
type AdditionalCharge struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice aggregates a guest's receipts and restaurant bills. Tax figures
// are sums of the amounts stored on each receipt, never recomputed.
type Invoice struct {
	Location           string        `json:"location"`
	LocationName       string        `json:"locationName"`
	LocationAddress    string        `json:"locationAddress"`
	GuestName          string        `json:"guestName"`
	RoomNumbers        []string      `json:"roomNumbers"`
	IssueDate          string        `json:"issueDate"`
	Lines              []InvoiceLine `json:"lines"`
	ReceiptIDs         []string      `json:"receiptIds"`
	BillIDs            []string      `json:"billIds"`
	TotalDays          int           `json:"totalDays"`
	RoomSubtotal       float64       `json:"roomSubtotal"`
	RestaurantSubtotal float64       `json:"restaurantSubtotal"`
	AdditionalTotal    float64       `json:"additionalTotal"`
	VAT                float64       `json:"vat"`
	ConsumptionTax     float64       `json:"consumptionTax"`
	ServiceCharge      float64       `json:"serviceCharge"`
	GrandTotal         float64       `json:"grandTotal"`
	GrandTotalWords    string        `json:"grandTotalWords"`
	VATNumber          string        `json:"vatNumber,omitempty"`
	BankAccount        *BankAccount  `json:"bankAccount,omitempty"`
}
