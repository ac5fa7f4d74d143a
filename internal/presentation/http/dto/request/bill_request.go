package request

// BillItemRequest is one ordered menu line. Name and price are looked up
// from the menu when menuItemId is set.
type BillItemRequest struct {
	MenuItemID   string  `json:"menuItemId"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity" binding:"required,min=1"`
	PricePerUnit float64 `json:"pricePerUnit" binding:"min=0"`
}

// CreateBillRequest represents a restaurant bill
type CreateBillRequest struct {
	CustomerName string            `json:"customerName"`
	RoomNumber   string            `json:"roomNumber"`
	RoomLocation string            `json:"roomLocation"`
	GuestName    string            `json:"guestName"`
	Items        []BillItemRequest `json:"items" binding:"required,min=1,dive"`
	StaffName    string            `json:"staffName"`
	IncludeTax   bool              `json:"includeTax"`
}

// RoomBillsRequest selects the bills charged to a room
type RoomBillsRequest struct {
	RoomNumber string `form:"room_number" binding:"required"`
	Location   string `form:"location" binding:"required"`
	GuestName  string `form:"guest_name"`
}
