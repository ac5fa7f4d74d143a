package request

// CheckInRequest occupies an available room
type CheckInRequest struct {
	GuestName string `json:"guestName" binding:"required"`
	CheckIn   string `json:"checkIn" binding:"required"`
}

// CheckOutRequest frees an occupied room
type CheckOutRequest struct {
	CheckOut string `json:"checkOut"`
}
