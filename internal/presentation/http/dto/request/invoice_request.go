package request

// AdditionalChargeRequest is a manual invoice line
type AdditionalChargeRequest struct {
	Description string  `json:"description" binding:"required"`
	Amount      float64 `json:"amount"`
}

// GenerateInvoiceRequest aggregates a guest's stay into one invoice
type GenerateInvoiceRequest struct {
	Location          string                    `json:"location" binding:"required"`
	RoomNumbers       []string                  `json:"roomNumbers" binding:"required,min=1"`
	GuestName         string                    `json:"guestName"`
	AdditionalCharges []AdditionalChargeRequest `json:"additionalCharges" binding:"dive"`
	IssueDate         string                    `json:"issueDate"`
}
