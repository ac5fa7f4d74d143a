package request

// BankAccountRequest creates or updates the transfer account on invoices
type BankAccountRequest struct {
	BankName      string `json:"bankName" binding:"required"`
	AccountNumber string `json:"accountNumber" binding:"required"`
	AccountName   string `json:"accountName" binding:"required"`
	Location      string `json:"location"`
}
