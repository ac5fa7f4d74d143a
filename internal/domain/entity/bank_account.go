package entity

// BankAccountAllLocations marks an account shown at every branch.
const BankAccountAllLocations = "all"

// BankAccount is printed on invoices for transfer payments.
type BankAccount struct {
	ID            string `json:"id"`
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountName   string `json:"accountName"`
	Location      string `json:"location,omitempty"`
	CreatedAt     string `json:"createdAt"`
	UpdatedAt     string `json:"updatedAt"`
}
