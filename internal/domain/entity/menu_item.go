package entity

// MenuItem is a restaurant catalogue entry. The remote copy is authoritative.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Available   bool    `json:"available"`
	Description string  `json:"description,omitempty"`
}
