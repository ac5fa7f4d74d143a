package request

// MenuItemRequest creates or replaces a menu item
type MenuItemRequest struct {
	Name        string  `json:"name" binding:"required"`
	Category    string  `json:"category" binding:"required"`
	Price       float64 `json:"price" binding:"min=0"`
	Available   *bool   `json:"available"`
	Description string  `json:"description"`
}

// MenuAvailabilityRequest toggles whether an item can be ordered
type MenuAvailabilityRequest struct {
	Available *bool `json:"available" binding:"required"`
}
