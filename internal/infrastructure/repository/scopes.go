package repository

import (
	"strings"

	"gorm.io/gorm"
)

// LocationScope returns a GORM scope that filters rows to one branch.
// An empty location matches nothing rather than every branch.
func LocationScope(column, location string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if location == "" {
			return db.Where("1 = 0")
		}
		return db.Where(column+" = ?", location)
	}
}

// GuestScope matches guest_name case-insensitively; an empty name is ignored
func GuestScope(guestName string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		guestName = strings.TrimSpace(guestName)
		if guestName == "" {
			return db
		}
		return db.Where("LOWER(guest_name) = LOWER(?)", guestName)
	}
}
