package entity

import "github.com/atlantichotel/frontdesk-api/internal/domain/enum"

// Room is a physical unit at a branch. Guest fields are only populated
// while the room is occupied.
type Room struct {
	ID            string          `json:"id"`
	Number        string          `json:"number"`
	Floor         int             `json:"floor"`
	Status        enum.RoomStatus `json:"status"`
	GuestName     string          `json:"guestName,omitempty"`
	CheckIn       string          `json:"checkIn,omitempty"`
	CheckOut      string          `json:"checkOut,omitempty"`
	LastUpdated   int64           `json:"lastUpdated"`
	IsManagerRoom bool            `json:"isManagerRoom"`
	LinkedRoom    string          `json:"linkedRoom,omitempty"`
	Location      string          `json:"location"`
	Synced        bool            `json:"synced"`
}

// RoomID builds the identity used for rooms locally, remotely and in the
// rooms sync queue.
func RoomID(location, number string) string {
	return location + "-" + number
}

// ClearGuest drops occupancy bookkeeping once the room leaves occupied.
func (r *Room) ClearGuest() {
	r.GuestName = ""
	r.CheckIn = ""
	r.CheckOut = ""
}

// RoomStats summarises a branch's rooms.
type RoomStats struct {
	Total       int `json:"total"`
	Available   int `json:"available"`
	Occupied    int `json:"occupied"`
	Maintenance int `json:"maintenance"`
	Unsynced    int `json:"unsynced"`
}
