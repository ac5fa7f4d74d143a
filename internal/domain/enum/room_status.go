package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// RoomStatus represents the occupancy state of a room
type RoomStatus int

const (
	RoomStatusAvailable   RoomStatus = 0
	RoomStatusOccupied    RoomStatus = 1
	RoomStatusMaintenance RoomStatus = 2
)

var roomStatusNames = [...]string{"available", "occupied", "maintenance"}

func (s RoomStatus) String() string {
	if !s.IsValid() {
		return "available"
	}
	return roomStatusNames[s]
}

// IsValid reports whether s is one of the declared states
func (s RoomStatus) IsValid() bool {
	return int(s) >= 0 && int(s) < len(roomStatusNames)
}

// ParseRoomStatus converts a stored name into a RoomStatus
func ParseRoomStatus(s string) (RoomStatus, error) {
	for i, name := range roomStatusNames {
		if name == s {
			return RoomStatus(i), nil
		}
	}
	return RoomStatusAvailable, fmt.Errorf("invalid room status %q", s)
}

func (s RoomStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *RoomStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		if !RoomStatus(i).IsValid() {
			return fmt.Errorf("invalid room status %d", i)
		}
		*s = RoomStatus(i)
		return nil
	}
	parsed, err := ParseRoomStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (s RoomStatus) Value() (driver.Value, error) {
	return s.String(), nil
}

func (s *RoomStatus) Scan(value interface{}) error {
	if value == nil {
		*s = RoomStatusAvailable
		return nil
	}
	switch v := value.(type) {
	case string:
		parsed, err := ParseRoomStatus(v)
		if err != nil {
			return err
		}
		*s = parsed
	case []byte:
		parsed, err := ParseRoomStatus(string(v))
		if err != nil {
			return err
		}
		*s = parsed
	case int64:
		if !RoomStatus(v).IsValid() {
			return fmt.Errorf("invalid room status %d", v)
		}
		*s = RoomStatus(v)
	default:
		return fmt.Errorf("cannot scan %T into RoomStatus", value)
	}
	return nil
}
