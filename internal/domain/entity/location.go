package entity

// Location is a hotel branch. Every room, receipt and bill belongs to
// exactly one location.
type Location struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	FullAddress string `json:"fullAddress"`
}

// SpecialRoom overrides the defaults for one room number.
type SpecialRoom struct {
	DisplayName   string
	LinkedRoom    string
	IsManagerRoom bool
}

// RoomLayout is the static room-numbering table a branch is seeded from.
type RoomLayout struct {
	Rooms   []string
	Special map[string]SpecialRoom
}

const (
	LocationMusaYaradua     = "musa-yaradua"
	LocationAdelekeAdedoyin = "adeleke-adedoyin"
)

var locations = []Location{
	{
		ID:          LocationMusaYaradua,
		Name:        "Musa Yar'Adua Branch",
		Address:     "20A, Musa Yar'Adua Street",
		FullAddress: "20A, Musa Yar'Adua Street, Victoria Island, Lagos, Nigeria",
	},
	{
		ID:          LocationAdelekeAdedoyin,
		Name:        "Adeleke Adedoyin Branch",
		Address:     "4A, Adeleke Adedoyin Street",
		FullAddress: "4A, Adeleke Adedoyin Street, Victoria Island, Lagos, Nigeria",
	},
}

var roomLayouts = map[string]RoomLayout{
	LocationMusaYaradua: {
		Rooms: []string{
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
			"11/13",
			"12", "14", "15", "16", "17", "18", "19", "20",
			"21/23",
			"22", "24", "25",
		},
		Special: map[string]SpecialRoom{
			"11/13": {LinkedRoom: "13", DisplayName: "Room 11/13"},
			"21/23": {LinkedRoom: "23", DisplayName: "Room 21/23"},
		},
	},
	LocationAdelekeAdedoyin: {
		Rooms: []string{
			"1", "2", "3", "4", "5", "6", "7", "8", "9", "10",
			"11", "12", "13", "14", "15", "16", "17", "18", "19", "20",
			"21", "22", "23", "24", "25", "26", "27", "28", "29", "30",
		},
		Special: map[string]SpecialRoom{
			"2": {IsManagerRoom: true, DisplayName: "Manager's Room"},
		},
	},
}

// Locations returns every branch.
func Locations() []Location {
	out := make([]Location, len(locations))
	copy(out, locations)
	return out
}

// GetLocation looks a branch up by id.
func GetLocation(id string) (Location, bool) {
	for _, l := range locations {
		if l.ID == id {
			return l, true
		}
	}
	return Location{}, false
}

// GetRoomLayout returns the seed layout for a branch.
func GetRoomLayout(location string) (RoomLayout, bool) {
	layout, ok := roomLayouts[location]
	return layout, ok
}

// DefaultRooms builds the initial room set for a branch: ten rooms per
// floor in layout order, all available and unsynced.
func DefaultRooms(location string, now int64) []Room {
	layout, ok := roomLayouts[location]
	if !ok {
		return nil
	}

	rooms := make([]Room, 0, len(layout.Rooms))
	for i, number := range layout.Rooms {
		special := layout.Special[number]
		rooms = append(rooms, Room{
			ID:            RoomID(location, number),
			Number:        number,
			Floor:         i/10 + 1,
			LastUpdated:   now,
			IsManagerRoom: special.IsManagerRoom,
			LinkedRoom:    special.LinkedRoom,
			Location:      location,
		})
	}
	return rooms
}
