package model

type Room struct {
	ID          int      `db:"id" json:"id"`
	Name        string   `db:"name" json:"name"`
	BuildingID  int      `db:"building_id" json:"buildingId"`
	FloorPlanID *int     `db:"floorplan_id" json:"floorplanId,omitempty"`
	Floor       *string  `db:"floor" json:"floor"`
	RoomType    *string  `db:"room_type" json:"roomType"`
	X           *float64 `db:"x" json:"x,omitempty"`
	Y           *float64 `db:"y" json:"y,omitempty"`
}

// RoomWithBuilding is a room row joined with its building's name,
// as returned by the room listing endpoints.
type RoomWithBuilding struct {
	Room
	BuildingName string `db:"building_name" json:"buildingName"`
}

type CreateRoomParams struct {
	Name       string
	BuildingID int
	Floor      *string
	RoomType   *string
	X          *float64
	Y          *float64
}
