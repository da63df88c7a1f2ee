package model

import "time"

type Building struct {
	ID          int     `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
}

type CreateBuildingParams struct {
	Name        string
	Description *string
}

type FloorPlan struct {
	ID         int       `db:"id" json:"id"`
	BuildingID int       `db:"building_id" json:"buildingId"`
	FloorName  string    `db:"floor_name" json:"floorName"`
	ImageURL   string    `db:"image_url" json:"imageUrl"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type CreateFloorPlanParams struct {
	BuildingID int
	FloorName  string
	ImageURL   string
}
