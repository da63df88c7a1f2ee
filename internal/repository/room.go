package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type RoomRepository interface {
	FindByID(ctx context.Context, id int) (*model.Room, error)
	FindWithBuilding(ctx context.Context, id int) (*model.RoomWithBuilding, error)
	List(ctx context.Context, buildingID *int) ([]model.RoomWithBuilding, error)
	Create(ctx context.Context, params model.CreateRoomParams) (*model.Room, error)
	// Delete removes the room; its sessions and scan links cascade, raw
	// scans survive with their legacy tag set to null.
	Delete(ctx context.Context, id int) (bool, error)
}

type roomRepo struct {
	db DBTX
}

func NewRoomRepository(db *sqlx.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) FindByID(ctx context.Context, id int) (*model.Room, error) {
	var room model.Room
	err := r.db.GetContext(ctx, &room, `
		SELECT * FROM room WHERE id = $1
	`, id)
	return HandleNotFound(&room, err)
}

func (r *roomRepo) FindWithBuilding(ctx context.Context, id int) (*model.RoomWithBuilding, error) {
	var room model.RoomWithBuilding
	err := r.db.GetContext(ctx, &room, `
		SELECT rm.*, b.name AS building_name
		FROM room rm
		JOIN building b ON b.id = rm.building_id
		WHERE rm.id = $1
	`, id)
	return HandleNotFound(&room, err)
}

func (r *roomRepo) List(ctx context.Context, buildingID *int) ([]model.RoomWithBuilding, error) {
	rooms := []model.RoomWithBuilding{}
	err := r.db.SelectContext(ctx, &rooms, `
		SELECT rm.*, b.name AS building_name
		FROM room rm
		JOIN building b ON b.id = rm.building_id
		WHERE $1::int IS NULL OR rm.building_id = $1
		ORDER BY b.name, rm.name
	`, buildingID)
	if err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *roomRepo) Create(ctx context.Context, params model.CreateRoomParams) (*model.Room, error) {
	var room model.Room
	err := r.db.GetContext(ctx, &room, `
		INSERT INTO room (name, building_id, floor, room_type, x, y)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.Name, params.BuildingID, params.Floor, params.RoomType, params.X, params.Y)
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *roomRepo) Delete(ctx context.Context, id int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM room WHERE id = $1
	`, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
