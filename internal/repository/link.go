package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type RoomScanRepository interface {
	// Create writes the link tying a raw scan to the session/room that was
	// active when it was captured. Runs as its own commit, separate from
	// the scan insert.
	Create(ctx context.Context, params model.CreateRoomScanParams) (*model.RoomScan, error)
	CountBySession(ctx context.Context, sessionID int) (int, error)
}

type roomScanRepo struct {
	db DBTX
}

func NewRoomScanRepository(db *sqlx.DB) RoomScanRepository {
	return &roomScanRepo{db: db}
}

func (r *roomScanRepo) Create(ctx context.Context, params model.CreateRoomScanParams) (*model.RoomScan, error) {
	var link model.RoomScan
	err := r.db.GetContext(ctx, &link, `
		INSERT INTO room_scan (wifi_scan_id, session_id, room_id)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.WifiScanID, params.SessionID, params.RoomID)
	if err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *roomScanRepo) CountBySession(ctx context.Context, sessionID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM room_scan WHERE session_id = $1
	`, sessionID)
	if err != nil {
		return 0, err
	}
	return count, nil
}
