package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/scanmap/server-go/internal/model"
)

type CreateScanParams struct {
	Node       *string
	DeviceTsMs *int64
	SSID       *string
	BSSID      *string
	RSSI       *int
	Channel    *int
	Enc        *string
}

type ScanRepository interface {
	// Insert persists a raw scan stamped with the current server time.
	// A row with the same (device_ts_ms, bssid) pair already present means
	// a re-delivered observation: no row is created, accepted is false and
	// no error is returned.
	Insert(ctx context.Context, params CreateScanParams) (*model.WifiScan, bool, error)
	Recent(ctx context.Context, limit int) ([]model.WifiScan, error)
	ForRoom(ctx context.Context, roomID int, limit int) ([]model.RoomScanRow, error)
	ForBuilding(ctx context.Context, buildingID int, limit int) ([]model.RoomScanRow, error)
}

type scanRepo struct {
	db DBTX
}

func NewScanRepository(db *sqlx.DB) ScanRepository {
	return &scanRepo{db: db}
}

func (r *scanRepo) Insert(ctx context.Context, params CreateScanParams) (*model.WifiScan, bool, error) {
	var scan model.WifiScan
	err := r.db.GetContext(ctx, &scan, `
		INSERT INTO wifi_scan (node, device_ts_ms, ssid, bssid, rssi, channel, enc)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (device_ts_ms, bssid) DO NOTHING
		RETURNING *
	`, params.Node, params.DeviceTsMs, params.SSID, params.BSSID, params.RSSI, params.Channel, params.Enc)
	if errors.Is(err, sql.ErrNoRows) {
		// Dedup key collision, the observation is already stored.
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return &scan, true, nil
}

func (r *scanRepo) Recent(ctx context.Context, limit int) ([]model.WifiScan, error) {
	scans := []model.WifiScan{}
	err := r.db.SelectContext(ctx, &scans, `
		SELECT * FROM wifi_scan
		ORDER BY id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	return scans, nil
}

func (r *scanRepo) ForRoom(ctx context.Context, roomID int, limit int) ([]model.RoomScanRow, error) {
	rows := []model.RoomScanRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ws.*, rs.room_id AS linked_room_id
		FROM wifi_scan ws
		JOIN room_scan rs ON rs.wifi_scan_id = ws.id
		WHERE rs.room_id = $1
		ORDER BY ws.id DESC
		LIMIT $2
	`, roomID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *scanRepo) ForBuilding(ctx context.Context, buildingID int, limit int) ([]model.RoomScanRow, error) {
	rows := []model.RoomScanRow{}
	err := r.db.SelectContext(ctx, &rows, `
		SELECT ws.*, rs.room_id AS linked_room_id, rm.name AS room_name
		FROM wifi_scan ws
		JOIN room_scan rs ON rs.wifi_scan_id = ws.id
		JOIN room rm ON rm.id = rs.room_id
		WHERE rm.building_id = $1
		ORDER BY ws.id DESC
		LIMIT $2
	`, buildingID, limit)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
