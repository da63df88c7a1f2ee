package model

import "time"

// RoomScan links a captured wifi_scan row to the session/room that was
// active when it was captured.
type RoomScan struct {
	ID         int       `db:"id" json:"id"`
	WifiScanID int64     `db:"wifi_scan_id" json:"wifiScanId"`
	SessionID  int       `db:"session_id" json:"sessionId"`
	RoomID     int       `db:"room_id" json:"roomId"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

type CreateRoomScanParams struct {
	WifiScanID int64
	SessionID  int
	RoomID     int
}
