package model

import "time"

// WifiScan is a single raw observation as reported by the scanning device.
// Rows are immutable once inserted. RoomID is the legacy direct tag from
// before session-based linking; it is read out for old rows but never
// written by new code.
type WifiScan struct {
	ID           int64     `db:"id" json:"id"`
	ReceivedAt   time.Time `db:"received_at" json:"receivedAt"`
	Node         *string   `db:"node" json:"node"`
	DeviceTsMs   *int64    `db:"device_ts_ms" json:"deviceTsMs"`
	SSID         *string   `db:"ssid" json:"ssid"`
	BSSID        *string   `db:"bssid" json:"bssid"`
	RSSI         *int      `db:"rssi" json:"rssi"`
	Channel      *int      `db:"channel" json:"channel"`
	Enc          *string   `db:"enc" json:"enc"`
	LegacyRoomID *int      `db:"room_id" json:"roomId"`
}

// ScanReport is one element of an ingest batch, in the device's wire shape.
type ScanReport struct {
	Node    *string `json:"node"`
	Ts      *int64  `json:"ts"`
	SSID    *string `json:"ssid"`
	BSSID   *string `json:"bssid"`
	RSSI    *int    `json:"rssi"`
	Channel *int    `json:"channel"`
	Enc     *string `json:"enc"`
}

// RoomScanRow is a scan row scoped to a room, joined with the room name
// for building-wide listings.
type RoomScanRow struct {
	WifiScan
	LinkedRoomID int     `db:"linked_room_id" json:"linkedRoomId"`
	RoomName     *string `db:"room_name" json:"roomName,omitempty"`
}
