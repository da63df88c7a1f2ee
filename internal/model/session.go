package model

import "time"

// ScanSession is a bounded interval during which the device is sampling a
// specific room. At most one session is active system-wide.
type ScanSession struct {
	ID        int        `db:"id" json:"id"`
	Node      string     `db:"node" json:"node"`
	RoomID    int        `db:"room_id" json:"roomId"`
	StartedAt time.Time  `db:"started_at" json:"startedAt"`
	EndedAt   *time.Time `db:"ended_at" json:"endedAt"`
	IsActive  bool       `db:"is_active" json:"isActive"`
}

// SessionWithLocation is a session row enriched with room and building
// names, as returned by GET /sessions.
type SessionWithLocation struct {
	ScanSession
	RoomName     string `db:"room_name" json:"roomName"`
	BuildingID   int    `db:"building_id" json:"buildingId"`
	BuildingName string `db:"building_name" json:"buildingName"`
}

type CreateSessionParams struct {
	Node   string
	RoomID int
}
