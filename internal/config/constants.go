package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Background job interval for closing stale scan sessions
const StaleSessionJobInterval = 5 * time.Minute

// Listing limits per endpoint.
const (
	RecentScansDefaultLimit = 25
	RecentScansMaxLimit     = 500

	RoomScansDefaultLimit = 100
	RoomScansMaxLimit     = 2000

	BuildingScansDefaultLimit = 500
	BuildingScansMaxLimit     = 5000
)
