package constants

import "time"

const (
	ProfileRefreshTTL = 1 * time.Hour
	ScanCharacterTTL  = 25 * time.Minute
)

const (
	ExternalAPITimeout = 15 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	ImportTimeout      = 2 * time.Minute
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	// Per-report cap on concurrent fight-table fetches against Warcraft Logs.
	FightTableConcurrency = 4

	// Recent report codes pulled per character per scan tick.
	ScanReportLimit = 5
)

const (
	SnapshotListLimit = 200
)
