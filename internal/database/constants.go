package database

import "time"

// Pool
const (
	DefaultMinConnections int32 = 2
	DefaultPingTimeout          = 5 * time.Second
)

// MigrationsDir is the embedded directory holding goose SQL migrations
const MigrationsDir = "migrations"

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
	ErrMsgFailedToRollback        = "failed to roll back migration"
	ErrMsgFailedToReadStatus      = "failed to read migration status"
)

// Log messages
const (
	LogMsgConnected           = "Connected to postgres"
	LogMsgMigrationApplied    = "Migration applied"
	LogMsgMigrationRolledBack = "Migration rolled back"
	LogMsgSchemaUpToDate      = "Database schema is up to date"
)
