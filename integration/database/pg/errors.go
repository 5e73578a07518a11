package pg

import "errors"

// Domain-specific PostgreSQL errors for consistent error handling across the
// application. Use errors.Is() to check error types for retry logic and
// user-facing messages.
var (
	ErrEmptyConnectionString = errors.New("empty postgres connection string")
	ErrFailedToParseConfig   = errors.New("failed to parse postgres connection string")
	ErrFailedToConnect       = errors.New("failed to connect to postgres")
	ErrHealthcheckFailed     = errors.New("postgres healthcheck failed")
	ErrMigrationFailed       = errors.New("failed to apply postgres migrations")
)
