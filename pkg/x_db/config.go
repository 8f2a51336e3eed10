package x_db

import (
	"errors"
	"fmt"
)

//---------------------
// Database Config
//---------------------

// DbType names a supported gorm dialect.
type DbType string

const (
	DbSqlite   DbType = "sqlite"
	DbPostgres DbType = "postgres"
)

var ErrUnknownDbType = errors.New("x_db: unknown database type")

// Config selects the driver and connection of the run store.
type Config struct {
	Type         DbType `json:"type"`
	DSN          string `json:"dsn"`
	LogLevel     string `json:"log_level"` // silent, error, warn, info
	MaxOpenConns int    `json:"max_open_conns"`
}

// DefaultConfig stores runs in a local SQLite file.
func DefaultConfig() Config {
	return Config{
		Type:     DbSqlite,
		DSN:      "huff.db",
		LogLevel: "warn",
	}
}

// Validate checks the driver and DSN.
func (c Config) Validate() error {
	switch c.Type {
	case DbSqlite, DbPostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDbType, c.Type)
	}
	if c.DSN == "" {
		return errors.New("x_db: dsn required")
	}
	return nil
}
