package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// ErrSessionNotFound is returned when an activity summary doesn't exist
var ErrSessionNotFound = errors.New("activity session not found")

// DB is a read-only handle on a Gadgetbridge export
type DB struct {
	*sql.DB
}

// Open opens the Gadgetbridge SQLite database at path in read-only mode.
// The file must already exist; this package never creates or migrates it.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("checking database file: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return &DB{sqlDB}, nil
}

// New wraps an existing connection, typically an in-memory database in tests.
func New(sqlDB *sql.DB) *DB {
	return &DB{sqlDB}
}
