package store

import (
	"database/sql"
	"fmt"
)

// NewMemoryDB opens an in-memory database with the schema applied.
// This is only intended for tests and fixtures.
func NewMemoryDB() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}

	// Every pooled connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)

	if err := CreateSchema(sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return New(sqlDB), nil
}

// InsertDevice adds a device row and returns its id
func (db *DB) InsertDevice(d Device) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO DEVICE (NAME, MODEL, ALIAS) VALUES (?, ?, ?)
	`, d.Name, d.Model, d.Alias)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertSession adds a workout summary row as stored (no unit normalization)
func (db *DB) InsertSession(s Session) (int64, error) {
	res, err := db.Exec(`
		INSERT INTO BASE_ACTIVITY_SUMMARY (START_TIME, END_TIME, ACTIVITY_KIND, DEVICE_ID, RAW_SUMMARY_DATA)
		VALUES (?, ?, ?, ?, ?)
	`, s.StartMs, s.EndMs, s.ActivityKind, s.DeviceID, s.RawSummary)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// InsertSamples adds band samples in a single transaction
func (db *DB) InsertSamples(samples []Sample) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO MI_BAND_ACTIVITY_SAMPLE (TIMESTAMP, DEVICE_ID, RAW_KIND, HEART_RATE)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(s.Timestamp, s.DeviceID, s.RawKind, s.HeartRate); err != nil {
			return fmt.Errorf("inserting sample: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}
