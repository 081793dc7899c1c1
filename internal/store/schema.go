package store

import "database/sql"

// CreateSchema creates the subset of the Gadgetbridge schema this package
// reads. It is used to build fixtures; real exports already carry it.
func CreateSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS DEVICE (
			_id INTEGER PRIMARY KEY AUTOINCREMENT,
			NAME TEXT NOT NULL,
			MANUFACTURER TEXT,
			IDENTIFIER TEXT,
			TYPE INTEGER,
			MODEL TEXT,
			ALIAS TEXT
		)`,

		// Workout summaries; RAW_SUMMARY_DATA holds the versioned binary blob
		`CREATE TABLE IF NOT EXISTS BASE_ACTIVITY_SUMMARY (
			_id INTEGER PRIMARY KEY AUTOINCREMENT,
			NAME TEXT,
			START_TIME INTEGER NOT NULL,
			END_TIME INTEGER NOT NULL,
			ACTIVITY_KIND INTEGER NOT NULL,
			DEVICE_ID INTEGER NOT NULL,
			USER_ID INTEGER,
			SUMMARY_DATA TEXT,
			RAW_SUMMARY_DATA BLOB,
			FOREIGN KEY (DEVICE_ID) REFERENCES DEVICE(_id)
		)`,

		`CREATE INDEX IF NOT EXISTS idx_summary_device_start ON BASE_ACTIVITY_SUMMARY(DEVICE_ID, START_TIME)`,

		// Per-minute band samples
		`CREATE TABLE IF NOT EXISTS MI_BAND_ACTIVITY_SAMPLE (
			TIMESTAMP INTEGER NOT NULL,
			DEVICE_ID INTEGER NOT NULL,
			USER_ID INTEGER,
			RAW_INTENSITY INTEGER,
			STEPS INTEGER,
			RAW_KIND INTEGER,
			HEART_RATE INTEGER,
			PRIMARY KEY (TIMESTAMP, DEVICE_ID)
		)`,
	}

	for _, s := range statements {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}

	return nil
}
