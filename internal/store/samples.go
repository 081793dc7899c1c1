package store

import (
	"context"
	"database/sql"
	"strings"
)

// SampleTimestampUnit reports whether a device stores sample timestamps in
// seconds or milliseconds, judged from its largest timestamp.
// A device without samples is treated as milliseconds.
func (db *DB) SampleTimestampUnit(ctx context.Context, deviceID int64) (TimestampUnit, error) {
	var maxTS sql.NullInt64
	err := db.QueryRowContext(ctx, `
		SELECT MAX(TIMESTAMP) FROM MI_BAND_ACTIVITY_SAMPLE WHERE DEVICE_ID = ?
	`, deviceID).Scan(&maxTS)
	if err != nil {
		return Milliseconds, err
	}

	if maxTS.Valid && maxTS.Int64 > 0 && maxTS.Int64 <= maxSecondsTimestamp {
		return Seconds, nil
	}
	return Milliseconds, nil
}

// Samples returns a device's samples with from <= TIMESTAMP <= to, in
// native units, ordered by timestamp
func (db *DB) Samples(ctx context.Context, deviceID, from, to int64) ([]Sample, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT DEVICE_ID, TIMESTAMP, RAW_KIND, HEART_RATE
		FROM MI_BAND_ACTIVITY_SAMPLE
		WHERE DEVICE_ID = ? AND TIMESTAMP BETWEEN ? AND ?
		ORDER BY TIMESTAMP ASC
	`, deviceID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		var kind, hr sql.NullInt64
		if err := rows.Scan(&s.DeviceID, &s.Timestamp, &kind, &hr); err != nil {
			return nil, err
		}
		s.RawKind = -1
		if kind.Valid {
			s.RawKind = int(kind.Int64)
		}
		s.HeartRate = int(hr.Int64)
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// LastValidRawKind returns the raw kind of the most recent sample strictly
// before the given native timestamp whose raw kind is not in excluded.
// found is false when no such sample exists.
func (db *DB) LastValidRawKind(ctx context.Context, deviceID, before int64, excluded []int) (kind int, found bool, err error) {
	query := `
		SELECT RAW_KIND FROM MI_BAND_ACTIVITY_SAMPLE
		WHERE DEVICE_ID = ? AND TIMESTAMP < ? AND RAW_KIND IS NOT NULL`
	args := []any{deviceID, before}
	if len(excluded) > 0 {
		placeholders := make([]string, len(excluded))
		for i, k := range excluded {
			placeholders[i] = "?"
			args = append(args, k)
		}
		query += ` AND RAW_KIND NOT IN (` + strings.Join(placeholders, ",") + `)`
	}
	query += ` ORDER BY TIMESTAMP DESC LIMIT 1`

	err = db.QueryRowContext(ctx, query, args...).Scan(&kind)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return kind, true, nil
}
