package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// SessionFilter narrows ListSessions. Zero values disable a bound.
type SessionFilter struct {
	DeviceID int64     // 0 for all devices
	From     time.Time // inclusive start bound
	To       time.Time // exclusive start bound
}

func (f SessionFilter) matches(s Session) bool {
	if !f.From.IsZero() && s.StartMs < f.From.UnixMilli() {
		return false
	}
	if !f.To.IsZero() && s.StartMs >= f.To.UnixMilli() {
		return false
	}
	return true
}

const sessionColumns = `_id, DEVICE_ID, START_TIME, END_TIME, ACTIVITY_KIND, RAW_SUMMARY_DATA`

// ListSessions returns workout sessions ordered by start time.
// Time bounds are applied after start times are normalized to milliseconds,
// since some firmware stores them in seconds.
func (db *DB) ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM BASE_ACTIVITY_SUMMARY`
	var args []any
	if filter.DeviceID != 0 {
		query += ` WHERE DEVICE_ID = ?`
		args = append(args, filter.DeviceID)
	}
	query += ` ORDER BY START_TIME, _id`

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		if filter.matches(s) {
			sessions = append(sessions, s)
		}
	}

	return sessions, rows.Err()
}

// GetSession returns one workout session by id
func (db *DB) GetSession(ctx context.Context, id int64) (*Session, error) {
	row := db.QueryRowContext(ctx, `
		SELECT `+sessionColumns+` FROM BASE_ACTIVITY_SUMMARY WHERE _id = ?
	`, id)

	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var s Session
	var kind sql.NullInt64
	if err := row.Scan(&s.ID, &s.DeviceID, &s.StartMs, &s.EndMs, &kind, &s.RawSummary); err != nil {
		return Session{}, err
	}
	s.ActivityKind = int(kind.Int64)
	s.StartMs = canonicalMillis(s.StartMs)
	s.EndMs = canonicalMillis(s.EndMs)
	return s, nil
}

// Start returns the session start as a time in loc
func (s Session) Start(loc *time.Location) time.Time {
	return time.UnixMilli(s.StartMs).In(loc)
}

// End returns the session end as a time in loc
func (s Session) End(loc *time.Location) time.Time {
	return time.UnixMilli(s.EndMs).In(loc)
}

// Duration returns the wall-clock length of the session
func (s Session) Duration() time.Duration {
	if s.EndMs < s.StartMs {
		return 0
	}
	return time.Duration(s.EndMs-s.StartMs) * time.Millisecond
}
