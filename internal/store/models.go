package store

// Device is a row of the DEVICE table
type Device struct {
	ID    int64  `db:"_id"`
	Name  string `db:"NAME"`
	Model string `db:"MODEL"`
	Alias string `db:"ALIAS"`
}

// Session is a workout row of BASE_ACTIVITY_SUMMARY.
// Start and end are canonical milliseconds regardless of how the row stores them.
type Session struct {
	ID           int64  `db:"_id"`
	DeviceID     int64  `db:"DEVICE_ID"`
	StartMs      int64  `db:"START_TIME"`
	EndMs        int64  `db:"END_TIME"`
	ActivityKind int    `db:"ACTIVITY_KIND"`
	RawSummary   []byte `db:"RAW_SUMMARY_DATA"` // nil when NULL
}

// Sample is a row of MI_BAND_ACTIVITY_SAMPLE in the device's native timestamp unit
type Sample struct {
	DeviceID  int64 `db:"DEVICE_ID"`
	Timestamp int64 `db:"TIMESTAMP"`
	RawKind   int   `db:"RAW_KIND"`   // -1 when NULL
	HeartRate int   `db:"HEART_RATE"` // 0 when NULL
}

// TimestampUnit is the unit a device stores sample timestamps in
type TimestampUnit int

const (
	Milliseconds TimestampUnit = iota
	Seconds
)

// maxSecondsTimestamp is the largest value still interpreted as seconds.
const maxSecondsTimestamp = 9_999_999_999

func (u TimestampUnit) String() string {
	if u == Seconds {
		return "s"
	}
	return "ms"
}

// ToSeconds converts a native timestamp to canonical seconds
func (u TimestampUnit) ToSeconds(ts int64) int64 {
	if u == Seconds {
		return ts
	}
	return ts / 1000
}

// ToMillis converts a native timestamp to canonical milliseconds
func (u TimestampUnit) ToMillis(ts int64) int64 {
	if u == Seconds {
		return ts * 1000
	}
	return ts
}

// FromMillis converts canonical milliseconds to the native unit
func (u TimestampUnit) FromMillis(ms int64) int64 {
	if u == Seconds {
		return ms / 1000
	}
	return ms
}

// FromSeconds converts canonical seconds to the native unit
func (u TimestampUnit) FromSeconds(sec int64) int64 {
	if u == Seconds {
		return sec
	}
	return sec * 1000
}

// canonicalMillis normalizes a session timestamp that may be stored in seconds
func canonicalMillis(ts int64) int64 {
	if ts <= maxSecondsTimestamp {
		return ts * 1000
	}
	return ts
}
