package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

// setupTestDB creates an in-memory database with two devices
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewMemoryDB()
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	for _, d := range []Device{
		{Name: "Amazfit Bip", Model: "A1608"},
		{Name: "Mi Band 5", Model: "XMSH11HM", Alias: "wrist"},
	} {
		if _, err := db.InsertDevice(d); err != nil {
			t.Fatalf("Failed to insert device: %v", err)
		}
	}

	return db
}

func TestListDevices(t *testing.T) {
	db := setupTestDB(t)

	devices, err := db.ListDevices(context.Background())
	if err != nil {
		t.Fatalf("ListDevices failed: %v", err)
	}
	if len(devices) != 2 {
		t.Fatalf("got %d devices, want 2", len(devices))
	}
	if devices[0].ID != 1 || devices[0].Alias != "" {
		t.Errorf("devices[0] = %+v, want id 1 without alias", devices[0])
	}
	if devices[1].Alias != "wrist" {
		t.Errorf("devices[1].Alias = %q, want %q", devices[1].Alias, "wrist")
	}
}

func TestListSessions_NormalizesAndFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	morning := day.Add(8 * time.Hour)
	evening := day.Add(18 * time.Hour)
	nextDay := day.Add(32 * time.Hour)

	fixtures := []Session{
		// stored in seconds
		{DeviceID: 1, StartMs: morning.Unix(), EndMs: morning.Add(time.Hour).Unix(), ActivityKind: 16, RawSummary: []byte{1, 2}},
		{DeviceID: 1, StartMs: evening.UnixMilli(), EndMs: evening.Add(30 * time.Minute).UnixMilli(), ActivityKind: 1},
		{DeviceID: 2, StartMs: evening.UnixMilli(), EndMs: evening.Add(time.Hour).UnixMilli(), ActivityKind: 1},
		{DeviceID: 1, StartMs: nextDay.UnixMilli(), EndMs: nextDay.Add(time.Hour).UnixMilli(), ActivityKind: 1},
	}
	for _, s := range fixtures {
		if _, err := db.InsertSession(s); err != nil {
			t.Fatalf("InsertSession failed: %v", err)
		}
	}

	all, err := db.ListSessions(ctx, SessionFilter{})
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("got %d sessions, want 4", len(all))
	}
	if all[0].StartMs != morning.UnixMilli() {
		t.Errorf("seconds start not normalized: got %d, want %d", all[0].StartMs, morning.UnixMilli())
	}
	if all[0].Duration() != time.Hour {
		t.Errorf("Duration = %v, want 1h", all[0].Duration())
	}
	if string(all[0].RawSummary) != "\x01\x02" {
		t.Errorf("RawSummary = %v, want [1 2]", all[0].RawSummary)
	}
	if all[1].RawSummary != nil {
		t.Errorf("NULL RawSummary = %v, want nil", all[1].RawSummary)
	}

	dayOnly, err := db.ListSessions(ctx, SessionFilter{DeviceID: 1, From: day, To: day.AddDate(0, 0, 1)})
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(dayOnly) != 2 {
		t.Fatalf("got %d sessions for device 1 on the day, want 2", len(dayOnly))
	}
	for _, s := range dayOnly {
		if s.DeviceID != 1 {
			t.Errorf("session %d has device %d, want 1", s.ID, s.DeviceID)
		}
	}
}

func TestGetSession(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.InsertSession(Session{DeviceID: 1, StartMs: 1_709_280_000_000, EndMs: 1_709_283_600_000, ActivityKind: 1})
	if err != nil {
		t.Fatalf("InsertSession failed: %v", err)
	}

	s, err := db.GetSession(ctx, id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if s.ID != id || s.StartMs != 1_709_280_000_000 {
		t.Errorf("GetSession = %+v", s)
	}

	_, err = db.GetSession(ctx, 999)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("GetSession(999) err = %v, want ErrSessionNotFound", err)
	}
}

func TestSampleTimestampUnit(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	unit, err := db.SampleTimestampUnit(ctx, 1)
	if err != nil {
		t.Fatalf("SampleTimestampUnit failed: %v", err)
	}
	if unit != Milliseconds {
		t.Errorf("empty device unit = %v, want ms", unit)
	}

	if err := db.InsertSamples([]Sample{
		{DeviceID: 1, Timestamp: 1_709_280_000, RawKind: 1, HeartRate: 60},
		{DeviceID: 2, Timestamp: 1_709_280_000_000, RawKind: 1, HeartRate: 60},
	}); err != nil {
		t.Fatalf("InsertSamples failed: %v", err)
	}

	tests := []struct {
		device int64
		want   TimestampUnit
	}{
		{1, Seconds},
		{2, Milliseconds},
	}
	for _, tt := range tests {
		got, err := db.SampleTimestampUnit(ctx, tt.device)
		if err != nil {
			t.Fatalf("SampleTimestampUnit(%d) failed: %v", tt.device, err)
		}
		if got != tt.want {
			t.Errorf("SampleTimestampUnit(%d) = %v, want %v", tt.device, got, tt.want)
		}
	}
}

func TestSamples_InclusiveAndOrdered(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if err := db.InsertSamples([]Sample{
		{DeviceID: 1, Timestamp: 300, RawKind: 9, HeartRate: 55},
		{DeviceID: 1, Timestamp: 100, RawKind: 1, HeartRate: 70},
		{DeviceID: 1, Timestamp: 200, RawKind: 0, HeartRate: 0},
		{DeviceID: 1, Timestamp: 400, RawKind: 11, HeartRate: 50},
		{DeviceID: 2, Timestamp: 200, RawKind: 1, HeartRate: 90},
	}); err != nil {
		t.Fatalf("InsertSamples failed: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO MI_BAND_ACTIVITY_SAMPLE (TIMESTAMP, DEVICE_ID) VALUES (250, 1)`); err != nil {
		t.Fatalf("inserting NULL sample: %v", err)
	}

	samples, err := db.Samples(ctx, 1, 100, 300)
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}

	wantTS := []int64{100, 200, 250, 300}
	if len(samples) != len(wantTS) {
		t.Fatalf("got %d samples, want %d", len(samples), len(wantTS))
	}
	for i, ts := range wantTS {
		if samples[i].Timestamp != ts {
			t.Errorf("samples[%d].Timestamp = %d, want %d", i, samples[i].Timestamp, ts)
		}
	}
	if samples[2].RawKind != -1 || samples[2].HeartRate != 0 {
		t.Errorf("NULL sample = %+v, want raw kind -1 and HR 0", samples[2])
	}
}

func TestLastValidRawKind(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	excluded := []int{0, 10, -1, 16, 80, 96, 112}

	_, found, err := db.LastValidRawKind(ctx, 1, 1000, excluded)
	if err != nil {
		t.Fatalf("LastValidRawKind failed: %v", err)
	}
	if found {
		t.Error("found a kind on an empty device")
	}

	if err := db.InsertSamples([]Sample{
		{DeviceID: 1, Timestamp: 100, RawKind: 0x19},
		{DeviceID: 1, Timestamp: 200, RawKind: 10},
		{DeviceID: 1, Timestamp: 300, RawKind: 80},
		{DeviceID: 1, Timestamp: 400, RawKind: 0},
		{DeviceID: 1, Timestamp: 500, RawKind: 11},
	}); err != nil {
		t.Fatalf("InsertSamples failed: %v", err)
	}

	tests := []struct {
		before    int64
		wantKind  int
		wantFound bool
	}{
		{100, 0, false},
		{450, 0x19, true},
		{500, 0x19, true},
		{501, 11, true},
	}
	for _, tt := range tests {
		kind, found, err := db.LastValidRawKind(ctx, 1, tt.before, excluded)
		if err != nil {
			t.Fatalf("LastValidRawKind(%d) failed: %v", tt.before, err)
		}
		if found != tt.wantFound || kind != tt.wantKind {
			t.Errorf("LastValidRawKind(%d) = (%d, %v), want (%d, %v)", tt.before, kind, found, tt.wantKind, tt.wantFound)
		}
	}
}

func TestTimestampUnitConversions(t *testing.T) {
	if got := Seconds.FromMillis(1_709_280_000_123); got != 1_709_280_000 {
		t.Errorf("Seconds.FromMillis = %d", got)
	}
	if got := Milliseconds.FromMillis(42); got != 42 {
		t.Errorf("Milliseconds.FromMillis = %d", got)
	}
	if got := Milliseconds.ToSeconds(1_709_280_000_999); got != 1_709_280_000 {
		t.Errorf("Milliseconds.ToSeconds = %d", got)
	}
	if got := Milliseconds.FromSeconds(5); got != 5000 {
		t.Errorf("Milliseconds.FromSeconds = %d", got)
	}
	if got := Seconds.ToMillis(7); got != 7000 {
		t.Errorf("Seconds.ToMillis = %d", got)
	}
	if got := Seconds.ToSeconds(7); got != 7 {
		t.Errorf("Seconds.ToSeconds = %d", got)
	}
}
