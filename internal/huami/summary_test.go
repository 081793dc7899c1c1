package huami

import (
	"encoding/binary"
	"math"
	"testing"
)

// blob builds a little-endian summary buffer field by field.
type blob []byte

func newBlob(size int, version uint16) blob {
	b := make(blob, size)
	binary.LittleEndian.PutUint16(b[0:], version)
	binary.LittleEndian.PutUint16(b[2:], 0x0010)
	return b
}

func (b blob) u16(off int, v uint16) blob {
	binary.LittleEndian.PutUint16(b[off:], v)
	return b
}

func (b blob) i32(off int, v int32) blob {
	binary.LittleEndian.PutUint32(b[off:], uint32(v))
	return b
}

func (b blob) f32(off int, v float32) blob {
	binary.LittleEndian.PutUint32(b[off:], math.Float32bits(v))
	return b
}

// modern writes the modern body fields starting at base, the offset of the
// steps field.
func (b blob) modern(base int, active int32, calories, distance float32, avgHR, maxHR uint16) blob {
	return b.
		i32(base, 4321).
		i32(base+4, active).
		f32(base+24, calories).
		f32(base+28, distance).
		f32(base+100, 9999).
		u16(base+108, avgHR).
		u16(base+114, maxHR)
}

const (
	modernLen    = 140
	modern516Len = 144
	modern519Len = 256
	legacyLen    = 122
)

func intPtr(v int) *int { return &v }

func checkInt(t *testing.T, name string, got *int, want *int) {
	t.Helper()
	switch {
	case got == nil && want == nil:
	case got == nil:
		t.Errorf("%s = nil, want %d", name, *want)
	case want == nil:
		t.Errorf("%s = %d, want nil", name, *got)
	case *got != *want:
		t.Errorf("%s = %d, want %d", name, *got, *want)
	}
}

func checkFloat(t *testing.T, name string, got *float32, want float32) {
	t.Helper()
	if got == nil {
		t.Errorf("%s = nil, want %v", name, want)
		return
	}
	if *got != want {
		t.Errorf("%s = %v, want %v", name, *got, want)
	}
}

func TestDecode_Modern(t *testing.T) {
	for _, version := range []uint16{512, 513, 700} {
		data := newBlob(modernLen, version).modern(24, 1800, 412.5, 5012.25, 142, 171)

		s := Decode(data)
		if s == nil {
			t.Fatalf("version %d: Decode returned nil", version)
		}
		if s.Version != version {
			t.Errorf("Version = %d, want %d", s.Version, version)
		}
		if s.Format != FormatModern {
			t.Errorf("Format = %v, want modern", s.Format)
		}
		if s.RawKind != 0x0010 {
			t.Errorf("RawKind = %#x, want 0x10", s.RawKind)
		}
		checkInt(t, "ActiveSeconds", s.ActiveSeconds, intPtr(1800))
		checkFloat(t, "Calories", s.Calories, 412.5)
		checkFloat(t, "Distance", s.Distance, 5012.25)
		checkInt(t, "AvgHeartRate", s.AvgHeartRate, intPtr(142))
		checkInt(t, "MaxHeartRate", s.MaxHeartRate, intPtr(171))
		checkInt(t, "MinHeartRate", s.MinHeartRate, nil)
	}
}

func TestDecode_Modern516(t *testing.T) {
	data := newBlob(modern516Len, 516).modern(28, 2400, 300, 7000, 120, 160)

	s := Decode(data)
	if s == nil {
		t.Fatal("Decode returned nil")
	}
	if s.Format != FormatModern516 {
		t.Errorf("Format = %v, want modern-516", s.Format)
	}
	checkInt(t, "ActiveSeconds", s.ActiveSeconds, intPtr(2400))
	checkFloat(t, "Calories", s.Calories, 300)
	checkFloat(t, "Distance", s.Distance, 7000)
	checkInt(t, "AvgHeartRate", s.AvgHeartRate, intPtr(120))
	checkInt(t, "MaxHeartRate", s.MaxHeartRate, intPtr(160))
	checkInt(t, "MinHeartRate", s.MinHeartRate, nil)
}

func TestDecode_Modern519(t *testing.T) {
	data := newBlob(modern519Len, 519).
		u16(25, 61).
		modern(modern519Offset, 3600, 650, 10000, 150, 182)

	s := Decode(data)
	if s == nil {
		t.Fatal("Decode returned nil")
	}
	if s.Format != FormatModern519 {
		t.Errorf("Format = %v, want modern-519", s.Format)
	}
	checkInt(t, "MinHeartRate", s.MinHeartRate, intPtr(61))
	checkInt(t, "ActiveSeconds", s.ActiveSeconds, intPtr(3600))
	checkFloat(t, "Calories", s.Calories, 650)
	checkFloat(t, "Distance", s.Distance, 10000)
	checkInt(t, "AvgHeartRate", s.AvgHeartRate, intPtr(150))
	checkInt(t, "MaxHeartRate", s.MaxHeartRate, intPtr(182))
}

func TestDecode_Modern519ShortSeekIsAbsent(t *testing.T) {
	// min HR is readable, but the buffer ends before the fixed seek offset.
	for _, size := range []int{27, 64, modern519Offset - 1} {
		data := newBlob(size, 519).u16(25, 61)
		if s := Decode(data); s != nil {
			t.Errorf("size %d: Decode = %+v, want nil", size, s)
		}
	}

	// Exactly at the seek offset: no body fields, but min HR survives.
	s := Decode(newBlob(modern519Offset, 519).u16(25, 61))
	if s == nil {
		t.Fatal("Decode at seek offset returned nil")
	}
	checkInt(t, "MinHeartRate", s.MinHeartRate, intPtr(61))
	checkInt(t, "ActiveSeconds", s.ActiveSeconds, nil)
}

func TestDecode_Legacy(t *testing.T) {
	data := newBlob(legacyLen, 259).
		f32(24, 8421.5).
		i32(60, 9000).
		i32(64, 2700).
		f32(68, 512.75)
	binary.LittleEndian.PutUint16(data[120:], uint16(0xFF88)) // -120 as i16

	s := Decode(data)
	if s == nil {
		t.Fatal("Decode returned nil")
	}
	if s.Format != FormatLegacy {
		t.Errorf("Format = %v, want legacy", s.Format)
	}
	checkFloat(t, "Distance", s.Distance, 8421.5)
	checkInt(t, "ActiveSeconds", s.ActiveSeconds, intPtr(2700))
	checkFloat(t, "Calories", s.Calories, 512.75)
	checkInt(t, "AvgHeartRate", s.AvgHeartRate, intPtr(-120))
	checkInt(t, "MinHeartRate", s.MinHeartRate, nil)
	checkInt(t, "MaxHeartRate", s.MaxHeartRate, nil)
}

func TestDecode_Absent(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"nil", nil},
		{"empty", []byte{}},
		{"one byte", []byte{0x02}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if s := Decode(tt.data); s != nil {
				t.Errorf("Decode = %+v, want nil", s)
			}
		})
	}
}

func TestDecode_Truncation(t *testing.T) {
	full := newBlob(modernLen, 512).modern(24, 1800, 412.5, 5012.25, 142, 171)

	tests := []struct {
		name       string
		size       int
		wantActive bool
		wantCal    bool
		wantDist   bool
		wantAvg    bool
		wantMax    bool
	}{
		{"version only", 2, false, false, false, false, false},
		{"header cut", 20, false, false, false, false, false},
		{"steps only", 28, false, false, false, false, false},
		{"active read", 32, true, false, false, false, false},
		{"inside bounds skip", 40, true, false, false, false, false},
		{"calories only", 52, true, true, false, false, false},
		{"distance read", 56, true, true, true, false, false},
		{"avg read", 134, true, true, true, true, false},
		{"max cut by one byte", 139, true, true, true, true, false},
		{"full", modernLen, true, true, true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Decode(full[:tt.size])
			if s == nil {
				t.Fatal("Decode returned nil")
			}
			if s.Version != 512 {
				t.Errorf("Version = %d, want 512", s.Version)
			}
			if (s.ActiveSeconds != nil) != tt.wantActive {
				t.Errorf("ActiveSeconds present = %v, want %v", s.ActiveSeconds != nil, tt.wantActive)
			}
			if (s.Calories != nil) != tt.wantCal {
				t.Errorf("Calories present = %v, want %v", s.Calories != nil, tt.wantCal)
			}
			if (s.Distance != nil) != tt.wantDist {
				t.Errorf("Distance present = %v, want %v", s.Distance != nil, tt.wantDist)
			}
			if (s.AvgHeartRate != nil) != tt.wantAvg {
				t.Errorf("AvgHeartRate present = %v, want %v", s.AvgHeartRate != nil, tt.wantAvg)
			}
			if (s.MaxHeartRate != nil) != tt.wantMax {
				t.Errorf("MaxHeartRate present = %v, want %v", s.MaxHeartRate != nil, tt.wantMax)
			}
		})
	}
}

func TestDecode_LegacyTruncated(t *testing.T) {
	data := newBlob(legacyLen, 3).f32(24, 100).i32(64, 600).f32(68, 50)

	s := Decode(data[:70])
	if s == nil {
		t.Fatal("Decode returned nil")
	}
	checkFloat(t, "Distance", s.Distance, 100)
	checkInt(t, "ActiveSeconds", s.ActiveSeconds, intPtr(600))
	if s.Calories != nil {
		t.Errorf("Calories = %v, want nil", *s.Calories)
	}
	checkInt(t, "AvgHeartRate", s.AvgHeartRate, nil)
}

func TestSummaryDurationMinutes(t *testing.T) {
	tests := []struct {
		name    string
		summary *Summary
		want    *int
	}{
		{"nil summary", nil, nil},
		{"missing active", &Summary{}, nil},
		{"zero active", &Summary{ActiveSeconds: intPtr(0)}, nil},
		{"rounds down", &Summary{ActiveSeconds: intPtr(1829)}, intPtr(30)},
		{"half rounds to even", &Summary{ActiveSeconds: intPtr(1830)}, intPtr(30)},
		{"half rounds up to even", &Summary{ActiveSeconds: intPtr(1890)}, intPtr(32)},
		{"rounds up", &Summary{ActiveSeconds: intPtr(1831)}, intPtr(31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkInt(t, "DurationMinutes", tt.summary.DurationMinutes(), tt.want)
		})
	}
}

func TestFormatString(t *testing.T) {
	tests := map[Format]string{
		FormatLegacy:    "legacy",
		FormatModern:    "modern",
		FormatModern516: "modern-516",
		FormatModern519: "modern-519",
		Format(42):      "unknown",
	}
	for f, want := range tests {
		if got := f.String(); got != want {
			t.Errorf("Format(%d).String() = %q, want %q", int(f), got, want)
		}
	}
}
