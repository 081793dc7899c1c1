// Package huami decodes the raw activity summary blob that Gadgetbridge
// stores for Huami/Zepp workouts.
package huami

import "math"

// Summary holds the fields recovered from one summary blob.
// Optional fields are nil when the blob was too short to contain them or
// when the format version does not carry them.
type Summary struct {
	Version       uint16
	RawKind       uint16
	Format        Format
	ActiveSeconds *int
	Distance      *float32 // meters
	Calories      *float32
	AvgHeartRate  *int
	MinHeartRate  *int // modern-519 only
	MaxHeartRate  *int // modern formats only
}

// Decode parses a summary blob. It returns nil when the blob carries no
// data: empty, shorter than the version field, or a 519 blob too short for
// its fixed seek. Truncation anywhere else yields a Summary whose unread
// fields are nil.
func Decode(data []byte) *Summary {
	if len(data) == 0 {
		return nil
	}

	r := newReader(data)
	version, ok := r.u16()
	if !ok {
		return nil
	}

	s := &Summary{Version: version, Format: formatFor(version)}
	if kind, ok := r.u16(); ok {
		s.RawKind = kind
	}
	r.skip(headerSkip)

	// Once the reader is exhausted every remaining read and skip is a no-op.
	for _, st := range layouts[s.Format] {
		switch st.op {
		case opSkip:
			r.skip(st.n)
		case opSeek:
			if !r.seek(st.n) {
				return nil
			}
		case opRead:
			if st.enc == encF32 {
				if v, ok := r.f32(); ok {
					s.setFloat(st.field, v)
				}
				continue
			}
			if v, ok := r.integer(st.enc); ok {
				s.setInt(st.field, v)
			}
		}
	}

	return s
}

// DurationMinutes returns the active duration rounded half to even to
// whole minutes, or nil when active seconds are missing or zero.
func (s *Summary) DurationMinutes() *int {
	if s == nil || s.ActiveSeconds == nil || *s.ActiveSeconds == 0 {
		return nil
	}
	m := int(math.RoundToEven(float64(*s.ActiveSeconds) / 60))
	return &m
}

func (s *Summary) setInt(f field, v int) {
	switch f {
	case fieldActiveSeconds:
		s.ActiveSeconds = &v
	case fieldAvgHeartRate:
		s.AvgHeartRate = &v
	case fieldMinHeartRate:
		s.MinHeartRate = &v
	case fieldMaxHeartRate:
		s.MaxHeartRate = &v
	}
}

func (s *Summary) setFloat(f field, v float32) {
	switch f {
	case fieldDistance:
		s.Distance = &v
	case fieldCalories:
		s.Calories = &v
	}
}
