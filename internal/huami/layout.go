package huami

// Format identifies the summary layout selected by the version field.
type Format int

const (
	FormatLegacy    Format = iota // version < 512
	FormatModern                  // version >= 512 without a sub-variant
	FormatModern516               // 4 extra header bytes, no min HR
	FormatModern519               // min HR followed by a fixed seek to 0x8C
)

const (
	// modernVersion is the first version using the modern layout.
	modernVersion = 512

	// headerSkip covers the timestamp (8) and base coordinate (12) fields
	// following version and raw kind.
	headerSkip = 8 + 12

	// modern519Offset is the absolute offset the 519 layout continues from.
	modern519Offset = 0x8C
)

func (f Format) String() string {
	switch f {
	case FormatLegacy:
		return "legacy"
	case FormatModern:
		return "modern"
	case FormatModern516:
		return "modern-516"
	case FormatModern519:
		return "modern-519"
	default:
		return "unknown"
	}
}

// formatFor dispatches on the version field.
func formatFor(version uint16) Format {
	switch {
	case version == 519:
		return FormatModern519
	case version == 516:
		return FormatModern516
	case version >= modernVersion:
		return FormatModern
	default:
		return FormatLegacy
	}
}

type opcode int

const (
	opSkip opcode = iota
	opRead
	opSeek
)

type encoding int

const (
	encU16 encoding = iota
	encI16
	encI32
	encF32
)

type field int

const (
	fieldNone field = iota // read and discarded
	fieldActiveSeconds
	fieldDistance
	fieldCalories
	fieldAvgHeartRate
	fieldMinHeartRate
	fieldMaxHeartRate
)

// step is one entry of a layout's field table.
type step struct {
	op    opcode
	n     int // skip length or seek offset
	enc   encoding
	field field
}

func skip(n int) step {
	return step{op: opSkip, n: n}
}

func seek(offset int) step {
	return step{op: opSeek, n: offset}
}

func read(enc encoding, f field) step {
	return step{op: opRead, enc: enc, field: f}
}

func discard(enc encoding) step {
	return read(enc, fieldNone)
}

func steps(groups ...[]step) []step {
	var out []step
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var modernBody = []step{
	discard(encI32), // steps
	read(encI32, fieldActiveSeconds),
	skip(16), // lat/long bounds
	read(encF32, fieldCalories),
	read(encF32, fieldDistance),
	skip(20),        // ascent/descent/altitude
	skip(12),        // speed
	skip(12),        // pace
	skip(12),        // cadence
	skip(12),        // stride
	discard(encF32), // secondary distance
	skip(4),         // unknown
	read(encU16, fieldAvgHeartRate),
	skip(4), // pace + stride
	read(encU16, fieldMaxHeartRate),
}

// layouts holds the field table of every format, applied after the header.
var layouts = map[Format][]step{
	FormatModern: modernBody,
	FormatModern516: steps(
		[]step{skip(4)},
		modernBody,
	),
	FormatModern519: steps(
		[]step{
			skip(1),
			read(encU16, fieldMinHeartRate),
			seek(modern519Offset),
		},
		modernBody,
	),
	FormatLegacy: {
		read(encF32, fieldDistance),
		skip(16),        // ascent/descent/altitude
		skip(16),        // lat/long bounds
		discard(encI32), // steps
		read(encI32, fieldActiveSeconds),
		read(encF32, fieldCalories),
		skip(16), // speed/pace/stride
		skip(4),
		skip(28), // swim/other
		read(encI16, fieldAvgHeartRate),
	},
}
