package analysis

import "gbcompare/internal/store"

// Kind is a Huami activity kind after masking
type Kind int

// Huami kind codes
const (
	KindUnset      Kind = -1 // no meaningful kind seen yet
	KindNoChange   Kind = 0
	KindIgnore     Kind = 10
	KindLightSleep Kind = 9
	KindDeepSleep  Kind = 11
)

// RawKindMask keeps the kind bits of a raw sample code; the high bits carry
// flags unrelated to classification.
const RawKindMask = 0x0F

// NoOpRawKinds are the raw codes skipped when looking back for a seed kind
var NoOpRawKinds = []int{int(KindNoChange), int(KindIgnore), int(KindUnset), 16, 80, 96, 112}

// SleepClass is the sleep classification of a normalized sample
type SleepClass int

const (
	Awake SleepClass = iota // not sleeping, or unknown
	LightSleep
	DeepSleep
)

func (c SleepClass) String() string {
	switch c {
	case LightSleep:
		return "light"
	case DeepSleep:
		return "deep"
	default:
		return "awake"
	}
}

// Sleeping reports whether the class counts toward a sleep session
func (c SleepClass) Sleeping() bool {
	return c != Awake
}

// SleepClass maps a normalized kind to its sleep classification
func (k Kind) SleepClass() SleepClass {
	switch k {
	case KindLightSleep:
		return LightSleep
	case KindDeepSleep:
		return DeepSleep
	default:
		return Awake
	}
}

// SeedKind turns the result of a lookback query into a normalizer seed
func SeedKind(raw int, found bool) Kind {
	if !found {
		return KindUnset
	}
	return Kind(raw & RawKindMask)
}

// NormalizeKind applies one carry-forward step. No-change and ignore codes
// resolve to last; any other code becomes the new last valid kind.
func NormalizeKind(raw int, last Kind) (kind, newLast Kind) {
	kind = Kind(raw)
	if kind != KindUnset {
		kind = Kind(raw & RawKindMask)
	}

	if kind == KindIgnore || kind == KindNoChange {
		return last, last
	}
	return kind, kind
}

// KindNormalizer carries the last valid kind across a sample stream.
// Samples must be fed in timestamp order.
type KindNormalizer struct {
	last Kind
}

// NewKindNormalizer returns a normalizer seeded with the last valid kind
// before the analysis window, or KindUnset.
func NewKindNormalizer(seed Kind) *KindNormalizer {
	return &KindNormalizer{last: seed}
}

// Next normalizes one raw code
func (n *KindNormalizer) Next(raw int) Kind {
	kind, last := NormalizeKind(raw, n.last)
	n.last = last
	return kind
}

// LastValid returns the carried kind
func (n *KindNormalizer) LastValid() Kind {
	return n.last
}

// Sample is a band sample after kind normalization
type Sample struct {
	Timestamp int64 // seconds
	Kind      Kind
	Class     SleepClass
	HeartRate int
}

// Normalize runs the normalizer over samples ordered by timestamp and
// converts their timestamps to seconds.
func Normalize(samples []store.Sample, seed Kind, unit store.TimestampUnit) []Sample {
	n := NewKindNormalizer(seed)
	out := make([]Sample, len(samples))
	for i, s := range samples {
		kind := n.Next(s.RawKind)
		out[i] = Sample{
			Timestamp: unit.ToSeconds(s.Timestamp),
			Kind:      kind,
			Class:     kind.SleepClass(),
			HeartRate: s.HeartRate,
		}
	}
	return out
}
