package analysis

import "math"

// Heart rate readings outside this range are sensor noise
const (
	MinValidHeartRate = 10
	MaxValidHeartRate = 250
)

// ValidHeartRate reports whether hr is within the plausible range
func ValidHeartRate(hr int) bool {
	return hr >= MinValidHeartRate && hr <= MaxValidHeartRate
}

// HeartRateStats summarizes the valid readings of a window
type HeartRateStats struct {
	Min   int
	Max   int
	Avg   int // truncated mean
	Count int
}

// WindowHeartRate aggregates valid heart rates of samples with
// from <= Timestamp <= to (seconds). Sleep class is ignored.
// ok is false when no reading qualifies.
func WindowHeartRate(samples []Sample, from, to int64) (stats HeartRateStats, ok bool) {
	sum := 0
	for _, s := range samples {
		if s.Timestamp < from || s.Timestamp > to || !ValidHeartRate(s.HeartRate) {
			continue
		}
		if stats.Count == 0 || s.HeartRate < stats.Min {
			stats.Min = s.HeartRate
		}
		if stats.Count == 0 || s.HeartRate > stats.Max {
			stats.Max = s.HeartRate
		}
		sum += s.HeartRate
		stats.Count++
	}

	if stats.Count == 0 {
		return HeartRateStats{}, false
	}
	stats.Avg = sum / stats.Count
	return stats, true
}

// SleepAverageHeartRate averages the valid heart rates of sleeping samples.
// When sessions is non-empty, samples outside [first start, last end] are
// excluded. The result is rounded to the nearest integer.
func SleepAverageHeartRate(samples []Sample, sessions []SleepSession) (int, bool) {
	bounded := len(sessions) > 0
	var start, end int64
	if bounded {
		start = sessions[0].Start
		end = sessions[len(sessions)-1].End
	}

	total, count := 0, 0
	for _, s := range samples {
		if !s.Class.Sleeping() || !ValidHeartRate(s.HeartRate) {
			continue
		}
		if bounded && (s.Timestamp < start || s.Timestamp > end) {
			continue
		}
		total += s.HeartRate
		count++
	}

	if count == 0 {
		return 0, false
	}
	return int(math.RoundToEven(float64(total) / float64(count))), true
}

// SleepHeartRate segments samples and returns their sleep-restricted
// average heart rate
func SleepHeartRate(samples []Sample) (int, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	return SleepAverageHeartRate(samples, SleepSessions(samples))
}
