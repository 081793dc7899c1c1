package analysis

import "time"

const (
	// MinSleepSession is the duration (seconds) a session must exceed to be kept
	MinSleepSession = 5 * 60

	// MaxWakePhase is the awake time (seconds) an open session may absorb
	MaxWakePhase = 2 * 60 * 60
)

// SleepSession is a closed sleep interval in seconds
type SleepSession struct {
	Start int64
	End   int64
}

// Duration returns the wall-clock span of the session
func (s SleepSession) Duration() time.Duration {
	return time.Duration(s.End-s.Start) * time.Second
}

// Segmenter reconstructs sleep sessions from a normalized sample stream.
//
// Time between two consecutive samples is credited to the class of the
// earlier sample. A sleeping sample opens or extends a session; an awake
// sample closes it, as does awake time beyond MaxWakePhase. A closed session
// is kept only when both its span and its light+deep time exceed
// MinSleepSession. The session still open at the end of the stream is kept
// on the light+deep rule alone.
//
// Samples must be added in timestamp order.
type Segmenter struct {
	sessions []SleepSession

	hasPrev   bool
	prevTS    int64
	prevClass SleepClass

	open       bool
	start, end int64

	light, deep, awake int64
}

// Add feeds the next sample
func (g *Segmenter) Add(s Sample) {
	if g.hasPrev {
		delta := s.Timestamp - g.prevTS
		switch g.prevClass {
		case LightSleep:
			g.light += delta
		case DeepSleep:
			g.deep += delta
		default:
			g.awake += delta
			if g.open && g.awake > MaxWakePhase {
				g.close()
			}
		}
	}

	if s.Class.Sleeping() {
		if !g.open {
			g.open = true
			g.start = s.Timestamp
		}
		g.end = s.Timestamp
		g.awake = 0
	} else if g.open {
		g.close()
	}

	g.hasPrev = true
	g.prevTS = s.Timestamp
	g.prevClass = s.Class
}

// Finish closes the stream and returns the sessions found, in order
func (g *Segmenter) Finish() []SleepSession {
	// Only the sleep duration is checked here, not the span.
	if g.open && g.light+g.deep > MinSleepSession {
		g.sessions = append(g.sessions, SleepSession{Start: g.start, End: g.end})
	}
	g.reset()

	sessions := g.sessions
	g.sessions = nil
	g.hasPrev = false
	return sessions
}

func (g *Segmenter) close() {
	if g.end-g.start > MinSleepSession && g.light+g.deep > MinSleepSession {
		g.sessions = append(g.sessions, SleepSession{Start: g.start, End: g.end})
	}
	g.reset()
}

func (g *Segmenter) reset() {
	g.open = false
	g.start, g.end = 0, 0
	g.light, g.deep, g.awake = 0, 0, 0
}

// SleepSessions segments an ordered sample stream
func SleepSessions(samples []Sample) []SleepSession {
	var g Segmenter
	for _, s := range samples {
		g.Add(s)
	}
	return g.Finish()
}

// SleepWindow returns the noon-to-noon window holding the night before t,
// in t's location. A time before noon belongs to the window that started
// at noon the previous day.
func SleepWindow(t time.Time) (from, to time.Time) {
	noon := time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
	from = noon
	if t.Before(noon) {
		from = noon.AddDate(0, 0, -1)
	}
	return from, from.AddDate(0, 0, 1)
}
