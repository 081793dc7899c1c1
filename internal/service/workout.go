package service

import (
	"context"
	"fmt"
	"time"

	"gbcompare/internal/store"
)

// HeartRatePoint is one heart rate reading of a workout
type HeartRatePoint struct {
	Time      time.Time
	HeartRate int
}

// WorkoutHeartRate returns the session's heart rate series in time order.
// Samples without a reading are dropped; implausible readings are kept.
func (s *CompareService) WorkoutHeartRate(ctx context.Context, sess store.Session) ([]HeartRatePoint, error) {
	unit, err := s.store.SampleTimestampUnit(ctx, sess.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("detecting timestamp unit: %w", err)
	}

	samples, err := s.store.Samples(ctx, sess.DeviceID, unit.FromMillis(sess.StartMs), unit.FromMillis(sess.EndMs))
	if err != nil {
		return nil, fmt.Errorf("loading workout samples: %w", err)
	}
	samples = ensureSorted(s.logger, samples, "workout")

	points := make([]HeartRatePoint, 0, len(samples))
	for _, smp := range samples {
		if smp.HeartRate <= 0 {
			continue
		}
		points = append(points, HeartRatePoint{
			Time:      time.UnixMilli(unit.ToMillis(smp.Timestamp)).In(s.loc),
			HeartRate: smp.HeartRate,
		})
	}
	return points, nil
}

// Session returns one session by id
func (s *CompareService) Session(ctx context.Context, id int64) (*store.Session, error) {
	sess, err := s.store.GetSession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting session %d: %w", id, err)
	}
	return sess, nil
}

// Sessions lists sessions of the configured device within [from, to)
func (s *CompareService) Sessions(ctx context.Context, from, to time.Time) ([]store.Session, error) {
	sessions, err := s.store.ListSessions(ctx, store.SessionFilter{DeviceID: s.deviceID, From: from, To: to})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	return sessions, nil
}
