package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"gbcompare/internal/analysis"
	"gbcompare/internal/huami"
	"gbcompare/internal/store"
)

// CompareService derives per-day workout and sleep figures from a
// Gadgetbridge export
type CompareService struct {
	store    Store
	deviceID int64
	loc      *time.Location
	workers  int
	logger   *slog.Logger
}

// Options configures a CompareService
type Options struct {
	DeviceID int64          // 0 analyzes sessions of every device
	Location *time.Location // calendar-day boundaries; defaults to time.Local
	Workers  int            // concurrent days; defaults to DefaultWorkers
	Logger   *slog.Logger   // defaults to slog.Default()
}

// NewCompareService creates a new compare service
func NewCompareService(st Store, opts Options) *CompareService {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &CompareService{
		store:    st,
		deviceID: opts.DeviceID,
		loc:      opts.Location,
		workers:  opts.Workers,
		logger:   opts.Logger,
	}
}

// DayResult is the decoded side of one calendar day
type DayResult struct {
	Date      string
	SessionID int64
	DeviceID  int64
	Start     time.Time
	End       time.Time
	Summary   *huami.Summary // nil when the blob is missing or unreadable

	DurationMinutes *int
	HRAvg           *int // from the summary blob
	HRMin           *int // from samples inside the workout
	HRMax           *int
	SampleHRAvg     *int // truncated mean of the same samples

	Sleep SleepNight
}

// SleepNight is the noon-to-noon sleep analysis preceding a workout
type SleepNight struct {
	From     time.Time
	To       time.Time
	Sessions []analysis.SleepSession
	AvgHR    *int
	Samples  int
}

// Days analyzes every session and returns one result per calendar day,
// ordered by date. When a day has several sessions the latest start wins,
// and on equal starts the later row.
func (s *CompareService) Days(ctx context.Context) ([]DayResult, error) {
	sessions, err := s.store.ListSessions(ctx, store.SessionFilter{DeviceID: s.deviceID})
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}

	latest := make(map[string]store.Session)
	for _, sess := range sessions {
		key := sess.Start(s.loc).Format(DateKeyLayout)
		if prev, ok := latest[key]; ok {
			if prev.StartMs > sess.StartMs {
				continue
			}
			s.logger.Debug("several sessions on one day, keeping latest", "date", key, "dropped", prev.ID, "kept", sess.ID)
		}
		latest[key] = sess
	}

	units := make(map[int64]store.TimestampUnit)
	for _, sess := range latest {
		if _, ok := units[sess.DeviceID]; ok {
			continue
		}
		unit, err := s.store.SampleTimestampUnit(ctx, sess.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("detecting timestamp unit for device %d: %w", sess.DeviceID, err)
		}
		s.logger.Debug("sample timestamp unit", "device", sess.DeviceID, "unit", unit)
		units[sess.DeviceID] = unit
	}

	var (
		mu      sync.Mutex
		results = make([]DayResult, 0, len(latest))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, sess := range latest {
		g.Go(func() error {
			day, err := s.analyze(gctx, sess, units[sess.DeviceID])
			if err != nil {
				return fmt.Errorf("analyzing session %d: %w", sess.ID, err)
			}
			mu.Lock()
			results = append(results, *day)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Date < results[j].Date
	})
	return results, nil
}

// AnalyzeSession runs the decode, workout and sleep pipeline for one session
func (s *CompareService) AnalyzeSession(ctx context.Context, sess store.Session) (*DayResult, error) {
	unit, err := s.store.SampleTimestampUnit(ctx, sess.DeviceID)
	if err != nil {
		return nil, fmt.Errorf("detecting timestamp unit: %w", err)
	}
	return s.analyze(ctx, sess, unit)
}

func (s *CompareService) analyze(ctx context.Context, sess store.Session, unit store.TimestampUnit) (*DayResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := sess.Start(s.loc)
	day := &DayResult{
		Date:      start.Format(DateKeyLayout),
		SessionID: sess.ID,
		DeviceID:  sess.DeviceID,
		Start:     start,
		End:       sess.End(s.loc),
		Summary:   huami.Decode(sess.RawSummary),
	}
	if day.Summary == nil && len(sess.RawSummary) > 0 {
		s.logger.Debug("summary blob not decodable", "session", sess.ID, "bytes", len(sess.RawSummary))
	}
	if day.Summary != nil {
		day.DurationMinutes = day.Summary.DurationMinutes()
		day.HRAvg = day.Summary.AvgHeartRate
	}

	from, to := unit.FromMillis(sess.StartMs), unit.FromMillis(sess.EndMs)
	workout, err := s.normalizedWindow(ctx, sess.DeviceID, unit, from, to, "workout")
	if err != nil {
		return nil, err
	}
	if stats, ok := analysis.WindowHeartRate(workout, unit.ToSeconds(from), unit.ToSeconds(to)); ok {
		day.HRMin = &stats.Min
		day.HRMax = &stats.Max
		day.SampleHRAvg = &stats.Avg
	}

	night, err := s.sleepNight(ctx, sess.DeviceID, unit, start)
	if err != nil {
		return nil, err
	}
	day.Sleep = *night

	s.logger.Debug("analyzed session",
		"session", sess.ID,
		"date", day.Date,
		"workout_samples", len(workout),
		"sleep_sessions", len(night.Sessions),
	)
	return day, nil
}

// Sleep analyzes the noon-to-noon window containing the night before t
func (s *CompareService) Sleep(ctx context.Context, deviceID int64, t time.Time) (*SleepNight, error) {
	unit, err := s.store.SampleTimestampUnit(ctx, deviceID)
	if err != nil {
		return nil, fmt.Errorf("detecting timestamp unit: %w", err)
	}
	return s.sleepNight(ctx, deviceID, unit, t.In(s.loc))
}

func (s *CompareService) sleepNight(ctx context.Context, deviceID int64, unit store.TimestampUnit, t time.Time) (*SleepNight, error) {
	from, to := analysis.SleepWindow(t)
	samples, err := s.normalizedWindow(ctx, deviceID, unit, unit.FromSeconds(from.Unix()), unit.FromSeconds(to.Unix()), "sleep")
	if err != nil {
		return nil, err
	}

	night := &SleepNight{
		From:     from,
		To:       to,
		Sessions: analysis.SleepSessions(samples),
		Samples:  len(samples),
	}
	if avg, ok := analysis.SleepAverageHeartRate(samples, night.Sessions); ok {
		night.AvgHR = &avg
	}
	return night, nil
}

// normalizedWindow loads samples with from <= ts <= to (native units),
// seeds the normalizer from the samples before the window and normalizes.
func (s *CompareService) normalizedWindow(ctx context.Context, deviceID int64, unit store.TimestampUnit, from, to int64, window string) ([]analysis.Sample, error) {
	raw, found, err := s.store.LastValidRawKind(ctx, deviceID, from, analysis.NoOpRawKinds)
	if err != nil {
		return nil, fmt.Errorf("looking up %s seed kind: %w", window, err)
	}

	samples, err := s.store.Samples(ctx, deviceID, from, to)
	if err != nil {
		return nil, fmt.Errorf("loading %s samples: %w", window, err)
	}
	samples = ensureSorted(s.logger, samples, window)

	return analysis.Normalize(samples, analysis.SeedKind(raw, found), unit), nil
}
