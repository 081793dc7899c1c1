package service

import (
	"cmp"
	"context"
	"log/slog"
	"slices"

	"gbcompare/internal/store"
)

// Store is the read side of a Gadgetbridge export the services depend on.
// *store.DB satisfies it.
type Store interface {
	ListSessions(ctx context.Context, filter store.SessionFilter) ([]store.Session, error)
	GetSession(ctx context.Context, id int64) (*store.Session, error)
	SampleTimestampUnit(ctx context.Context, deviceID int64) (store.TimestampUnit, error)
	Samples(ctx context.Context, deviceID, from, to int64) ([]store.Sample, error)
	LastValidRawKind(ctx context.Context, deviceID, before int64, excluded []int) (kind int, found bool, err error)
}

var _ Store = (*store.DB)(nil)

// ensureSorted enforces timestamp order at the ingestion boundary. The
// normalizer and segmenter silently produce garbage on unsorted input.
func ensureSorted(logger *slog.Logger, samples []store.Sample, window string) []store.Sample {
	byTimestamp := func(a, b store.Sample) int {
		return cmp.Compare(a.Timestamp, b.Timestamp)
	}
	if slices.IsSortedFunc(samples, byTimestamp) {
		return samples
	}

	logger.Warn("samples not ordered by timestamp, sorting", "window", window, "count", len(samples))
	sorted := slices.Clone(samples)
	slices.SortStableFunc(sorted, byTimestamp)
	return sorted
}
