package service

import (
	"context"
	"sort"

	"gbcompare/internal/measurements"
)

// ComparisonRow pairs the manual and decoded sides of one calendar day.
// Either side may be nil, never both.
type ComparisonRow struct {
	Date    string
	Manual  *measurements.Measurement
	Decoded *DayResult
}

// HRAvgDrift returns decoded minus manual average heart rate
func (r ComparisonRow) HRAvgDrift() (int, bool) {
	if r.Manual == nil || r.Decoded == nil || r.Manual.HRAvg == nil || r.Decoded.HRAvg == nil {
		return 0, false
	}
	return *r.Decoded.HRAvg - *r.Manual.HRAvg, true
}

// SleepHRDrift returns decoded sleep heart rate minus manual resting heart rate
func (r ComparisonRow) SleepHRDrift() (int, bool) {
	if r.Manual == nil || r.Decoded == nil || r.Manual.RestingHR == nil || r.Decoded.Sleep.AvgHR == nil {
		return 0, false
	}
	return *r.Decoded.Sleep.AvgHR - *r.Manual.RestingHR, true
}

// Reconcile outer-joins manual measurements and decoded days on date key.
// Rows are ordered by date.
func Reconcile(manual map[string]measurements.Measurement, days []DayResult) []ComparisonRow {
	byDate := make(map[string]*ComparisonRow, len(manual)+len(days))
	row := func(date string) *ComparisonRow {
		r, ok := byDate[date]
		if !ok {
			r = &ComparisonRow{Date: date}
			byDate[date] = r
		}
		return r
	}

	for date, m := range manual {
		row(date).Manual = &m
	}
	for i := range days {
		row(days[i].Date).Decoded = &days[i]
	}

	rows := make([]ComparisonRow, 0, len(byDate))
	for _, r := range byDate {
		rows = append(rows, *r)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Date < rows[j].Date
	})
	return rows
}

// Compare analyzes the export and reconciles it against manual measurements
func (s *CompareService) Compare(ctx context.Context, manual map[string]measurements.Measurement) ([]ComparisonRow, error) {
	days, err := s.Days(ctx)
	if err != nil {
		return nil, err
	}

	rows := Reconcile(manual, days)
	matched := 0
	for _, r := range rows {
		if r.Manual != nil && r.Decoded != nil {
			matched++
		}
	}
	s.logger.Info("reconciled",
		"manual_days", len(manual),
		"decoded_days", len(days),
		"matched", matched,
	)
	return rows, nil
}
