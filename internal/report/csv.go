// Package report renders comparison results and heart rate series as CSV
// and terminal output.
package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"gbcompare/internal/service"
)

// StartLayout formats session and measurement times in reports
const StartLayout = "2006-01-02 15:04:05"

// ComparisonHeader is the header row of the comparison CSV
var ComparisonHeader = []string{
	"date", "start",
	"meas_hr_avg", "db_hr_avg",
	"meas_hr_min", "db_hr_min",
	"meas_hr_max", "db_hr_max",
	"meas_sleep_hr", "db_sleep_hr",
}

// WriteComparison writes one CSV row per day. Absent values are empty cells.
func WriteComparison(w io.Writer, rows []service.ComparisonRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ComparisonHeader); err != nil {
		return err
	}

	for _, r := range rows {
		record := make([]string, 0, len(ComparisonHeader))
		record = append(record, r.Date, startOf(r))

		var m figures
		if r.Manual != nil {
			m = figures{r.Manual.HRAvg, r.Manual.HRMin, r.Manual.HRMax, r.Manual.RestingHR}
		}
		var d figures
		if r.Decoded != nil {
			d = figures{r.Decoded.HRAvg, r.Decoded.HRMin, r.Decoded.HRMax, r.Decoded.Sleep.AvgHR}
		}
		record = append(record,
			formatInt(m.avg), formatInt(d.avg),
			formatInt(m.min), formatInt(d.min),
			formatInt(m.max), formatInt(d.max),
			formatInt(m.sleep), formatInt(d.sleep),
		)

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// figures holds the four compared figures of one side of a row
type figures struct {
	avg, min, max, sleep *int
}

// WriteHeartRate writes a heart rate series as timestamp_iso,heart_rate
func WriteHeartRate(w io.Writer, points []service.HeartRatePoint) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"timestamp_iso", "heart_rate"}); err != nil {
		return err
	}
	for _, p := range points {
		if err := cw.Write([]string{p.Time.Format(time.RFC3339), strconv.Itoa(p.HeartRate)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// startOf prefers the decoded session start over the manual timestamp
func startOf(r service.ComparisonRow) string {
	switch {
	case r.Decoded != nil:
		return r.Decoded.Start.Format(StartLayout)
	case r.Manual != nil:
		return r.Manual.Date.Format(StartLayout)
	}
	return ""
}

func formatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
