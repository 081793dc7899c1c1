// Package measurements loads manually recorded workout measurements, the
// ground truth the decoded Gadgetbridge data is compared against.
package measurements

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"
)

// DateKeyLayout formats the calendar-day key measurements are joined on
const DateKeyLayout = "2006-01-02"

// ErrMissingDateColumn is returned when the header has no date column
var ErrMissingDateColumn = errors.New("date column not found in header")

// Columns maps measurement fields to CSV header names
type Columns struct {
	Date      string `toml:"date"`
	Duration  string `toml:"duration"`
	HRAvg     string `toml:"hr_avg"`
	HRMin     string `toml:"hr_min"`
	HRMax     string `toml:"hr_max"`
	RestingHR string `toml:"resting_hr"`
	VO2       string `toml:"vo2"`
}

// DefaultColumns returns the headers of the spreadsheet export
func DefaultColumns() Columns {
	return Columns{
		Date:      "Date et Heure",
		Duration:  "Duree (min)",
		HRAvg:     "Moyenne pulsations/min",
		HRMin:     "Min pulsations/min",
		HRMax:     "Max pulsations/min",
		RestingHR: "FC Repos pulsations/min",
		VO2:       "VO2",
	}
}

// Measurement is one manually recorded workout
type Measurement struct {
	Date            time.Time
	DurationMinutes *int
	HRAvg           *int
	HRMin           *int
	HRMax           *int
	RestingHR       *int // compared against the sleep heart rate
	VO2             *int
}

// DateKey returns the calendar day of the measurement
func (m Measurement) DateKey() string {
	return m.Date.Format(DateKeyLayout)
}

// Load reads a semicolon-separated measurement file
func Load(path string, cols Columns, loc *time.Location) (map[string]Measurement, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening measurements: %w", err)
	}
	defer f.Close()

	return Parse(f, cols, loc)
}

// Parse reads measurements keyed by calendar day. Rows with an empty date
// are skipped and a later row for the same day replaces an earlier one.
// Only the date column is required; other missing columns read as absent.
func Parse(r io.Reader, cols Columns, loc *time.Location) (map[string]Measurement, error) {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return map[string]Measurement{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}
	if _, ok := index[cols.Date]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingDateColumn, cols.Date)
	}

	result := make(map[string]Measurement)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading measurements: %w", err)
		}

		field := func(name string) string {
			i, ok := index[name]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}

		raw := strings.TrimSpace(field(cols.Date))
		if raw == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		date, err := ParseDateTime(raw, loc)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		m := Measurement{
			Date:            date,
			DurationMinutes: ParseInt(field(cols.Duration)),
			HRAvg:           ParseInt(field(cols.HRAvg)),
			HRMin:           ParseInt(field(cols.HRMin)),
			HRMax:           ParseInt(field(cols.HRMax)),
			RestingHR:       ParseInt(field(cols.RestingHR)),
			VO2:             ParseInt(field(cols.VO2)),
		}
		result[m.DateKey()] = m
	}

	return result, nil
}

// ParseDateTime parses "DD/MM/YYYY H:M:S" where the time components may be
// unpadded
func ParseDateTime(value string, loc *time.Location) (time.Time, error) {
	datePart, timePart, ok := strings.Cut(strings.TrimSpace(value), " ")
	if !ok {
		return time.Time{}, fmt.Errorf("invalid date %q: expected date and time", value)
	}

	parts := strings.Split(strings.TrimSpace(timePart), ":")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid time %q: expected H:M:S", timePart)
	}
	var hms [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid time %q: %w", timePart, err)
		}
		hms[i] = n
	}

	normalized := fmt.Sprintf("%s %02d:%02d:%02d", datePart, hms[0], hms[1], hms[2])
	t, err := time.ParseInLocation("02/01/2006 15:04:05", normalized, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseFloat parses a spreadsheet number, accepting a decimal comma and a
// percent sign. Empty or malformed values return nil.
func ParseFloat(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	value = strings.ReplaceAll(value, "%", "")
	value = strings.ReplaceAll(value, ",", ".")
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseInt parses a spreadsheet number rounded half to even
func ParseInt(value string) *int {
	f := ParseFloat(value)
	if f == nil {
		return nil
	}
	n := int(math.RoundToEven(*f))
	return &n
}
