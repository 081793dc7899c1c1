package service

import "gbcompare/internal/measurements"

const (
	// DefaultWorkers bounds the per-day fan-out when no worker count is configured
	DefaultWorkers = 4

	// DateKeyLayout is the calendar-day key shared with the measurement file
	DateKeyLayout = measurements.DateKeyLayout
)
