package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"gbcompare/internal/huami"
	"gbcompare/internal/service"
	"gbcompare/internal/store"
)

// DriftThreshold is the absolute bpm difference highlighted as drift
const DriftThreshold = 5

// ComparisonTable renders rows side by side with drift columns
func ComparisonTable(rows []service.ComparisonRow) string {
	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("Manual vs decoded (%d days)", len(rows))))

	header := fmt.Sprintf("%-10s  %-8s  %9s  %6s  %9s  %9s  %9s  %6s",
		"Date", "Start", "Avg m/db", "Drift", "Min m/db", "Max m/db", "Rest/Slp", "Drift")
	sections = append(sections, tableHeaderStyle.Render(header))

	for _, r := range rows {
		var m, d figures
		start := "-"
		if r.Manual != nil {
			m = figures{r.Manual.HRAvg, r.Manual.HRMin, r.Manual.HRMax, r.Manual.RestingHR}
			start = r.Manual.Date.Format("15:04")
		}
		if r.Decoded != nil {
			d = figures{r.Decoded.HRAvg, r.Decoded.HRMin, r.Decoded.HRMax, r.Decoded.Sleep.AvgHR}
			start = r.Decoded.Start.Format("15:04")
		}

		avgDrift, avgOK := r.HRAvgDrift()
		sleepDrift, sleepOK := r.SleepHRDrift()

		row := fmt.Sprintf("%-10s  %-8s  %9s  %s  %9s  %9s  %9s  %s",
			r.Date, start,
			pair(m.avg, d.avg), renderDrift(avgDrift, avgOK),
			pair(m.min, d.min),
			pair(m.max, d.max),
			pair(m.sleep, d.sleep), renderDrift(sleepDrift, sleepOK),
		)
		sections = append(sections, tableRowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// DevicesTable renders the devices of an export
func DevicesTable(devices []store.Device) string {
	var sections []string
	sections = append(sections, tableHeaderStyle.Render(fmt.Sprintf("%4s  %-24s  %-12s  %s", "ID", "Name", "Model", "Alias")))
	for _, d := range devices {
		alias := d.Alias
		if alias == "" {
			alias = mutedStyle.Render("-")
		}
		sections = append(sections, tableRowStyle.Render(fmt.Sprintf("%4d  %-24s  %-12s  %s", d.ID, d.Name, d.Model, alias)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SessionsTable renders workout sessions with their decoded summary.
// Ages are relative to now.
func SessionsTable(sessions []store.Session, loc *time.Location, now time.Time) string {
	var sections []string
	sections = append(sections, titleStyle.Render(fmt.Sprintf("Sessions (%d)", len(sessions))))
	sections = append(sections, tableHeaderStyle.Render(fmt.Sprintf("%5s  %-16s  %-14s  %8s  %-10s  %6s  %9s  %s",
		"ID", "Start", "Age", "Length", "Format", "Avg HR", "Distance", "Calories")))

	for _, s := range sessions {
		start := s.Start(loc)
		summary := huami.Decode(s.RawSummary)

		format, avg, dist, cal := "-", "-", "-", "-"
		if summary != nil {
			format = summary.Format.String()
			if summary.AvgHeartRate != nil {
				avg = fmt.Sprintf("%d", *summary.AvgHeartRate)
			}
			if summary.Distance != nil {
				dist = fmt.Sprintf("%.2fkm", *summary.Distance/1000)
			}
			if summary.Calories != nil {
				cal = humanize.Comma(int64(*summary.Calories))
			}
		}

		row := fmt.Sprintf("%5d  %-16s  %-14s  %8s  %-10s  %6s  %9s  %s",
			s.ID,
			start.Format("2006-01-02 15:04"),
			humanize.RelTime(start, now, "ago", "from now"),
			s.Duration().Round(time.Minute).String(),
			format, avg, dist, cal,
		)
		sections = append(sections, tableRowStyle.Render(row))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SleepSummary renders the sleep sessions of one night
func SleepSummary(night *service.SleepNight) string {
	var lines []string
	lines = append(lines, titleStyle.Render(fmt.Sprintf("Sleep %s - %s",
		night.From.Format("2006-01-02 15:04"), night.To.Format("2006-01-02 15:04"))))

	if len(night.Sessions) == 0 {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("No sleep sessions in %d samples", night.Samples)))
	}

	var total time.Duration
	for _, s := range night.Sessions {
		from := time.Unix(s.Start, 0).In(night.From.Location())
		to := time.Unix(s.End, 0).In(night.From.Location())
		total += s.Duration()
		lines = append(lines, tableRowStyle.Render(fmt.Sprintf("%s - %s  %s",
			from.Format("15:04"), to.Format("15:04"), s.Duration().String())))
	}

	if len(night.Sessions) > 1 {
		lines = append(lines, tableRowStyle.Render("Total "+total.String()))
	}
	avg := "-"
	if night.AvgHR != nil {
		avg = fmt.Sprintf("%d bpm", *night.AvgHR)
	}
	lines = append(lines, tableRowStyle.Render("Avg sleep HR "+avg))

	return strings.Join(lines, "\n")
}

func pair(manual, decoded *int) string {
	return orDash(manual) + "/" + orDash(decoded)
}

func orDash(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}

func renderDrift(drift int, ok bool) string {
	if !ok {
		return mutedStyle.Render(fmt.Sprintf("%6s", "-"))
	}
	text := fmt.Sprintf("%+6d", drift)
	if drift >= DriftThreshold || drift <= -DriftThreshold {
		return driftWarnStyle.Render(text)
	}
	return driftOKStyle.Render(text)
}
