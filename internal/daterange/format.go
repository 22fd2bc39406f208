// ABOUTME: Clock and duration formatting plus day keys.
// ABOUTME: Shared by the CLI and MCP output.
package daterange

import (
	"fmt"
	"time"
)

const (
	dayKeyLayout   = "2006-01-02"
	dayLabelLayout = "Jan 2, 2006"
)

// DayKey returns a sortable key for the calendar day of t.
func DayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// FormatDay renders t as a medium-style date, e.g. "Jul 8, 2025".
func FormatDay(t time.Time) string {
	return t.Format(dayLabelLayout)
}

// FormatClock formats seconds as HH:MM:SS, or MM:SS below one hour.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatDuration formats seconds as "1h 40m", "45m" or "30s".
func FormatDuration(seconds int) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", s)
}
