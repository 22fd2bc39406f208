// ABOUTME: Named date ranges (today, this week, last month, ...) as half-open intervals.
// ABOUTME: Pure calendar arithmetic evaluated against a caller-supplied "now".
package daterange

import (
	"fmt"
	"strings"
	"time"
)

// Range names a window of time relative to now.
type Range int

const (
	All Range = iota
	Today
	ThisWeek
	ThisMonth
	LastMonth
	Last30Days
)

// AllRanges lists every range in presentation order.
var AllRanges = []Range{All, Today, ThisWeek, ThisMonth, LastMonth, Last30Days}

// Calendar holds the locale rules used for week arithmetic.
type Calendar struct {
	WeekStart time.Weekday
}

// ISO is the calendar used when none is configured: weeks start on Monday.
var ISO = Calendar{WeekStart: time.Monday}

func (r Range) String() string {
	switch r {
	case All:
		return "all"
	case Today:
		return "today"
	case ThisWeek:
		return "this-week"
	case ThisMonth:
		return "this-month"
	case LastMonth:
		return "last-month"
	case Last30Days:
		return "last-30-days"
	default:
		return fmt.Sprintf("range(%d)", int(r))
	}
}

// Label returns the display name used by the app.
func (r Range) Label() string {
	switch r {
	case Today:
		return "Сегодня"
	case ThisWeek:
		return "Эта неделя"
	case ThisMonth:
		return "Этот месяц"
	case LastMonth:
		return "Прошлый месяц"
	case Last30Days:
		return "Последние 30 дней"
	default:
		return "Все время"
	}
}

// ParseWeekday resolves a configured week start ("monday", "sunday", ...).
func ParseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return time.Monday, fmt.Errorf("unknown weekday: %s", s)
}

// ParseRange resolves a CLI/MCP range name.
func ParseRange(s string) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return All, nil
	case "today":
		return Today, nil
	case "week", "this-week":
		return ThisWeek, nil
	case "month", "this-month":
		return ThisMonth, nil
	case "last-month":
		return LastMonth, nil
	case "30d", "last-30-days":
		return Last30Days, nil
	default:
		return All, fmt.Errorf("unknown range: %s (use all, today, week, month, last-month, last-30-days)", s)
	}
}

// Interval is a half-open time interval [Start, End). A zero End leaves
// the interval open towards the future.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls in [Start, End).
func (i Interval) Contains(t time.Time) bool {
	if t.Before(i.Start) {
		return false
	}
	return i.End.IsZero() || t.Before(i.End)
}

// Bounds returns the interval for r evaluated at now on the ISO calendar.
// The bool is false for All, which has no bounds.
func Bounds(r Range, now time.Time) (Interval, bool) {
	return ISO.Bounds(r, now)
}

// Contains reports whether t falls within r evaluated at now on the ISO calendar.
func Contains(t time.Time, r Range, now time.Time) bool {
	return ISO.Contains(t, r, now)
}

// Bounds returns the interval for r evaluated at now.
func (c Calendar) Bounds(r Range, now time.Time) (Interval, bool) {
	switch r {
	case Today:
		start := StartOfDay(now)
		return Interval{Start: start, End: start.AddDate(0, 0, 1)}, true
	case ThisWeek:
		start := c.StartOfWeek(now)
		return Interval{Start: start, End: start.AddDate(0, 0, 7)}, true
	case ThisMonth:
		start := StartOfMonth(now)
		return Interval{Start: start, End: start.AddDate(0, 1, 0)}, true
	case LastMonth:
		end := StartOfMonth(now)
		return Interval{Start: end.AddDate(0, -1, 0), End: end}, true
	case Last30Days:
		// Records dated ahead of now still count.
		return Interval{Start: now.AddDate(0, 0, -30)}, true
	default:
		return Interval{}, false
	}
}

// Contains reports whether t falls within r evaluated at now.
func (c Calendar) Contains(t time.Time, r Range, now time.Time) bool {
	iv, bounded := c.Bounds(r, now)
	if !bounded {
		return true
	}
	return iv.Contains(t)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the most recent WeekStart on or before t.
func (c Calendar) StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) - int(c.WeekStart) + 7) % 7
	day := StartOfDay(t)
	return day.AddDate(0, 0, -offset)
}

// StartOfMonth returns midnight on the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
