// ABOUTME: Tests for named date ranges.
// ABOUTME: Covers month and year boundaries and week start.
package daterange_test

import (
	"testing"
	"time"

	"github.com/harperreed/sporttimer/internal/daterange"
)

func TestAllAlwaysContains(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	samples := []time.Time{
		{},
		now,
		now.AddDate(-10, 0, 0),
		now.AddDate(5, 0, 0),
	}
	for _, ts := range samples {
		if !daterange.Contains(ts, daterange.All, now) {
			t.Errorf("Contains(%v, All) = false, want true", ts)
		}
	}
	if _, bounded := daterange.Bounds(daterange.All, now); bounded {
		t.Error("Bounds(All) should be unbounded")
	}
}

func TestBounds(t *testing.T) {
	// 2026-02-27 is a Friday.
	now := time.Date(2026, 2, 27, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		r         daterange.Range
		wantStart time.Time
		wantEnd   time.Time
	}{
		{daterange.Today, time.Date(2026, 2, 27, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)},
		{daterange.ThisWeek, time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)},
		{daterange.ThisMonth, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
		{daterange.LastMonth, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		iv, bounded := daterange.Bounds(tt.r, now)
		if !bounded {
			t.Errorf("Bounds(%s) unbounded", tt.r)
			continue
		}
		if !iv.Start.Equal(tt.wantStart) || !iv.End.Equal(tt.wantEnd) {
			t.Errorf("Bounds(%s) = [%v, %v), want [%v, %v)", tt.r, iv.Start, iv.End, tt.wantStart, tt.wantEnd)
		}
	}
}

func TestLastMonthCrossesYearBoundary(t *testing.T) {
	now := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	iv, _ := daterange.Bounds(daterange.LastMonth, now)

	wantStart := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	wantEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !iv.Start.Equal(wantStart) || !iv.End.Equal(wantEnd) {
		t.Errorf("LastMonth in January = [%v, %v), want [%v, %v)", iv.Start, iv.End, wantStart, wantEnd)
	}
	if !daterange.Contains(time.Date(2025, 12, 31, 23, 59, 59, 0, time.UTC), daterange.LastMonth, now) {
		t.Error("Dec 31 should be in LastMonth for a January now")
	}
	if daterange.Contains(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), daterange.LastMonth, now) {
		t.Error("Jan 1 should not be in LastMonth for a January now")
	}
}

func TestThisMonthOnLastDayOfMonth(t *testing.T) {
	// AddDate normalization must not skip February from Jan 31.
	now := time.Date(2026, 1, 31, 22, 0, 0, 0, time.UTC)
	iv, _ := daterange.Bounds(daterange.ThisMonth, now)
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !iv.End.Equal(want) {
		t.Errorf("ThisMonth end = %v, want %v", iv.End, want)
	}

	march := time.Date(2026, 3, 31, 8, 0, 0, 0, time.UTC)
	iv, _ = daterange.Bounds(daterange.LastMonth, march)
	if want := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC); !iv.Start.Equal(want) {
		t.Errorf("LastMonth start on Mar 31 = %v, want %v", iv.Start, want)
	}
}

func TestFortyDaysAgo(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	old := now.AddDate(0, 0, -40)

	tests := []struct {
		r    daterange.Range
		want bool
	}{
		{daterange.All, true},
		{daterange.Today, false},
		{daterange.ThisWeek, false},
		{daterange.ThisMonth, false},
		{daterange.LastMonth, false},
		{daterange.Last30Days, false},
	}
	for _, tt := range tests {
		if got := daterange.Contains(old, tt.r, now); got != tt.want {
			t.Errorf("Contains(40 days ago, %s) = %v, want %v", tt.r, got, tt.want)
		}
	}
}

func TestLast30Days(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	if !daterange.Contains(now.AddDate(0, 0, -29), daterange.Last30Days, now) {
		t.Error("29 days ago should be within Last30Days")
	}
	if !daterange.Contains(now, daterange.Last30Days, now) {
		t.Error("now should be within Last30Days")
	}
	if !daterange.Contains(now.Add(2*time.Hour), daterange.Last30Days, now) {
		t.Error("a record dated later today should be within Last30Days")
	}
	if daterange.Contains(now.AddDate(0, 0, -31), daterange.Last30Days, now) {
		t.Error("31 days ago should not be within Last30Days")
	}
	iv, bounded := daterange.Bounds(daterange.Last30Days, now)
	if !bounded || !iv.End.IsZero() {
		t.Errorf("Bounds(Last30Days) = [%v, %v), want an open end", iv.Start, iv.End)
	}
}

func TestCalendarWeekStart(t *testing.T) {
	// 2026-03-01 is a Sunday.
	sunday := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	iso := daterange.ISO.StartOfWeek(sunday)
	if want := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC); !iso.Equal(want) {
		t.Errorf("ISO StartOfWeek = %v, want %v", iso, want)
	}

	us := daterange.Calendar{WeekStart: time.Sunday}
	if got := us.StartOfWeek(sunday); !got.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Sunday-start StartOfWeek = %v", got)
	}
	if us.Contains(time.Date(2026, 2, 28, 12, 0, 0, 0, time.UTC), daterange.ThisWeek, sunday) {
		t.Error("Saturday should be outside a Sunday-start week beginning that Sunday")
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input   string
		want    daterange.Range
		wantErr bool
	}{
		{"", daterange.All, false},
		{"all", daterange.All, false},
		{"today", daterange.Today, false},
		{"week", daterange.ThisWeek, false},
		{"this-month", daterange.ThisMonth, false},
		{"last-month", daterange.LastMonth, false},
		{"last-30-days", daterange.Last30Days, false},
		{"yesterday", daterange.All, true},
	}
	for _, tt := range tests {
		got, err := daterange.ParseRange(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRange(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3661, "01:01:01"},
		{-5, "00:00"},
	}
	for _, tt := range tests {
		if got := daterange.FormatClock(tt.seconds); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{3600, "1h 0m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		if got := daterange.FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestDayKeyAndLabel(t *testing.T) {
	ts := time.Date(2025, 7, 8, 18, 45, 0, 0, time.UTC)
	if got := daterange.DayKey(ts); got != "2025-07-08" {
		t.Errorf("DayKey = %q", got)
	}
	if got := daterange.FormatDay(ts); got != "Jul 8, 2025" {
		t.Errorf("FormatDay = %q", got)
	}
}
