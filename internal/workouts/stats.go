// ABOUTME: Aggregates over a workout list for the profile/stats view.
// ABOUTME: All functions are pure; an empty list yields zero values.
package workouts

import (
	"time"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
)

// Summary bundles the aggregates shown on the profile screen.
type Summary struct {
	TotalCount      int                     `json:"total_count"`
	TotalDuration   int                     `json:"total_duration_seconds"`
	AverageDuration int                     `json:"average_duration_seconds"`
	MostFrequent    models.Category         `json:"most_frequent_category"`
	HasMostFrequent bool                    `json:"-"`
	ByCategory      map[models.Category]int `json:"by_category"`
	ThisWeek        int                     `json:"this_week_seconds"`
	ThisMonth       int                     `json:"this_month_seconds"`
}

// Summarize computes every aggregate at once.
func Summarize(ws []*models.Workout, cal daterange.Calendar, now time.Time) Summary {
	top, ok := MostFrequentCategory(ws)
	return Summary{
		TotalCount:      TotalCount(ws),
		TotalDuration:   TotalDuration(ws),
		AverageDuration: AverageDuration(ws),
		MostFrequent:    top,
		HasMostFrequent: ok,
		ByCategory:      CountByCategory(ws),
		ThisWeek:        DurationThisWeek(ws, cal, now),
		ThisMonth:       DurationThisMonth(ws, now),
	}
}

func TotalCount(ws []*models.Workout) int {
	return len(ws)
}

// TotalDuration sums DurationSeconds.
func TotalDuration(ws []*models.Workout) int {
	total := 0
	for _, w := range ws {
		total += w.DurationSeconds
	}
	return total
}

// TotalDurationInRange sums DurationSeconds of the records inside r.
func TotalDurationInRange(ws []*models.Workout, cal daterange.Calendar, r daterange.Range, now time.Time) int {
	return TotalDuration(ApplyFilter(ws, cal, Filter{Range: r}, now))
}

// AverageDuration is TotalDuration / TotalCount in whole seconds, or 0 for
// an empty list.
func AverageDuration(ws []*models.Workout) int {
	if len(ws) == 0 {
		return 0
	}
	return TotalDuration(ws) / len(ws)
}

// CountByCategory counts records per category.
func CountByCategory(ws []*models.Workout) map[models.Category]int {
	counts := make(map[models.Category]int)
	for _, w := range ws {
		counts[w.Category]++
	}
	return counts
}

// MostFrequentCategory returns the category with the most records. Ties go
// to the category declared first in models.AllCategories. An empty list
// returns CategoryOther and false.
func MostFrequentCategory(ws []*models.Workout) (models.Category, bool) {
	if len(ws) == 0 {
		return models.CategoryOther, false
	}
	counts := CountByCategory(ws)
	best, bestN := models.CategoryOther, 0
	for _, c := range models.AllCategories {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best, true
}

// DurationThisWeek sums the records in the calendar week containing now.
func DurationThisWeek(ws []*models.Workout, cal daterange.Calendar, now time.Time) int {
	return TotalDurationInRange(ws, cal, daterange.ThisWeek, now)
}

// DurationThisMonth sums the records in the calendar month containing now.
func DurationThisMonth(ws []*models.Workout, now time.Time) int {
	return TotalDurationInRange(ws, daterange.ISO, daterange.ThisMonth, now)
}
