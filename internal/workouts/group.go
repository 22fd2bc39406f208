// ABOUTME: Groups workouts by calendar day for history views.
// ABOUTME: Days sort newest first; records keep their order inside a day.
package workouts

import (
	"sort"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
)

// DayGroup is the records of one calendar day.
type DayGroup struct {
	Key      string // 2006-01-02
	Label    string // Jan 2, 2006
	Workouts []*models.Workout
}

// GroupByDay partitions ws by the calendar day of OccurredAt. Days are
// ordered most recent first; records keep their input order within a day.
func GroupByDay(ws []*models.Workout) []DayGroup {
	index := make(map[string]int)
	var groups []DayGroup
	for _, w := range ws {
		key := daterange.DayKey(w.OccurredAt)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Key: key, Label: daterange.FormatDay(w.OccurredAt)})
		}
		groups[i].Workouts = append(groups[i].Workouts, w)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Key > groups[j].Key
	})
	return groups
}
