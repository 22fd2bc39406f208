// ABOUTME: Text search, category/range filters and their intersection.
// ABOUTME: Pure functions over a workout slice.
package workouts

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
)

// Search returns the records whose notes, category label or category key
// contain query, ignoring case. A blank query returns ws unchanged.
func Search(ws []*models.Workout, query string) []*models.Workout {
	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return ws
	}
	out := make([]*models.Workout, 0, len(ws))
	for _, w := range ws {
		if matchesText(w, needle) {
			out = append(out, w)
		}
	}
	return out
}

func matchesText(w *models.Workout, needle string) bool {
	return strings.Contains(strings.ToLower(w.NotesText()), needle) ||
		strings.Contains(strings.ToLower(w.Category.Label()), needle) ||
		strings.Contains(strings.ToLower(string(w.Category)), needle)
}

// ApplyFilter keeps the records matching both the category and the range
// of f, with the range evaluated at now.
func ApplyFilter(ws []*models.Workout, cal daterange.Calendar, f Filter, now time.Time) []*models.Workout {
	if f.IsZero() {
		return ws
	}
	iv, bounded := cal.Bounds(f.Range, now)
	out := make([]*models.Workout, 0, len(ws))
	for _, w := range ws {
		if f.Category != nil && w.Category != *f.Category {
			continue
		}
		if bounded && !iv.Contains(w.OccurredAt) {
			continue
		}
		out = append(out, w)
	}
	return out
}

// SearchAndFilter intersects the search result with the filter result by
// id, keeping search order.
func SearchAndFilter(ws []*models.Workout, cal daterange.Calendar, query string, f Filter, now time.Time) []*models.Workout {
	searched := Search(ws, query)
	if f.IsZero() {
		return searched
	}
	return Intersect(searched, ApplyFilter(ws, cal, f, now))
}

// Intersect returns the records of a whose id also appears in b, in a's order.
func Intersect(a, b []*models.Workout) []*models.Workout {
	keep := make(map[uuid.UUID]struct{}, len(b))
	for _, w := range b {
		keep[w.ID] = struct{}{}
	}
	out := make([]*models.Workout, 0, len(a))
	for _, w := range a {
		if _, ok := keep[w.ID]; ok {
			out = append(out, w)
		}
	}
	return out
}
