// ABOUTME: Tests for profile aggregates.
// ABOUTME: Uses gofakeit for random workout lists.
package workouts_test

import (
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/workouts"
)

func workout(c models.Category, secs int, at time.Time) *models.Workout {
	return models.NewWorkout(c, secs).WithOccurredAt(at)
}

func TestStats_Empty(t *testing.T) {
	assert.Equal(t, 0, workouts.TotalCount(nil))
	assert.Equal(t, 0, workouts.TotalDuration(nil))
	assert.Equal(t, 0, workouts.AverageDuration(nil))

	c, ok := workouts.MostFrequentCategory(nil)
	assert.False(t, ok)
	assert.Equal(t, models.CategoryOther, c)

	s := workouts.Summarize(nil, daterange.ISO, fixedNow)
	assert.Equal(t, 0, s.TotalCount)
	assert.Empty(t, s.ByCategory)
}

func TestStats_TotalDurationIsSum(t *testing.T) {
	gofakeit.Seed(42)
	var ws []*models.Workout
	want := 0
	for i := 0; i < 50; i++ {
		secs := gofakeit.Number(0, 7200)
		want += secs
		ws = append(ws, workout(models.CategoryOther, secs, fixedNow))
	}
	assert.Equal(t, want, workouts.TotalDuration(ws))
	assert.Equal(t, want/50, workouts.AverageDuration(ws))
}

func TestStats_MostFrequentTieBreak(t *testing.T) {
	ws := []*models.Workout{
		workout(models.CategoryYoga, 60, fixedNow),
		workout(models.CategoryCardio, 60, fixedNow),
		workout(models.CategoryYoga, 60, fixedNow),
		workout(models.CategoryCardio, 60, fixedNow),
	}
	c, ok := workouts.MostFrequentCategory(ws)
	require.True(t, ok)
	assert.Equal(t, models.CategoryCardio, c, "ties go to the category declared first")

	c, _ = workouts.MostFrequentCategory([]*models.Workout{workout(models.CategoryOther, 1, fixedNow)})
	assert.Equal(t, models.CategoryOther, c)
}

func TestStats_InRange(t *testing.T) {
	ws := []*models.Workout{
		workout(models.CategoryCardio, 100, fixedNow.Add(-time.Hour)),
		workout(models.CategoryCardio, 200, fixedNow.AddDate(0, 0, -3)), // Monday
		workout(models.CategoryCardio, 400, fixedNow.AddDate(0, 0, -4)), // last Sunday
		workout(models.CategoryCardio, 800, fixedNow.AddDate(0, -1, 0)),
	}
	assert.Equal(t, 100, workouts.TotalDurationInRange(ws, daterange.ISO, daterange.Today, fixedNow))
	assert.Equal(t, 300, workouts.DurationThisWeek(ws, daterange.ISO, fixedNow))
	assert.Equal(t, 700, workouts.DurationThisWeek(ws, daterange.Calendar{WeekStart: time.Sunday}, fixedNow))
	assert.Equal(t, 700, workouts.DurationThisMonth(ws, fixedNow))
	assert.Equal(t, 800, workouts.TotalDurationInRange(ws, daterange.ISO, daterange.LastMonth, fixedNow))
	assert.Equal(t, 1500, workouts.TotalDurationInRange(ws, daterange.ISO, daterange.All, fixedNow))
}

func TestGroupByDay_Partitions(t *testing.T) {
	gofakeit.Seed(7)
	var ws []*models.Workout
	for i := 0; i < 40; i++ {
		at := fixedNow.Add(-time.Duration(gofakeit.Number(0, 10*24*60)) * time.Minute)
		ws = append(ws, workout(models.CategoryOther, 60, at).WithNotes(gofakeit.HipsterSentence(3)))
	}

	groups := workouts.GroupByDay(ws)

	seen := make(map[uuid.UUID]int)
	keys := make(map[string]bool)
	for i, g := range groups {
		if i > 0 {
			assert.Greater(t, groups[i-1].Key, g.Key, "days are most recent first")
		}
		assert.False(t, keys[g.Key], "day %s appears twice", g.Key)
		keys[g.Key] = true
		for _, w := range g.Workouts {
			seen[w.ID]++
			assert.Equal(t, g.Key, daterange.DayKey(w.OccurredAt))
		}
	}

	assert.Len(t, seen, len(ws))
	for _, w := range ws {
		assert.Equal(t, 1, seen[w.ID])
		assert.True(t, keys[daterange.DayKey(w.OccurredAt)])
	}
}

func TestGroupByDay_KeepsOrderWithinDay(t *testing.T) {
	a := workout(models.CategoryCardio, 60, fixedNow.Add(-time.Hour))
	b := workout(models.CategoryYoga, 60, fixedNow.AddDate(0, 0, -1))
	c := workout(models.CategoryCardio, 60, fixedNow.Add(-2*time.Hour))

	groups := workouts.GroupByDay([]*models.Workout{a, b, c})
	require.Len(t, groups, 2)
	assert.Equal(t, "2026-03-05", groups[0].Key)
	assert.Equal(t, "Mar 5, 2026", groups[0].Label)
	assert.Equal(t, []uuid.UUID{a.ID, c.ID}, ids(groups[0].Workouts))
	assert.Equal(t, []uuid.UUID{b.ID}, ids(groups[1].Workouts))

	assert.Empty(t, workouts.GroupByDay(nil))
}
