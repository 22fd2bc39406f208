// ABOUTME: Tests for the debounced searcher.
// ABOUTME: Checks superseding, caching and shutdown.
package workouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/workouts"
)

func collect(t *testing.T, e *workouts.Engine, delay time.Duration) (*workouts.Searcher, chan workouts.Result) {
	t.Helper()
	results := make(chan workouts.Result, 16)
	s := workouts.NewSearcher(e, func(r workouts.Result) { results <- r }, workouts.WithDebounce(delay))
	t.Cleanup(s.Close)
	return s, results
}

func TestSearcher_DeliversOnlyNewest(t *testing.T) {
	e, _ := newEngine(t)
	yoga := addAt(t, e, models.CategoryYoga, 600, fixedNow, "sun salutation")
	addAt(t, e, models.CategoryCardio, 600, fixedNow, "run")

	s, results := collect(t, e, 20*time.Millisecond)
	for _, q := range []string{"y", "yo", "yog", "yoga"} {
		s.Submit(workouts.Request{Query: q})
	}

	select {
	case r := <-results:
		assert.Equal(t, "yoga", r.Request.Query)
		require.Len(t, r.Workouts, 1)
		assert.Equal(t, yoga.ID, r.Workouts[0].ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case r := <-results:
		t.Fatalf("superseded request %q was delivered", r.Request.Query)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSearcher_SupersededRequestNeverDelivers(t *testing.T) {
	e, _ := newEngine(t)
	addAt(t, e, models.CategoryCardio, 600, fixedNow, "tempo run")

	s, results := collect(t, e, 100*time.Millisecond)
	s.Submit(workouts.Request{Query: "tempo"})
	time.Sleep(5 * time.Millisecond)
	s.Submit(workouts.Request{Query: "swim"})

	select {
	case r := <-results:
		assert.Equal(t, "swim", r.Request.Query)
		assert.Empty(t, r.Workouts)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
	assert.Empty(t, results)
}

func TestSearcher_CloseDropsPending(t *testing.T) {
	e, _ := newEngine(t)
	results := make(chan workouts.Result, 1)
	s := workouts.NewSearcher(e, func(r workouts.Result) { results <- r }, workouts.WithDebounce(20*time.Millisecond))

	s.Submit(workouts.Request{Query: "anything"})
	s.Close()
	s.Submit(workouts.Request{Query: "after close"})

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, results)
}

func TestSearcher_LookupFollowsRevision(t *testing.T) {
	e, _ := newEngine(t)
	cardio := models.CategoryCardio
	addAt(t, e, models.CategoryCardio, 600, fixedNow, "hill repeats")

	s, _ := collect(t, e, time.Hour)
	req := workouts.Request{Query: "hill", Filter: workouts.Filter{Category: &cardio}}

	first := s.Lookup(req)
	require.Len(t, first.Workouts, 1)
	again := s.Lookup(req)
	assert.Equal(t, first.Revision, again.Revision)
	assert.Equal(t, ids(first.Workouts), ids(again.Workouts))

	_, err := e.Add(context.Background(), models.CategoryCardio, 900, "more hill sprints")
	require.NoError(t, err)

	after := s.Lookup(req)
	assert.Greater(t, after.Revision, first.Revision)
	assert.Len(t, after.Workouts, 2, "a new revision is never served from old cache entries")
}
