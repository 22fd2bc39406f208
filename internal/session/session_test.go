// ABOUTME: Tests for timer sessions kept between processes.
// ABOUTME: Uses a fake clock to move time between calls.
package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/settings"
	"github.com/harperreed/sporttimer/internal/storage"
	"github.com/harperreed/sporttimer/internal/storage/storagemock"
	"github.com/harperreed/sporttimer/internal/timer"
	"github.com/harperreed/sporttimer/internal/workouts"
)

// TestMain will run goleak after all tests have been run in the package
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("github.com/golang/glog.(*fileSink).flushDaemon"))
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func setup(t *testing.T, repo storage.Repository) (*Manager, *fakeClock, settings.Store) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)}
	engine := workouts.New(repo, workouts.WithClock(clock.Now))
	store := settings.NewMemoryStore()
	return NewManager(store, engine, WithClock(clock.Now)), clock, store
}

func TestSessionAcrossCalls(t *testing.T) {
	repo := storage.NewMemoryStore()
	m, clock, _ := setup(t, repo)
	ctx := context.Background()

	st, err := m.Start(ctx, StartOptions{Category: models.CategoryCardio, Notes: "intervals", Target: 600})
	require.NoError(t, err)
	assert.Equal(t, timer.Running, st.State)
	assert.Equal(t, 600, st.TargetSeconds)

	clock.Advance(90 * time.Second)
	st, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, st.ElapsedSeconds)
	assert.Equal(t, "01:30", st.Elapsed)
	assert.InDelta(t, 0.15, st.Progress, 1e-9)

	st, err = m.Pause(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Paused, st.State)

	clock.Advance(time.Hour)
	st, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 90, st.ElapsedSeconds, "paused time does not count")

	// Resuming keeps the original category and notes.
	_, err = m.Start(ctx, StartOptions{Category: models.CategoryYoga, Notes: "ignored"})
	require.NoError(t, err)
	clock.Advance(30 * time.Second)

	st, w, err := m.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Completed, st.State)
	require.NotNil(t, w)
	assert.Equal(t, 120, w.DurationSeconds)
	assert.Equal(t, models.CategoryCardio, w.Category)
	assert.Equal(t, "intervals", w.NotesText())
	assert.Equal(t, 1, repo.Len())

	_, err = m.Start(ctx, StartOptions{})
	assert.ErrorIs(t, err, timer.ErrCompleted)

	require.NoError(t, m.Reset(ctx))
	st, err = m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Idle, st.State)
	assert.Equal(t, 0, st.ElapsedSeconds)
}

func TestStopWithoutElapsedTimeRecordsNothing(t *testing.T) {
	repo := storage.NewMemoryStore()
	m, _, _ := setup(t, repo)
	ctx := context.Background()

	_, err := m.Start(ctx, StartOptions{Category: models.CategoryYoga})
	require.NoError(t, err)
	st, w, err := m.Stop(ctx)
	require.NoError(t, err)
	assert.Nil(t, w)
	assert.Equal(t, timer.Completed, st.State)
	assert.Equal(t, 0, repo.Len())
}

func TestPauseAndStopWithoutSession(t *testing.T) {
	m, _, _ := setup(t, storage.NewMemoryStore())
	ctx := context.Background()

	_, err := m.Pause(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
	_, _, err = m.Stop(ctx)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestStopFailureKeepsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := storagemock.NewMockRepository(ctrl)
	repo.EXPECT().CreateWorkout(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	m, clock, _ := setup(t, repo)
	ctx := context.Background()

	_, err := m.Start(ctx, StartOptions{Category: models.CategoryStrength})
	require.NoError(t, err)
	clock.Advance(45 * time.Second)

	_, w, err := m.Stop(ctx)
	require.Error(t, err)
	assert.Nil(t, w)

	st, err := m.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, timer.Running, st.State, "the session can be stopped again")
	assert.Equal(t, 45, st.ElapsedSeconds)
}

func TestResetDiscardsCorruptSession(t *testing.T) {
	m, _, store := setup(t, storage.NewMemoryStore())
	require.NoError(t, store.SaveTimerSession(&settings.Session{
		Timer: timer.Snapshot{State: timer.Paused, ElapsedSeconds: -3},
	}))

	_, err := m.Status(context.Background())
	require.Error(t, err)

	require.NoError(t, m.Reset(context.Background()))
	st, err := m.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, timer.Idle, st.State)
}

func TestCuesFollowTransitions(t *testing.T) {
	var mu sync.Mutex
	var kinds []timer.CueKind
	cue := timer.CueFunc(func(ctx context.Context, k timer.CueKind) error {
		mu.Lock()
		kinds = append(kinds, k)
		mu.Unlock()
		return nil
	})

	clock := &fakeClock{now: time.Date(2026, 6, 10, 18, 0, 0, 0, time.UTC)}
	engine := workouts.New(storage.NewMemoryStore(), workouts.WithClock(clock.Now))
	m := NewManager(settings.NewMemoryStore(), engine, WithClock(clock.Now), WithCue(cue))
	ctx := context.Background()

	_, err := m.Start(ctx, StartOptions{})
	require.NoError(t, err)
	clock.Advance(5 * time.Second)
	_, err = m.Pause(ctx)
	require.NoError(t, err)
	_, _, err = m.Stop(ctx)
	require.NoError(t, err)

	// Each call closes its timer, which waits for the cue to finish.
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []timer.CueKind{timer.CueStart, timer.CuePause, timer.CueStop}, kinds)
}
