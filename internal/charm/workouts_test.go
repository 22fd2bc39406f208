// ABOUTME: Unit tests for Charm-based workout storage.
// ABOUTME: Runs against an in-memory kvStore so no Charm account is needed.
package charm

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/storage"
)

type fakeKV struct {
	mu        sync.Mutex
	data      map[string][]byte
	readOnly  bool
	failOnDel string
	syncs     int
	keysErr   error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte)}
}

func (f *fakeKV) Set(key, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (f *fakeKV) Get(key []byte) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[string(key)]
	if !ok {
		return nil, errors.New("key not found")
	}
	return v, nil
}

func (f *fakeKV) Delete(key []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failOnDel != "" && string(key) == f.failOnDel {
		return errors.New("disk full")
	}
	delete(f.data, string(key))
	return nil
}

func (f *fakeKV) Keys() ([][]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.keysErr != nil {
		return nil, f.keysErr
	}
	keys := make([]string, 0, len(f.data))
	for k := range f.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([][]byte, len(keys))
	for i, k := range keys {
		out[i] = []byte(k)
	}
	return out, nil
}

func (f *fakeKV) Sync() error      { f.syncs++; return nil }
func (f *fakeKV) Reset() error     { f.data = make(map[string][]byte); return nil }
func (f *fakeKV) IsReadOnly() bool { return f.readOnly }
func (f *fakeKV) Close() error     { return nil }

func TestWorkoutKeyFormat(t *testing.T) {
	w := models.NewWorkout(models.CategoryCardio, 60)
	key := string(workoutKey(w.ID))

	if key[:8] != "workout:" {
		t.Errorf("Expected key to start with 'workout:', got: %s", key[:8])
	}
}

func TestExtractID(t *testing.T) {
	id := "abc12345-1234-1234-1234-123456789abc"
	key := WorkoutPrefix + id

	extracted := extractID(key, WorkoutPrefix)
	if extracted != id {
		t.Errorf("Expected extracted ID %q, got %q", id, extracted)
	}
}

func TestCreateGetList(t *testing.T) {
	ctx := context.Background()
	c := newClient(newFakeKV())

	older := models.NewWorkout(models.CategoryYoga, 600).WithOccurredAt(time.Now().Add(-time.Hour))
	newer := models.NewWorkout(models.CategoryCardio, 1200).WithNotes("tempo")
	require.NoError(t, c.CreateWorkout(ctx, older))
	require.NoError(t, c.CreateWorkout(ctx, newer))

	got, err := c.GetWorkout(ctx, newer.ShortID())
	require.NoError(t, err)
	assert.Equal(t, newer.ID, got.ID)
	assert.Equal(t, "tempo", got.NotesText())

	all, err := c.ListWorkouts(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)

	yoga := models.CategoryYoga
	filtered, err := c.ListWorkouts(ctx, &storage.Query{Category: &yoga})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, older.ID, filtered[0].ID)
}

func TestGetWorkoutErrors(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newClient(kv)

	_, err := c.GetWorkout(ctx, "deadbeef")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	a := models.NewWorkout(models.CategoryOther, 1)
	a.ID = uuid.MustParse("aaaa0000-0000-4000-8000-000000000001")
	b := models.NewWorkout(models.CategoryOther, 1)
	b.ID = uuid.MustParse("aaaa0000-0000-4000-8000-000000000002")
	require.NoError(t, c.CreateWorkout(ctx, a))
	require.NoError(t, c.CreateWorkout(ctx, b))

	_, err = c.GetWorkout(ctx, "aaaa")
	assert.ErrorIs(t, err, storage.ErrAmbiguousPrefix)

	kv.keysErr = errors.New("badger closed")
	_, err = c.GetWorkout(ctx, "aaaa")
	assert.True(t, storage.IsReadError(err), "got %v", err)
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	kv := newFakeKV()
	kv.readOnly = true
	c := newClient(kv)

	err := c.CreateWorkout(context.Background(), models.NewWorkout(models.CategoryCardio, 10))
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrReadOnly)
	assert.True(t, storage.IsWriteError(err))
}

func TestDeleteWorkoutMissingIsNoop(t *testing.T) {
	c := newClient(newFakeKV())
	assert.NoError(t, c.DeleteWorkout(context.Background(), uuid.New()))
}

func TestDeleteWorkoutsRestoresOnFailure(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newClient(kv)

	a := models.NewWorkout(models.CategoryCardio, 60)
	a.ID = uuid.MustParse("10000000-0000-4000-8000-000000000001")
	b := models.NewWorkout(models.CategoryCardio, 60)
	b.ID = uuid.MustParse("20000000-0000-4000-8000-000000000002")
	require.NoError(t, c.CreateWorkout(ctx, a))
	require.NoError(t, c.CreateWorkout(ctx, b))

	kv.failOnDel = string(workoutKey(b.ID))
	err := c.DeleteWorkouts(ctx, []uuid.UUID{a.ID, b.ID})
	require.Error(t, err)
	assert.True(t, storage.IsWriteError(err))

	all, err := c.ListWorkouts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2, "failed batch must leave every record in place")
}

func TestDeleteAllWorkouts(t *testing.T) {
	ctx := context.Background()
	c := newClient(newFakeKV())
	for i := 0; i < 3; i++ {
		require.NoError(t, c.CreateWorkout(ctx, models.NewWorkout(models.CategoryStrength, 30)))
	}
	require.NoError(t, c.CreateWorkout(ctx, models.NewWorkout(models.CategoryYoga, 30)))

	strength := models.CategoryStrength
	n, err := c.DeleteAllWorkouts(ctx, &storage.Query{Category: &strength, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 3, n, "limit does not cap a bulk delete")

	n, err = c.DeleteAllWorkouts(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestImportDataSyncsOnce(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newClient(kv)

	data := &storage.ExportData{Workouts: []*models.Workout{
		models.NewWorkout(models.CategoryCardio, 10),
		models.NewWorkout(models.CategoryYoga, 20),
	}}
	require.NoError(t, c.ImportData(ctx, data))
	assert.Equal(t, 1, kv.syncs)
	assert.True(t, c.autoSync)

	export, err := c.GetAllData(ctx)
	require.NoError(t, err)
	assert.Len(t, export.Workouts, 2)
}

func TestUnreadableRecordsAreSkipped(t *testing.T) {
	ctx := context.Background()
	kv := newFakeKV()
	c := newClient(kv)
	require.NoError(t, kv.Set([]byte(WorkoutPrefix+uuid.NewString()), []byte("{broken")))
	require.NoError(t, c.CreateWorkout(ctx, models.NewWorkout(models.CategoryOther, 5)))

	all, err := c.ListWorkouts(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
