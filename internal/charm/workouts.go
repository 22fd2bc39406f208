// ABOUTME: Workout CRUD operations for Charm KV storage.
// ABOUTME: Batch deletes are made all-or-nothing by restoring records on failure.
package charm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/storage"
)

// kvRecord is a raw key/value pair held while a batch delete is in flight.
type kvRecord struct {
	key  []byte
	data []byte
}

func workoutKey(id uuid.UUID) []byte {
	return []byte(WorkoutPrefix + id.String())
}

// CreateWorkout stores a new workout in the KV store.
func (c *Client) CreateWorkout(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return storage.WriteError("create workout", err)
	}
	data, err := marshalJSON(w)
	if err != nil {
		return storage.WriteError("create workout", fmt.Errorf("marshal workout: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkWritable(); err != nil {
		return storage.WriteError("create workout", err)
	}
	if err := c.kv.Set(workoutKey(w.ID), data); err != nil {
		return storage.WriteError("create workout", err)
	}
	c.syncIfEnabled()
	return nil
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (c *Client) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	data, err := c.getByIDPrefix(WorkoutPrefix, idOrPrefix)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrAmbiguousPrefix) {
			return nil, err
		}
		return nil, storage.ReadError("get workout", err)
	}

	w, err := decodeWorkout(data)
	if err != nil {
		return nil, storage.ReadError("get workout", err)
	}
	return w, nil
}

func decodeWorkout(data []byte) (*models.Workout, error) {
	w, err := unmarshalJSON[models.Workout](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal workout: %w", err)
	}
	w.Category = models.CategoryFromStored(string(w.Category))
	return w, nil
}

// ListWorkouts retrieves workouts matching q. KV has no query language, so the
// predicate, order, and limit are applied client-side.
func (c *Client) ListWorkouts(ctx context.Context, q *storage.Query) ([]*models.Workout, error) {
	c.mu.RLock()
	keys, values, err := c.listByPrefix(WorkoutPrefix)
	c.mu.RUnlock()
	if err != nil {
		return nil, storage.ReadError("list workouts", err)
	}

	workouts := make([]*models.Workout, 0, len(values))
	for i, data := range values {
		w, err := decodeWorkout(data)
		if err != nil {
			log.Warnf("charm: skipping unreadable workout %s: %s", extractID(string(keys[i]), WorkoutPrefix), err)
			continue
		}
		workouts = append(workouts, w)
	}

	return q.Apply(workouts), nil
}

// DeleteWorkout removes a workout. Deleting a missing id is a no-op.
func (c *Client) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	return c.DeleteWorkouts(ctx, []uuid.UUID{id})
}

// DeleteWorkouts removes all ids or none. Every id is looked up first; if a
// delete fails partway, the records already removed are written back.
func (c *Client) DeleteWorkouts(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.checkWritable(); err != nil {
		return storage.WriteError("delete workouts", err)
	}

	existing, err := c.kv.Keys()
	if err != nil {
		return storage.ReadError("delete workouts", err)
	}
	present := make(map[string]bool, len(existing))
	for _, k := range existing {
		present[string(k)] = true
	}

	var targets []kvRecord
	for _, id := range ids {
		key := workoutKey(id)
		if !present[string(key)] {
			continue
		}
		data, err := c.kv.Get(key)
		if err != nil {
			return storage.ReadError("delete workouts", err)
		}
		targets = append(targets, kvRecord{key: key, data: data})
	}
	if len(targets) == 0 {
		return nil
	}

	var deleted []kvRecord
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return storage.WriteError("delete workouts", multierr.Append(err, c.restore(deleted)))
		}
		if err := c.kv.Delete(t.key); err != nil {
			err = fmt.Errorf("delete %s: %w", t.key, err)
			return storage.WriteError("delete workouts", multierr.Append(err, c.restore(deleted)))
		}
		deleted = append(deleted, t)
	}

	c.syncIfEnabled()
	return nil
}

// restore writes back records removed by an aborted batch.
func (c *Client) restore(records []kvRecord) error {
	var errs error
	for _, r := range records {
		if err := c.kv.Set(r.key, r.data); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("restore %s: %w", r.key, err))
		}
	}
	return errs
}

// DeleteAllWorkouts removes every workout matching q and reports how many.
func (c *Client) DeleteAllWorkouts(ctx context.Context, q *storage.Query) (int, error) {
	var filter storage.Query
	if q != nil {
		filter = *q
		filter.Limit = 0
	}
	matches, err := c.ListWorkouts(ctx, &filter)
	if err != nil {
		return 0, err
	}

	ids := make([]uuid.UUID, 0, len(matches))
	for _, w := range matches {
		ids = append(ids, w.ID)
	}
	if err := c.DeleteWorkouts(ctx, ids); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// Save pushes local changes to Charm Cloud.
func (c *Client) Save(ctx context.Context) error {
	if err := c.Sync(); err != nil {
		return storage.WriteError("save", err)
	}
	return nil
}

// GetAllData retrieves all workouts for export.
func (c *Client) GetAllData(ctx context.Context) (*storage.ExportData, error) {
	workouts, err := c.ListWorkouts(ctx, &storage.Query{Sort: storage.SortOccurredAsc})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return &storage.ExportData{
		Version:    storage.ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "sporttimer",
		Workouts:   workouts,
	}, nil
}

// ImportData writes every workout from an export with a single sync at the end.
func (c *Client) ImportData(ctx context.Context, data *storage.ExportData) error {
	if data == nil {
		return nil
	}

	c.mu.Lock()
	prev := c.autoSync
	c.autoSync = false
	c.mu.Unlock()
	defer c.SetAutoSync(prev)

	for _, w := range data.Workouts {
		if err := c.CreateWorkout(ctx, w); err != nil {
			return fmt.Errorf("import workout %s: %w", w.ID, err)
		}
	}
	return c.Save(ctx)
}
