// ABOUTME: In-memory Repository implementation for ephemeral runs and tests.
// ABOUTME: A mutex-guarded map; records are copied in and out so callers never alias them.
package storage

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/sporttimer/internal/models"
)

// MemoryStore keeps workouts in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	workouts map[uuid.UUID]*models.Workout
	closed   bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{workouts: make(map[uuid.UUID]*models.Workout)}
}

func clone(w *models.Workout) *models.Workout {
	c := *w
	if w.Notes != nil {
		n := *w.Notes
		c.Notes = &n
	}
	return &c
}

func (m *MemoryStore) CreateWorkout(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return WriteError("create workout", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return WriteError("create workout", ErrReadOnly)
	}
	if _, exists := m.workouts[w.ID]; exists {
		return WriteError("create workout", ErrDuplicateID)
	}
	m.workouts[w.ID] = clone(w)
	return nil
}

func (m *MemoryStore) GetWorkout(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var match *models.Workout
	for id, w := range m.workouts {
		if !strings.HasPrefix(id.String(), idOrPrefix) {
			continue
		}
		if match != nil {
			return nil, Ambiguous(idOrPrefix)
		}
		match = w
	}
	if match == nil {
		return nil, NotFound(idOrPrefix)
	}
	return clone(match), nil
}

func (m *MemoryStore) ListWorkouts(ctx context.Context, q *Query) ([]*models.Workout, error) {
	if err := ctx.Err(); err != nil {
		return nil, ReadError("list workouts", err)
	}
	m.mu.RLock()
	all := make([]*models.Workout, 0, len(m.workouts))
	for _, w := range m.workouts {
		all = append(all, clone(w))
	}
	m.mu.RUnlock()

	// Map order is random; fix it so equal timestamps list deterministically.
	sort.Slice(all, func(i, j int) bool { return all[i].ID.String() < all[j].ID.String() })
	return q.Apply(all), nil
}

func (m *MemoryStore) DeleteWorkout(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.workouts, id)
	return nil
}

func (m *MemoryStore) DeleteWorkouts(ctx context.Context, ids []uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return WriteError("delete workouts", err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.workouts, id)
	}
	return nil
}

func (m *MemoryStore) DeleteAllWorkouts(ctx context.Context, q *Query) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, w := range m.workouts {
		if q.Matches(w) {
			delete(m.workouts, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) Save(ctx context.Context) error {
	return nil
}

func (m *MemoryStore) GetAllData(ctx context.Context) (*ExportData, error) {
	return collectExport(ctx, m)
}

func (m *MemoryStore) ImportData(ctx context.Context, data *ExportData) error {
	return importInto(ctx, m, data)
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Len returns the number of stored workouts.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.workouts)
}
