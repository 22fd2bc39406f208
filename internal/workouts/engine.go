// ABOUTME: Workout query engine: a last-known-good view over a storage.Repository.
// ABOUTME: Reads search and filter the view; mutations write through and re-fetch it.
package workouts

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/observability"
	"github.com/harperreed/sporttimer/internal/storage"
)

// ViewState is the observable state published to subscribers.
type ViewState struct {
	Workouts  []*models.Workout
	Loading   bool
	LastError string
	// Revision increases every time the view is replaced by a fresh fetch.
	Revision uint64
}

// Filter narrows the view by category and date range. The zero value
// matches everything.
type Filter struct {
	Category *models.Category
	Range    daterange.Range
}

// IsZero reports whether f matches every record.
func (f Filter) IsZero() bool {
	return f.Category == nil && f.Range == daterange.All
}

// Engine owns the workout view for one process.
type Engine struct {
	repo   storage.Repository
	cal    daterange.Calendar
	now    func() time.Time
	logger *log.Entry

	// writeMu serializes mutation-plus-refetch pairs.
	writeMu sync.Mutex

	mu       sync.RWMutex
	view     []*models.Workout
	loading  bool
	lastErr  string
	revision uint64
	// fetchSeq numbers fetches as they start; applied is the newest one
	// written to the view. An older fetch never replaces a newer view.
	fetchSeq uint64
	applied  uint64
	subs     map[int]func(ViewState)
	nextSub  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithCalendar sets the week rules used by ThisWeek filters and stats.
func WithCalendar(c daterange.Calendar) Option {
	return func(e *Engine) { e.cal = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLogger sets the logger used for store failures.
func WithLogger(l *log.Entry) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an engine over repo. The view starts empty; call Refresh.
func New(repo storage.Repository, opts ...Option) *Engine {
	e := &Engine{
		repo:   repo,
		cal:    daterange.ISO,
		now:    time.Now,
		logger: log.WithField("component", "workouts"),
		subs:   make(map[int]func(ViewState)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time { return e.now() }

// Calendar returns the week rules in effect.
func (e *Engine) Calendar() daterange.Calendar { return e.cal }

// Refresh re-fetches every record, most recent first. On failure the
// previous view is kept and LastError is set. A fetch that finishes after
// a later one has been applied is discarded.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.fetchSeq++
	seq := e.fetchSeq
	e.loading = true
	state := e.stateLocked()
	e.mu.Unlock()
	e.publish(state)

	start := time.Now()
	ws, err := e.repo.ListWorkouts(ctx, &storage.Query{Sort: storage.SortOccurredDesc})
	observability.RecordStoreOp("list", err)
	observability.ObserveQuery("fetch_all", start)
	if err != nil {
		return e.fail("could not load workouts", err)
	}

	e.mu.Lock()
	if seq < e.applied {
		e.mu.Unlock()
		e.logger.WithField("fetch", seq).Debug("discarding superseded fetch")
		return nil
	}
	e.applied = seq
	e.view = ws
	e.loading = false
	e.lastErr = ""
	e.revision++
	state = e.stateLocked()
	e.mu.Unlock()

	e.publish(state)
	return nil
}

// Workouts returns the current view, most recent first.
func (e *Engine) Workouts() []*models.Workout {
	ws, _ := e.snapshot()
	return ws
}

// Recent returns at most n records from the top of the view.
func (e *Engine) Recent(n int) []*models.Workout {
	ws := e.Workouts()
	if n >= 0 && len(ws) > n {
		ws = ws[:n]
	}
	return ws
}

// State returns the observable state.
func (e *Engine) State() ViewState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stateLocked()
}

// LastError returns the message of the most recent store failure, or ""
// once a later fetch succeeds.
func (e *Engine) LastError() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// Revision returns the number of successful fetches so far.
func (e *Engine) Revision() uint64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.revision
}

// Search matches query against the current view.
func (e *Engine) Search(query string) []*models.Workout {
	defer observability.ObserveQuery("search", time.Now())
	ws, _ := e.snapshot()
	return Search(ws, query)
}

// Filter applies f to the current view.
func (e *Engine) Filter(f Filter) []*models.Workout {
	defer observability.ObserveQuery("filter", time.Now())
	ws, _ := e.snapshot()
	return ApplyFilter(ws, e.cal, f, e.now())
}

// SearchAndFilter narrows the search result by the filter result.
func (e *Engine) SearchAndFilter(query string, f Filter) []*models.Workout {
	defer observability.ObserveQuery("search_filter", time.Now())
	ws, _ := e.snapshot()
	return SearchAndFilter(ws, e.cal, query, f, e.now())
}

// Stats computes the profile aggregates over the current view.
func (e *Engine) Stats(now time.Time) Summary {
	ws, _ := e.snapshot()
	return Summarize(ws, e.cal, now)
}

// Add records a workout that happened now.
func (e *Engine) Add(ctx context.Context, category models.Category, durationSeconds int, notes string) (*models.Workout, error) {
	w := models.NewWorkout(category, durationSeconds).
		WithOccurredAt(e.now()).
		WithNotes(strings.TrimSpace(notes))
	if err := e.AddRecord(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// AddRecord persists a prepared record and refreshes the view.
func (e *Engine) AddRecord(ctx context.Context, w *models.Workout) error {
	if err := w.Validate(); err != nil {
		return fmt.Errorf("invalid workout: %w", err)
	}
	return e.mutate(ctx, "could not save workout", "insert", func(ctx context.Context) error {
		return e.repo.CreateWorkout(ctx, w)
	})
}

// CompleteSession records a finished timer session. A session with no
// elapsed time records nothing and returns nil.
func (e *Engine) CompleteSession(ctx context.Context, category models.Category, elapsedSeconds int, notes string) (*models.Workout, error) {
	if elapsedSeconds <= 0 {
		e.logger.Debug("session ended with no elapsed time; nothing recorded")
		return nil, nil
	}
	return e.Add(ctx, category, elapsedSeconds, notes)
}

// Delete removes one record. A missing id is not an error.
func (e *Engine) Delete(ctx context.Context, id uuid.UUID) error {
	return e.mutate(ctx, "could not delete workout", "delete", func(ctx context.Context) error {
		return e.repo.DeleteWorkout(ctx, id)
	})
}

// DeleteMany removes every id or, on failure, none of them.
func (e *Engine) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return e.mutate(ctx, "could not delete workouts", "delete_many", func(ctx context.Context) error {
		return e.repo.DeleteWorkouts(ctx, ids)
	})
}

// ClearAll removes every record and reports how many were removed.
func (e *Engine) ClearAll(ctx context.Context) (int, error) {
	var n int
	err := e.mutate(ctx, "could not clear workouts", "delete_all", func(ctx context.Context) error {
		var err error
		n, err = e.repo.DeleteAllWorkouts(ctx, nil)
		return err
	})
	return n, err
}

// Save flushes pending writes in the underlying store.
func (e *Engine) Save(ctx context.Context) error {
	err := e.repo.Save(ctx)
	observability.RecordStoreOp("save", err)
	if err != nil {
		return e.fail("could not save changes", err)
	}
	return nil
}

// Subscribe registers fn for every published ViewState. Callbacks run on
// the goroutine that triggered the change.
func (e *Engine) Subscribe(fn func(ViewState)) (cancel func()) {
	e.mu.Lock()
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subs, id)
		e.mu.Unlock()
	}
}

func (e *Engine) mutate(ctx context.Context, action, op string, write func(context.Context) error) error {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	err := write(ctx)
	observability.RecordStoreOp(op, err)
	if err != nil {
		return e.fail(action, err)
	}
	return e.Refresh(ctx)
}

// fail records err as the user-visible LastError and keeps the view.
func (e *Engine) fail(action string, err error) error {
	wrapped := fmt.Errorf("%s: %w", action, err)
	e.logger.WithError(err).Warn(action)

	e.mu.Lock()
	e.loading = false
	e.lastErr = wrapped.Error()
	state := e.stateLocked()
	e.mu.Unlock()

	e.publish(state)
	return wrapped
}

// snapshot returns a copy of the view slice and its revision.
func (e *Engine) snapshot() ([]*models.Workout, uint64) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]*models.Workout, len(e.view))
	copy(out, e.view)
	return out, e.revision
}

func (e *Engine) stateLocked() ViewState {
	ws := make([]*models.Workout, len(e.view))
	copy(ws, e.view)
	return ViewState{
		Workouts:  ws,
		Loading:   e.loading,
		LastError: e.lastErr,
		Revision:  e.revision,
	}
}

func (e *Engine) publish(state ViewState) {
	e.mu.RLock()
	subs := make([]func(ViewState), 0, len(e.subs))
	for _, fn := range e.subs {
		subs = append(subs, fn)
	}
	e.mu.RUnlock()

	for _, fn := range subs {
		fn(state)
	}
}

// Get resolves a full id or unique id prefix against the store.
func (e *Engine) Get(ctx context.Context, idOrPrefix string) (*models.Workout, error) {
	w, err := e.repo.GetWorkout(ctx, idOrPrefix)
	observability.RecordStoreOp("get", err)
	return w, err
}
