// ABOUTME: Debounced search over the engine view with cached results.
// ABOUTME: Only the newest submitted request is ever delivered.
package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/coocood/freecache"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/observability"
)

const (
	// DefaultDebounce is how long Submit waits for further input.
	DefaultDebounce = 300 * time.Millisecond

	searchCacheSize = 1024 * 1024
)

// Request is one search-plus-filter input.
type Request struct {
	Query  string
	Filter Filter
}

// Result is the answer to a Request against one view revision.
type Result struct {
	Request  Request
	Workouts []*models.Workout
	Revision uint64
}

// Searcher debounces rapid requests and delivers the newest one's result.
type Searcher struct {
	engine  *Engine
	deliver func(Result)
	delay   time.Duration
	cache   *freecache.Cache
	logger  *log.Entry

	// deliverMu keeps the currency check and the callback together.
	deliverMu sync.Mutex

	mu      sync.Mutex
	gen     uint64
	pending *time.Timer
	cancel  context.CancelFunc
	closed  bool
	wg      sync.WaitGroup
}

// SearcherOption configures a Searcher.
type SearcherOption func(*Searcher)

// WithDebounce sets the debounce delay. Zero or negative uses DefaultDebounce.
func WithDebounce(d time.Duration) SearcherOption {
	return func(s *Searcher) {
		if d > 0 {
			s.delay = d
		}
	}
}

// NewSearcher returns a Searcher over e that hands results to deliver.
func NewSearcher(e *Engine, deliver func(Result), opts ...SearcherOption) *Searcher {
	s := &Searcher{
		engine:  e,
		deliver: deliver,
		delay:   DefaultDebounce,
		cache:   freecache.NewCache(searchCacheSize),
		logger:  log.WithField("component", "search"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit schedules req, superseding any request not yet delivered.
func (s *Searcher) Submit(req Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.supersedeLocked()
	gen := s.gen

	s.wg.Add(1)
	s.pending = time.AfterFunc(s.delay, func() {
		defer s.wg.Done()
		s.fire(gen, req)
	})
}

// Close drops pending work and waits for running callbacks.
func (s *Searcher) Close() {
	s.mu.Lock()
	s.closed = true
	s.supersedeLocked()
	s.mu.Unlock()
	s.wg.Wait()
}

// supersedeLocked invalidates the current generation, stopping a pending
// timer and cancelling an in-flight scan.
func (s *Searcher) supersedeLocked() {
	s.gen++
	if s.pending != nil && s.pending.Stop() {
		s.wg.Done()
	}
	s.pending = nil
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) fire(gen uint64, req Request) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()
	defer cancel()

	res, err := s.run(ctx, req)
	if err != nil {
		s.logger.WithError(err).Debug("search superseded")
		return
	}

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	s.mu.Lock()
	current := gen == s.gen && !s.closed
	s.mu.Unlock()
	if current {
		s.deliver(res)
	}
}

// Lookup answers req immediately, using the same cache as Submit.
func (s *Searcher) Lookup(req Request) Result {
	res, _ := s.run(context.Background(), req)
	return res
}

func (s *Searcher) run(ctx context.Context, req Request) (Result, error) {
	defer observability.ObserveQuery("debounced_search", time.Now())

	ws, rev := s.engine.snapshot()
	now := s.engine.now()
	key := []byte(cacheKey(rev, req, now))

	if raw, err := s.cache.Get(key); err == nil {
		var ids []uuid.UUID
		if err := json.Unmarshal(raw, &ids); err == nil {
			return Result{Request: req, Workouts: pick(ws, ids), Revision: rev}, nil
		}
		s.logger.WithError(err).Debug("discarding unreadable cache entry")
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	out := SearchAndFilter(ws, s.engine.cal, req.Query, req.Filter, now)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	ids := make([]uuid.UUID, len(out))
	for i, w := range out {
		ids[i] = w.ID
	}
	if raw, err := json.Marshal(ids); err == nil {
		if err := s.cache.Set(key, raw, 0); err != nil {
			s.logger.WithError(err).Debug("search cache set failed")
		}
	}
	return Result{Request: req, Workouts: out, Revision: rev}, nil
}

// cacheKey includes the view revision, so entries from older views are
// never read again, and the day, since ranges move with the clock.
func cacheKey(rev uint64, req Request, now time.Time) string {
	cat := "*"
	if req.Filter.Category != nil {
		cat = string(*req.Filter.Category)
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s",
		rev,
		strings.ToLower(strings.TrimSpace(req.Query)),
		cat,
		req.Filter.Range,
		daterange.DayKey(now),
	)
}

// pick returns the records of ws with the given ids, in ids order.
func pick(ws []*models.Workout, ids []uuid.UUID) []*models.Workout {
	byID := make(map[uuid.UUID]*models.Workout, len(ws))
	for _, w := range ws {
		byID[w.ID] = w
	}
	out := make([]*models.Workout, 0, len(ids))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			out = append(out, w)
		}
	}
	return out
}
