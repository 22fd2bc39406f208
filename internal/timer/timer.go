// ABOUTME: Session timer state machine: Idle, Running, Paused, Completed.
// ABOUTME: Ticks once per interval, guards stale ticks by generation, and reconciles from snapshots.
package timer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/observability"
)

// State is the lifecycle position of a timer session.
type State int

const (
	Idle State = iota
	Running
	Paused
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState is the inverse of State.String.
func ParseState(s string) (State, error) {
	for _, st := range []State{Idle, Running, Paused, Completed} {
		if st.String() == s {
			return st, nil
		}
	}
	return Idle, fmt.Errorf("unknown timer state: %s", s)
}

// MarshalText encodes the state by name.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	st, err := ParseState(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

var (
	// ErrCompleted is returned by Start on a finished session; Reset first.
	ErrCompleted = errors.New("timer session is completed; reset before starting again")
	// ErrNegativeTarget is returned by SetTarget for targets below zero.
	ErrNegativeTarget = errors.New("target must be zero or positive")
)

// DefaultTickInterval is the period between elapsed-second increments.
const DefaultTickInterval = time.Second

// Result describes a stopped session.
type Result struct {
	ElapsedSeconds int
	StartedAt      time.Time
	StoppedAt      time.Time
}

// Snapshot is the persistable state of a session. For a running session,
// SegmentStart and AccumulatedSeconds let a later process recompute elapsed
// time from the wall clock.
type Snapshot struct {
	State              State     `json:"state"`
	ElapsedSeconds     int       `json:"elapsed_seconds"`
	AccumulatedSeconds int       `json:"accumulated_seconds"`
	TargetSeconds      int       `json:"target_seconds"`
	StartedAt          time.Time `json:"started_at,omitempty"`
	SegmentStart       time.Time `json:"segment_start,omitempty"`
}

// Progress reports elapsed/target clamped to [0, 1]; 0 without a target.
func (s Snapshot) Progress() float64 {
	if s.TargetSeconds <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, float64(s.ElapsedSeconds)/float64(s.TargetSeconds)))
}

// FormattedElapsed renders ElapsedSeconds as MM:SS or HH:MM:SS.
func (s Snapshot) FormattedElapsed() string {
	return daterange.FormatClock(s.ElapsedSeconds)
}

// Option configures a Timer.
type Option func(*Timer)

// WithTickInterval overrides the tick period. Tests use short intervals.
func WithTickInterval(d time.Duration) Option {
	return func(t *Timer) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithClock overrides the wall clock used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithCue plays c on transitions. A nil cue disables cues.
func WithCue(c Cue) Option {
	return func(t *Timer) { t.cue = c }
}

// WithLogger sets the logger used for cue failures.
func WithLogger(l *log.Entry) Option {
	return func(t *Timer) { t.logger = l }
}

// Timer is a single-owner session timer. All methods are safe for
// concurrent use.
type Timer struct {
	mu           sync.Mutex
	state        State
	elapsed      int
	target       int
	segmentBase  int
	segmentStart time.Time
	startedAt    time.Time

	// gen changes on every halt so a tick from an earlier run never lands.
	gen  uint64
	stop chan struct{}
	// wg is only added to under mu while closed is false.
	wg     sync.WaitGroup
	closed bool

	interval time.Duration
	now      func() time.Time
	cue      Cue
	logger   *log.Entry

	subs    map[int]func(Snapshot)
	nextSub int
}

// New returns an idle timer.
func New(opts ...Option) *Timer {
	t := &Timer{
		interval: DefaultTickInterval,
		now:      time.Now,
		logger:   log.WithField("component", "timer"),
		subs:     make(map[int]func(Snapshot)),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Start moves Idle or Paused to Running. It is a no-op when already
// running and fails with ErrCompleted on a finished session.
func (t *Timer) Start() error {
	t.mu.Lock()
	switch t.state {
	case Running:
		t.mu.Unlock()
		return nil
	case Completed:
		t.mu.Unlock()
		return ErrCompleted
	}

	now := t.now()
	if t.state == Idle {
		t.startedAt = now
	}
	t.state = Running
	t.segmentBase = t.elapsed
	t.segmentStart = now
	t.launchLocked()
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.transition("start", CueStart, snap)
	return nil
}

// Pause moves Running to Paused and reports whether anything changed.
func (t *Timer) Pause() bool {
	t.mu.Lock()
	if t.state != Running {
		t.mu.Unlock()
		return false
	}
	t.haltLocked()
	t.state = Paused
	t.segmentBase = t.elapsed
	t.segmentStart = time.Time{}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.transition("pause", CuePause, snap)
	return true
}

// Stop completes a Running or Paused session. The bool is false, and the
// Result zero, when there was no session to stop.
func (t *Timer) Stop() (Result, bool) {
	t.mu.Lock()
	if t.state != Running && t.state != Paused {
		t.mu.Unlock()
		return Result{}, false
	}
	t.haltLocked()
	t.state = Completed
	t.segmentBase = t.elapsed
	t.segmentStart = time.Time{}
	res := Result{
		ElapsedSeconds: t.elapsed,
		StartedAt:      t.startedAt,
		StoppedAt:      t.now(),
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.transition("stop", CueStop, snap)
	return res, true
}

// Reset returns to Idle from any state, zeroing elapsed time and target.
func (t *Timer) Reset() {
	t.mu.Lock()
	t.haltLocked()
	t.state = Idle
	t.elapsed = 0
	t.target = 0
	t.segmentBase = 0
	t.segmentStart = time.Time{}
	t.startedAt = time.Time{}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	observability.RecordTransition("reset")
	t.notify(snap)
}

// SetTarget sets the countdown target in seconds; 0 means stopwatch mode.
func (t *Timer) SetTarget(seconds int) error {
	if seconds < 0 {
		return ErrNegativeTarget
	}
	t.mu.Lock()
	t.target = seconds
	snap := t.snapshotLocked()
	t.mu.Unlock()
	t.notify(snap)
	return nil
}

// State returns the current state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Elapsed returns the elapsed seconds counted so far.
func (t *Timer) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

// Progress reports elapsed/target clamped to [0, 1]; 0 without a target.
func (t *Timer) Progress() float64 {
	return t.Snapshot().Progress()
}

// FormattedElapsed renders elapsed time as MM:SS or HH:MM:SS.
func (t *Timer) FormattedElapsed() string {
	return t.Snapshot().FormattedElapsed()
}

// Snapshot captures the session for persistence or display.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		State:              t.state,
		ElapsedSeconds:     t.elapsed,
		AccumulatedSeconds: t.segmentBase,
		TargetSeconds:      t.target,
		StartedAt:          t.startedAt,
		SegmentStart:       t.segmentStart,
	}
}

// Reconcile computes the elapsed seconds a snapshot represents at now.
// Running sessions add the whole seconds since SegmentStart; a clock that
// moved backwards adds nothing.
func Reconcile(s Snapshot, now time.Time) int {
	if s.State != Running || s.SegmentStart.IsZero() {
		return s.ElapsedSeconds
	}
	since := now.Sub(s.SegmentStart)
	if since < 0 {
		since = 0
	}
	return s.AccumulatedSeconds + int(since/time.Second)
}

// Restore replaces the session with s, reconciled at now. A running
// snapshot resumes ticking; its segment is re-anchored so the partial
// second carries over to the next reconcile.
func (t *Timer) Restore(s Snapshot, now time.Time) error {
	if s.ElapsedSeconds < 0 || s.AccumulatedSeconds < 0 {
		return fmt.Errorf("invalid snapshot: negative elapsed time")
	}
	if s.TargetSeconds < 0 {
		return ErrNegativeTarget
	}

	t.mu.Lock()
	t.haltLocked()
	t.state = s.State
	t.elapsed = Reconcile(s, now)
	t.target = s.TargetSeconds
	t.startedAt = s.StartedAt
	t.segmentBase = t.elapsed
	t.segmentStart = time.Time{}
	if t.state == Running {
		t.segmentStart = now
		if !s.SegmentStart.IsZero() && !now.Before(s.SegmentStart) {
			counted := time.Duration(t.elapsed-s.AccumulatedSeconds) * time.Second
			t.segmentStart = s.SegmentStart.Add(counted)
		}
		t.launchLocked()
	}
	snap := t.snapshotLocked()
	t.mu.Unlock()

	t.notify(snap)
	return nil
}

// Subscribe registers fn to receive a snapshot after every change,
// including ticks. fn runs on the goroutine that made the change and must
// not call back into the timer's mutating methods.
func (t *Timer) Subscribe(fn func(Snapshot)) (cancel func()) {
	t.mu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.subs, id)
		t.mu.Unlock()
	}
}

// Close stops the tick goroutine and waits for it and any cue playback,
// leaving the state as it is.
func (t *Timer) Close() {
	t.mu.Lock()
	t.closed = true
	t.haltLocked()
	t.mu.Unlock()
	t.wg.Wait()
}

// launchLocked starts a tick goroutine bound to the current generation.
func (t *Timer) launchLocked() {
	t.haltLocked()
	if t.closed {
		return
	}
	stop := make(chan struct{})
	t.stop = stop
	gen := t.gen
	t.wg.Add(1)
	go t.run(gen, stop)
}

// haltLocked cancels any running tick goroutine.
func (t *Timer) haltLocked() {
	t.gen++
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}

func (t *Timer) run(gen uint64, stop <-chan struct{}) {
	defer t.wg.Done()
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.tick(gen)
		}
	}
}

// tick applies one increment if gen is still current and the session is
// running.
func (t *Timer) tick(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.state != Running {
		t.mu.Unlock()
		return
	}
	t.elapsed++
	reached := t.target > 0 && t.elapsed == t.target
	snap := t.snapshotLocked()
	t.mu.Unlock()

	if reached {
		t.playCue(CueTarget)
	}
	t.notify(snap)
}

func (t *Timer) transition(name string, kind CueKind, snap Snapshot) {
	observability.RecordTransition(name)
	t.playCue(kind)
	t.notify(snap)
}

func (t *Timer) notify(snap Snapshot) {
	t.mu.Lock()
	subs := make([]func(Snapshot), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// playCue runs the cue in the background; failures are logged only.
func (t *Timer) playCue(kind CueKind) {
	if t.cue == nil {
		return
	}
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.wg.Add(1)
	t.mu.Unlock()
	go func() {
		defer t.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := t.cue.Play(ctx, kind); err != nil {
			t.logger.WithError(err).WithField("cue", kind.String()).Warn("cue playback failed")
		}
	}()
}
