// ABOUTME: Timer sessions that outlive a single process.
// ABOUTME: Each call restores the saved snapshot, applies one transition, and saves it back.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/settings"
	"github.com/harperreed/sporttimer/internal/timer"
	"github.com/harperreed/sporttimer/internal/workouts"
)

// ErrNoSession is returned by Pause and Stop when nothing is running or paused.
var ErrNoSession = errors.New("no active timer session")

// Status describes the saved session at one moment.
type Status struct {
	State          timer.State     `json:"state"`
	ElapsedSeconds int             `json:"elapsed_seconds"`
	Elapsed        string          `json:"elapsed"`
	TargetSeconds  int             `json:"target_seconds,omitempty"`
	Progress       float64         `json:"progress"`
	Category       models.Category `json:"category,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	StartedAt      time.Time       `json:"started_at,omitempty"`
}

// StartOptions describe a new session. They are ignored when resuming a
// paused one, except for a non-zero Target.
type StartOptions struct {
	Category models.Category
	Notes    string
	Target   int
}

// Manager runs timer transitions against the persisted session.
type Manager struct {
	store  settings.Store
	engine *workouts.Engine
	cue    timer.Cue
	now    func() time.Time
	logger *log.Entry
}

// Option configures a Manager.
type Option func(*Manager)

// WithCue plays c on start, pause and stop. Pass nil when sound is disabled.
func WithCue(c timer.Cue) Option {
	return func(m *Manager) { m.cue = c }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns a Manager saving sessions in store and recording
// finished ones through engine.
func NewManager(store settings.Store, engine *workouts.Engine, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		engine: engine,
		now:    time.Now,
		logger: log.WithField("component", "session"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// load restores the saved session into a timer that never ticks; elapsed
// time comes from Reconcile. The caller closes it.
func (m *Manager) load() (*timer.Timer, *settings.Session, error) {
	return m.Restore(timer.WithTickInterval(time.Hour))
}

func (m *Manager) save(t *timer.Timer, s *settings.Session) error {
	s.Timer = t.Snapshot()
	if err := m.store.SaveTimerSession(s); err != nil {
		return fmt.Errorf("save timer session: %w", err)
	}
	return nil
}

func status(snap timer.Snapshot, s *settings.Session) Status {
	return Status{
		State:          snap.State,
		ElapsedSeconds: snap.ElapsedSeconds,
		Elapsed:        snap.FormattedElapsed(),
		TargetSeconds:  snap.TargetSeconds,
		Progress:       snap.Progress(),
		Category:       s.Category,
		Notes:          s.Notes,
		StartedAt:      snap.StartedAt,
	}
}

// Start begins a new session or resumes a paused one. A completed session
// must be reset first; Start then returns timer.ErrCompleted.
func (m *Manager) Start(ctx context.Context, opts StartOptions) (Status, error) {
	t, s, err := m.load()
	if err != nil {
		return Status{}, err
	}
	defer t.Close()

	if t.State() == timer.Idle {
		if opts.Category != "" {
			s.Category = opts.Category
		}
		s.Notes = opts.Notes
	}
	if opts.Target > 0 {
		if err := t.SetTarget(opts.Target); err != nil {
			return Status{}, err
		}
	}
	if err := t.Start(); err != nil {
		return status(t.Snapshot(), s), err
	}
	if err := m.save(t, s); err != nil {
		return Status{}, err
	}
	return status(t.Snapshot(), s), nil
}

// Pause halts a running session.
func (m *Manager) Pause(ctx context.Context) (Status, error) {
	t, s, err := m.load()
	if err != nil {
		return Status{}, err
	}
	defer t.Close()

	if !t.Pause() {
		return status(t.Snapshot(), s), fmt.Errorf("%w: timer is %s", ErrNoSession, t.State())
	}
	if err := m.save(t, s); err != nil {
		return Status{}, err
	}
	return status(t.Snapshot(), s), nil
}

// Stop completes the session and records it. A session with no elapsed
// time records nothing and the returned workout is nil. When recording
// fails the session stays as it was so Stop can be retried.
func (m *Manager) Stop(ctx context.Context) (Status, *models.Workout, error) {
	t, s, err := m.load()
	if err != nil {
		return Status{}, nil, err
	}
	defer t.Close()

	res, ok := t.Stop()
	if !ok {
		return status(t.Snapshot(), s), nil, fmt.Errorf("%w: timer is %s", ErrNoSession, t.State())
	}

	w, err := m.engine.CompleteSession(ctx, s.Category, res.ElapsedSeconds, s.Notes)
	if err != nil {
		return Status{}, nil, err
	}
	if err := m.save(t, s); err != nil {
		return Status{}, w, err
	}
	return status(t.Snapshot(), s), w, nil
}

// Reset discards the saved session.
func (m *Manager) Reset(ctx context.Context) error {
	t, _, err := m.load()
	if err != nil {
		// A corrupt session is discarded all the same.
		m.logger.WithError(err).Warn("discarding unreadable timer session")
	} else {
		t.Reset()
		t.Close()
	}
	return m.store.ClearTimerSession()
}

// Status reports the saved session reconciled to now.
func (m *Manager) Status(ctx context.Context) (Status, error) {
	t, s, err := m.load()
	if err != nil {
		return Status{}, err
	}
	defer t.Close()
	return status(t.Snapshot(), s), nil
}

// Restore loads the saved session into a caller-owned timer, for
// interactive use. The caller owns and closes the returned timer.
func (m *Manager) Restore(opts ...timer.Option) (*timer.Timer, *settings.Session, error) {
	saved, err := m.store.TimerSession()
	if err != nil {
		return nil, nil, fmt.Errorf("read timer session: %w", err)
	}
	if saved == nil {
		saved = &settings.Session{Category: models.CategoryOther}
	}
	base := []timer.Option{timer.WithClock(m.now), timer.WithLogger(m.logger)}
	if m.cue != nil {
		base = append(base, timer.WithCue(m.cue))
	}
	t := timer.New(append(base, opts...)...)
	if err := t.Restore(saved.Timer, m.now()); err != nil {
		t.Close()
		return nil, nil, fmt.Errorf("restore timer session: %w", err)
	}
	return t, saved, nil
}

// Save persists a caller-owned timer with its session details.
func (m *Manager) Save(t *timer.Timer, s *settings.Session) error {
	return m.save(t, s)
}

// Complete records the result of a caller-owned timer that was stopped.
func (m *Manager) Complete(ctx context.Context, s *settings.Session, res timer.Result) (*models.Workout, error) {
	return m.engine.CompleteSession(ctx, s.Category, res.ElapsedSeconds, s.Notes)
}
