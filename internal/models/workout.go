// ABOUTME: Workout model for recorded exercise sessions.
// ABOUTME: Records are immutable once created; builders only run before persisting.
package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Workout represents one completed exercise session.
type Workout struct {
	ID              uuid.UUID `json:"id"`
	Category        Category  `json:"category"`
	DurationSeconds int       `json:"duration_seconds"`
	OccurredAt      time.Time `json:"occurred_at"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// NewWorkout creates a new Workout with generated UUID and current timestamp.
func NewWorkout(category Category, durationSeconds int) *Workout {
	now := time.Now()
	return &Workout{
		ID:              uuid.New(),
		Category:        category,
		DurationSeconds: durationSeconds,
		OccurredAt:      now,
		CreatedAt:       now,
	}
}

// WithNotes sets notes on the workout. Empty notes are stored as absent.
func (w *Workout) WithNotes(notes string) *Workout {
	if notes == "" {
		w.Notes = nil
		return w
	}
	w.Notes = &notes
	return w
}

// WithOccurredAt sets a custom completion timestamp.
func (w *Workout) WithOccurredAt(t time.Time) *Workout {
	w.OccurredAt = t
	return w
}

// NotesText returns the notes or an empty string.
func (w *Workout) NotesText() string {
	if w.Notes == nil {
		return ""
	}
	return *w.Notes
}

// Duration returns DurationSeconds as a time.Duration.
func (w *Workout) Duration() time.Duration {
	return time.Duration(w.DurationSeconds) * time.Second
}

// ShortID returns the 8-character ID prefix shown in listings.
func (w *Workout) ShortID() string {
	return w.ID.String()[:8]
}

// Validate checks the invariants every persisted record must hold.
func (w *Workout) Validate() error {
	if w == nil {
		return errors.New("workout is nil")
	}
	if w.ID == uuid.Nil {
		return errors.New("workout id is empty")
	}
	if !w.Category.IsValid() {
		return fmt.Errorf("invalid category %q", w.Category)
	}
	if w.DurationSeconds < 0 {
		return fmt.Errorf("duration must be non-negative, got %d", w.DurationSeconds)
	}
	if w.OccurredAt.IsZero() {
		return errors.New("occurred_at is not set")
	}
	return nil
}
