// ABOUTME: Tests for Workout and Category models.
// ABOUTME: Validates constructors, builders, parsing, and invariants.
package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout(CategoryCardio, 600)

	if w.ID == uuid.Nil {
		t.Error("expected UUID to be set")
	}
	if w.Category != CategoryCardio {
		t.Errorf("Category = %s, want Cardio", w.Category)
	}
	if w.DurationSeconds != 600 {
		t.Errorf("DurationSeconds = %d, want 600", w.DurationSeconds)
	}
	if w.OccurredAt.IsZero() {
		t.Error("expected OccurredAt to be set")
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestWorkoutWithNotes(t *testing.T) {
	w := NewWorkout(CategoryYoga, 60).WithNotes("morning flow")
	if w.Notes == nil || *w.Notes != "morning flow" {
		t.Errorf("Notes = %v, want 'morning flow'", w.Notes)
	}

	w.WithNotes("")
	if w.Notes != nil {
		t.Error("expected empty notes to be stored as nil")
	}
	if w.NotesText() != "" {
		t.Errorf("NotesText() = %q, want empty", w.NotesText())
	}
}

func TestWorkoutValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(w *Workout)
		wantErr bool
	}{
		{"valid", func(w *Workout) {}, false},
		{"nil id", func(w *Workout) { w.ID = uuid.Nil }, true},
		{"unknown category", func(w *Workout) { w.Category = "Boxing" }, true},
		{"negative duration", func(w *Workout) { w.DurationSeconds = -1 }, true},
		{"zero duration", func(w *Workout) { w.DurationSeconds = 0 }, false},
		{"zero time", func(w *Workout) { w.OccurredAt = time.Time{} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorkout(CategoryStrength, 30)
			tt.mutate(w)
			err := w.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"Strength", CategoryStrength, false},
		{"cardio", CategoryCardio, false},
		{"  YOGA ", CategoryYoga, false},
		{"stretching", CategoryStretching, false},
		{"other", CategoryOther, false},
		{"boxing", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseCategory(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategoryFromStoredFallsBackToOther(t *testing.T) {
	if got := CategoryFromStored("kettlebell"); got != CategoryOther {
		t.Errorf("CategoryFromStored(kettlebell) = %q, want Other", got)
	}
	if got := CategoryFromStored("Cardio"); got != CategoryCardio {
		t.Errorf("CategoryFromStored(Cardio) = %q, want Cardio", got)
	}
}

func TestCategoryPresentation(t *testing.T) {
	for _, c := range AllCategories {
		if c.Label() == "" || c.Icon() == "" || c.Color() == "" {
			t.Errorf("category %s is missing presentation info", c)
		}
	}
	if CategoryCardio.Label() != "Кардио" {
		t.Errorf("Cardio label = %q", CategoryCardio.Label())
	}
}
