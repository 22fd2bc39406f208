// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers sqlite-to-memory, memory-to-sqlite, and idempotent re-runs.
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/sporttimer/internal/models"
)

func TestMigrateDataSQLiteToMemory(t *testing.T) {
	ctx := context.Background()
	src := setupTestDB(t)
	w1 := mustCreate(t, src, models.NewWorkout(models.CategoryCardio, 1800).WithNotes("morning run"))
	mustCreate(t, src, models.NewWorkout(models.CategoryYoga, 900).WithOccurredAt(time.Now().Add(-time.Hour)))

	dst := NewMemoryStore()
	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 2 {
		t.Errorf("Expected 2 migrated workouts, got %d", summary.Workouts)
	}

	got, err := dst.GetWorkout(ctx, w1.ID.String())
	if err != nil {
		t.Fatalf("GetWorkout on destination failed: %v", err)
	}
	if got.NotesText() != "morning run" || got.DurationSeconds != 1800 {
		t.Errorf("Migrated workout mismatch: %+v", got)
	}
}

func TestMigrateDataMemoryToSQLite(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	for i := 0; i < 5; i++ {
		mustCreate(t, src, models.NewWorkout(models.CategoryStrength, 60*(i+1)).WithOccurredAt(time.Now().Add(-time.Duration(i)*time.Hour)))
	}

	dst := setupTestDB(t)
	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 5 {
		t.Errorf("Expected 5 migrated workouts, got %d", summary.Workouts)
	}

	all, err := dst.ListWorkouts(ctx, nil)
	if err != nil {
		t.Fatalf("ListWorkouts failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 workouts in destination, got %d", len(all))
	}
}

func TestMigrateDataSkipsExisting(t *testing.T) {
	ctx := context.Background()
	src := NewMemoryStore()
	w := mustCreate(t, src, models.NewWorkout(models.CategoryOther, 30))
	mustCreate(t, src, models.NewWorkout(models.CategoryOther, 40))

	dst := NewMemoryStore()
	mustCreate(t, dst, w)

	summary, err := MigrateData(ctx, src, dst)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Workouts != 1 || summary.Skipped != 1 {
		t.Errorf("Expected 1 migrated and 1 skipped, got %+v", summary)
	}
}

func TestIsDirNonEmpty(t *testing.T) {
	dir := t.TempDir()

	nonEmpty, err := IsDirNonEmpty(filepath.Join(dir, "missing"))
	if err != nil || nonEmpty {
		t.Errorf("missing dir: got %v, %v", nonEmpty, err)
	}

	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || nonEmpty {
		t.Errorf("empty dir: got %v, %v", nonEmpty, err)
	}

	if err := os.WriteFile(filepath.Join(dir, "f"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	nonEmpty, err = IsDirNonEmpty(dir)
	if err != nil || !nonEmpty {
		t.Errorf("non-empty dir: got %v, %v", nonEmpty, err)
	}
}
