// ABOUTME: Data migration between sporttimer storage backends.
// ABOUTME: Copies every workout record from source to destination.

package storage

import (
	"context"
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Workouts int
	Skipped  int
}

// MigrateData copies all workouts from src to dst, oldest first.
// Records whose id already exists in dst are skipped, so a migration
// that failed halfway can be re-run.
func MigrateData(ctx context.Context, src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	workouts, err := src.ListWorkouts(ctx, &Query{Sort: SortOccurredAsc})
	if err != nil {
		return nil, fmt.Errorf("list source workouts: %w", err)
	}

	for _, w := range workouts {
		if _, err := dst.GetWorkout(ctx, w.ID.String()); err == nil {
			summary.Skipped++
			continue
		}
		if err := dst.CreateWorkout(ctx, w); err != nil {
			return summary, fmt.Errorf("create workout %s: %w", w.ID, err)
		}
		summary.Workouts++
	}

	if err := dst.Save(ctx); err != nil {
		return summary, fmt.Errorf("save destination: %w", err)
	}
	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
