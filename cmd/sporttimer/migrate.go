// ABOUTME: CLI command for copying workouts between storage backends.
// ABOUTME: Moves data between sqlite, charm and memory; re-runnable and idempotent.
package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/config"
	"github.com/harperreed/sporttimer/internal/storage"
)

var (
	migrateFrom   string
	migrateTo     string
	migrateDryRun bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy workouts between storage backends",
	Long: `Copy every workout from one storage backend to another.

BACKENDS:

  sqlite   ~/.local/share/sporttimer/sporttimer.db
  charm    Charm KV, synced across devices
  memory   nothing persisted

Workouts already present in the destination (same ID) are skipped, so an
interrupted migration can simply be run again. The source is not modified.

USAGE:

  sporttimer migrate --from charm --to sqlite --dry-run   # Preview
  sporttimer migrate --from charm --to sqlite             # Copy

AFTER MIGRATION:

  Point the config at the new backend:
    ~/.config/sporttimer/config.json   {"backend": "sqlite"}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if migrateFrom == migrateTo {
			return errors.New("--from and --to must name different backends")
		}

		src, closeSrc, err := backendRepo(migrateFrom)
		if err != nil {
			return err
		}
		defer closeSrc()

		if migrateDryRun {
			color.Yellow("Dry run mode - no changes will be made")
			fmt.Println()

			ws, err := src.ListWorkouts(ctx, nil)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", migrateFrom, err)
			}
			fmt.Printf("Would copy %d workout(s) from %s to %s.\n", len(ws), migrateFrom, migrateTo)
			if migrateTo == config.BackendSQLite {
				existing, err := storage.IsDirNonEmpty(cfg.GetDataDir())
				if err == nil && existing {
					fmt.Printf("Data already exists in %s; workouts with the same ID are skipped.\n", cfg.GetDataDir())
				}
			}
			return nil
		}

		dst, closeDst, err := backendRepo(migrateTo)
		if err != nil {
			return err
		}
		defer closeDst()

		summary, err := storage.MigrateData(ctx, src, dst)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.Green("✓ Migrated %d workout(s) from %s to %s", summary.Workouts, migrateFrom, migrateTo)
		if summary.Skipped > 0 {
			fmt.Printf("  Skipped %d already present\n", summary.Skipped)
		}
		if migrateTo == config.BackendSQLite {
			fmt.Printf("  Database: %s\n", filepath.Join(cfg.GetDataDir(), "sporttimer.db"))
		}
		return nil
	},
}

// backendRepo returns the already open repository when name is the
// configured backend, otherwise opens it. The returned func closes only
// what this call opened.
func backendRepo(name string) (storage.Repository, func(), error) {
	if name == cfg.GetBackend() {
		return repo, func() {}, nil
	}
	r, err := cfg.OpenBackend(name)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	return r, func() { _ = r.Close() }, nil
}

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", config.BackendCharm, "source backend")
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendSQLite, "destination backend")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	rootCmd.AddCommand(migrateCmd)
}
