// ABOUTME: CLI command for deleting workouts.
// ABOUTME: Deletes by ID or prefix, all or nothing, or clears the whole log.
package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/models"
)

var (
	deleteAll bool
	deleteYes bool
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>...",
	Aliases: []string{"del", "rm"},
	Short:   "Delete workouts",
	Long: `Delete one or more workouts by ID or ID prefix.

You can use either the full UUID or just the first few characters (prefix).
The ID prefix is shown in the first column of 'sporttimer list' output.
When several IDs are given, either all of them are deleted or none are.

EXAMPLES:

  sporttimer delete abc12345              # Delete by 8-char prefix
  sporttimer rm abc1 def2                 # Delete two workouts
  sporttimer delete --all --yes           # Delete every workout

CAUTION:

  This permanently deletes workouts. There is no undo.
  If a prefix matches multiple workouts, an error is returned.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteAll {
			if len(args) > 0 {
				return errors.New("--all takes no IDs")
			}
			if !deleteYes {
				return errors.New("refusing to delete every workout without --yes")
			}
			n, err := engine.ClearAll(cmd.Context())
			if err != nil {
				return err
			}
			color.Yellow("✗ Deleted %d workout(s)", n)
			return nil
		}

		if len(args) == 0 {
			return errors.New("give at least one workout ID, or --all")
		}

		found := make([]*models.Workout, 0, len(args))
		ids := make([]uuid.UUID, 0, len(args))
		for _, idOrPrefix := range args {
			w, err := engine.Get(cmd.Context(), idOrPrefix)
			if err != nil {
				return fmt.Errorf("workout %s: %w", idOrPrefix, err)
			}
			found = append(found, w)
			ids = append(ids, w.ID)
		}

		if err := engine.DeleteMany(cmd.Context(), ids); err != nil {
			return err
		}

		for _, w := range found {
			color.Yellow("✗ Deleted %s", w.Category.Label())
			fmt.Println("  " + formatRow(w))
		}
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "delete every workout")
	deleteCmd.Flags().BoolVar(&deleteYes, "yes", false, "confirm --all")
	rootCmd.AddCommand(deleteCmd)
}
