// ABOUTME: CLI command for showing one workout.
// ABOUTME: Resolves a full ID or unique ID prefix.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/daterange"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := engine.Get(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		fmt.Printf("Workout: %s\n", w.ShortID())
		fmt.Printf("Category: %s %s\n", w.Category.Icon(), w.Category.Label())
		fmt.Printf("Completed: %s\n", w.OccurredAt.Format("2006-01-02 15:04"))
		fmt.Printf("Duration: %s (%s)\n", daterange.FormatDuration(w.DurationSeconds), daterange.FormatClock(w.DurationSeconds))
		if n := w.NotesText(); n != "" {
			fmt.Printf("Notes: %s\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
