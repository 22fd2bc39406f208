// ABOUTME: CLI command for recording a workout by hand.
// ABOUTME: Parses category, duration and optional completion time.
package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
)

var (
	addAt    string
	addNotes string
)

var addCmd = &cobra.Command{
	Use:     "add <category> <duration>",
	Aliases: []string{"a"},
	Short:   "Record a workout",
	Long: `Record a completed workout.

CATEGORIES:

  strength, cardio, yoga, stretching, other

DURATION:

  A bare number is minutes. Go-style durations are accepted too.

Examples:
  sporttimer add cardio 30
  sporttimer add strength 1h15m --notes "Leg day"
  sporttimer add yoga 20m --at "2026-03-01 07:00"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := models.ParseCategory(args[0])
		if err != nil {
			return err
		}

		secs, err := parseDuration(args[1])
		if err != nil {
			return err
		}

		w := models.NewWorkout(category, secs).WithNotes(strings.TrimSpace(addNotes))
		if addAt != "" {
			t, err := parseTime(addAt)
			if err != nil {
				return fmt.Errorf("invalid timestamp: %s", addAt)
			}
			w.WithOccurredAt(t)
		} else {
			w.WithOccurredAt(engine.Now())
		}

		if err := engine.AddRecord(cmd.Context(), w); err != nil {
			return fmt.Errorf("failed to create workout: %w", err)
		}

		color.Green("✓ Added %s workout", category.Label())
		fmt.Printf("  %s %s\n",
			color.New(color.Faint).Sprint(w.ShortID()),
			daterange.FormatDuration(w.DurationSeconds))

		return nil
	},
}

// parseDuration reads a bare number as minutes, otherwise a Go duration.
func parseDuration(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("duration must be non-negative: %s", s)
		}
		return n * 60, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid duration: %s (use minutes, or e.g. 45m, 1h10m, 90s)", s)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be non-negative: %s", s)
	}
	return int(d / time.Second), nil
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func init() {
	addCmd.Flags().StringVar(&addAt, "at", "", "completion time (YYYY-MM-DD HH:MM)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "notes for the workout")
	rootCmd.AddCommand(addCmd)
}
