// ABOUTME: CLI command for listing workouts.
// ABOUTME: Supports text search, category and date-range filters, and day grouping.
package main

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/workouts"
)

var (
	listSearch string
	listType   string
	listRange  string
	listGroup  bool
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "l"},
	Short:   "List workouts",
	Long: `List workouts, most recent first.

OUTPUT FORMAT:

  Each line shows: ID  COMPLETED  CATEGORY  DURATION  (NOTES)

  The ID is an 8-character prefix you can use with show and delete.

FILTERING:

  --search, -s   Case-insensitive text matched against notes and category
  --type, -t     strength, cardio, yoga, stretching, other
  --range, -r    all, today, week, month, last-month, last-30-days

  Search and filters combine: only workouts matching both are shown.

EXAMPLES:

  sporttimer list                         # Last 20 workouts
  sporttimer list --range week --group    # This week, grouped by day
  sporttimer list -t cardio -s interval   # Cardio workouts mentioning intervals
  sporttimer list -n 50                   # Last 50 workouts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parseFilter(listType, listRange)
		if err != nil {
			return err
		}

		if err := engine.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		ws := engine.SearchAndFilter(listSearch, f)
		if listLimit > 0 && len(ws) > listLimit {
			ws = ws[:listLimit]
		}

		if len(ws) == 0 {
			fmt.Println("No workouts found.")
			return nil
		}

		if listGroup {
			printGroups(ws)
			return nil
		}
		for _, w := range ws {
			fmt.Println(formatRow(w))
		}
		return nil
	},
}

func parseFilter(category, rng string) (workouts.Filter, error) {
	var f workouts.Filter
	if category != "" {
		c, err := models.ParseCategory(category)
		if err != nil {
			return f, err
		}
		f.Category = &c
	}
	r, err := daterange.ParseRange(rng)
	if err != nil {
		return f, err
	}
	f.Range = r
	return f, nil
}

func formatRow(w *models.Workout) string {
	faint := color.New(color.Faint)
	notes := ""
	if n := w.NotesText(); n != "" {
		notes = faint.Sprintf(" (%s)", truncate(n, 30))
	}
	return fmt.Sprintf("%s %s %s %s%s",
		faint.Sprint(w.ShortID()),
		faint.Sprint(w.OccurredAt.Format("2006-01-02 15:04")),
		padRight(w.Category.Label(), 18),
		daterange.FormatDuration(w.DurationSeconds),
		notes)
}

func printGroups(ws []*models.Workout) {
	bold := color.New(color.Bold)
	for i, g := range workouts.GroupByDay(ws) {
		if i > 0 {
			fmt.Println()
		}
		bold.Printf("%s  %s\n", g.Label, daterange.FormatDuration(workouts.TotalDuration(g.Workouts)))
		for _, w := range g.Workouts {
			fmt.Println("  " + formatRow(w))
		}
	}
}

// truncate cuts s to maxLen runes.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search text")
	listCmd.Flags().StringVarP(&listType, "type", "t", "", "filter by category")
	listCmd.Flags().StringVarP(&listRange, "range", "r", "all", "filter by date range")
	listCmd.Flags().BoolVarP(&listGroup, "group", "g", false, "group by day")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "max number of results")
	rootCmd.AddCommand(listCmd)
}
