// ABOUTME: CLI command for workout statistics.
// ABOUTME: Shows totals, average duration, category counts and week/month time.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/workouts"
)

var statsRange string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show workout statistics",
	Long: `Show profile statistics over your workouts.

  Total workouts, total and average duration, the most frequent category,
  a count per category, and time spent this week and this month.

  --range narrows totals, average and counts to a date range. This week and
  this month are always computed from the full log.

EXAMPLES:

  sporttimer stats
  sporttimer stats --range last-30-days`,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := daterange.ParseRange(statsRange)
		if err != nil {
			return err
		}
		if err := engine.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load workouts: %w", err)
		}

		now := engine.Now()
		all := engine.Workouts()
		scoped := engine.Filter(workouts.Filter{Range: r})
		s := workouts.Summarize(scoped, engine.Calendar(), now)

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		bold.Printf("Statistics (%s)\n", r.Label())
		fmt.Printf("  Workouts:       %d\n", s.TotalCount)
		fmt.Printf("  Total time:     %s\n", daterange.FormatDuration(s.TotalDuration))
		fmt.Printf("  Average:        %s\n", daterange.FormatDuration(s.AverageDuration))
		if s.HasMostFrequent {
			fmt.Printf("  Most frequent:  %s\n", s.MostFrequent.Label())
		} else {
			fmt.Printf("  Most frequent:  %s\n", faint.Sprint("none"))
		}
		fmt.Printf("  This week:      %s\n", daterange.FormatDuration(workouts.DurationThisWeek(all, engine.Calendar(), now)))
		fmt.Printf("  This month:     %s\n", daterange.FormatDuration(workouts.DurationThisMonth(all, now)))

		if s.TotalCount > 0 {
			fmt.Println()
			bold.Println("By category")
			for _, c := range models.AllCategories {
				if n := s.ByCategory[c]; n > 0 {
					fmt.Printf("  %s %d\n", padRight(c.Label(), 20), n)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVarP(&statsRange, "range", "r", "all", "date range for totals")
	rootCmd.AddCommand(statsCmd)
}
