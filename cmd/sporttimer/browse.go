// ABOUTME: CLI command for live search over the workout log.
// ABOUTME: Each stdin line is a query; only the newest query's results are printed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/workouts"
)

var (
	browseType  string
	browseRange string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Search workouts as you type",
	Long: `Read search queries from stdin, one per line, and print matching workouts.

Queries are debounced: a query followed quickly by another is never run, so
only the newest results appear. An empty line shows everything the filters
allow. The delay is search_debounce_ms in config.json (default 300).

EXAMPLES:

  sporttimer browse --range month
  printf 'r\nru\nrun\n' | sporttimer browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := parseFilter(browseType, browseRange)
		if err != nil {
			return err
		}
		if err := engine.Refresh(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load workouts: %w", err)
		}

		var mu sync.Mutex
		var delivered, last workouts.Request
		searcher := workouts.NewSearcher(engine, func(res workouts.Result) {
			mu.Lock()
			delivered = res.Request
			mu.Unlock()
			printResult(res)
		}, workouts.WithDebounce(cfg.GetSearchDebounce()))

		submitted := false
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			last = workouts.Request{Query: strings.TrimSpace(scanner.Text()), Filter: f}
			submitted = true
			searcher.Submit(last)
		}
		searcher.Close()
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		// Input ended inside the debounce window: answer the final query now.
		mu.Lock()
		pending := submitted && delivered != last
		mu.Unlock()
		if pending {
			printResult(searcher.Lookup(last))
		}
		return nil
	},
}

func printResult(res workouts.Result) {
	label := res.Request.Query
	if label == "" {
		label = "(all)"
	}
	color.New(color.Bold).Printf("» %s  %d match(es)\n", label, len(res.Workouts))
	for _, w := range res.Workouts {
		fmt.Println("  " + formatRow(w))
	}
}

func init() {
	browseCmd.Flags().StringVarP(&browseType, "type", "t", "", "filter by category")
	browseCmd.Flags().StringVarP(&browseRange, "range", "r", "all", "filter by date range")
	rootCmd.AddCommand(browseCmd)
}
