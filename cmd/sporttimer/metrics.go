// ABOUTME: CLI command for dumping process metrics.
// ABOUTME: Prints the prometheus counters and histograms gathered by this process.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/observability"
)

var metricsCmd = &cobra.Command{
	Use:    "metrics",
	Short:  "Print process metrics",
	Long: `Print the store operation counters, query timings and timer transitions
recorded by this process. Mostly useful after 'sporttimer browse' or from the
MCP server's sporttimer://metrics resource.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return observability.Dump(os.Stdout)
	},
}

func init() {
	rootCmd.AddCommand(metricsCmd)
}
