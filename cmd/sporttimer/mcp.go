// ABOUTME: CLI command for starting the MCP server.
// ABOUTME: Runs a stdio-based MCP server for AI assistant integration.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/mcp"
	"github.com/harperreed/sporttimer/internal/session"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP allows AI assistants to read and record your workouts and drive the
session timer through a standardized protocol. The server communicates via
stdin/stdout.

CONFIGURATION:

  {
    "mcpServers": {
      "sporttimer": {
        "command": "sporttimer",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  add_workout       Record a completed workout
  list_workouts     Search and filter workouts
  delete_workouts   Delete workouts by ID (all or nothing)
  get_stats         Totals, averages and most frequent category
  timer_start       Start or resume the session timer
  timer_pause       Pause the session timer
  timer_stop        Stop the session and record it
  timer_reset       Discard the session
  timer_status      Show the session state

AVAILABLE RESOURCES:

  sporttimer://recent    Last 10 workouts
  sporttimer://today     Today's workouts and total time
  sporttimer://summary   Statistics and latest workouts
  sporttimer://metrics   Process counters`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so the timer plays no bell here.
		mcpSessions := session.NewManager(store, engine)

		server, err := mcp.NewServer(engine, mcpSessions)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
