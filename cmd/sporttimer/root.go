// ABOUTME: Root Cobra command for the sporttimer CLI.
// ABOUTME: Opens config, logging, storage and settings in PersistentPreRunE and closes them after.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/harperreed/sporttimer/internal/config"
	"github.com/harperreed/sporttimer/internal/logging"
	"github.com/harperreed/sporttimer/internal/session"
	"github.com/harperreed/sporttimer/internal/settings"
	"github.com/harperreed/sporttimer/internal/storage"
	"github.com/harperreed/sporttimer/internal/timer"
	"github.com/harperreed/sporttimer/internal/workouts"
)

var (
	flagLogLevel string
	flagBackend  string

	cfg       *config.Config
	repo      storage.Repository
	store     settings.Store
	prefs     settings.Preferences
	engine    *workouts.Engine
	sessions  *session.Manager
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "sporttimer",
	Short: "Workout timer and log",
	Long: `Sporttimer is a local-first workout timer and log.

WHAT IT TRACKS:

  Workouts in five categories: strength, cardio, yoga, stretching, other.
  Each workout has a duration, the time it was completed, and optional notes.

QUICK START:

  $ sporttimer timer start --type cardio    # Start the session timer
  $ sporttimer timer pause                  # Pause it
  $ sporttimer timer stop                   # Stop and record the workout
  $ sporttimer timer run --type yoga        # Live stopwatch, Ctrl-C records

  $ sporttimer add strength 45m --notes "Leg day"
  $ sporttimer list --range week            # This week's workouts
  $ sporttimer list --search run --group    # Search, grouped by day
  $ sporttimer stats                        # Totals and averages

STORAGE:

  The backend is chosen in ~/.config/sporttimer/config.json or with --backend:
    sqlite   ~/.local/share/sporttimer/sporttimer.db (default)
    charm    Charm KV, E2E encrypted and synced across devices
    memory   nothing persisted (testing)

MCP INTEGRATION:

  Run 'sporttimer mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "sporttimer": { "command": "sporttimer", "args": ["mcp"] }
    }
  }`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Name() == "metrics" {
			return nil
		}
		return openApp(cmd.Context())
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeApp(cmd.Context())
	},
}

func openApp(ctx context.Context) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if flagBackend != "" {
		cfg.Backend = flagBackend
	}

	level := cfg.GetLogLevel()
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	logCloser = logging.Setup(logging.Params{Level: level, File: cfg.GetLogFile()})

	cal, err := cfg.GetCalendar()
	if err != nil {
		return fmt.Errorf("invalid week_start: %w", err)
	}

	r, err := cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", cfg.GetBackend(), err)
	}
	repo = r

	st, err := cfg.OpenSettings()
	var defErr *settings.DefaultError
	switch {
	case errors.As(err, &defErr):
		log.WithError(err).Warn("settings unavailable; using defaults")
	case err != nil:
		return fmt.Errorf("failed to open settings: %w", err)
	}
	store = st

	prefs, err = settings.LoadPreferences(store)
	if err != nil {
		log.WithError(err).Warn("using default preferences")
	}

	engine = workouts.New(repo, workouts.WithCalendar(cal))
	if err := engine.Refresh(ctx); err != nil {
		log.WithError(err).Warn("initial load failed")
	}

	var opts []session.Option
	if prefs.SoundEnabled {
		opts = append(opts, session.WithCue(&timer.BellCue{W: os.Stderr}))
	}
	sessions = session.NewManager(store, engine, opts...)
	return nil
}

// closeApp flushes and closes whatever openApp opened. It is safe to call
// more than once.
func closeApp(ctx context.Context) error {
	var err error
	if engine != nil {
		err = multierr.Append(err, engine.Save(ctx))
	}
	if store != nil {
		err = multierr.Append(err, store.Close())
	}
	if repo != nil {
		err = multierr.Append(err, repo.Close())
	}
	if logCloser != nil {
		err = multierr.Append(err, logCloser.Close())
	}
	engine, sessions, store, repo, logCloser = nil, nil, nil, nil, nil
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "storage backend (sqlite, charm, memory)")
}
