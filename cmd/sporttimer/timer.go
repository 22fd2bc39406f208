// ABOUTME: CLI commands for the workout session timer.
// ABOUTME: start/pause/stop/reset/status act on the saved session; run is a live stopwatch.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/session"
	"github.com/harperreed/sporttimer/internal/timer"
)

var (
	timerType   string
	timerNotes  string
	timerTarget int
)

var timerCmd = &cobra.Command{
	Use:     "timer",
	Aliases: []string{"t"},
	Short:   "Run the workout session timer",
	Long: `Time a workout session and record it when you stop.

The session is saved between commands, so you can start it in one terminal
and stop it later from another. Time keeps counting while the session is
running, even when no sporttimer process is.

WORKFLOW:

  sporttimer timer start --type strength    # Start (or resume) a session
  sporttimer timer pause                    # Pause; paused time does not count
  sporttimer timer start                    # Resume
  sporttimer timer stop                     # Stop and record the workout
  sporttimer timer reset                    # Discard the session

  sporttimer timer run --type cardio        # Live stopwatch; Ctrl-C stops and records

A session stopped with no elapsed time records nothing. After stop, run
'sporttimer timer reset' before starting the next session.`,
}

func timerStartOptions() (session.StartOptions, error) {
	opts := session.StartOptions{Notes: strings.TrimSpace(timerNotes)}
	if timerType != "" {
		c, err := models.ParseCategory(timerType)
		if err != nil {
			return opts, err
		}
		opts.Category = c
	}
	if timerTarget < 0 {
		return opts, timer.ErrNegativeTarget
	}
	opts.Target = timerTarget * 60
	return opts, nil
}

func printStatus(st session.Status) {
	faint := color.New(color.Faint)
	fmt.Printf("  %s %s", st.State, daterange.FormatClock(st.ElapsedSeconds))
	if st.TargetSeconds > 0 {
		fmt.Printf(" / %s (%.0f%%)", daterange.FormatClock(st.TargetSeconds), st.Progress*100)
	}
	fmt.Println()
	if st.Category != "" && st.State != timer.Idle {
		fmt.Printf("  %s", st.Category.Label())
		if st.Notes != "" {
			fmt.Print(faint.Sprintf(" (%s)", st.Notes))
		}
		fmt.Println()
	}
}

var timerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start or resume the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := timerStartOptions()
		if err != nil {
			return err
		}
		st, err := sessions.Start(cmd.Context(), opts)
		if errors.Is(err, timer.ErrCompleted) {
			return fmt.Errorf("%w: run 'sporttimer timer reset' first", err)
		}
		if err != nil {
			return err
		}
		color.Green("▶ Timer running")
		printStatus(st)
		return nil
	},
}

var timerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause the running session",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := sessions.Pause(cmd.Context())
		if err != nil {
			return err
		}
		color.Yellow("⏸ Timer paused")
		printStatus(st)
		return nil
	},
}

var timerStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the session and record it",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, w, err := sessions.Stop(cmd.Context())
		if err != nil {
			return err
		}
		printRecorded(w, st.ElapsedSeconds)
		return nil
	},
}

func printRecorded(w *models.Workout, elapsed int) {
	if w == nil {
		color.Yellow("■ Timer stopped at %s; nothing recorded", daterange.FormatClock(elapsed))
		return
	}
	color.Green("■ Recorded %s workout", w.Category.Label())
	fmt.Println("  " + formatRow(w))
}

var timerResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := sessions.Reset(cmd.Context()); err != nil {
			return err
		}
		color.Green("✓ Timer reset")
		return nil
	},
}

var timerStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := sessions.Status(cmd.Context())
		if err != nil {
			return err
		}
		printStatus(st)
		return nil
	},
}

var timerRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Live stopwatch; Ctrl-C stops and records",
	Long: `Run the session timer in the foreground, updating once per second.

Resumes a saved session if there is one, otherwise starts a new one with
--type, --notes and --target. Ctrl-C stops the session and records it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := timerStartOptions()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runStopwatch(ctx, opts)
	},
}

// runStopwatch drives a live timer until ctx is done, then stops and
// records it. The session is saved when it starts and once recorded.
func runStopwatch(ctx context.Context, opts session.StartOptions) error {
	t, s, err := sessions.Restore()
	if err != nil {
		return err
	}
	defer t.Close()

	if t.State() == timer.Completed {
		return fmt.Errorf("%w: run 'sporttimer timer reset' first", timer.ErrCompleted)
	}
	if t.State() == timer.Idle {
		if opts.Category != "" {
			s.Category = opts.Category
		}
		s.Notes = opts.Notes
	}
	if opts.Target > 0 {
		if err := t.SetTarget(opts.Target); err != nil {
			return err
		}
	}

	cancel := t.Subscribe(func(snap timer.Snapshot) {
		line := daterange.FormatClock(snap.ElapsedSeconds)
		if snap.TargetSeconds > 0 {
			line += fmt.Sprintf(" / %s", daterange.FormatClock(snap.TargetSeconds))
		}
		fmt.Printf("\r%s  %s ", s.Category.Label(), line)
	})
	defer cancel()

	if err := t.Start(); err != nil {
		return err
	}
	if err := sessions.Save(t, s); err != nil {
		return err
	}

	<-ctx.Done()
	cancel()
	fmt.Println()

	res, ok := t.Stop()
	if !ok {
		return nil
	}
	w, err := sessions.Complete(context.Background(), s, res)
	if err != nil {
		// Keep the running snapshot so 'timer stop' can retry.
		return fmt.Errorf("failed to record session: %w", err)
	}
	if err := sessions.Save(t, s); err != nil {
		return err
	}
	printRecorded(w, res.ElapsedSeconds)
	return nil
}

func init() {
	for _, c := range []*cobra.Command{timerStartCmd, timerRunCmd} {
		c.Flags().StringVarP(&timerType, "type", "t", "", "workout category (default other)")
		c.Flags().StringVar(&timerNotes, "notes", "", "notes for the recorded workout")
		c.Flags().IntVar(&timerTarget, "target", 0, "target duration in minutes")
	}
	timerCmd.AddCommand(timerStartCmd, timerPauseCmd, timerStopCmd, timerResetCmd, timerStatusCmd, timerRunCmd)
	rootCmd.AddCommand(timerCmd)
}
