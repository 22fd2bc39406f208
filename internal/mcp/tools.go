// ABOUTME: MCP tool implementations for workouts and the session timer.
// ABOUTME: Provides add/list/delete/stats over the engine and timer transitions.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/session"
	"github.com/harperreed/sporttimer/internal/workouts"
)

func (s *Server) registerTools() {
	// add_workout
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_workout",
		Description: "Record a completed workout (strength, cardio, yoga, stretching, other)",
	}, s.handleAddWorkout)

	// list_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_workouts",
		Description: "List workouts, optionally searched by text and filtered by category and date range",
	}, s.handleListWorkouts)

	// delete_workouts
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_workouts",
		Description: "Delete one or more workouts by ID or ID prefix; all or nothing",
	}, s.handleDeleteWorkouts)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Totals, averages and the most frequent category",
	}, s.handleGetStats)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "timer_start",
		Description: "Start a new timer session or resume a paused one",
	}, s.handleTimerStart)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "timer_pause",
		Description: "Pause the running timer session",
	}, s.handleTimerPause)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "timer_stop",
		Description: "Stop the timer session and record it as a workout",
	}, s.handleTimerStop)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "timer_reset",
		Description: "Discard the timer session",
	}, s.handleTimerReset)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "timer_status",
		Description: "Show the timer session state and elapsed time",
	}, s.handleTimerStatus)
}

// Tool input/output types

type addWorkoutInput struct {
	Category        string `json:"category" jsonschema:"Workout category (strength, cardio, yoga, stretching, other)"`
	DurationMinutes int    `json:"duration_minutes,omitempty" jsonschema:"Duration in minutes"`
	DurationSeconds int    `json:"duration_seconds,omitempty" jsonschema:"Duration in seconds; added to duration_minutes"`
	Notes           string `json:"notes,omitempty" jsonschema:"Workout notes"`
	OccurredAt      string `json:"occurred_at,omitempty" jsonschema:"Completion time (ISO 8601), defaults to now"`
}

type workoutOutput struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Duration string `json:"duration"`
	Message  string `json:"message"`
}

type listWorkoutsInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Case-insensitive text matched against notes and category"`
	Category   string `json:"category,omitempty" jsonschema:"Filter by category"`
	Range      string `json:"range,omitempty" jsonschema:"Date range: all, today, week, month, last-month, last-30-days"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
	GroupByDay bool   `json:"group_by_day,omitempty" jsonschema:"Group results by calendar day"`
}

type workoutItem struct {
	ID              string    `json:"id"`
	Category        string    `json:"category"`
	Label           string    `json:"label"`
	DurationSeconds int       `json:"duration_seconds"`
	Duration        string    `json:"duration"`
	OccurredAt      time.Time `json:"occurred_at"`
	Notes           string    `json:"notes,omitempty"`
}

type dayItem struct {
	Day      string        `json:"day"`
	Label    string        `json:"label"`
	Workouts []workoutItem `json:"workouts"`
}

type listWorkoutsOutput struct {
	Count    int           `json:"count"`
	Workouts []workoutItem `json:"workouts,omitempty"`
	Days     []dayItem     `json:"days,omitempty"`
	Message  string        `json:"message,omitempty"`
}

type deleteWorkoutsInput struct {
	IDs []string `json:"ids" jsonschema:"Workout IDs or unique prefixes"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type getStatsInput struct {
	Range string `json:"range,omitempty" jsonschema:"Restrict totals to a date range (default all)"`
}

type statsOutput struct {
	Range             string         `json:"range"`
	TotalCount        int            `json:"total_count"`
	TotalDuration     int            `json:"total_duration_seconds"`
	AverageDuration   int            `json:"average_duration_seconds"`
	MostFrequent      string         `json:"most_frequent_category,omitempty"`
	MostFrequentLabel string         `json:"most_frequent_label,omitempty"`
	ByCategory        map[string]int `json:"by_category"`
	ThisWeek          int            `json:"this_week_seconds"`
	ThisMonth         int            `json:"this_month_seconds"`
}

type timerStartInput struct {
	Category      string `json:"category,omitempty" jsonschema:"Category for the recorded workout (default other)"`
	Notes         string `json:"notes,omitempty" jsonschema:"Notes for the recorded workout"`
	TargetMinutes int    `json:"target_minutes,omitempty" jsonschema:"Optional countdown target in minutes"`
}

type emptyInput struct{}

type timerOutput struct {
	Status  session.Status `json:"status"`
	Workout *workoutItem   `json:"workout,omitempty"`
	Message string         `json:"message"`
}

func toItem(w *models.Workout) workoutItem {
	return workoutItem{
		ID:              w.ID.String(),
		Category:        string(w.Category),
		Label:           w.Category.Label(),
		DurationSeconds: w.DurationSeconds,
		Duration:        daterange.FormatDuration(w.DurationSeconds),
		OccurredAt:      w.OccurredAt,
		Notes:           w.NotesText(),
	}
}

func toItems(ws []*models.Workout) []workoutItem {
	out := make([]workoutItem, len(ws))
	for i, w := range ws {
		out[i] = toItem(w)
	}
	return out
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q (use ISO 8601)", s)
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

// Tool handlers

func (s *Server) handleAddWorkout(ctx context.Context, req *mcp.CallToolRequest, input addWorkoutInput) (*mcp.CallToolResult, workoutOutput, error) {
	category, err := models.ParseCategory(input.Category)
	if err != nil {
		return nil, workoutOutput{}, err
	}
	secs := input.DurationMinutes*60 + input.DurationSeconds
	if secs < 0 {
		return nil, workoutOutput{}, fmt.Errorf("duration must be non-negative")
	}

	w := models.NewWorkout(category, secs).WithNotes(strings.TrimSpace(input.Notes))
	if input.OccurredAt != "" {
		t, err := parseTimestamp(input.OccurredAt)
		if err != nil {
			return nil, workoutOutput{}, err
		}
		w.WithOccurredAt(t)
	} else {
		w.WithOccurredAt(s.engine.Now())
	}

	if err := s.engine.AddRecord(ctx, w); err != nil {
		return nil, workoutOutput{}, fmt.Errorf("failed to create workout: %w", err)
	}

	return nil, workoutOutput{
		ID:       w.ShortID(),
		Category: string(category),
		Duration: daterange.FormatDuration(secs),
		Message:  fmt.Sprintf("Added %s workout, %s (ID: %s)", category.Label(), daterange.FormatDuration(secs), w.ShortID()),
	}, nil
}

func (s *Server) handleListWorkouts(ctx context.Context, req *mcp.CallToolRequest, input listWorkoutsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	f, err := parseFilter(input.Category, input.Range)
	if err != nil {
		return nil, nil, err
	}
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	res := s.searcher.Lookup(workouts.Request{Query: input.Query, Filter: f})
	ws := res.Workouts
	if len(ws) > input.Limit {
		ws = ws[:input.Limit]
	}
	if len(ws) == 0 {
		return nil, listWorkoutsOutput{Message: "No workouts found."}, nil
	}

	out := listWorkoutsOutput{Count: len(ws)}
	if input.GroupByDay {
		for _, g := range workouts.GroupByDay(ws) {
			out.Days = append(out.Days, dayItem{Day: g.Key, Label: g.Label, Workouts: toItems(g.Workouts)})
		}
	} else {
		out.Workouts = toItems(ws)
	}
	return nil, out, nil
}

func (s *Server) handleDeleteWorkouts(ctx context.Context, req *mcp.CallToolRequest, input deleteWorkoutsInput) (*mcp.CallToolResult, simpleOutput, error) {
	if len(input.IDs) == 0 {
		return nil, simpleOutput{}, errors.New("no ids given")
	}

	ids := make([]uuid.UUID, 0, len(input.IDs))
	for _, raw := range input.IDs {
		w, err := s.engine.Get(ctx, raw)
		if err != nil {
			return nil, simpleOutput{}, fmt.Errorf("workout %s: %w", raw, err)
		}
		ids = append(ids, w.ID)
	}

	if err := s.engine.DeleteMany(ctx, ids); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete workouts: %w", err)
	}

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %d workout(s)", len(ids)),
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input getStatsInput) (*mcp.CallToolResult, any, error) {
	r, err := daterange.ParseRange(input.Range)
	if err != nil {
		return nil, nil, err
	}
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load workouts: %w", err)
	}

	now := s.engine.Now()
	summary := workouts.Summarize(s.engine.Filter(workouts.Filter{Range: r}), s.engine.Calendar(), now)
	out := statsOutput{
		Range:           r.String(),
		TotalCount:      summary.TotalCount,
		TotalDuration:   summary.TotalDuration,
		AverageDuration: summary.AverageDuration,
		ByCategory:      make(map[string]int, len(summary.ByCategory)),
		ThisWeek:        summary.ThisWeek,
		ThisMonth:       summary.ThisMonth,
	}
	if summary.HasMostFrequent {
		out.MostFrequent = string(summary.MostFrequent)
		out.MostFrequentLabel = summary.MostFrequent.Label()
	}
	for c, n := range summary.ByCategory {
		out.ByCategory[string(c)] = n
	}
	return nil, out, nil
}

func (s *Server) requireSessions() error {
	if s.sessions == nil {
		return errors.New("timer is not available: settings store not configured")
	}
	return nil
}

func (s *Server) handleTimerStart(ctx context.Context, req *mcp.CallToolRequest, input timerStartInput) (*mcp.CallToolResult, any, error) {
	if err := s.requireSessions(); err != nil {
		return nil, nil, err
	}
	opts := session.StartOptions{Notes: strings.TrimSpace(input.Notes), Target: input.TargetMinutes * 60}
	if input.Category != "" {
		c, err := models.ParseCategory(input.Category)
		if err != nil {
			return nil, nil, err
		}
		opts.Category = c
	}

	st, err := s.sessions.Start(ctx, opts)
	if err != nil {
		return nil, nil, err
	}
	return nil, timerOutput{Status: st, Message: fmt.Sprintf("Timer running at %s", st.Elapsed)}, nil
}

func (s *Server) handleTimerPause(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	if err := s.requireSessions(); err != nil {
		return nil, nil, err
	}
	st, err := s.sessions.Pause(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, timerOutput{Status: st, Message: fmt.Sprintf("Timer paused at %s", st.Elapsed)}, nil
}

func (s *Server) handleTimerStop(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	if err := s.requireSessions(); err != nil {
		return nil, nil, err
	}
	st, w, err := s.sessions.Stop(ctx)
	if err != nil {
		return nil, nil, err
	}
	out := timerOutput{Status: st}
	if w == nil {
		out.Message = "Timer stopped with no elapsed time; nothing recorded"
		return nil, out, nil
	}
	item := toItem(w)
	out.Workout = &item
	out.Message = fmt.Sprintf("Recorded %s workout, %s (ID: %s)", w.Category.Label(), st.Elapsed, w.ShortID())
	return nil, out, nil
}

func (s *Server) handleTimerReset(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.requireSessions(); err != nil {
		return nil, simpleOutput{}, err
	}
	if err := s.sessions.Reset(ctx); err != nil {
		return nil, simpleOutput{}, err
	}
	return nil, simpleOutput{Message: "Timer reset"}, nil
}

func (s *Server) handleTimerStatus(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, any, error) {
	if err := s.requireSessions(); err != nil {
		return nil, nil, err
	}
	st, err := s.sessions.Status(ctx)
	if err != nil {
		return nil, nil, err
	}
	return nil, timerOutput{Status: st, Message: fmt.Sprintf("Timer %s at %s", st.State, st.Elapsed)}, nil
}
