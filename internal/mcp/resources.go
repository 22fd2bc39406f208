// ABOUTME: MCP resource implementations for the workout log.
// ABOUTME: Provides sporttimer://recent, today, summary and metrics resources.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/sporttimer/internal/daterange"
	"github.com/harperreed/sporttimer/internal/observability"
	"github.com/harperreed/sporttimer/internal/workouts"
)

const (
	uriRecent  = "sporttimer://recent"
	uriToday   = "sporttimer://today"
	uriSummary = "sporttimer://summary"
	uriMetrics = "sporttimer://metrics"
)

func (s *Server) registerResources() {
	// sporttimer://recent - Last 10 workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriRecent,
		Name:        "Recent Workouts",
		Description: "Last 10 workouts, most recent first",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// sporttimer://today - Workouts completed today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriToday,
		Name:        "Today's Workouts",
		Description: "Workouts completed today with a total duration",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// sporttimer://summary - Profile statistics plus recent workouts
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriSummary,
		Name:        "Workout Summary",
		Description: "Totals, averages, most frequent category and the latest workouts",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriMetrics,
		Name:        "Process Metrics",
		Description: "Store operation counters and query timings for this process",
		MIMEType:    "text/plain",
	}, s.handleMetricsResource)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	recent := s.engine.Recent(10)
	return jsonResource(uriRecent, map[string]interface{}{
		"count":    len(recent),
		"workouts": toItems(recent),
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	now := s.engine.Now()
	today := s.engine.Filter(workouts.Filter{Range: daterange.Today})
	total := workouts.TotalDuration(today)

	return jsonResource(uriToday, map[string]interface{}{
		"date":                   daterange.DayKey(now),
		"count":                  len(today),
		"total_duration_seconds": total,
		"total_duration":         daterange.FormatDuration(total),
		"workouts":               toItems(today),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if err := s.engine.Refresh(ctx); err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	now := s.engine.Now()
	summary := s.engine.Stats(now)

	byCategory := make(map[string]int, len(summary.ByCategory))
	for c, n := range summary.ByCategory {
		byCategory[string(c)] = n
	}
	stats := map[string]interface{}{
		"total_count":      summary.TotalCount,
		"total_duration":   daterange.FormatDuration(summary.TotalDuration),
		"average_duration": daterange.FormatDuration(summary.AverageDuration),
		"this_week":        daterange.FormatDuration(summary.ThisWeek),
		"this_month":       daterange.FormatDuration(summary.ThisMonth),
		"by_category":      byCategory,
	}
	if summary.HasMostFrequent {
		stats["most_frequent_category"] = summary.MostFrequent.Label()
	}

	return jsonResource(uriSummary, map[string]interface{}{
		"generated_at":    now.Format(time.RFC3339),
		"stats":           stats,
		"recent_workouts": toItems(s.engine.Recent(5)),
	})
}

func (s *Server) handleMetricsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var buf bytes.Buffer
	if err := observability.Dump(&buf); err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uriMetrics,
			MIMEType: "text/plain",
			Text:     buf.String(),
		}},
	}, nil
}
