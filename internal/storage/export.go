// ABOUTME: Export and import functionality for workout records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Repository.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/sporttimer/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the format version written by exports.
const ExportVersion = "1.0"

// ExportData represents the full export format for workout data.
type ExportData struct {
	Version    string            `json:"version" yaml:"version"`
	ExportedAt time.Time         `json:"exported_at" yaml:"exported_at"`
	Tool       string            `json:"tool" yaml:"tool"`
	Workouts   []*models.Workout `json:"workouts" yaml:"workouts"`
}

// GetAllData retrieves all data for export.
func (d *DB) GetAllData(ctx context.Context) (*ExportData, error) {
	return collectExport(ctx, d)
}

// ImportData imports data from an export file.
func (d *DB) ImportData(ctx context.Context, data *ExportData) error {
	return importInto(ctx, d, data)
}

func collectExport(ctx context.Context, r Repository) (*ExportData, error) {
	workouts, err := r.ListWorkouts(ctx, &Query{Sort: SortOccurredAsc})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	return &ExportData{
		Version:    ExportVersion,
		ExportedAt: time.Now(),
		Tool:       "sporttimer",
		Workouts:   workouts,
	}, nil
}

func importInto(ctx context.Context, r Repository, data *ExportData) error {
	if data == nil {
		return nil
	}
	for _, w := range data.Workouts {
		if w.CreatedAt.IsZero() {
			w.CreatedAt = w.OccurredAt
		}
		if err := r.CreateWorkout(ctx, w); err != nil {
			return fmt.Errorf("import workout %s: %w", w.ID, err)
		}
	}
	return r.Save(ctx)
}

// ExportJSON exports all data as JSON.
func ExportJSON(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML, with workouts grouped by category.
func ExportYAML(ctx context.Context, r Repository) ([]byte, error) {
	data, err := r.GetAllData(ctx)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                   `yaml:"version"`
		ExportedAt string                   `yaml:"exported_at"`
		Tool       string                   `yaml:"tool"`
		Workouts   map[string][]yamlWorkout `yaml:"workouts"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Workouts:   make(map[string][]yamlWorkout),
	}

	for _, w := range data.Workouts {
		key := string(w.Category)
		yamlData.Workouts[key] = append(yamlData.Workouts[key], yamlWorkout{
			ID:              w.ShortID(),
			OccurredAt:      w.OccurredAt.Format(time.RFC3339),
			DurationSeconds: w.DurationSeconds,
			Notes:           w.NotesText(),
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlWorkout struct {
	ID              string `yaml:"id"`
	OccurredAt      string `yaml:"occurred_at"`
	DurationSeconds int    `yaml:"duration_seconds"`
	Notes           string `yaml:"notes,omitempty"`
}

// ExportMarkdown renders workouts as Markdown tables, one per category.
// category and since narrow the export when non-nil.
func ExportMarkdown(ctx context.Context, r Repository, category *models.Category, since *time.Time) (string, error) {
	q := &Query{Category: category}
	if since != nil {
		q.From = *since
	}
	workouts, err := r.ListWorkouts(ctx, q)
	if err != nil {
		return "", err
	}

	grouped := make(map[models.Category][]*models.Workout)
	for _, w := range workouts {
		grouped[w.Category] = append(grouped[w.Category], w)
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Workout Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	if len(workouts) == 0 {
		sb.WriteString("No workouts recorded.\n")
		return sb.String(), nil
	}

	for _, c := range models.AllCategories {
		ws := grouped[c]
		if len(ws) == 0 {
			continue
		}
		total := 0
		for _, w := range ws {
			total += w.DurationSeconds
		}
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", c.Label(), c))
		sb.WriteString(fmt.Sprintf("%d sessions, %s total\n\n", len(ws), formatMinutes(total)))
		sb.WriteString("| Date | Duration | Notes |\n")
		sb.WriteString("|------|----------|-------|\n")
		for _, w := range ws {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n",
				w.OccurredAt.Format("2006-01-02 15:04"),
				formatMinutes(w.DurationSeconds),
				strings.ReplaceAll(w.NotesText(), "|", "\\|")))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func formatMinutes(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}
	return fmt.Sprintf("%d min", seconds/60)
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, r Repository, data []byte) (int, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return 0, fmt.Errorf("unmarshal JSON: %w", err)
	}
	for _, w := range exportData.Workouts {
		if err := w.Validate(); err != nil {
			return 0, fmt.Errorf("invalid workout in import: %w", err)
		}
	}
	if err := r.ImportData(ctx, &exportData); err != nil {
		return 0, err
	}
	return len(exportData.Workouts), nil
}
