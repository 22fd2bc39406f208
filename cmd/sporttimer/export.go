// ABOUTME: CLI commands for exporting and importing workouts.
// ABOUTME: Supports JSON, YAML, and Markdown export formats and JSON import.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/sporttimer/internal/models"
	"github.com/harperreed/sporttimer/internal/storage"
)

var (
	exportOutput string
	exportType   string
	exportSince  string
)

var exportCmd = &cobra.Command{
	Use:   "export <format>",
	Short: "Export workouts",
	Long: `Export workouts in various formats.

FORMATS:

  json       Full JSON export (suitable for backup/restore)
  yaml       YAML export grouped by category (human-readable)
  markdown   Markdown tables per category (for sharing)

OPTIONS:

  --output, -o   Write to file instead of stdout
  --type, -t     Only one category (markdown only)
  --since        Only workouts since this date (YYYY-MM-DD, markdown only)

EXAMPLES:

  sporttimer export json -o backup.json
  sporttimer export yaml
  sporttimer export markdown --type cardio --since 2026-01-01`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"json", "yaml", "markdown"},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		format := args[0]

		var data []byte
		var err error

		switch format {
		case "json":
			data, err = storage.ExportJSON(ctx, repo)
		case "yaml":
			data, err = storage.ExportYAML(ctx, repo)
		case "markdown":
			var category *models.Category
			if exportType != "" {
				c, err := models.ParseCategory(exportType)
				if err != nil {
					return err
				}
				category = &c
			}
			var since *time.Time
			if exportSince != "" {
				t, err := time.ParseInLocation("2006-01-02", exportSince, time.Local)
				if err != nil {
					return fmt.Errorf("invalid date format: %s (use YYYY-MM-DD)", exportSince)
				}
				since = &t
			}
			var md string
			md, err = storage.ExportMarkdown(ctx, repo, category, since)
			data = []byte(md)
		default:
			return fmt.Errorf("unknown format: %s (use json, yaml, or markdown)", format)
		}

		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		if exportOutput != "" {
			if err := os.WriteFile(exportOutput, data, 0600); err != nil {
				return fmt.Errorf("failed to write file: %w", err)
			}
			color.Green("✓ Exported to %s", exportOutput)
		} else {
			fmt.Println(string(data))
		}

		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import workouts from JSON",
	Long: `Import workouts from a JSON backup file.

This imports workouts from a previously exported JSON file.
Import stops with an error at the first workout whose ID already exists.

EXAMPLES:

  sporttimer import backup.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename)
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		n, err := storage.ImportJSON(cmd.Context(), repo, data)
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		if err := engine.Refresh(cmd.Context()); err != nil {
			return err
		}

		color.Green("✓ Imported %d workout(s) from %s", n, filename)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportType, "type", "t", "", "filter by category (markdown only)")
	exportCmd.Flags().StringVar(&exportSince, "since", "", "only include workouts since date (YYYY-MM-DD)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}
