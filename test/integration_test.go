// ABOUTME: Integration tests for the sporttimer CLI.
// ABOUTME: Builds the binary and runs a full workflow against a temp XDG home.
package test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	// Build the binary
	projectRoot, _ := filepath.Abs("..")
	binary := filepath.Join(t.TempDir(), "sporttimer")

	buildCmd := exec.Command("go", "build", "-o", binary, "./cmd/sporttimer")
	buildCmd.Dir = projectRoot
	if output, err := buildCmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build: %v\n%s", err, output)
	}

	// Use a temp data and config home
	home := t.TempDir()

	run := func(args ...string) (string, error) {
		cmd := exec.Command(binary, args...)
		cmd.Env = append(os.Environ(),
			"XDG_DATA_HOME="+home,
			"XDG_CONFIG_HOME="+home,
			"NO_COLOR=1",
		)
		output, err := cmd.CombinedOutput()
		return string(output), err
	}

	// Keep the bell quiet
	if output, err := run("settings", "set", "sound", "off"); err != nil {
		t.Fatalf("Failed to set sound: %v\n%s", err, output)
	}

	// Test adding workouts
	output, err := run("add", "cardio", "45", "--notes", "hill repeats")
	if err != nil {
		t.Fatalf("Failed to add cardio: %v\n%s", err, output)
	}
	if !strings.Contains(output, "Added Кардио workout") {
		t.Errorf("Expected 'Added Кардио workout' in output, got: %s", output)
	}

	output, err = run("add", "strength", "1h")
	if err != nil {
		t.Fatalf("Failed to add strength: %v\n%s", err, output)
	}

	// Test listing and search
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "hill repeats") || !strings.Contains(output, "Силовая тренировка") {
		t.Errorf("Expected both workouts in list output, got: %s", output)
	}

	output, err = run("list", "--search", "HILL")
	if err != nil {
		t.Fatalf("Failed to search: %v\n%s", err, output)
	}
	if strings.Contains(output, "Силовая тренировка") {
		t.Errorf("Expected search to exclude strength workout, got: %s", output)
	}

	// Test stats
	output, err = run("stats")
	if err != nil {
		t.Fatalf("Failed to show stats: %v\n%s", err, output)
	}
	if !strings.Contains(output, "1h 45m") {
		t.Errorf("Expected total of 1h 45m in stats, got: %s", output)
	}

	// Test timer across processes
	for _, args := range [][]string{
		{"timer", "start", "--type", "yoga"},
		{"timer", "pause"},
		{"timer", "status"},
		{"timer", "stop"},
		{"timer", "reset"},
	} {
		if output, err := run(args...); err != nil {
			t.Fatalf("%v failed: %v\n%s", args, err, output)
		}
	}

	// Test export
	backup := filepath.Join(home, "backup.json")
	if output, err := run("export", "json", "-o", backup); err != nil {
		t.Fatalf("Failed to export: %v\n%s", err, output)
	}
	data, err := os.ReadFile(backup)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	var exported struct {
		Workouts []json.RawMessage `json:"workouts"`
	}
	if err := json.Unmarshal(data, &exported); err != nil {
		t.Fatalf("Export is not JSON: %v\n%s", err, data)
	}
	if len(exported.Workouts) < 2 {
		t.Errorf("Expected at least 2 exported workouts, got %d", len(exported.Workouts))
	}

	// Test delete all
	if output, err := run("delete", "--all", "--yes"); err != nil {
		t.Fatalf("Failed to delete: %v\n%s", err, output)
	}
	output, err = run("list")
	if err != nil {
		t.Fatalf("Failed to list: %v\n%s", err, output)
	}
	if !strings.Contains(output, "No workouts found.") {
		t.Errorf("Expected empty list, got: %s", output)
	}
}
