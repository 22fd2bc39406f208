// ABOUTME: Tests for logrus setup.
// ABOUTME: Covers level parsing and the rotating log file.
package logging

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	tests := map[string]log.Level{
		"trace":   log.TraceLevel,
		"DEBUG":   log.DebugLevel,
		" info ":  log.InfoLevel,
		"warn":    log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.WarnLevel,
		"verbose": log.WarnLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, GetLevel(in), "level %q", in)
	}
}

func TestSetupWritesToRotatingFile(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})

	path := filepath.Join(t.TempDir(), "sporttimer")
	closer := Setup(Params{Level: "info", File: path, JSON: true})

	log.WithField("component", "test").Info("hello from the log")
	log.Debug("filtered out")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path + ".log")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello from the log"`)
	assert.Contains(t, string(data), `"component":"test"`)
	assert.NotContains(t, string(data), "filtered out")
}

func TestSetupStderrOnly(t *testing.T) {
	t.Cleanup(func() { log.SetLevel(log.InfoLevel) })
	closer := Setup(Params{Level: "debug"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.NoError(t, closer.Close())
}
