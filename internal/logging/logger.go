// ABOUTME: Process-wide logrus configuration.
// ABOUTME: Logs go to stderr, optionally also to a rotating file.
package logging

import (
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Params struct {
	Level string
	// File, when set, receives logs through a rotating writer.
	File string
	// AlsoStderr keeps writing to stderr when File is set.
	AlsoStderr bool
	JSON       bool
}

// Setup configures the standard logrus logger. It returns the rotating
// writer, if any, so the caller can close it on exit.
func Setup(params Params) io.Closer {
	if params.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: params.File == ""})
	}

	log.SetLevel(GetLevel(params.Level))

	if params.File == "" {
		log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	if !strings.HasSuffix(params.File, ".log") {
		params.File += ".log"
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.File,
		MaxSize:    10, // megabytes
		MaxBackups: 5,
		LocalTime:  true,
		Compress:   true,
	}

	if params.AlsoStderr {
		log.SetOutput(io.MultiWriter(os.Stderr, lumberJackLogger))
	} else {
		log.SetOutput(lumberJackLogger)
	}
	return lumberJackLogger
}

// GetLevel parses a level name; unknown names mean warn so CLI output stays quiet.
func GetLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
