// Package app - constants.go centralizes magic strings and configuration values.
package app

import (
	"fmt"
	"os"
	"path/filepath"
)

// Version is the CLI release version reported in telemetry records.
const Version = "1.4.0"

// Directory and file paths for the recplan CLI configuration.
const (
	// GlobalConfigDir is the application subdirectory within the OS config directory.
	GlobalConfigDir = "recplan"

	// StateFile holds persisted cross-invocation state, keyed by feature name.
	StateFile = "state.json"

	// SessionFile holds the active session handle, when one exists.
	SessionFile = "session.json"

	// TelemetryDBFile is the sqlite database accumulating execution records
	// between daily telemetry flushes.
	TelemetryDBFile = "executions.db"
)

// Environment variables recognized by the CLI.
const (
	// EnvSpinner enables the progress indicator ("true"/"1").
	EnvSpinner = "RECPLAN_SPINNER"

	// EnvSpinnerTitle overrides the spinner title text.
	EnvSpinnerTitle = "RECPLAN_SPINNER_TITLE"

	// EnvSpinnerFrames selects a numeric spinner preset or custom frame characters.
	EnvSpinnerFrames = "RECPLAN_SPINNER_FRAMES"

	// EnvSpinnerDelay overrides the frame delay in milliseconds.
	EnvSpinnerDelay = "RECPLAN_SPINNER_DELAY"

	// EnvSpinnerKeep leaves the spinner title on screen after stopping.
	EnvSpinnerKeep = "RECPLAN_SPINNER_KEEP"

	// EnvJSON forces machine-structured output, equivalent to --json.
	EnvJSON = "RECPLAN_JSON"

	// EnvLogLevel sets log verbosity: debug, info, warn, error.
	EnvLogLevel = "RECPLAN_LOG_LEVEL"

	// EnvExitWait overrides the pre-exit log flush wait in milliseconds.
	EnvExitWait = "RECPLAN_EXIT_WAIT"

	// EnvSoftExit suppresses process termination ("true"/"false").
	EnvSoftExit = "RECPLAN_SOFT_EXIT"
)

// GlobalConfigPath returns the platform-appropriate global config directory
// for recplan (e.g. ~/.config/recplan on Linux,
// ~/Library/Application Support/recplan on macOS).
func GlobalConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(configDir, GlobalConfigDir), nil
}

// File permissions.
const (
	// DirPerm is the permission mode for directories.
	DirPerm = 0o755

	// FilePerm is the permission mode for regular files.
	FilePerm = 0o644
)

// MaxRecordsPerFile is the record count above which a data file gets split
// into chunks, and the exact size of every non-final chunk.
const MaxRecordsPerFile = 200
