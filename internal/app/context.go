// Package app - context.go holds the per-invocation state bag threaded
// through the pipeline. One Context is created per process invocation and
// discarded when it ends.
package app

import (
	"io"
	"log/slog"
	"os"
	"time"
)

// Context carries flags and mutable per-invocation state. It replaces
// process-wide globals: spinner handle, start time, and exit-code override
// all live here.
type Context struct {
	// Flags maps flag name to parsed value. Boolean flags hold "true".
	Flags map[string]string

	// Session is the active external session, when one is loaded.
	Session *Session

	// JSON selects machine-structured output.
	JSON bool

	// ShowProgress requests a progress indicator during execution.
	ShowProgress bool

	// StartTime is stamped when the invoker begins running.
	StartTime time.Time

	// ExitOverride, when set, replaces the branch-derived exit code.
	ExitOverride *int

	// Logger is the invocation logger.
	Logger *slog.Logger

	// Out and ErrOut are the output streams, swappable in tests.
	Out    io.Writer
	ErrOut io.Writer

	// indicator is the live progress handle, mutated only by ProgressIndicator.
	indicator *ProgressIndicator
}

// NewContext builds a Context with stdio streams and a logger at the
// env-resolved level. JSON mode comes from the flag map or the env trigger.
func NewContext(flags map[string]string) *Context {
	if flags == nil {
		flags = map[string]string{}
	}
	jsonMode := flags["json"] == "true" || envBool(EnvJSON)
	return &Context{
		Flags:        flags,
		JSON:         jsonMode,
		ShowProgress: true,
		Logger:       NewLogger(os.Stderr, LogLevelFromEnv()),
		Out:          os.Stdout,
		ErrOut:       os.Stderr,
	}
}

// Flag returns the named flag value, empty when unset.
func (c *Context) Flag(name string) string { return c.Flags[name] }

// envBool reports whether an env var holds a truthy value.
func envBool(name string) bool {
	switch os.Getenv(name) {
	case "1", "true", "TRUE", "True":
		return true
	}
	return false
}
