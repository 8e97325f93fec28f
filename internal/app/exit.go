package app

import (
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"
)

// ExitResult lets CLI handlers control exit code + whether output goes to stderr.
// This keeps command output clean while still using `error` as the control flow.
// It covers the thin layer outside the invocation pipeline: usage errors and
// pre-pipeline fatal conditions.
type ExitResult struct {
	Code     int
	Message  string
	ToStderr bool
}

func (e ExitResult) Error() string   { return e.Message }
func (e ExitResult) ExitCode() int   { return e.Code }
func (e ExitResult) UseStderr() bool { return e.ToStderr }

// DefaultExitWait is the hard-exit delay allowing async log flushing.
const DefaultExitWait = 1000 * time.Millisecond

// ExitController decides soft (no-op) vs. hard process termination. It fires
// at most once regardless of how many paths reach it.
type ExitController struct {
	// SoftOverride, when non-nil, wins over env and persisted config.
	SoftOverride *bool

	// Config supplies the persisted soft-exit setting.
	Config Config

	// Level is the active log verbosity. At error level the hard exit skips
	// the flush delay.
	Level slog.Level

	// Wait is the pre-termination delay; zero means the resolved default.
	Wait time.Duration

	// terminate is the process-exit seam, os.Exit outside tests.
	terminate func(int)

	once sync.Once
}

// NewExitController builds a controller terminating via os.Exit.
func NewExitController(cfg Config) *ExitController {
	return &ExitController{
		Config:    cfg,
		Level:     LogLevelFromEnv(),
		terminate: os.Exit,
	}
}

// Exit ends the process with the given code, or does nothing under soft
// exit. Exactly one call takes effect per invocation.
func (e *ExitController) Exit(code int) {
	e.once.Do(func() {
		if e.soft() {
			return
		}
		if e.Level < slog.LevelError {
			time.Sleep(e.wait())
		}
		e.terminate(code)
	})
}

// soft resolves the soft-exit flag: explicit override > env > persisted
// config. Undefined everywhere means hard exit.
func (e *ExitController) soft() bool {
	if e.SoftOverride != nil {
		return *e.SoftOverride
	}
	if v := os.Getenv(EnvSoftExit); v != "" {
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	if e.Config.SoftExitSet {
		return e.Config.Exit.Soft
	}
	return false
}

func (e *ExitController) wait() time.Duration {
	if v := os.Getenv(EnvExitWait); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	if e.Wait > 0 {
		return e.Wait
	}
	if e.Config.Exit.WaitMS > 0 {
		return time.Duration(e.Config.Exit.WaitMS) * time.Millisecond
	}
	return DefaultExitWait
}
