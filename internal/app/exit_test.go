package app

import (
	"log/slog"
	"testing"
)

func newTestController(t *testing.T) (*ExitController, *[]int) {
	t.Helper()
	var codes []int
	e := &ExitController{
		Level:     slog.LevelError, // skip the flush delay in tests
		terminate: func(code int) { codes = append(codes, code) },
	}
	return e, &codes
}

func TestExitFiresExactlyOnce(t *testing.T) {
	e, codes := newTestController(t)
	e.Exit(1)
	e.Exit(0)
	e.Exit(1)
	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Errorf("terminate calls = %v, want exactly [1]", *codes)
	}
}

func TestExitSoftOverrideWins(t *testing.T) {
	t.Setenv(EnvSoftExit, "false")
	e, codes := newTestController(t)
	soft := true
	e.SoftOverride = &soft
	e.Config.SoftExitSet = true
	e.Config.Exit.Soft = false
	e.Exit(0)
	if len(*codes) != 0 {
		t.Errorf("terminate called under explicit soft override: %v", *codes)
	}
}

func TestExitEnvOverridesConfig(t *testing.T) {
	t.Setenv(EnvSoftExit, "true")
	e, codes := newTestController(t)
	e.Config.SoftExitSet = true
	e.Config.Exit.Soft = false
	e.Exit(0)
	if len(*codes) != 0 {
		t.Errorf("terminate called despite env soft exit: %v", *codes)
	}
}

func TestExitPersistedConfigApplies(t *testing.T) {
	e, codes := newTestController(t)
	e.Config.SoftExitSet = true
	e.Config.Exit.Soft = true
	e.Exit(0)
	if len(*codes) != 0 {
		t.Errorf("terminate called despite config soft exit: %v", *codes)
	}
}

func TestExitUndefinedMeansHard(t *testing.T) {
	e, codes := newTestController(t)
	e.Exit(7)
	if len(*codes) != 1 || (*codes)[0] != 7 {
		t.Errorf("terminate calls = %v, want [7]", *codes)
	}
}

func TestExitDelayBelowErrorVerbosity(t *testing.T) {
	var codes []int
	e := &ExitController{
		Level:     slog.LevelInfo,
		Wait:      1, // nanosecond-scale, just exercise the delay branch
		terminate: func(code int) { codes = append(codes, code) },
	}
	e.Exit(0)
	if len(codes) != 1 {
		t.Errorf("terminate calls = %v, want one call after delay", codes)
	}
}

func TestExitWaitResolution(t *testing.T) {
	e := &ExitController{}
	if got := e.wait(); got != DefaultExitWait {
		t.Errorf("default wait = %v, want %v", got, DefaultExitWait)
	}
	e.Config.Exit.WaitMS = 50
	if got := e.wait().Milliseconds(); got != 50 {
		t.Errorf("config wait = %dms, want 50ms", got)
	}
	t.Setenv(EnvExitWait, "10")
	if got := e.wait().Milliseconds(); got != 10 {
		t.Errorf("env wait = %dms, want 10ms", got)
	}
}
