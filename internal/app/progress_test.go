package app

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
)

func TestProgressEnabledRule(t *testing.T) {
	restore := isTerminalFunc
	isTerminalFunc = func() bool { return true }
	t.Cleanup(func() { isTerminalFunc = restore })

	tests := []struct {
		name string
		env  string
		json bool
		show bool
		want bool
	}{
		{"all on", "true", false, true, true},
		{"env off", "", false, true, false},
		{"json mode", "true", true, true, false},
		{"command opts out", "true", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(EnvSpinner, tt.env)
			ctx := &Context{JSON: tt.json, ShowProgress: tt.show}
			if got := ProgressEnabled(ctx); got != tt.want {
				t.Errorf("ProgressEnabled = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressEnabledRequiresTerminal(t *testing.T) {
	restore := isTerminalFunc
	isTerminalFunc = func() bool { return false }
	t.Cleanup(func() { isTerminalFunc = restore })
	t.Setenv(EnvSpinner, "true")

	ctx := &Context{ShowProgress: true}
	if ProgressEnabled(ctx) {
		t.Error("spinner enabled without a terminal")
	}
}

func TestStopWithoutStartIsSafe(t *testing.T) {
	var p ProgressIndicator
	p.Stop()
	p.Stop()
}

func TestStartAfterStopIsNoop(t *testing.T) {
	var p ProgressIndicator
	p.Stop()
	p.Start()
	if p.started {
		t.Error("indicator started after Stop")
	}
}

func TestStartProgressInactiveUnderJSON(t *testing.T) {
	t.Setenv(EnvSpinner, "true")
	ctx := &Context{JSON: true, ShowProgress: true}
	ind := StartProgress(ctx)
	if ind.started {
		t.Error("indicator started in machine mode")
	}
	ind.Stop()
}

func TestResolveSpinnerPresetAndDelay(t *testing.T) {
	t.Setenv(EnvSpinnerFrames, "2")
	t.Setenv(EnvSpinnerDelay, "120")
	sp := resolveSpinner()
	if len(sp.Frames) != len(spinner.MiniDot.Frames) {
		t.Errorf("preset not applied: %v", sp.Frames)
	}
	if sp.FPS != 120*time.Millisecond {
		t.Errorf("FPS = %v, want 120ms", sp.FPS)
	}
}

func TestResolveSpinnerCustomFrames(t *testing.T) {
	t.Setenv(EnvSpinnerFrames, "ab")
	t.Setenv(EnvSpinnerDelay, "")
	sp := resolveSpinner()
	if len(sp.Frames) != 2 || sp.Frames[0] != "a" || sp.Frames[1] != "b" {
		t.Errorf("frames = %v", sp.Frames)
	}
}
