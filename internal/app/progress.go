// Package app - progress.go is the optional spinner shown while a command
// executes. It runs a small bubbletea program on stderr; Start and Stop are
// idempotent and safe on a never-started indicator.
package app

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// spinnerPresets are selectable via RECPLAN_SPINNER_FRAMES as a numeric id.
var spinnerPresets = []spinner.Spinner{
	spinner.Line,
	spinner.Dot,
	spinner.MiniDot,
	spinner.Jump,
	spinner.Pulse,
	spinner.Points,
	spinner.Globe,
	spinner.Moon,
}

// ProgressIndicator wraps the spinner lifecycle. The zero value is inactive.
type ProgressIndicator struct {
	mu      sync.Mutex
	prog    *tea.Program
	done    chan struct{}
	title   string
	keep    bool
	started bool
	stopped bool
}

// isTerminalFunc gates the spinner on a real terminal. Swappable in tests.
var isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stderr.Fd())) }

// ProgressEnabled reports whether the indicator may run for this invocation:
// the command wants it, the env enables it, and output is not machine mode.
func ProgressEnabled(ctx *Context) bool {
	return ctx.ShowProgress && envBool(EnvSpinner) && !ctx.JSON && isTerminalFunc()
}

// StartProgress builds and starts an indicator for the invocation, storing
// the live handle on the context. Returns an inactive indicator when the
// activation rule says no.
func StartProgress(ctx *Context) *ProgressIndicator {
	ind := &ProgressIndicator{}
	ctx.indicator = ind
	if !ProgressEnabled(ctx) {
		return ind
	}
	ind.title = os.Getenv(EnvSpinnerTitle)
	if ind.title == "" {
		ind.title = "Processing..."
	}
	ind.keep = envBool(EnvSpinnerKeep)
	ind.Start()
	return ind
}

// Start begins rendering. Calling it twice, or after Stop, is a no-op.
func (p *ProgressIndicator) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started || p.stopped {
		return
	}
	p.started = true

	model := spinModel{sp: spinner.New(spinner.WithSpinner(resolveSpinner())), title: p.title}
	p.prog = tea.NewProgram(model,
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		_, _ = p.prog.Run()
	}()
}

// Stop halts rendering. Safe on every terminal path, including when the
// indicator never started.
func (p *ProgressIndicator) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped {
		return
	}
	p.stopped = true
	if !p.started || p.prog == nil {
		return
	}
	p.prog.Quit()
	select {
	case <-p.done:
	case <-time.After(time.Second):
	}
	if p.keep {
		os.Stderr.WriteString(p.title + "\n")
	}
}

// resolveSpinner picks the frame set: a numeric preset id, custom frame
// characters, or the default line spinner. RECPLAN_SPINNER_DELAY overrides
// the frame delay.
func resolveSpinner() spinner.Spinner {
	sp := spinnerPresets[0]
	if v := os.Getenv(EnvSpinnerFrames); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			if id >= 0 && id < len(spinnerPresets) {
				sp = spinnerPresets[id]
			}
		} else {
			frames := strings.Split(v, "")
			sp = spinner.Spinner{Frames: frames, FPS: sp.FPS}
		}
	}
	if v := os.Getenv(EnvSpinnerDelay); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			sp.FPS = time.Duration(ms) * time.Millisecond
		}
	}
	return sp
}

// spinModel is the minimal bubbletea model behind the indicator.
type spinModel struct {
	sp    spinner.Model
	title string
}

func (m spinModel) Init() tea.Cmd { return m.sp.Tick }

func (m spinModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(spinner.TickMsg); ok {
		var cmd tea.Cmd
		m.sp, cmd = m.sp.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinModel) View() string { return m.sp.View() + " " + m.title }
