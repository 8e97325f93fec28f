// Package app - invoker.go orchestrates the full lifecycle of one command
// execution: validation, optional session wait, progress indication,
// execution, reporting, telemetry, and the final exit decision.
package app

import (
	"fmt"
	"time"
)

// phase is the invoker's position in its strictly sequential state machine.
// There are no backward edges; a validation failure jumps straight to
// phaseFailed.
type phase int

const (
	phaseIdle phase = iota
	phaseValidating
	phaseSessionWait
	phasePreExecuteMessage
	phaseSpinning
	phaseExecuting
	phaseSucceeded
	phaseFailed
	phaseTelemetryFlush
	phaseExiting
)

var phaseNames = []string{
	"idle", "validating", "session-wait", "pre-execute-message",
	"spinning", "executing", "succeeded", "failed", "telemetry-flush", "exiting",
}

func (p phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// CompletionRecorder receives the outcome of every invocation. Implementations
// must be best-effort: a recording failure never surfaces to the user.
type CompletionRecorder interface {
	RecordCompletion(commandKey string, runtime time.Duration, failed bool)
}

// SessionResolver loads the external session for commands that need one.
type SessionResolver func() (*Session, error)

// Invoker runs one command through the pipeline. Exactly one of
// {success result, classified error} flows out, followed by exactly one
// telemetry recording and one exit decision.
type Invoker struct {
	Reporter *Reporter
	Recorder CompletionRecorder
	Exit     *ExitController
	Session  SessionResolver

	// Now is the clock seam, time.Now outside tests.
	Now func() time.Time

	phase phase
}

// to advances the state machine. Transitions are strictly forward; the
// trace is visible at debug verbosity.
func (inv *Invoker) to(ctx *Context, p phase) {
	inv.phase = p
	ctx.Logger.Debug("pipeline phase", "phase", p)
}

// Run executes cmd under desc through the full pipeline. It never returns an
// error: both branches end inside the exit controller.
func (inv *Invoker) Run(ctx *Context, desc Descriptor, cmd Command) {
	now := inv.Now
	if now == nil {
		now = time.Now
	}
	ctx.StartTime = now()

	result, runErr := inv.execute(ctx, desc, cmd)

	code := 0
	if runErr != nil {
		inv.to(ctx, phaseFailed)
		code = inv.Reporter.Error(cmd, ctx, runErr)
	} else {
		inv.to(ctx, phaseSucceeded)
		inv.Reporter.Success(cmd, ctx, result)
	}

	inv.to(ctx, phaseTelemetryFlush)
	if inv.Recorder != nil {
		inv.Recorder.RecordCompletion(desc.Key(), now().Sub(ctx.StartTime), runErr != nil)
	}

	inv.to(ctx, phaseExiting)
	if ctx.ExitOverride != nil {
		code = *ctx.ExitOverride
	}
	inv.Exit.Exit(code)
}

// execute runs the pre-exit stages. The progress indicator is stopped before
// this returns on every path, so reporting never races a live spinner.
func (inv *Invoker) execute(ctx *Context, desc Descriptor, cmd Command) (result any, err error) {
	inv.to(ctx, phaseValidating)
	if v, ok := cmd.(Validator); ok {
		if err := v.Validate(ctx); err != nil {
			return nil, err
		}
	}

	if desc.RequiresWorkspace && ctx.Session == nil {
		inv.to(ctx, phaseSessionWait)
		resolve := inv.Session
		if resolve == nil {
			resolve = LoadSession
		}
		s, err := resolve()
		if err != nil {
			return nil, err
		}
		ctx.Session = s
	}

	inv.to(ctx, phasePreExecuteMessage)
	if pm, ok := cmd.(PreExecuteMessenger); ok && !ctx.JSON {
		if msg := pm.PreExecuteMessage(ctx); msg != "" {
			fmt.Fprintln(ctx.Out, msg)
		}
	}

	inv.to(ctx, phaseSpinning)
	ind := StartProgress(ctx)
	defer ind.Stop()

	inv.to(ctx, phaseExecuting)
	return cmd.Execute(ctx)
}
