package app

import (
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type scriptedCmd struct {
	validateErr error
	execErr     error
	result      any
	preMessage  string

	calls *[]string
}

func (c scriptedCmd) Validate(*Context) error {
	*c.calls = append(*c.calls, "validate")
	return c.validateErr
}

func (c scriptedCmd) PreExecuteMessage(*Context) string {
	*c.calls = append(*c.calls, "premessage")
	return c.preMessage
}

func (c scriptedCmd) Execute(*Context) (any, error) {
	*c.calls = append(*c.calls, "execute")
	return c.result, c.execErr
}

func (c scriptedCmd) HumanSuccessMessage(any) string { return "ok" }

type recordedCompletion struct {
	key     string
	runtime time.Duration
	failed  bool
}

type fakeRecorder struct {
	calls *[]string
	recs  []recordedCompletion
}

func (r *fakeRecorder) RecordCompletion(key string, runtime time.Duration, failed bool) {
	*r.calls = append(*r.calls, "telemetry")
	r.recs = append(r.recs, recordedCompletion{key, runtime, failed})
}

func newTestInvoker(calls *[]string) (*Invoker, *fakeRecorder, *[]int) {
	rec := &fakeRecorder{calls: calls}
	var codes []int
	inv := &Invoker{
		Reporter: &Reporter{},
		Recorder: rec,
		Exit: &ExitController{
			Level: slog.LevelError,
			terminate: func(code int) {
				*calls = append(*calls, "exit")
				codes = append(codes, code)
			},
		},
	}
	return inv, rec, &codes
}

func TestInvokerSuccessPath(t *testing.T) {
	var calls []string
	inv, rec, codes := newTestInvoker(&calls)
	ctx, out, _ := testContext(false)

	inv.Run(ctx, Descriptor{Name: "split", Topic: "plan"}, scriptedCmd{result: 1, preMessage: "starting", calls: &calls})

	want := []string{"validate", "premessage", "execute", "telemetry", "exit"}
	if strings.Join(calls, ",") != strings.Join(want, ",") {
		t.Errorf("call order = %v, want %v", calls, want)
	}
	if len(*codes) != 1 || (*codes)[0] != 0 {
		t.Errorf("exit codes = %v, want [0]", *codes)
	}
	if len(rec.recs) != 1 || rec.recs[0].key != "plan:split" || rec.recs[0].failed {
		t.Errorf("telemetry recs = %+v", rec.recs)
	}
	if !strings.Contains(out.String(), "starting") {
		t.Errorf("missing pre-execute message: %q", out.String())
	}
}

func TestInvokerValidationFailureSkipsExecute(t *testing.T) {
	var calls []string
	inv, rec, codes := newTestInvoker(&calls)
	ctx, _, errOut := testContext(false)

	inv.Run(ctx, Descriptor{Name: "split"}, scriptedCmd{
		validateErr: NewError("split:errorNoManifest"),
		calls:       &calls,
	})

	for _, c := range calls {
		if c == "execute" || c == "premessage" {
			t.Errorf("stage %q ran after validation failure (calls %v)", c, calls)
		}
	}
	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Errorf("exit codes = %v, want [1]", *codes)
	}
	if len(rec.recs) != 1 || !rec.recs[0].failed {
		t.Errorf("telemetry recs = %+v", rec.recs)
	}
	if !strings.Contains(errOut.String(), "--plan flag is required") {
		t.Errorf("error output = %q", errOut.String())
	}
}

func TestInvokerExecutionFailure(t *testing.T) {
	var calls []string
	inv, _, codes := newTestInvoker(&calls)
	ctx, _, _ := testContext(false)

	inv.Run(ctx, Descriptor{Name: "x"}, scriptedCmd{execErr: errors.New("boom"), calls: &calls})

	if len(*codes) != 1 || (*codes)[0] != 1 {
		t.Errorf("exit codes = %v, want [1]", *codes)
	}
}

func TestInvokerSessionWait(t *testing.T) {
	var calls []string
	inv, _, codes := newTestInvoker(&calls)
	inv.Session = func() (*Session, error) {
		calls = append(calls, "session")
		return &Session{Alias: "dev", TokenBased: true}, nil
	}
	ctx, _, _ := testContext(false)

	inv.Run(ctx, Descriptor{Name: "x", RequiresWorkspace: true}, scriptedCmd{calls: &calls})

	if ctx.Session == nil || ctx.Session.Alias != "dev" {
		t.Errorf("session not attached: %+v", ctx.Session)
	}
	joined := strings.Join(calls, ",")
	if !strings.Contains(joined, "validate,session") {
		t.Errorf("session wait out of order: %v", calls)
	}
	if (*codes)[0] != 0 {
		t.Errorf("exit codes = %v", *codes)
	}
}

func TestInvokerSessionFailureRoutesToFailed(t *testing.T) {
	var calls []string
	inv, _, codes := newTestInvoker(&calls)
	inv.Session = func() (*Session, error) { return nil, NewError("errorNoSession") }
	ctx, _, _ := testContext(false)

	inv.Run(ctx, Descriptor{Name: "x", RequiresWorkspace: true}, scriptedCmd{calls: &calls})

	for _, c := range calls {
		if c == "execute" {
			t.Errorf("execute ran after session failure: %v", calls)
		}
	}
	if (*codes)[0] != 1 {
		t.Errorf("exit codes = %v, want [1]", *codes)
	}
}

func TestInvokerExitOverride(t *testing.T) {
	var calls []string
	inv, _, codes := newTestInvoker(&calls)
	ctx, _, _ := testContext(false)
	override := 42
	ctx.ExitOverride = &override

	inv.Run(ctx, Descriptor{Name: "x"}, scriptedCmd{calls: &calls})

	if (*codes)[0] != 42 {
		t.Errorf("exit codes = %v, want [42]", *codes)
	}
}

func TestInvokerExitExactlyOncePerBranch(t *testing.T) {
	for name, cmd := range map[string]scriptedCmd{
		"success": {result: "r"},
		"failure": {execErr: errors.New("nope")},
	} {
		t.Run(name, func(t *testing.T) {
			var calls []string
			c := cmd
			c.calls = &calls
			inv, _, codes := newTestInvoker(&calls)
			ctx, _, _ := testContext(false)
			inv.Run(ctx, Descriptor{Name: "x"}, c)
			if len(*codes) != 1 {
				t.Errorf("terminate calls = %v, want exactly one", *codes)
			}
		})
	}
}
