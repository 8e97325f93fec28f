// Package app - report.go renders command outcomes in human or machine form.
// A reporting failure must never corrupt the business result: rendering
// errors degrade to plain text instead of propagating.
package app

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// Literal substrings marking an expired external session. Errors matching
// one of these gain a canned remediation action under token-based sessions.
var sessionExpiryPatterns = []string{
	"Session expired or invalid",
	"Destination URL not reset",
}

// OutputFormat selects the machine-output serialization.
type OutputFormat string

const (
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// ParseOutputFormat parses a string into an OutputFormat.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch s {
	case "", "json":
		return OutputFormatJSON, nil
	case "yaml", "yml":
		return OutputFormatYAML, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: json, yaml)", s)
	}
}

// FormatOutput serializes v to the specified output format.
// JSON output is pretty-printed (indented).
func FormatOutput(v any, format OutputFormat) ([]byte, error) {
	switch format {
	case OutputFormatYAML:
		// Round-trip via JSON so struct tags decide the key names.
		b, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		var tmp any
		if err := json.Unmarshal(b, &tmp); err != nil {
			return nil, err
		}
		return yaml.Marshal(tmp)
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}

// Reporter renders success and error outcomes.
type Reporter struct {
	// Format is the machine-output serialization, JSON when empty.
	Format OutputFormat
}

// successEnvelope is the machine-mode success payload.
type successEnvelope struct {
	Status int `json:"status"`
	Result any `json:"result"`
}

// errorEnvelope is the machine-mode error payload. Message holds the
// tabular rows when the error carries them, the message text otherwise.
type errorEnvelope struct {
	Status  int    `json:"status"`
	Name    string `json:"name"`
	Message any    `json:"message"`
	Action  string `json:"action,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

// Success reports a completed invocation.
func (r *Reporter) Success(cmd Command, ctx *Context, result any) {
	if ctx.JSON {
		r.emit(ctx, successEnvelope{Status: 0, Result: result})
		return
	}

	res := r.resolveRender(cmd, result)
	if res == nil {
		return
	}
	switch res.Kind {
	case RenderEmpty:
		fmt.Fprintln(ctx.Out, Styles.Dim.Render(res.Message))
	case RenderRowSet:
		r.printTable(ctx, cmd, "", res.Rows)
	case RenderTableSet:
		for i, nt := range res.Tables {
			if i > 0 {
				fmt.Fprintln(ctx.Out)
			}
			fmt.Fprintln(ctx.Out, Styles.Header.Render(nt.Name))
			r.printTable(ctx, cmd, nt.Name, nt.Rows)
		}
	case RenderMessage:
		if res.Message != "" {
			fmt.Fprintln(ctx.Out, res.Message)
		}
	}
}

// resolveRender picks the human-output form: the command's own choice when
// it makes one, otherwise a minimal fallback (empty collection notice or
// plain success message).
func (r *Reporter) resolveRender(cmd Command, result any) *RenderResult {
	if rr, ok := cmd.(ResultRenderer); ok {
		res := rr.RenderResult(result)
		return &res
	}
	if v := reflect.ValueOf(result); v.Kind() == reflect.Slice && v.Len() == 0 {
		res := EmptyResult(emptyMessage(cmd, ""))
		return &res
	}
	if sm, ok := cmd.(SuccessMessenger); ok {
		if msg := sm.HumanSuccessMessage(result); msg != "" {
			res := MessageResult(msg)
			return &res
		}
	}
	return nil
}

func (r *Reporter) printTable(ctx *Context, cmd Command, name string, rs RowSet) {
	if len(rs.Rows) == 0 {
		fmt.Fprintln(ctx.Out, Styles.Dim.Render(emptyMessage(cmd, name)))
		return
	}
	fmt.Fprintln(ctx.Out, renderRowSet(rs))
}

func emptyMessage(cmd Command, table string) string {
	if em, ok := cmd.(EmptyMessenger); ok {
		if msg := em.EmptyResultMessage(table); msg != "" {
			return msg
		}
	}
	return Message("noResults")
}

// Error reports a failed invocation and returns the process exit status.
func (r *Reporter) Error(cmd Command, ctx *Context, err error) int {
	re := Classify(err)

	// Expired-session errors get a canned remediation under token sessions.
	if re.Action == "" && ctx.Session != nil && ctx.Session.TokenBased {
		for _, pat := range sessionExpiryPatterns {
			if strings.Contains(re.Message, pat) {
				re.Action = Message("actionSessionRefresh")
				break
			}
		}
	}

	status := re.Code
	if status == 0 {
		status = 1
	}
	message := terminated(re.Message)

	env := errorEnvelope{
		Status:  status,
		Name:    re.Kind,
		Message: message,
		Action:  re.Action,
		Stack:   re.Stack,
	}
	if re.Tabular != nil {
		env.Message = re.Tabular.Rows
	}

	// The full structured error is always available at debug verbosity.
	ctx.Logger.Debug("command failed",
		"name", re.Kind, "status", status, "message", message, "action", re.Action)

	if ctx.JSON {
		r.emit(ctx, env)
		return status
	}

	if em, ok := cmd.(ErrorMessenger); ok {
		if msg := em.HumanErrorMessage(re); msg != "" {
			message = terminated(msg)
		}
	}

	switch {
	case re.Tabular != nil && len(re.Tabular.Columns) > 0:
		fmt.Fprintln(ctx.ErrOut, Styles.Error.Render("Error: ")+message)
		fmt.Fprintln(ctx.ErrOut, renderRowSet(RowSet{Columns: re.Tabular.Columns, Rows: re.Tabular.Rows}))
	case re.Action != "":
		fmt.Fprintln(ctx.ErrOut, Styles.Error.Render("Error: ")+message)
		fmt.Fprintln(ctx.ErrOut, Styles.Action.Render("Try this: ")+re.Action)
	default:
		fmt.Fprintln(ctx.ErrOut, Styles.Error.Render("Error: ")+message)
	}
	return status
}

// emit writes a machine-mode payload. Serialization failures degrade to a
// plain line rather than failing the invocation.
func (r *Reporter) emit(ctx *Context, v any) {
	b, err := FormatOutput(v, r.Format)
	if err != nil {
		fmt.Fprintf(ctx.Out, "%v\n", v)
		return
	}
	fmt.Fprintln(ctx.Out, string(b))
}

// terminated ensures a message ends with sentence punctuation.
func terminated(msg string) string {
	trimmed := strings.TrimRight(msg, " \t\n")
	if trimmed == "" {
		return trimmed
	}
	switch trimmed[len(trimmed)-1] {
	case '.', '!', '?':
		return trimmed
	}
	return trimmed + "."
}
