// Package app - errors.go defines the classified error type flowing out of
// every failed invocation, and the factory that builds one from catalog keys.
package app

import (
	"errors"
	"runtime/debug"
	"strings"
)

// Taxonomy names carried by ReportableError.Kind.
const (
	KindValidation     = "ValidationError"
	KindNotFound       = "NotFoundError"
	KindSessionExpired = "SessionExpiredError"
	KindGeneric        = "GenericExecutionError"
)

// kindByKey maps catalog key names to taxonomy names. Keys absent here keep
// their raw name as the kind.
var kindByKey = map[string]string{
	"errorNoManifest":     KindValidation,
	"errorNoSession":      KindValidation,
	"errorWorkspace":      KindValidation,
	"errorBadManifest":    KindValidation,
	"errorBadDataFile":    KindValidation,
	"errorFileNotFound":   KindNotFound,
	"errorSessionExpired": KindSessionExpired,
}

// Tabular is an optional row/column payload attached to an error, rendered
// as a table in human mode and emitted as rows in machine mode.
type Tabular struct {
	Columns []Column         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
}

// ReportableError is the classified error produced by every failure path.
// Exactly one ReportableError or one success result leaves an invocation.
type ReportableError struct {
	Kind    string   `json:"name"`
	Message string   `json:"message"`
	Action  string   `json:"action,omitempty"`
	Tabular *Tabular `json:"data,omitempty"`
	Stack   string   `json:"stack,omitempty"`

	// Code overrides the process exit status. Zero means the default (1).
	Code int `json:"-"`
}

func (e *ReportableError) Error() string { return e.Message }

// NewError builds a ReportableError from a catalog key and message tokens.
// The taxonomy kind comes from the static key mapping, defaulting to the
// bare key name when unmapped.
func NewError(key string, tokens ...any) *ReportableError {
	name := key
	if i := strings.IndexByte(key, ':'); i >= 0 {
		name = key[i+1:]
	}
	kind, ok := kindByKey[name]
	if !ok {
		kind = name
	}
	return &ReportableError{
		Kind:    kind,
		Message: Message(key, tokens...),
		Stack:   string(debug.Stack()),
	}
}

// NewErrorWithAction builds a classified error plus a remediation action,
// both resolved through the catalog.
func NewErrorWithAction(key string, tokens []any, actionKey string, actionTokens ...any) *ReportableError {
	e := NewError(key, tokens...)
	e.Action = Message(actionKey, actionTokens...)
	return e
}

// Classify wraps an arbitrary error into a ReportableError. Errors that are
// already classified pass through unchanged; anything else becomes a
// GenericExecutionError.
func Classify(err error) *ReportableError {
	var re *ReportableError
	if errors.As(err, &re) {
		return re
	}
	return &ReportableError{
		Kind:    KindGeneric,
		Message: err.Error(),
		Stack:   string(debug.Stack()),
	}
}
