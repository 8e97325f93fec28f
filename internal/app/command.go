// Package app - command.go is the contract between the invocation pipeline
// and the business operations it runs. Execute is mandatory; everything else
// is an optional capability detected by interface assertion.
package app

// Command is a business operation run through the invocation pipeline.
type Command interface {
	// Execute runs the operation and returns an arbitrary success value.
	// The pipeline does not interpret its shape.
	Execute(ctx *Context) (any, error)
}

// Validator is implemented by commands with pre-execution checks. A
// validation failure skips execution entirely.
type Validator interface {
	Validate(ctx *Context) error
}

// PreExecuteMessenger supplies a line printed before execution starts,
// human mode only.
type PreExecuteMessenger interface {
	PreExecuteMessage(ctx *Context) string
}

// ResultRenderer lets a command choose the human-output form of its result.
type ResultRenderer interface {
	RenderResult(result any) RenderResult
}

// SuccessMessenger supplies a human success line for commands without a
// richer render form.
type SuccessMessenger interface {
	HumanSuccessMessage(result any) string
}

// ErrorMessenger overrides the human-mode message of a failed invocation.
type ErrorMessenger interface {
	HumanErrorMessage(err error) string
}

// EmptyMessenger overrides the "no results" text, per logical table name.
// The name is empty for single-table results.
type EmptyMessenger interface {
	EmptyResultMessage(table string) string
}
