package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/recplan/cli/internal/app"
	"github.com/recplan/cli/internal/cmd"
)

// main wires the root command and decides how to print ExitResult vs generic
// errors. Pipeline commands normally terminate inside the exit controller
// and never return here.
func main() {
	slog.SetDefault(app.NewLogger(os.Stderr, app.LogLevelFromEnv()))

	if err := cmd.NewRoot().Execute(); err != nil {
		var exit app.ExitResult
		if errors.As(err, &exit) {
			if exit.Message != "" {
				var w io.Writer = os.Stdout
				if exit.UseStderr() {
					w = os.Stderr
				}
				fmt.Fprintln(w, exit.Message)
			}
			os.Exit(exit.ExitCode())
		}
		// Usage and flag-parse errors from cobra land here.
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}
