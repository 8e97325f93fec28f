package cmd

import (
	"github.com/spf13/cobra"
)

// NewRoot builds the top-level `recplan` command.
//
// We keep errors/usage silent and let main() decide how to print ExitResult
// vs generic errors.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "recplan",
		Short:         "recplan: record-plan manifests, kept within limits",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	root.PersistentFlags().Bool("json", false, "emit machine-structured output")
	root.PersistentFlags().StringP("format", "F", "", "machine output serialization: json|yaml")

	root.AddGroup(
		&cobra.Group{ID: "plan", Title: "record plans"},
		&cobra.Group{ID: "introspect", Title: "introspection"},
	)

	planCmd := newPlanCmd()
	planCmd.GroupID = "plan"

	telemetryCmd := newTelemetryCmd()
	telemetryCmd.GroupID = "introspect"

	commandsCmd := newCommandsCmd()
	commandsCmd.GroupID = "introspect"

	sessionCmd := newSessionCmd()
	sessionCmd.GroupID = "introspect"

	root.AddCommand(
		planCmd,
		telemetryCmd,
		commandsCmd,
		sessionCmd,
	)

	return root
}
