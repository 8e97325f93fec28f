package cmd

import (
	"github.com/recplan/cli/internal/app"
	"github.com/recplan/cli/internal/telemetry"
	"github.com/spf13/cobra"
)

var telemetryStatusDescriptor = app.Descriptor{
	Name:        "status",
	Topic:       "telemetry",
	Description: "Show the usage-aggregation window and pending records",
	Help: `Report when the current daily usage-aggregation window opened and how
many execution records are waiting for the next flush.`,
}

func init() {
	app.RegisterDescriptor(telemetryStatusDescriptor)
}

func newTelemetryCmd() *cobra.Command {
	tel := &cobra.Command{
		Use:   "telemetry",
		Short: "Inspect usage telemetry",
	}
	tel.AddCommand(newPipelineCmd(telemetryStatusDescriptor, telemetry.StatusCommand{}))
	return tel
}
