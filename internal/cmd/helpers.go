package cmd

import (
	"log/slog"

	"github.com/recplan/cli/internal/app"
	"github.com/recplan/cli/internal/telemetry"
	"github.com/spf13/cobra"
)

// newPipelineCmd builds a cobra command from a descriptor and wires its RunE
// into the invocation pipeline. Flags come from the descriptor; cobra only
// parses them, the pipeline consumes them through the context flag map.
func newPipelineCmd(desc app.Descriptor, impl app.Command) *cobra.Command {
	c := &cobra.Command{
		Use:   desc.Name,
		Short: desc.Description,
		Long:  desc.Help,
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runPipeline(c, desc, impl)
		},
	}
	for _, f := range desc.Flags {
		if f.HasValue {
			c.Flags().StringP(f.Name, f.Short, "", f.Description)
		} else {
			c.Flags().BoolP(f.Name, f.Short, false, f.Description)
		}
		if f.Required {
			_ = c.MarkFlagRequired(f.Name)
		}
	}
	return c
}

// runPipeline is the single entry into the invocation pipeline. It only
// returns for pre-pipeline fatal conditions; otherwise the exit controller
// ends the process.
func runPipeline(c *cobra.Command, desc app.Descriptor, impl app.Command) error {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.ExitResult{Code: 1, Message: err.Error(), ToStderr: true}
	}

	// Outer workspace filter: commands needing a session fail fast before
	// the pipeline starts.
	if desc.RequiresWorkspace && !app.HasSession() {
		return app.ExitResult{Code: 1, Message: app.Message("errorWorkspace"), ToStderr: true}
	}

	ctx := app.NewContext(collectFlags(c, desc))
	if !cfg.UI.Spinner {
		ctx.ShowProgress = false
	}

	formatFlag, _ := c.Root().PersistentFlags().GetString("format")
	format, err := app.ParseOutputFormat(formatFlag)
	if err != nil {
		return app.ExitResult{Code: 2, Message: err.Error(), ToStderr: true}
	}

	inv := &app.Invoker{
		Reporter: &app.Reporter{Format: format},
		Recorder: newRecorder(cfg, ctx.Logger),
		Exit:     app.NewExitController(cfg),
	}
	inv.Run(ctx, desc, impl)
	return nil
}

// collectFlags copies parsed flag values into the context flag map, plus the
// global json flag.
func collectFlags(c *cobra.Command, desc app.Descriptor) map[string]string {
	flags := map[string]string{}
	for _, f := range desc.Flags {
		if f.HasValue {
			if v, err := c.Flags().GetString(f.Name); err == nil && v != "" {
				flags[f.Name] = v
			}
		} else {
			if v, err := c.Flags().GetBool(f.Name); err == nil && v {
				flags[f.Name] = "true"
			}
		}
	}
	if v, err := c.Root().PersistentFlags().GetBool("json"); err == nil && v {
		flags["json"] = "true"
	}
	return flags
}

// newRecorder wires the telemetry aggregator. Any wiring failure disables
// recording for the invocation; telemetry never blocks a command.
func newRecorder(cfg app.Config, logger *slog.Logger) app.CompletionRecorder {
	if cfg.Telemetry.Disabled {
		return nil
	}
	statePath, err := cfg.StatePath()
	if err != nil {
		logger.Debug("telemetry disabled", "error", err)
		return nil
	}
	dbPath, err := cfg.ExecutionDBPath()
	if err != nil {
		logger.Debug("telemetry disabled", "error", err)
		return nil
	}
	store, err := telemetry.OpenExecutionStore(dbPath)
	if err != nil {
		logger.Debug("telemetry disabled", "error", err)
		return nil
	}
	var sink telemetry.UsageSink = &telemetry.LogSink{Logger: logger}
	if cfg.Telemetry.Endpoint != "" {
		sink = &telemetry.HTTPSink{Endpoint: cfg.Telemetry.Endpoint}
	}
	return &telemetry.Aggregator{
		State:   &telemetry.StateStore{Path: statePath},
		Store:   store,
		Sink:    sink,
		Version: app.Version,
		Logger:  logger,
	}
}
