package telemetry

import (
	"context"
	"time"

	"github.com/recplan/cli/internal/app"
)

// StatusResult reports the state of the aggregation window.
type StatusResult struct {
	WindowStart int64 `json:"windowStart"`
	Pending     int   `json:"pending"`
}

// StatusCommand is the telemetry:status operation: report the current
// aggregation window and the pending execution-record count.
type StatusCommand struct{}

func (StatusCommand) Execute(ctx *app.Context) (any, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	statePath, err := cfg.StatePath()
	if err != nil {
		return nil, err
	}
	dbPath, err := cfg.ExecutionDBPath()
	if err != nil {
		return nil, err
	}

	st, err := (&StateStore{Path: statePath}).Load()
	if err != nil {
		return nil, err
	}
	store, err := OpenExecutionStore(dbPath)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	pending, err := store.Count(context.Background())
	if err != nil {
		return nil, err
	}
	return StatusResult{WindowStart: st.StartTime, Pending: pending}, nil
}

// RenderResult reports the window as a one-line message.
func (StatusCommand) RenderResult(result any) app.RenderResult {
	res, ok := result.(StatusResult)
	if !ok {
		return app.MessageResult("")
	}
	if res.WindowStart == 0 {
		return app.MessageResult(app.Message("telemetry:statusNoState", res.Pending))
	}
	started := fromMillis(res.WindowStart).Format(time.RFC3339)
	return app.MessageResult(app.Message("telemetry:statusWindow", started, res.Pending))
}
