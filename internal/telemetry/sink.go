package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// UsageSink receives the aggregated daily usage records.
type UsageSink interface {
	Submit(ctx context.Context, records []UsageRecord) error
}

// HTTPSink posts usage records as a JSON array to a collector endpoint.
type HTTPSink struct {
	Endpoint string
	Client   *http.Client
}

// Submit sends the records in one POST. Any non-2xx response is an error so
// the aggregator keeps the window open and retries on the next rollover.
func (s *HTTPSink) Submit(ctx context.Context, records []UsageRecord) error {
	body, err := json.Marshal(records)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.Endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("usage submit: unexpected status %d", resp.StatusCode)
	}
	return nil
}

// LogSink writes records to the logger at debug level. Used when no
// collector endpoint is configured.
type LogSink struct {
	Logger *slog.Logger
}

func (s *LogSink) Submit(_ context.Context, records []UsageRecord) error {
	for _, r := range records {
		s.Logger.Debug("usage record",
			"command", r.CommandKey,
			"version", r.Version,
			"executions", r.TotalExecutions,
			"errors", r.TotalErrors,
			"avg_ms", r.AvgRuntime,
			"min_ms", r.MinRuntime,
			"max_ms", r.MaxRuntime)
	}
	return nil
}
