package telemetry

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// UsageRecord is one aggregated (command, version) line submitted on a
// daily flush.
type UsageRecord struct {
	CommandKey      string `json:"commandKey"`
	CommandName     string `json:"commandName"`
	Version         string `json:"version"`
	TotalExecutions int64  `json:"totalExecutions"`
	TotalErrors     int64  `json:"totalErrors"`
	AvgRuntime      int64  `json:"avgRuntime"`
	MinRuntime      int64  `json:"minRuntime"`
	MaxRuntime      int64  `json:"maxRuntime"`
}

// flushInterval is the aggregation window length.
const flushInterval = 24 * time.Hour

// Aggregator records completions and flushes aggregated usage once per day.
type Aggregator struct {
	State   *StateStore
	Store   *ExecutionStore
	Sink    UsageSink
	Version string
	Logger  *slog.Logger

	// Now is the clock seam, time.Now outside tests.
	Now func() time.Time
}

// RecordCompletion records one command completion and, on a day rollover,
// flushes the aggregated window. Every failure in here is swallowed:
// telemetry must never fail or delay the user-visible outcome.
func (a *Aggregator) RecordCompletion(commandKey string, runtime time.Duration, failed bool) {
	defer func() {
		if r := recover(); r != nil {
			a.Logger.Debug("telemetry panic swallowed", "panic", r)
		}
	}()
	if err := a.record(commandKey, runtime, failed); err != nil {
		a.Logger.Debug("telemetry recording failed", "error", err)
	}
}

func (a *Aggregator) record(commandKey string, runtime time.Duration, failed bool) error {
	now := a.now()
	ctx := context.Background()

	if err := a.Store.Append(ctx, Execution{
		Command:   commandKey,
		Version:   a.Version,
		RuntimeMS: runtime.Milliseconds(),
		Failed:    failed,
	}); err != nil {
		return err
	}

	st, err := a.State.Load()
	if err != nil {
		return err
	}
	if st.StartTime == 0 {
		st.StartTime = toMillis(DayBoundary(now))
		return a.State.Save(st)
	}

	if now.Sub(fromMillis(st.StartTime)) < flushInterval {
		return nil
	}
	return a.flush(ctx, now, st)
}

// flush aggregates pending executions, submits them, and only then advances
// the window and clears the store, so a failed submission is retried on the
// next completion.
func (a *Aggregator) flush(ctx context.Context, now time.Time, st UsageState) error {
	execs, err := a.Store.List(ctx)
	if err != nil {
		return err
	}
	if len(execs) > 0 {
		if err := a.Sink.Submit(ctx, Aggregate(execs)); err != nil {
			return err
		}
	}
	st.StartTime = toMillis(DayBoundary(now))
	if err := a.State.Save(st); err != nil {
		return err
	}
	return a.Store.Clear(ctx)
}

func (a *Aggregator) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Aggregate folds executions into usage records keyed by (command, version),
// preserving first-seen order.
func Aggregate(execs []Execution) []UsageRecord {
	keyed := map[string]*UsageRecord{}
	var order []string
	for _, e := range execs {
		key := e.Command + "@" + e.Version
		r, ok := keyed[key]
		if !ok {
			r = &UsageRecord{
				CommandKey:      key,
				CommandName:     e.Command,
				Version:         e.Version,
				TotalExecutions: 1,
				AvgRuntime:      e.RuntimeMS,
				MinRuntime:      e.RuntimeMS,
				MaxRuntime:      e.RuntimeMS,
			}
			if e.Failed {
				r.TotalErrors = 1
			}
			keyed[key] = r
			order = append(order, key)
			continue
		}
		// The running average uses the pre-increment execution count as the
		// denominator's n; the count advances only after the average update.
		n := r.TotalExecutions
		r.AvgRuntime = int64(math.Round(float64(e.RuntimeMS+r.AvgRuntime*n) / float64(n+1)))
		r.TotalExecutions++
		if e.RuntimeMS < r.MinRuntime {
			r.MinRuntime = e.RuntimeMS
		}
		if e.RuntimeMS > r.MaxRuntime {
			r.MaxRuntime = e.RuntimeMS
		}
		if e.Failed {
			r.TotalErrors++
		}
	}
	out := make([]UsageRecord, 0, len(order))
	for _, key := range order {
		out = append(out, *keyed[key])
	}
	return out
}
