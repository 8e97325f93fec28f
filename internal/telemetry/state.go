// Package telemetry accumulates daily usage statistics across process
// invocations. Everything in this package is best-effort: failures are
// swallowed by the aggregator and never reach the user-visible outcome.
package telemetry

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/recplan/cli/internal/app"
)

// UsageState is the persisted aggregation-window marker.
type UsageState struct {
	// StartTime is the day-boundary timestamp of the current window, in
	// epoch milliseconds. Zero means no window is open yet.
	StartTime int64 `json:"startTime"`
}

// stateFile is the on-disk document, keyed by feature name so other features
// can share the file.
type stateFile struct {
	Usage UsageState `json:"usage"`
}

// StateStore reads and writes the persisted usage state. The file is
// read-then-written without locking; concurrent invocations racing on it is
// an accepted hazard under the one-invocation-per-process model.
type StateStore struct {
	Path string
}

// Load returns the persisted state. A missing file yields the zero state.
func (s *StateStore) Load() (UsageState, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return UsageState{}, nil
		}
		return UsageState{}, err
	}
	var f stateFile
	if err := json.Unmarshal(b, &f); err != nil {
		return UsageState{}, err
	}
	return f.Usage, nil
}

// Save rewrites the state file, preserving unknown feature keys already
// present in the document.
func (s *StateStore) Save(st UsageState) error {
	doc := map[string]json.RawMessage{}
	if b, err := os.ReadFile(s.Path); err == nil {
		// Best effort: a corrupt file is replaced wholesale.
		_ = json.Unmarshal(b, &doc)
	}
	usage, err := json.Marshal(st)
	if err != nil {
		return err
	}
	doc["usage"] = usage
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return app.AtomicWriteFile(s.Path, out, app.FilePerm)
}

// DayBoundary truncates t to midnight in its own location.
func DayBoundary(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// toMillis and fromMillis convert between time.Time and the epoch-ms
// representation stored on disk.
func toMillis(t time.Time) int64    { return t.UnixMilli() }
func fromMillis(ms int64) time.Time { return time.UnixMilli(ms) }
