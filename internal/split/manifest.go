// Package split partitions oversized record files referenced by a plan
// manifest into fixed-size chunks, rewriting the manifest in place.
package split

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/recplan/cli/internal/app"
)

// PlanEntry is one entry of the manifest: an ordered list of data file
// paths, relative to the manifest's directory.
type PlanEntry struct {
	Files []string `json:"files"`
}

// DataFile is the JSON document behind each referenced path.
type DataFile struct {
	Records []json.RawMessage `json:"records"`
}

// LoadManifest parses a manifest: a JSON array of plan entries.
func LoadManifest(path string) ([]PlanEntry, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []PlanEntry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	return entries, nil
}

// SaveManifest rewrites the manifest in place, atomically.
func SaveManifest(path string, entries []PlanEntry) error {
	b, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return app.AtomicWriteFile(path, b, app.FilePerm)
}

// LoadDataFile parses one referenced record file.
func LoadDataFile(path string) (DataFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return DataFile{}, err
	}
	var df DataFile
	if err := json.Unmarshal(b, &df); err != nil {
		return DataFile{}, fmt.Errorf("parse data file: %w", err)
	}
	return df, nil
}

// SaveDataFile writes a record file.
func SaveDataFile(path string, df DataFile) error {
	b, err := json.MarshalIndent(df, "", "  ")
	if err != nil {
		return err
	}
	return app.AtomicWriteFile(path, b, app.FilePerm)
}
