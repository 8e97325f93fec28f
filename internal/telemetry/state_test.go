package telemetry

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestStateLoadMissingFile(t *testing.T) {
	s := &StateStore{Path: filepath.Join(t.TempDir(), "state.json")}
	st, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if st.StartTime != 0 {
		t.Errorf("StartTime = %d, want zero state", st.StartTime)
	}
}

func TestStateSaveLoadRoundTrip(t *testing.T) {
	s := &StateStore{Path: filepath.Join(t.TempDir(), "state.json")}
	want := UsageState{StartTime: 1756598400000}
	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStateSavePreservesOtherFeatures(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	seed := `{"other":{"enabled":true},"usage":{"startTime":1}}`
	if err := os.WriteFile(path, []byte(seed), 0o644); err != nil {
		t.Fatal(err)
	}

	s := &StateStore{Path: path}
	if err := s.Save(UsageState{StartTime: 99}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(b, &doc); err != nil {
		t.Fatalf("state file not valid JSON: %v", err)
	}
	if _, ok := doc["other"]; !ok {
		t.Error("other feature key dropped on save")
	}
}

func TestDayBoundary(t *testing.T) {
	loc := time.FixedZone("X", 3600)
	ts := time.Date(2026, 8, 31, 17, 45, 12, 999, loc)
	got := DayBoundary(ts)
	want := time.Date(2026, 8, 31, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("DayBoundary = %v, want %v", got, want)
	}
}
