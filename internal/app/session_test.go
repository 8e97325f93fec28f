package app

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func setupSessionDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, SessionFile)
	sessionPathFunc = func() (string, error) { return path, nil }
	t.Cleanup(func() { sessionPathFunc = defaultSessionPath })
	return path
}

func TestLoadSessionMissingIsClassified(t *testing.T) {
	setupSessionDir(t)

	_, err := LoadSession()
	var re *ReportableError
	if !errors.As(err, &re) {
		t.Fatalf("err = %v, want ReportableError", err)
	}
	if re.Kind != KindValidation {
		t.Errorf("Kind = %q, want %q", re.Kind, KindValidation)
	}
	if HasSession() {
		t.Error("HasSession true without a session file")
	}
}

func TestLoadSessionRoundTrip(t *testing.T) {
	path := setupSessionDir(t)
	want := Session{Alias: "dev", InstanceURL: "https://example.test", TokenBased: true}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadSession()
	if err != nil {
		t.Fatalf("LoadSession: %v", err)
	}
	if *got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if !HasSession() {
		t.Error("HasSession false with a session file present")
	}
}
