package app

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// Session is the external session handle for commands that need one.
type Session struct {
	Alias       string `json:"alias"`
	InstanceURL string `json:"instance_url,omitempty"`
	TokenBased  bool   `json:"token_based"`
}

// sessionPathFunc resolves the session file location. Swappable in tests.
var sessionPathFunc = defaultSessionPath

func defaultSessionPath() (string, error) {
	dir, err := GlobalConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, SessionFile), nil
}

// LoadSession reads the persisted session handle. A missing file yields a
// classified errorNoSession.
func LoadSession() (*Session, error) {
	path, err := sessionPathFunc()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewError("errorNoSession")
		}
		return nil, err
	}
	var s Session
	if err := json.Unmarshal(b, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// HasSession reports whether a session file exists, without loading it.
// Used by the pre-pipeline workspace filter.
func HasSession() bool {
	path, err := sessionPathFunc()
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
