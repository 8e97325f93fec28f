// Package app - messages.go is the keyed message catalog backing user-visible
// text. Keys may be bundle-qualified ("split:errorNoManifest"); unqualified
// keys resolve against the default bundle.
package app

import (
	"fmt"
	"strings"
)

// DefaultBundle is the bundle used for unqualified message keys.
const DefaultBundle = "recplan"

// catalog maps bundle name to message key to template text. Templates use
// positional %s / %d verbs.
var catalog = map[string]map[string]string{
	DefaultBundle: {
		"errorSessionExpired":  "Session expired or invalid. Run recplan session login to refresh it",
		"actionSessionRefresh": "Run `recplan session login` to open a new session, then retry the command",
		"errorNoSession":       "This command requires an active session and none was found",
		"errorWorkspace":       "Not a recplan workspace. Run the command from a configured project directory",
		"noResults":            "No results found",
	},
	"split": {
		"errorNoManifest":    "The --plan flag is required",
		"errorFileNotFound":  "Could not find specified file. Expected a manifest at %s",
		"errorBadManifest":   "Could not parse manifest %s: %s",
		"errorBadDataFile":   "Could not parse data file %s: %s",
		"preExecuteSplit":    "Scanning plan %s for oversized record files",
		"successSplit":       "Split %d file(s) into %d chunk(s)",
		"successNoSplit":     "All files are within the %d record limit, nothing to do",
		"emptyPlan":          "The manifest references no data files",
	},
	"telemetry": {
		"statusWindow":  "Aggregation window started %s; %d execution(s) pending flush",
		"statusNoState": "No aggregation window open yet; %d execution(s) pending flush",
	},
}

// Message resolves a catalog key and applies tokens. The key may be
// "bundle:name" or a bare name in the default bundle. Unknown keys resolve
// to the key name itself so a missing catalog entry never hides an error.
func Message(key string, tokens ...any) string {
	bundle, name := DefaultBundle, key
	if i := strings.IndexByte(key, ':'); i >= 0 {
		bundle, name = key[:i], key[i+1:]
	}
	tmpl, ok := catalog[bundle][name]
	if !ok {
		return name
	}
	if len(tokens) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, tokens...)
}
