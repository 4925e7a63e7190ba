package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
)

// PrintVersion prints the version information
func PrintVersion(w io.Writer, version, commit, date string) {
	if version == "" {
		version = "unknown"
	}
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	_, _ = fmt.Fprintf(w, "version: %s\n", version)
	_, _ = fmt.Fprintf(w, "commit: %s\n", commit)
	_, _ = fmt.Fprintf(w, "built at: %s\n", date)
	_, _ = fmt.Fprintf(w, "go: %s\n", runtime.Version())
}

// PrintVersionJSON prints the version information as JSON
func PrintVersionJSON(w io.Writer, version, commit, date string) {
	if version == "" {
		version = "unknown"
	}
	if commit == "" {
		commit = "none"
	}
	if date == "" {
		date = "unknown"
	}
	info := map[string]string{
		"version": version,
		"commit":  commit,
		"date":    date,
		"go":      runtime.Version(),
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(info)
}
