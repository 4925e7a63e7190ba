package notify

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogSinkAppendsJSONLines(t *testing.T) {
	tmpDir := t.TempDir()
	sink := LogSink{Path: filepath.Join(tmpDir, "jwt_notifications.log")}

	expires := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if err := sink.RotationEvent(NewRotationEvent(expires, "UID123")); err != nil {
			t.Fatalf("RotationEvent %d failed: %v", i, err)
		}
	}

	info, err := os.Stat(sink.Path)
	if err != nil {
		t.Fatalf("os.Stat failed: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Errorf("log mode = %o, want 0600", info.Mode().Perm())
	}

	f, err := os.Open(sink.Path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)
	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines++
		var ev Event
		if err := json.Unmarshal(scanner.Bytes(), &ev); err != nil {
			t.Fatalf("line %d is not valid JSON: %v", lines, err)
		}
		if ev.Event != "jwt_rotated" {
			t.Errorf("line %d event = %q", lines, ev.Event)
		}
		if ev.ExpiresAt != "2026-03-15T12:00:00Z" {
			t.Errorf("line %d expires_at = %q", lines, ev.ExpiresAt)
		}
		if ev.ID == "" || seen[ev.ID] {
			t.Errorf("line %d has missing or duplicate event ID %q", lines, ev.ID)
		}
		seen[ev.ID] = true
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if lines != 3 {
		t.Errorf("expected 3 lines, got %d", lines)
	}
}
