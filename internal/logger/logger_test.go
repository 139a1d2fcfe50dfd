package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestZapLoggerWritesJSONAtLevel(t *testing.T) {
	var buf bytes.Buffer
	log, err := Init("info", &buf)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	log.DebugObj("hidden", "k", 1)
	log.InfoObj("palette fetched", "palette", map[string]any{"id": 42})
	if err := log.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 log line, got %d: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "palette fetched" {
		t.Fatalf("msg = %v", entry["msg"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Fatalf("expected ts field in %v", entry)
	}
	palette, ok := entry["palette"].(map[string]any)
	if !ok || palette["id"] != float64(42) {
		t.Fatalf("palette field = %#v", entry["palette"])
	}
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	if got := parseLevel("verbose"); got.String() != "info" {
		t.Fatalf("parseLevel(verbose) = %v", got)
	}
	if got := parseLevel(" WARNING "); got.String() != "warn" {
		t.Fatalf("parseLevel(WARNING) = %v", got)
	}
}
