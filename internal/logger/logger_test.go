package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestLogger_LevelThreshold(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelWarn, &buf)

	l.Debug("unten", nil)
	l.Info("unten", nil)
	l.Warn("sichtbar", nil)
	l.Error("sichtbar", nil, errors.New("kaputt"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], `"WARN"`) || !strings.Contains(lines[1], `"ERROR"`) {
		t.Errorf("unexpected entries: %q", lines)
	}
}

func TestLogger_JSONEntry(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Warn("skipping unparseable event", Fields{"day": 6, "reason": "bad time"})

	var entry struct {
		Timestamp string                 `json:"timestamp"`
		Level     string                 `json:"level"`
		Message   string                 `json:"message"`
		Fields    map[string]interface{} `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if entry.Level != "WARN" {
		t.Errorf("level = %q", entry.Level)
	}
	if entry.Message != "skipping unparseable event" {
		t.Errorf("message = %q", entry.Message)
	}
	if entry.Fields["reason"] != "bad time" {
		t.Errorf("fields = %v", entry.Fields)
	}
	if entry.Timestamp == "" {
		t.Error("entry must carry a timestamp")
	}
}

func TestLogger_ErrorField(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)

	l.Error("merge failed", nil, errors.New("archive read"))

	if !strings.Contains(buf.String(), `"error":"archive read"`) {
		t.Errorf("error field missing: %q", buf.String())
	}
}

func TestCounters(t *testing.T) {
	c := NewCounters()
	c.Incr("scraper.events_extracted")
	c.Incr("scraper.events_extracted")
	c.Incr("scraper.events_skipped")

	want := map[string]int64{
		"scraper.events_extracted": 2,
		"scraper.events_skipped":   1,
	}
	if got := c.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Errorf("Snapshot = %v, want %v", got, want)
	}
	if got := c.Names(); !reflect.DeepEqual(got, []string{"scraper.events_extracted", "scraper.events_skipped"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestCounters_SnapshotIsCopy(t *testing.T) {
	c := NewCounters()
	c.Incr("a")

	snapshot := c.Snapshot()
	snapshot["a"] = 99

	if got := c.Snapshot()["a"]; got != 1 {
		t.Errorf("counter mutated through snapshot, got %d", got)
	}
}
