// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"testing"
	"time"
)

func writeJSON(t *testing.T, sink *MemorySink, entry map[string]any) {
	t.Helper()
	data, _ := json.Marshal(entry)
	data = append(data, '\n')

	n, err := sink.Write(data)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if n != len(data) {
		t.Errorf("Write() = %d, want %d", n, len(data))
	}
}

func TestMemorySink_Write(t *testing.T) {
	sink := NewMemorySink(10)

	writeJSON(t, sink, map[string]any{
		"level":  "info",
		"ts":     float64(time.Now().Unix()),
		"logger": "traverse",
		"msg":    "visiting project",
		"dir":    "/src/app",
	})

	entries := sink.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	got := entries[0]
	if got.Message != "visiting project" {
		t.Errorf("Message = %q, want %q", got.Message, "visiting project")
	}
	if got.Scope != "traverse" {
		t.Errorf("Scope = %q, want %q", got.Scope, "traverse")
	}
	if got.Level != "INFO" {
		t.Errorf("Level = %q, want %q", got.Level, "INFO")
	}
	if got.Fields["dir"] != "/src/app" {
		t.Errorf("Fields[dir] = %v, want /src/app", got.Fields["dir"])
	}
}

func TestMemorySink_DropsOldestWhenFull(t *testing.T) {
	sink := NewMemorySink(2)

	for _, msg := range []string{"one", "two", "three"} {
		writeJSON(t, sink, map[string]any{"level": "debug", "msg": msg})
	}

	entries := sink.Entries()
	if len(entries) != 2 {
		t.Fatalf("len(Entries()) = %d, want 2", len(entries))
	}
	if entries[0].Message != "two" || entries[1].Message != "three" {
		t.Errorf("entries = %q, %q; want two, three", entries[0].Message, entries[1].Message)
	}
}

func TestMemorySink_InvalidJSON(t *testing.T) {
	sink := NewMemorySink(10)

	data := []byte("not json")
	n, err := sink.Write(data)
	if err != nil {
		t.Errorf("Write() error = %v, want nil", err)
	}
	if n != len(data) {
		t.Errorf("Write() = %d, want %d", n, len(data))
	}
	if len(sink.Entries()) != 0 {
		t.Error("invalid JSON should not be recorded")
	}
}

func TestMemorySink_DefaultsAndReset(t *testing.T) {
	sink := NewMemorySink(0)
	writeJSON(t, sink, map[string]any{"msg": "bare"})

	entries := sink.Entries()
	if len(entries) != 1 {
		t.Fatalf("len(Entries()) = %d, want 1", len(entries))
	}
	if entries[0].Level != "INFO" || entries[0].Scope != "app" {
		t.Errorf("defaults = %q/%q, want INFO/app", entries[0].Level, entries[0].Scope)
	}

	sink.Reset()
	if len(sink.Entries()) != 0 {
		t.Error("Reset() left entries behind")
	}
}

func TestParseEntry(t *testing.T) {
	line := []byte(`{"level":"warn","ts":1700000000.5,"logger":"traverse","msg":"repository directory not found","dir":"/src/lib","caller":"x.go:1"}`)

	entry, err := ParseEntry(line)
	if err != nil {
		t.Fatalf("ParseEntry() error = %v", err)
	}
	if entry.Level != "WARN" || entry.Scope != "traverse" || entry.Message != "repository directory not found" {
		t.Errorf("entry = %+v", entry)
	}
	if entry.Timestamp.Unix() != 1700000000 || entry.Timestamp.Nanosecond() != 500000000 {
		t.Errorf("Timestamp = %v", entry.Timestamp)
	}
	if entry.Fields["dir"] != "/src/lib" {
		t.Errorf("Fields = %v", entry.Fields)
	}
	if _, ok := entry.Fields["caller"]; ok {
		t.Error("caller should be dropped")
	}

	if _, err := ParseEntry([]byte("not json")); err == nil {
		t.Error("ParseEntry() expected error for invalid JSON")
	}
}
