// pattern: Imperative Shell

package logging

import (
	"encoding/json"
	"sync"
	"time"
)

// MemorySink implements zapcore.WriteSyncer and keeps parsed log entries in
// memory. Once the limit is reached the oldest entry is dropped.
type MemorySink struct {
	mu      sync.Mutex
	entries []LogEntry
	limit   int
}

// NewMemorySink creates a sink holding at most limit entries.
func NewMemorySink(limit int) *MemorySink {
	if limit <= 0 {
		limit = 1000
	}
	return &MemorySink{limit: limit}
}

// Write implements io.Writer. It parses the JSON log entry from Zap and
// records it. Unparsable input is accepted and discarded.
func (s *MemorySink) Write(p []byte) (int, error) {
	entry, err := ParseEntry(p)
	if err != nil {
		return len(p), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= s.limit {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, entry)
	return len(p), nil
}

// Sync implements zapcore.WriteSyncer. No-op for the memory sink.
func (s *MemorySink) Sync() error {
	return nil
}

// Entries returns a copy of the recorded entries, oldest first.
func (s *MemorySink) Entries() []LogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LogEntry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Reset discards all recorded entries.
func (s *MemorySink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
}

// ParseEntry converts one JSON log line written by the file or memory sink
// into a LogEntry. Entries without a logger name are given the "app" scope.
func ParseEntry(data []byte) (LogEntry, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return LogEntry{}, err
	}

	entry := LogEntry{
		Timestamp: time.Now(),
		Fields:    make(map[string]any),
	}

	if msg, ok := raw["msg"].(string); ok {
		entry.Message = msg
		delete(raw, "msg")
	}

	if level, ok := raw["level"].(string); ok {
		entry.Level = ParseLevel(level)
		delete(raw, "level")
	} else {
		entry.Level = "INFO"
	}

	if logger, ok := raw["logger"].(string); ok {
		entry.Scope = logger
		delete(raw, "logger")
	} else {
		entry.Scope = "app"
	}

	// Preserve nanosecond precision of epoch timestamps
	if ts, ok := raw["ts"].(float64); ok {
		sec := int64(ts)
		nsec := int64((ts - float64(sec)) * 1e9)
		entry.Timestamp = time.Unix(sec, nsec)
		delete(raw, "ts")
	}

	delete(raw, "caller")
	delete(raw, "stacktrace")

	for k, v := range raw {
		entry.Fields[k] = v
	}

	return entry, nil
}
