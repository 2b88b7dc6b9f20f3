// pattern: Imperative Shell

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NopLogger returns a logger that discards all output.
// Use in tests or when logging is not configured.
func NopLogger() *ScopedLogger {
	return &ScopedLogger{}
}

// TestLogManager is a LoggerProvider that records every entry in memory,
// at debug level, for assertions.
type TestLogManager struct {
	*scopes
	sink *MemorySink
}

// NewTestLogManager creates a TestLogManager keeping the last limit entries.
func NewTestLogManager(limit int) *TestLogManager {
	sink := NewMemorySink(limit)
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(jsonEncoderConfig()),
		zapcore.AddSync(sink),
		zapcore.DebugLevel,
	)
	return &TestLogManager{
		scopes: newScopes(zap.New(core), zapcore.DebugLevel),
		sink:   sink,
	}
}

// For returns the cached logger for scope.
func (m *TestLogManager) For(scope string) *ScopedLogger {
	return m.get(scope)
}

// Entries returns the recorded log entries, oldest first.
func (m *TestLogManager) Entries() []LogEntry {
	return m.sink.Entries()
}

// Messages returns the messages of recorded entries in scope or one of its
// children.
func (m *TestLogManager) Messages(scope string) []string {
	var out []string
	for _, e := range m.sink.Entries() {
		if e.MatchesScope(scope) {
			out = append(out, e.Message)
		}
	}
	return out
}
