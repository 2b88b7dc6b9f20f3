// pattern: Functional Core

package logging

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// LogEntry is one decoded log record, as held by a MemorySink or read back
// from the log file by the log verb.
type LogEntry struct {
	Timestamp time.Time
	Level     string // DEBUG, INFO, WARN or ERROR
	Scope     string // dotted component name, e.g. "command.update"
	Message   string
	Fields    map[string]any
}

// String renders the entry on one line with its fields sorted by key, so
// the same entry always prints the same way.
func (e LogEntry) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s [%s] %s", e.Timestamp.Format("15:04:05"), e.Level, e.Scope, e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(" ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(formatValue(e.Fields[k]))
	}
	return sb.String()
}

// formatValue quotes strings that would otherwise be ambiguous on one line.
func formatValue(v any) string {
	s, ok := v.(string)
	if !ok {
		return fmt.Sprint(v)
	}
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return fmt.Sprintf("%q", s)
	}
	return s
}

// MatchesScope reports whether the entry belongs to scope or one of its
// children. "command" matches "command" and "command.update" but not
// "commands". An empty scope matches everything.
func (e LogEntry) MatchesScope(scope string) bool {
	if scope == "" || e.Scope == scope {
		return true
	}
	return strings.HasPrefix(e.Scope, scope+".")
}

// Status returns the entry's status field, or "" when there is none.
func (e LogEntry) Status() string {
	s, _ := e.Fields["status"].(string)
	return s
}

// Failed reports whether the entry carries a status other than success.
func (e LogEntry) Failed() bool {
	s := e.Status()
	return s != "" && s != "success"
}

// ParseLevel maps a zap level name to its upper-case display form.
// Unknown names read as INFO.
func ParseLevel(level string) string {
	switch strings.ToLower(level) {
	case "debug":
		return "DEBUG"
	case "warn", "warning":
		return "WARN"
	case "error", "dpanic", "panic", "fatal":
		return "ERROR"
	default:
		return "INFO"
	}
}
