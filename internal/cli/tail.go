// pattern: Imperative Shell

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/ansi"

	"gitdepend/internal/logging"
	"gitdepend/internal/tui"
)

// TailConfig configures TailLog.
type TailConfig struct {
	Path    string
	Lines   int
	Scope   string
	NoColor bool
	Styles  *tui.Styles
	Writer  io.Writer
}

// TailLog prints the last Lines entries of the JSON log at Path in Scope or
// one of its children, or every matching entry when Lines is zero. Lines that
// are not log entries are skipped.
func TailLog(cfg TailConfig) error {
	f, err := os.Open(cfg.Path)
	if err != nil {
		return fmt.Errorf("opening log: %w", err)
	}
	defer f.Close()

	if cfg.Styles == nil {
		cfg.Styles = tui.NewStyles("")
	}

	var entries []logging.LogEntry
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		entry, err := logging.ParseEntry(scanner.Bytes())
		if err != nil || !entry.MatchesScope(cfg.Scope) {
			continue
		}
		entries = append(entries, entry)
		if cfg.Lines > 0 && len(entries) > cfg.Lines {
			entries = entries[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading log: %w", err)
	}

	for _, entry := range entries {
		line := formatEntry(entry, cfg.Styles)
		if cfg.NoColor {
			line = ansi.Strip(line)
		}
		_, _ = fmt.Fprintln(cfg.Writer, line)
	}
	return nil
}

// formatEntry colours an entry by level. Entries carrying a failing status
// always render as errors.
func formatEntry(entry logging.LogEntry, styles *tui.Styles) string {
	switch {
	case entry.Level == "ERROR" || entry.Failed():
		return styles.ErrorStyle().Render(entry.String())
	case entry.Level == "WARN":
		return styles.AccentStyle().Render(entry.String())
	case entry.Level == "DEBUG":
		return styles.MutedStyle().Render(entry.String())
	default:
		return entry.String()
	}
}
