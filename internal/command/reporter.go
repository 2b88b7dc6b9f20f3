// pattern: Imperative Shell

// Package command holds the orchestrators behind each gitdepend verb. Each
// one runs visitor passes over the dependency graph and reports the outcome
// as lines of text.
package command

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
)

// Reporter writes user-facing output one line at a time. With colour
// disabled, styled text is written without its escape sequences.
type Reporter struct {
	mu    sync.Mutex
	w     io.Writer
	color bool
}

// NewReporter creates a Reporter writing to w. A nil writer discards output.
func NewReporter(w io.Writer, color bool) *Reporter {
	if w == nil {
		w = io.Discard
	}
	return &Reporter{w: w, color: color}
}

// Line writes s followed by a newline. A multi-line s is written as is.
func (r *Reporter) Line(s string) {
	if !r.color {
		s = ansi.Strip(s)
	}
	s = strings.TrimSuffix(s, "\n")

	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = fmt.Fprintln(r.w, s)
}

// Linef formats according to format and writes the result as a line.
func (r *Reporter) Linef(format string, args ...any) {
	r.Line(fmt.Sprintf(format, args...))
}

// Color reports whether styled output is kept.
func (r *Reporter) Color() bool {
	return r.color
}
