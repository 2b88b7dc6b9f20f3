// pattern: Imperative Shell

package command

import (
	"gitdepend/internal/logging"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
	"gitdepend/internal/tui"
	"gitdepend/internal/visitor"
)

// Clone makes sure every dependency in the graph is present on disk.
// Cloning is a side effect of traversal, so the pass itself does nothing.
type Clone struct {
	directory string
	traverser traverse.Traverser
	reporter  *Reporter
	styles    *tui.Styles
	logger    *logging.ScopedLogger
}

// NewClone creates the clone orchestrator for the graph rooted at directory.
func NewClone(directory string, traverser traverse.Traverser, reporter *Reporter, styles *tui.Styles, logger *logging.ScopedLogger) *Clone {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if styles == nil {
		styles = tui.NewStyles("")
	}
	return &Clone{directory: directory, traverser: traverser, reporter: reporter, styles: styles, logger: logger}
}

func (c *Clone) Execute() status.Code {
	if code := c.traverser.Traverse(visitor.Nop{}, c.directory); code != status.Success {
		c.logger.Error("clone failed", "dir", c.directory, "status", code.String())
		return code
	}
	c.reporter.Line(c.styles.SuccessStyle().Render("Successfully cloned all dependencies."))
	return status.Success
}
