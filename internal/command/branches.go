// pattern: Imperative Shell

package command

import (
	"fmt"

	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
	"gitdepend/internal/tui"
	"gitdepend/internal/visitor"
)

// Branches reports which dependencies are not on their declared branch.
// It never clones or checks out.
type Branches struct {
	directory string
	traverser traverse.Traverser
	gateway   git.Gateway
	reporter  *Reporter
	styles    *tui.Styles
	logger    *logging.ScopedLogger
}

// NewBranches creates the branch report for the graph rooted at directory.
// traverser should be built with traverse.WithoutClone.
func NewBranches(directory string, traverser traverse.Traverser, gateway git.Gateway, reporter *Reporter, styles *tui.Styles, logger *logging.ScopedLogger) *Branches {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if styles == nil {
		styles = tui.NewStyles("")
	}
	return &Branches{directory: directory, traverser: traverser, gateway: gateway, reporter: reporter, styles: styles, logger: logger}
}

func (b *Branches) Execute() status.Code {
	v := visitor.NewBranches(b.gateway, b.logger)
	if code := b.traverser.Traverse(v, b.directory); code != status.Success {
		b.logger.Error("branch report failed", "dir", b.directory, "status", code.String())
		if code == status.DirectoryDoesNotExist {
			b.reporter.Line(b.styles.ErrorStyle().Render("Some dependencies are missing. Run gitdepend clone first."))
		}
		return code
	}

	drifted := 0
	for _, s := range v.States {
		current := s.Current
		if current == "" {
			current = "unknown"
		}
		if s.Drifted() {
			drifted++
			b.reporter.Linef("  %s  %s (declared %s)", s.Name, b.styles.ErrorStyle().Render(current), s.Declared)
			continue
		}
		b.reporter.Linef("  %s  %s", s.Name, b.styles.SuccessStyle().Render(current))
	}

	switch {
	case drifted == 0:
		b.reporter.Line(b.styles.SuccessStyle().Render("All dependencies are on their declared branches."))
	case drifted == 1:
		b.reporter.Line(b.styles.ErrorStyle().Render("1 dependency is off its declared branch."))
	default:
		b.reporter.Line(b.styles.ErrorStyle().Render(fmt.Sprintf("%d dependencies are off their declared branch.", drifted)))
	}
	return status.Success
}
