// pattern: Imperative Shell

package command

import (
	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
	"gitdepend/internal/tui"
	"gitdepend/internal/visitor"
)

// Update checks every dependency out on its declared branch, then builds
// the graph dependencies first, updating each project's package references
// to what its dependencies just produced.
type Update struct {
	directory string
	traverser traverse.Traverser
	gateway   git.Gateway
	procedure visitor.Procedure
	reporter  *Reporter
	styles    *tui.Styles
	logger    *logging.ScopedLogger
}

// NewUpdate creates the update orchestrator for the graph rooted at directory.
func NewUpdate(directory string, traverser traverse.Traverser, gateway git.Gateway, procedure visitor.Procedure, reporter *Reporter, styles *tui.Styles, logger *logging.ScopedLogger) *Update {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if styles == nil {
		styles = tui.NewStyles("")
	}
	return &Update{
		directory: directory,
		traverser: traverser,
		gateway:   gateway,
		procedure: procedure,
		reporter:  reporter,
		styles:    styles,
		logger:    logger,
	}
}

// Execute runs the checkout pass and then the build pass. The build pass is
// skipped when checkout fails, and nothing is reported on failure.
func (u *Update) Execute() status.Code {
	u.logger.Info("checking out dependencies", "dir", u.directory)
	checkout := visitor.NewCheckoutBranch(u.gateway, u.logger)
	if code := u.traverser.Traverse(checkout, u.directory); code != status.Success {
		u.logger.Error("checkout pass failed", "status", code.String())
		return code
	}

	u.logger.Info("building dependencies", "dir", u.directory)
	build := visitor.NewBuildAndUpdate(u.procedure, u.logger)
	if code := u.traverser.Traverse(build, u.directory); code != status.Success {
		u.logger.Error("build pass failed", "status", code.String())
		return code
	}

	if len(build.UpdatedPackages) > 0 {
		u.reporter.Line("Updated packages: ")
		for _, pkg := range build.UpdatedPackages {
			u.reporter.Line("    " + u.styles.AccentStyle().Render(pkg))
		}
	}
	u.reporter.Line(u.styles.SuccessStyle().Render("Update complete!"))
	return status.Success
}
