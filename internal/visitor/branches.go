// pattern: Imperative Shell

package visitor

import (
	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
)

// BranchState compares the branch a dependency is declared on with the
// branch its working copy has checked out.
type BranchState struct {
	Name      string
	Directory string
	Declared  string
	Current   string
}

// Drifted reports whether the working copy is on another branch. An unknown
// current branch counts as drift.
func (b BranchState) Drifted() bool {
	return b.Current != b.Declared
}

// Branches records the branch state of every dependency without changing it.
type Branches struct {
	States  []BranchState
	gateway git.Gateway
	logger  *logging.ScopedLogger
}

// NewBranches creates a Branches visitor.
func NewBranches(gateway git.Gateway, logger *logging.ScopedLogger) *Branches {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Branches{gateway: gateway, logger: logger}
}

func (b *Branches) VisitDependency(directory string, dep manifest.Dependency) status.Code {
	target := paths.Join(directory, dep.Directory)
	current, err := b.gateway.CurrentBranch(target)
	if err != nil {
		b.logger.Warn("could not read current branch", "dependency", dep.DisplayName(), "dir", target, "error", err)
		current = ""
	}
	b.States = append(b.States, BranchState{
		Name:      dep.DisplayName(),
		Directory: target,
		Declared:  dep.Branch,
		Current:   current,
	})
	return status.Success
}

func (b *Branches) VisitProject(string, *manifest.Manifest) status.Code {
	return status.Success
}
