// pattern: Imperative Shell

package command

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/lipgloss/tree"

	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
	"gitdepend/internal/tui"
	"gitdepend/internal/visitor"
)

// List prints the projects of the graph in the order they are built.
type List struct {
	directory string
	traverser traverse.Traverser
	reporter  *Reporter
	styles    *tui.Styles
	logger    *logging.ScopedLogger
}

// NewList creates the list orchestrator for the graph rooted at directory.
func NewList(directory string, traverser traverse.Traverser, reporter *Reporter, styles *tui.Styles, logger *logging.ScopedLogger) *List {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if styles == nil {
		styles = tui.NewStyles("")
	}
	return &List{directory: directory, traverser: traverser, reporter: reporter, styles: styles, logger: logger}
}

func (l *List) Execute() status.Code {
	collect := &visitor.Collect{}
	if code := l.traverser.Traverse(collect, l.directory); code != status.Success {
		l.logger.Error("list failed", "dir", l.directory, "status", code.String())
		return code
	}
	if len(collect.Projects) == 0 {
		return status.Success
	}

	l.reporter.Line(RenderBuildOrder(collect.Projects, l.styles))
	return status.Success
}

// RenderBuildOrder draws projects as a tree rooted at the last project,
// which is the one the traversal started from. Each child is a project in
// build order, listing the dependencies it declares.
func RenderBuildOrder(projects []visitor.Project, styles *tui.Styles) string {
	root := projects[len(projects)-1]

	t := tree.Root(projectName(root)).
		RootStyle(styles.TreeRootStyle()).
		ItemStyle(styles.TreeItemStyle()).
		EnumeratorStyle(styles.TreeEnumeratorStyle()).
		Enumerator(tree.RoundedEnumerator)

	for _, p := range projects {
		label := fmt.Sprintf("%s %s", projectName(p),
			styles.MutedStyle().Render("("+filepath.ToSlash(paths.Relative(root.Directory, p.Directory))+")"))

		node := tree.Root(label).
			ItemStyle(styles.AccentStyle()).
			EnumeratorStyle(styles.TreeEnumeratorStyle()).
			Enumerator(tree.RoundedEnumerator)
		for _, dep := range dependencies(p.Manifest) {
			node.Child(dep.DisplayName())
		}
		t.Child(node)
	}

	return t.String()
}

func projectName(p visitor.Project) string {
	if p.Manifest != nil && p.Manifest.Name != "" {
		return p.Manifest.Name
	}
	return filepath.Base(p.Directory)
}

func dependencies(m *manifest.Manifest) []manifest.Dependency {
	if m == nil {
		return nil
	}
	return m.Dependencies
}
