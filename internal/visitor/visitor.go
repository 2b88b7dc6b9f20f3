// pattern: Functional Core

// Package visitor holds the hook sets run over a dependency graph by the
// traversal engine.
package visitor

import (
	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
)

var (
	_ traverse.Visitor = Nop{}
	_ traverse.Visitor = (*Collect)(nil)
	_ traverse.Visitor = (*CheckoutBranch)(nil)
	_ traverse.Visitor = (*BuildAndUpdate)(nil)
	_ traverse.Visitor = (*Branches)(nil)
)

// Nop accepts every node. Traversing with it only clones what is missing.
type Nop struct{}

func (Nop) VisitDependency(string, manifest.Dependency) status.Code { return status.Success }

func (Nop) VisitProject(string, *manifest.Manifest) status.Code { return status.Success }

// Project is one visited project.
type Project struct {
	Directory string
	Manifest  *manifest.Manifest
}

// Collect records projects in the order they were visited, which is the
// order they would be built in.
type Collect struct {
	Projects []Project
}

func (c *Collect) VisitDependency(string, manifest.Dependency) status.Code {
	return status.Success
}

func (c *Collect) VisitProject(directory string, m *manifest.Manifest) status.Code {
	c.Projects = append(c.Projects, Project{Directory: directory, Manifest: m})
	return status.Success
}
