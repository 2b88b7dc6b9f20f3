// pattern: Imperative Shell

// Package traverse walks a graph of repositories declared through their
// manifests, cloning missing dependencies and calling a Visitor once per
// project and once per dependency target, dependencies first.
package traverse

import (
	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
)

// Visitor receives callbacks during a traversal. A non-success code from
// either hook stops the traversal and becomes its result.
type Visitor interface {
	// VisitDependency is called once per distinct resolved dependency
	// target, after the target's own subtree has been visited.
	VisitDependency(directory string, dep manifest.Dependency) status.Code
	// VisitProject is called once per distinct project directory, after all
	// of its dependencies.
	VisitProject(directory string, m *manifest.Manifest) status.Code
}

// Traverser runs a visitor over the dependency graph rooted at a directory.
type Traverser interface {
	Traverse(v Visitor, directory string) status.Code
}

// Engine is the depth-first, memoized Traverser.
type Engine struct {
	accessor manifest.Accessor
	gateway  git.Gateway
	logger   *logging.ScopedLogger
	exists   func(string) bool
	noClone  bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger *logging.ScopedLogger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithExists replaces the directory existence check.
func WithExists(exists func(string) bool) Option {
	return func(e *Engine) {
		e.exists = exists
	}
}

// WithoutClone makes a missing dependency fail the traversal with
// DirectoryDoesNotExist instead of being cloned.
func WithoutClone() Option {
	return func(e *Engine) {
		e.noClone = true
	}
}

// NewEngine creates an Engine that loads manifests through accessor and
// clones missing dependencies through gateway.
func NewEngine(accessor manifest.Accessor, gateway git.Gateway, opts ...Option) *Engine {
	e := &Engine{
		accessor: accessor,
		gateway:  gateway,
		logger:   logging.NopLogger(),
		exists:   paths.Exists,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Traverse visits the graph rooted at directory. A nil visitor or an empty
// directory is a no-op returning Success. Visit sets are private to the call.
func (e *Engine) Traverse(v Visitor, directory string) status.Code {
	if v == nil || directory == "" {
		return status.Success
	}

	w := &walk{
		engine:       e,
		visitor:      v,
		projects:     make(map[string]struct{}),
		dependencies: make(map[string]struct{}),
		inProgress:   make(map[string]struct{}),
	}
	code := w.visitNode(paths.Canonical(directory), false)
	e.logger.Debug("traversal finished", "root", directory, "status", code.String(), "projects", len(w.projects))
	return code
}

// walk holds the state of one Traverse call.
type walk struct {
	engine       *Engine
	visitor      Visitor
	projects     map[string]struct{}
	dependencies map[string]struct{}
	inProgress   map[string]struct{}
}

// visitNode visits directory and its subtree. A dependency target must be a
// repository root itself; the root of the traversal may be any directory
// inside one.
func (w *walk) visitNode(directory string, dependency bool) status.Code {
	if _, ok := w.projects[directory]; ok {
		return status.Success
	}

	if !w.engine.exists(directory) {
		w.engine.logger.Warn("repository directory not found", "dir", directory)
		return status.GitRepositoryNotFound
	}

	m, dir, _ := w.engine.accessor.Load(directory)
	if m == nil {
		w.engine.logger.Warn("unable to load manifest", "dir", directory)
		return status.GitRepositoryNotFound
	}
	if dir == "" {
		dir = directory
	}
	if dependency && dir != directory {
		w.engine.logger.Warn("dependency is not a repository root", "dir", directory, "repository", dir)
		return status.GitRepositoryNotFound
	}
	if _, ok := w.projects[dir]; ok {
		return status.Success
	}
	if _, ok := w.inProgress[dir]; ok {
		w.engine.logger.Error("circular dependency detected", "dir", dir)
		return status.CircularDependency
	}
	w.inProgress[dir] = struct{}{}
	defer delete(w.inProgress, dir)

	for _, dep := range m.Dependencies {
		target := paths.Join(dir, dep.Directory)

		if !w.engine.exists(target) {
			if w.engine.noClone {
				w.engine.logger.Warn("dependency not cloned", "dependency", dep.DisplayName(), "dir", target)
				return status.DirectoryDoesNotExist
			}
			w.engine.logger.Info("cloning missing dependency", "dependency", dep.DisplayName(), "url", dep.URL, "dir", target)
			if code := w.engine.gateway.Clone(dep.URL, target, dep.Branch); code != status.Success {
				return code
			}
		}

		if code := w.visitNode(target, true); code != status.Success {
			return code
		}

		if _, ok := w.dependencies[target]; ok {
			continue
		}
		w.dependencies[target] = struct{}{}

		if code := w.visitor.VisitDependency(dir, dep); code != status.Success {
			return code
		}
	}

	w.projects[dir] = struct{}{}
	w.engine.logger.Debug("visiting project", "dir", dir, "dependencies", len(m.Dependencies))
	return w.visitor.VisitProject(dir, m)
}
