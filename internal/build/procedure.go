// pattern: Imperative Shell

// Package build runs a project's build script and updates the project's
// references to packages produced by its dependencies.
package build

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/process"
	"gitdepend/internal/status"
)

// Options configures how build scripts and package updates are invoked.
type Options struct {
	// Shell is the command prefix used to run build scripts, e.g. ["sh"].
	Shell []string
	// PackageManager is the binary run to update a package reference.
	PackageManager string
	// UpdateArgs are the package manager arguments. The placeholders {id},
	// {version}, {source} and {dir} are substituted per package.
	UpdateArgs []string
	// Output receives subprocess output lines. Nil discards them.
	Output io.Writer
}

// DefaultShell returns the shell used when Options.Shell is empty.
func DefaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh"}
}

// DefaultUpdateArgs are the nuget arguments used when none are configured.
var DefaultUpdateArgs = []string{"update", "-Id", "{id}", "-Version", "{version}", "-Source", "{source}", "-NonInteractive"}

// Procedure is the build-and-update step run for each project.
type Procedure struct {
	accessor manifest.Accessor
	opts     Options
	logger   *logging.ScopedLogger
	run      func(process.Config) error
}

// NewProcedure creates a Procedure. The accessor loads dependency manifests
// to find their package directories.
func NewProcedure(accessor manifest.Accessor, opts Options, logger *logging.ScopedLogger) *Procedure {
	if len(opts.Shell) == 0 {
		opts.Shell = DefaultShell()
	}
	if opts.PackageManager == "" {
		opts.PackageManager = "nuget"
	}
	if len(opts.UpdateArgs) == 0 {
		opts.UpdateArgs = DefaultUpdateArgs
	}
	if logger == nil {
		logger = logging.NopLogger()
	}

	p := &Procedure{accessor: accessor, opts: opts, logger: logger}
	p.run = func(cfg process.Config) error {
		return process.Run(cfg, logger)
	}
	return p
}

// SetRunner replaces subprocess execution. Used by tests.
func (p *Procedure) SetRunner(run func(process.Config) error) {
	p.run = run
}

// Run updates directory's references to the newest packages built by each
// dependency, then runs the project's build script. It returns the ids of
// the updated packages in the order they were applied.
func (p *Procedure) Run(directory string, m *manifest.Manifest) (status.Code, []string) {
	if m == nil {
		return status.Success, nil
	}

	var updated []string
	seen := make(map[string]bool)

	for _, dep := range m.Dependencies {
		depDir := paths.Join(directory, dep.Directory)
		depManifest, depRoot, _ := p.accessor.Load(depDir)
		if depManifest == nil {
			p.logger.Error("dependency manifest unavailable", "project", directory, "dependency", dep.DisplayName())
			return status.GitRepositoryNotFound, updated
		}
		if depManifest.Packages.Directory == "" {
			continue
		}

		artifacts := filepath.Join(depRoot, depManifest.Packages.Directory)
		if seen[artifacts] {
			continue
		}
		seen[artifacts] = true

		if !paths.Exists(artifacts) {
			if depManifest.Implicit() {
				p.logger.Debug("no packages directory for dependency", "dependency", dep.DisplayName(), "dir", artifacts)
				continue
			}
			p.logger.Error("packages directory not found", "dependency", dep.DisplayName(), "dir", artifacts)
			return status.CouldNotLocatePackagesDirectory, updated
		}

		pkgs, err := FindPackages(artifacts, depManifest.Packages.Pattern)
		if err != nil {
			p.logger.Error("failed to list packages", "dir", artifacts, "error", err)
			return status.CouldNotLocatePackagesDirectory, updated
		}

		for _, pkg := range pkgs {
			if code := p.updatePackage(directory, artifacts, pkg); code != status.Success {
				return code, updated
			}
			updated = append(updated, pkg.String())
		}
	}

	if code := p.runScript(directory, m); code != status.Success {
		return code, updated
	}
	return status.Success, updated
}

func (p *Procedure) updatePackage(directory, source string, pkg Package) status.Code {
	replacer := strings.NewReplacer(
		"{id}", pkg.ID,
		"{version}", pkg.Version.Original(),
		"{source}", source,
		"{dir}", directory,
	)
	args := make([]string, len(p.opts.UpdateArgs))
	for i, arg := range p.opts.UpdateArgs {
		args[i] = replacer.Replace(arg)
	}

	err := p.run(process.Config{
		Name:   "package-update",
		Binary: p.opts.PackageManager,
		Args:   args,
		Dir:    directory,
		Output: p.opts.Output,
	})
	if err != nil {
		p.logger.Error("package update failed", "package", pkg.String(), "dir", directory, "error", err)
		return status.FailedToRunPackageManagerCommand
	}
	p.logger.Info("updated package", "package", pkg.String(), "dir", directory)
	return status.Success
}

func (p *Procedure) runScript(directory string, m *manifest.Manifest) status.Code {
	if m.Build.Script == "" {
		return status.Success
	}

	script := filepath.Join(directory, m.Build.Script)
	if _, err := os.Stat(script); err != nil {
		if errors.Is(err, os.ErrNotExist) && m.Implicit() {
			p.logger.Debug("no build script, skipping", "dir", directory)
			return status.Success
		}
		p.logger.Error("build script not found", "script", script, "error", err)
		return status.FailedToRunBuildScript
	}

	args := append(append([]string{}, p.opts.Shell[1:]...), script)
	err := p.run(process.Config{
		Name:   "build",
		Binary: p.opts.Shell[0],
		Args:   args,
		Dir:    directory,
		Output: p.opts.Output,
	})
	if err != nil {
		p.logger.Error("build script failed", "script", script, "error", err)
		return status.FailedToRunBuildScript
	}
	return status.Success
}
