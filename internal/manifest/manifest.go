// pattern: Functional Core

// Package manifest loads and saves the per-repository GitDepend file that
// declares a project's build settings and its ordered dependency list.
package manifest

import (
	"fmt"
	"runtime"
	"strings"

	"gitdepend/internal/status"
)

// Dependency is one declared edge from a project to another repository.
type Dependency struct {
	Name      string `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Directory string `yaml:"directory" toml:"directory" json:"directory"`
	URL       string `yaml:"url,omitempty" toml:"url,omitempty" json:"url,omitempty"`
	Branch    string `yaml:"branch,omitempty" toml:"branch,omitempty" json:"branch,omitempty"`
}

// Build describes how a project is built.
type Build struct {
	Script string `yaml:"script,omitempty" toml:"script,omitempty" json:"script,omitempty"`
}

// Packages describes where a project's build drops its package artifacts.
type Packages struct {
	Directory string `yaml:"directory,omitempty" toml:"directory,omitempty" json:"directory,omitempty"`
	Pattern   string `yaml:"pattern,omitempty" toml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Manifest is a project's declared configuration.
type Manifest struct {
	Name         string       `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Build        Build        `yaml:"build" toml:"build" json:"build"`
	Packages     Packages     `yaml:"packages" toml:"packages" json:"packages"`
	Dependencies []Dependency `yaml:"dependencies,omitempty" toml:"dependencies,omitempty" json:"dependencies,omitempty"`

	// Path is the file the manifest was read from. Empty for the implicit
	// manifest of a repository without a GitDepend file.
	Path string `yaml:"-" toml:"-" json:"-"`
}

const (
	DefaultPackagesDirectory = "artifacts/NuGet/Debug"
	DefaultPackagePattern    = "*.nupkg"
)

// DefaultBuildScript returns the build script assumed when none is declared.
func DefaultBuildScript() string {
	if runtime.GOOS == "windows" {
		return "make.bat"
	}
	return "make.sh"
}

// Default returns the manifest used for a repository with no GitDepend file.
func Default() *Manifest {
	return &Manifest{
		Build:    Build{Script: DefaultBuildScript()},
		Packages: Packages{Directory: DefaultPackagesDirectory, Pattern: DefaultPackagePattern},
	}
}

// Implicit reports whether m was synthesized rather than read from a file.
func (m *Manifest) Implicit() bool {
	return m.Path == ""
}

// Validate checks the fields the traversal relies on.
func (m *Manifest) Validate() error {
	for i, dep := range m.Dependencies {
		if strings.TrimSpace(dep.Directory) == "" {
			return fmt.Errorf("dependency %d (%q): directory is required", i, dep.Name)
		}
	}
	return nil
}

// DisplayName returns the dependency's name, falling back to its directory.
func (d Dependency) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Directory
}

// Accessor loads manifests. Load returns the manifest (nil when none can be
// loaded), the canonical project directory, and a status describing why a
// manifest is absent.
type Accessor interface {
	Load(directory string) (*Manifest, string, status.Code)
}
