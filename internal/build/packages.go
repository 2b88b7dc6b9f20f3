// pattern: Functional Core

package build

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Package is a built package artifact named <id>.<version>.<ext>.
type Package struct {
	ID      string
	Version *semver.Version
	Path    string
}

// String returns the package identifier reported to users, <id>.<version>.
func (p Package) String() string {
	return p.ID + "." + p.Version.Original()
}

// ParsePackageName splits an artifact file name into id and version. The id
// ends at the first dot followed by a digit whose remainder is a valid
// version, so "Acme.Core.2.1.0-beta.nupkg" yields ("Acme.Core", "2.1.0-beta").
func ParsePackageName(path string) (Package, bool) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	for i := 1; i < len(name)-1; i++ {
		if name[i] != '.' || name[i+1] < '0' || name[i+1] > '9' {
			continue
		}
		v, err := semver.NewVersion(name[i+1:])
		if err != nil {
			continue
		}
		return Package{ID: name[:i], Version: v, Path: path}, true
	}
	return Package{}, false
}

// FindPackages returns the packages in dir matching pattern, keeping only the
// highest version of each id. Results are ordered by id. Files whose names do
// not carry a version are ignored.
func FindPackages(dir, pattern string) ([]Package, error) {
	if pattern == "" {
		pattern = "*"
	}

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid package pattern %q: %w", pattern, err)
	}

	latest := make(map[string]Package)
	for _, path := range matches {
		if info, err := os.Stat(path); err != nil || info.IsDir() {
			continue
		}
		pkg, ok := ParsePackageName(path)
		if !ok {
			continue
		}
		if cur, seen := latest[pkg.ID]; !seen || pkg.Version.GreaterThan(cur.Version) {
			latest[pkg.ID] = pkg
		}
	}

	out := make([]Package, 0, len(latest))
	for _, pkg := range latest {
		out = append(out, pkg)
	}
	slices.SortFunc(out, func(a, b Package) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}
