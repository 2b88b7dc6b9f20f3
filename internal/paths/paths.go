// pattern: Imperative Shell

// Package paths normalizes project directories into the canonical form used
// as visit-set keys.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Canonical returns the absolute, cleaned form of dir with symlinks resolved.
// Directories that do not exist yet are resolved through their nearest
// existing ancestor, so a path canonicalized before and after it is created
// yields the same key. On Windows the result is lower-cased.
func Canonical(dir string) string {
	if dir == "" {
		return ""
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = filepath.Clean(dir)
	}

	resolved := resolveExisting(abs)
	if runtime.GOOS == "windows" {
		resolved = strings.ToLower(resolved)
	}
	return resolved
}

// resolveExisting evaluates symlinks on the longest existing prefix of abs and
// re-appends the remaining, not yet existing, components.
func resolveExisting(abs string) string {
	var missing []string
	current := abs
	for {
		if resolved, err := filepath.EvalSymlinks(current); err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved
		}

		parent := filepath.Dir(current)
		if parent == current {
			return abs
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// Join resolves rel against base and canonicalizes the result.
func Join(base, rel string) string {
	if filepath.IsAbs(rel) {
		return Canonical(rel)
	}
	return Canonical(filepath.Join(base, rel))
}

// Exists reports whether dir exists and is a directory.
func Exists(dir string) bool {
	info, err := os.Stat(dir)
	return err == nil && info.IsDir()
}

// Relative returns target relative to base, falling back to target itself
// when no relative path exists.
func Relative(base, target string) string {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return target
	}
	return rel
}
