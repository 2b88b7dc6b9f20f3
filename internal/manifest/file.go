// pattern: Imperative Shell

package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"gitdepend/internal/logging"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
)

// FileNames lists the manifest file names searched in a repository root, in
// priority order.
var FileNames = []string{"GitDepend.yaml", "GitDepend.yml", "GitDepend.toml", "GitDepend.json"}

// DefaultFileName is the manifest file created by the init command.
const DefaultFileName = "GitDepend.yaml"

// ErrNotRepository indicates no enclosing git repository was found.
var ErrNotRepository = errors.New("not a git repository")

// FileAccessor loads manifests from the repository enclosing a directory.
type FileAccessor struct {
	logger *logging.ScopedLogger
}

// NewFileAccessor creates a FileAccessor. A nil logger discards output.
func NewFileAccessor(logger *logging.ScopedLogger) *FileAccessor {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &FileAccessor{logger: logger}
}

// Load implements Accessor. The returned directory is the canonical root of
// the repository containing directory. A repository without a manifest file
// yields Default(); an unreadable or invalid file yields nil.
func (a *FileAccessor) Load(directory string) (*Manifest, string, status.Code) {
	dir := paths.Canonical(directory)
	if !paths.Exists(dir) {
		return nil, dir, status.DirectoryDoesNotExist
	}

	root, err := FindRepositoryRoot(dir)
	if err != nil {
		a.logger.Debug("no repository found", "dir", dir)
		return nil, dir, status.GitRepositoryNotFound
	}

	path, ok := Locate(root)
	if !ok {
		a.logger.Debug("no manifest file, using defaults", "dir", root)
		m := Default()
		m.Name = filepath.Base(root)
		return m, root, status.Success
	}

	m, err := ReadFile(path)
	if err != nil {
		a.logger.Warn("failed to load manifest", "path", path, "error", err)
		return nil, root, status.GitRepositoryNotFound
	}
	if m.Name == "" {
		m.Name = filepath.Base(root)
	}
	return m, root, status.Success
}

// FindRepositoryRoot walks up from dir until it finds a directory holding a
// .git entry (a directory, or a file for worktrees and submodules).
func FindRepositoryRoot(dir string) (string, error) {
	current := paths.Canonical(dir)
	for {
		if _, err := os.Stat(filepath.Join(current, ".git")); err == nil {
			return current, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		current = parent
	}
}

// Locate returns the first manifest file present in root.
func Locate(root string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}
	return "", false
}

// ReadFile parses the manifest at path. Missing fields keep their defaults.
func ReadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m := Default()
	switch filepath.Ext(path) {
	case ".toml":
		if _, err := toml.Decode(string(data), m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	default:
		// yaml.v3 also accepts JSON documents.
		if err := yaml.Unmarshal(data, m); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
		}
	}

	if m.Packages.Pattern == "" {
		m.Packages.Pattern = DefaultPackagePattern
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", filepath.Base(path), err)
	}

	m.Path = path
	return m, nil
}

// Save writes m to path, choosing the encoding from the file extension.
func Save(path string, m *Manifest) error {
	if err := m.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	switch filepath.Ext(path) {
	case ".toml":
		if err := toml.NewEncoder(&buf).Encode(m); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
	case ".json":
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
	default:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		_ = enc.Close()
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}
	return nil
}

// Marshal renders m as YAML for display.
func Marshal(m *Manifest) (string, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return "", fmt.Errorf("encoding yaml: %w", err)
	}
	_ = enc.Close()
	return buf.String(), nil
}
