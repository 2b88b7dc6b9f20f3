// pattern: Imperative Shell

// Package instance keeps concurrent gitdepend runs from cloning and building
// the same workspace at once.
package instance

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
)

const (
	lockFileName  = "gitdepend.lock"
	ownerFileName = "gitdepend.owner"
)

// ErrLocked is returned by Lock when another run holds the lock.
var ErrLocked = errors.New("another gitdepend run is in progress")

// Owner identifies the process holding the lock.
type Owner struct {
	PID     int
	Command string
}

func (o Owner) String() string {
	return fmt.Sprintf("pid %d running %q", o.PID, o.Command)
}

// Lock acquires the exclusive lock in dataDir, creating the directory if
// needed. The caller must Release the returned handle. When the lock is
// held elsewhere the error wraps ErrLocked and names the owner if known.
func Lock(dataDir, command string) (*flock.Flock, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	fl := flock.New(filepath.Join(dataDir, lockFileName))
	locked, err := fl.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		if owner, err := ReadOwner(dataDir); err == nil {
			return nil, fmt.Errorf("%w (%s)", ErrLocked, owner)
		}
		return nil, ErrLocked
	}

	if err := writeOwner(dataDir, Owner{PID: os.Getpid(), Command: command}); err != nil {
		_ = fl.Unlock()
		return nil, err
	}
	return fl, nil
}

// ReadOwner returns the owner recorded by the current lock holder.
func ReadOwner(dataDir string) (Owner, error) {
	data, err := os.ReadFile(filepath.Join(dataDir, ownerFileName))
	if err != nil {
		return Owner{}, fmt.Errorf("reading owner file: %w", err)
	}

	pid, command, _ := strings.Cut(strings.TrimSpace(string(data)), " ")
	n, err := strconv.Atoi(pid)
	if err != nil {
		return Owner{}, fmt.Errorf("malformed owner file: %w", err)
	}
	return Owner{PID: n, Command: command}, nil
}

func writeOwner(dataDir string, o Owner) error {
	path := filepath.Join(dataDir, ownerFileName)
	if err := os.WriteFile(path, []byte(fmt.Sprintf("%d %s\n", o.PID, o.Command)), 0600); err != nil {
		return fmt.Errorf("writing owner file: %w", err)
	}
	return nil
}

// Release removes the owner file and releases the file lock.
func Release(dataDir string, fl *flock.Flock) {
	_ = os.Remove(filepath.Join(dataDir, ownerFileName))
	if fl != nil {
		_ = fl.Unlock()
	}
}
