// pattern: Imperative Shell

// Package git is the version-control gateway used to clone dependencies and
// switch them to their declared branches.
package git

import (
	"fmt"

	"gitdepend/internal/logging"
	"gitdepend/internal/status"
)

// Gateway performs the version-control operations the traversal needs.
// Clone and Checkout report failures as status codes.
type Gateway interface {
	Clone(url, directory, branch string) status.Code
	Checkout(directory, branch string) status.Code
	CurrentBranch(directory string) (string, error)
}

// Backend names accepted by New.
const (
	BackendExec   = "exec"
	BackendNative = "native"
)

// New returns the gateway for the named backend. An empty backend selects
// the git binary.
func New(backend, binary string, logger *logging.ScopedLogger) (Gateway, error) {
	switch backend {
	case "", BackendExec:
		return NewCLI(binary, logger), nil
	case BackendNative:
		return NewNative(logger), nil
	default:
		return nil, fmt.Errorf("unknown git backend %q (want %q or %q)", backend, BackendExec, BackendNative)
	}
}
