// pattern: Imperative Shell

package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gitdepend/internal/logging"
	"gitdepend/internal/status"
)

// Runner executes git with args in dir and returns its combined output.
type Runner func(dir string, args ...string) ([]byte, error)

// CLI is a Gateway that shells out to the git binary.
type CLI struct {
	binary string
	logger *logging.ScopedLogger
	run    Runner
}

// NewCLI creates a CLI gateway. An empty binary means "git" from PATH.
func NewCLI(binary string, logger *logging.ScopedLogger) *CLI {
	if binary == "" {
		binary = "git"
	}
	if logger == nil {
		logger = logging.NopLogger()
	}
	c := &CLI{binary: binary, logger: logger}
	c.run = c.exec
	return c
}

// NewCLIWithRunner creates a CLI gateway that delegates command execution to
// run. Used by tests.
func NewCLIWithRunner(run Runner, logger *logging.ScopedLogger) *CLI {
	c := NewCLI("", logger)
	c.run = run
	return c
}

func (c *CLI) exec(dir string, args ...string) ([]byte, error) {
	cmd := exec.Command(c.binary, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Clone clones url into directory, checking out branch when one is given.
func (c *CLI) Clone(url, directory, branch string) status.Code {
	parent := filepath.Dir(directory)
	if err := os.MkdirAll(parent, 0755); err != nil {
		c.logger.Error("failed to create clone parent directory", "dir", parent, "error", err)
		return status.FailedToRunGitCommand
	}

	args := []string{"clone", url, directory}
	if branch != "" {
		args = append(args, "--branch", branch)
	}

	c.logger.Info("cloning repository", "url", url, "dir", directory, "branch", branch)
	if output, err := c.run(parent, args...); err != nil {
		c.logger.Error("git clone failed", "url", url, "dir", directory, "error",
			fmt.Errorf("git clone: %s: %w", strings.TrimSpace(string(output)), err))
		return status.FailedToRunGitCommand
	}
	return status.Success
}

// Checkout switches the repository in directory to branch.
func (c *CLI) Checkout(directory, branch string) status.Code {
	if branch == "" {
		return status.Success
	}

	c.logger.Info("checking out branch", "dir", directory, "branch", branch)
	if output, err := c.run(directory, "checkout", branch); err != nil {
		c.logger.Error("git checkout failed", "dir", directory, "branch", branch, "error",
			fmt.Errorf("git checkout: %s: %w", strings.TrimSpace(string(output)), err))
		return status.FailedToRunGitCommand
	}
	return status.Success
}

// CurrentBranch returns the checked-out branch, or "detached" for a detached HEAD.
func (c *CLI) CurrentBranch(directory string) (string, error) {
	output, err := c.run(directory, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %s: %w", strings.TrimSpace(string(output)), err)
	}
	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "detached", nil
	}
	return branch, nil
}
