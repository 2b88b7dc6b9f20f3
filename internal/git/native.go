// pattern: Imperative Shell

package git

import (
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"gitdepend/internal/logging"
	"gitdepend/internal/status"
)

// Native is a Gateway implemented in-process with go-git. It needs no git
// binary on PATH.
type Native struct {
	logger *logging.ScopedLogger
}

// NewNative creates a go-git backed gateway.
func NewNative(logger *logging.ScopedLogger) *Native {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Native{logger: logger}
}

// Clone clones url into directory, checking out branch when one is given.
func (n *Native) Clone(url, directory, branch string) status.Code {
	opts := &gogit.CloneOptions{URL: url}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}

	n.logger.Info("cloning repository", "url", url, "dir", directory, "branch", branch)
	if _, err := gogit.PlainClone(directory, false, opts); err != nil {
		n.logger.Error("clone failed", "url", url, "dir", directory, "error", err)
		return status.FailedToRunGitCommand
	}
	return status.Success
}

// Checkout switches the worktree in directory to branch. A local branch is
// created from origin/<branch> when only the remote-tracking ref exists.
func (n *Native) Checkout(directory, branch string) status.Code {
	if branch == "" {
		return status.Success
	}

	if err := n.checkout(directory, branch); err != nil {
		n.logger.Error("checkout failed", "dir", directory, "branch", branch, "error", err)
		return status.FailedToRunGitCommand
	}
	return status.Success
}

func (n *Native) checkout(directory, branch string) error {
	repo, err := gogit.PlainOpen(directory)
	if err != nil {
		return fmt.Errorf("opening repository: %w", err)
	}

	local := plumbing.NewBranchReferenceName(branch)
	if head, err := repo.Head(); err == nil && head.Name() == local {
		return nil
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("opening worktree: %w", err)
	}

	opts := &gogit.CheckoutOptions{Branch: local}
	if _, err := repo.Reference(local, true); err != nil {
		if !errors.Is(err, plumbing.ErrReferenceNotFound) {
			return fmt.Errorf("resolving %s: %w", local, err)
		}
		remote, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
		if err != nil {
			return fmt.Errorf("branch %q not found locally or on origin: %w", branch, err)
		}
		opts.Hash = remote.Hash()
		opts.Create = true
	}

	n.logger.Info("checking out branch", "dir", directory, "branch", branch, "create", opts.Create)
	if err := wt.Checkout(opts); err != nil {
		return fmt.Errorf("checkout %s: %w", branch, err)
	}
	return nil
}

// CurrentBranch returns the checked-out branch, or "detached" for a detached HEAD.
func (n *Native) CurrentBranch(directory string) (string, error) {
	repo, err := gogit.PlainOpen(directory)
	if err != nil {
		return "", fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	// head.Name() is refs/heads/<branch> when on a branch
	if head.Name().IsBranch() {
		return head.Name().Short(), nil
	}
	return "detached", nil
}
