// pattern: Imperative Shell

package visitor

import (
	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/paths"
	"gitdepend/internal/status"
)

// CheckoutBranch switches every dependency to the branch its owner declares.
type CheckoutBranch struct {
	gateway git.Gateway
	logger  *logging.ScopedLogger
}

// NewCheckoutBranch creates a CheckoutBranch visitor.
func NewCheckoutBranch(gateway git.Gateway, logger *logging.ScopedLogger) *CheckoutBranch {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &CheckoutBranch{gateway: gateway, logger: logger}
}

func (c *CheckoutBranch) VisitDependency(directory string, dep manifest.Dependency) status.Code {
	target := paths.Join(directory, dep.Directory)
	c.logger.Info("checking out dependency", "dependency", dep.DisplayName(), "dir", target, "branch", dep.Branch)

	code := c.gateway.Checkout(target, dep.Branch)
	if code != status.Success {
		c.logger.Error("checkout failed", "dependency", dep.DisplayName(), "branch", dep.Branch, "status", code.String())
	}
	return code
}

func (c *CheckoutBranch) VisitProject(string, *manifest.Manifest) status.Code {
	return status.Success
}
