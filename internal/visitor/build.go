// pattern: Imperative Shell

package visitor

import (
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
)

// Procedure builds one project and reports the packages it updated.
// *build.Procedure satisfies it.
type Procedure interface {
	Run(directory string, m *manifest.Manifest) (status.Code, []string)
}

// BuildAndUpdate runs the build procedure for every project, dependencies
// first, collecting the updated package ids.
type BuildAndUpdate struct {
	// UpdatedPackages lists updated package ids in the order they were applied.
	UpdatedPackages []string

	procedure Procedure
	logger    *logging.ScopedLogger
}

// NewBuildAndUpdate creates a BuildAndUpdate visitor.
func NewBuildAndUpdate(procedure Procedure, logger *logging.ScopedLogger) *BuildAndUpdate {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &BuildAndUpdate{procedure: procedure, logger: logger}
}

func (b *BuildAndUpdate) VisitDependency(string, manifest.Dependency) status.Code {
	return status.Success
}

func (b *BuildAndUpdate) VisitProject(directory string, m *manifest.Manifest) status.Code {
	b.logger.Info("building project", "dir", directory)

	code, updated := b.procedure.Run(directory, m)
	if code != status.Success {
		b.logger.Error("build failed", "dir", directory, "status", code.String())
		return code
	}

	b.UpdatedPackages = append(b.UpdatedPackages, updated...)
	return status.Success
}
