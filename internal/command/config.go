// pattern: Imperative Shell

package command

import (
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
)

// ShowConfig prints the effective manifest of the working directory.
type ShowConfig struct {
	directory string
	accessor  manifest.Accessor
	reporter  *Reporter
	logger    *logging.ScopedLogger
}

// NewShowConfig creates the orchestrator behind the config verb.
func NewShowConfig(directory string, accessor manifest.Accessor, reporter *Reporter, logger *logging.ScopedLogger) *ShowConfig {
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &ShowConfig{directory: directory, accessor: accessor, reporter: reporter, logger: logger}
}

func (s *ShowConfig) Execute() status.Code {
	m, dir, code := s.accessor.Load(s.directory)
	if m == nil {
		if code == status.Success {
			code = status.GitRepositoryNotFound
		}
		s.logger.Error("unable to load manifest", "dir", s.directory, "status", code.String())
		return code
	}

	out, err := manifest.Marshal(m)
	if err != nil {
		s.logger.Error("unable to render manifest", "dir", dir, "error", err)
		return status.FailedToSaveConfiguration
	}

	if m.Implicit() {
		s.reporter.Linef("# %s has no GitDepend file; showing defaults", dir)
	} else {
		s.reporter.Linef("# %s", m.Path)
	}
	s.reporter.Line(out)
	return status.Success
}
