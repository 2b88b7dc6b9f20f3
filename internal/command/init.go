// pattern: Imperative Shell

package command

import (
	"errors"
	"path/filepath"

	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
	"gitdepend/internal/tui"
)

// PromptFunc asks the user to confirm or edit the values of a new manifest.
type PromptFunc func(defaults tui.InitValues) (tui.InitValues, error)

// Init writes a GitDepend file to the root of the repository containing
// directory.
type Init struct {
	directory string
	values    tui.InitValues
	prompt    PromptFunc
	reporter  *Reporter
	styles    *tui.Styles
	logger    *logging.ScopedLogger
}

// NewInit creates the init orchestrator. Non-empty fields of values override
// the defaults. When prompt is non-nil the merged values are offered to it
// for editing before the file is written.
func NewInit(directory string, values tui.InitValues, prompt PromptFunc, reporter *Reporter, styles *tui.Styles, logger *logging.ScopedLogger) *Init {
	if logger == nil {
		logger = logging.NopLogger()
	}
	if styles == nil {
		styles = tui.NewStyles("")
	}
	return &Init{directory: directory, values: values, prompt: prompt, reporter: reporter, styles: styles, logger: logger}
}

func (i *Init) Execute() status.Code {
	root, err := manifest.FindRepositoryRoot(i.directory)
	if err != nil {
		i.logger.Error("init outside a repository", "dir", i.directory, "error", err)
		return status.GitRepositoryNotFound
	}

	if existing, ok := manifest.Locate(root); ok {
		i.logger.Warn("manifest already exists", "path", existing)
		i.reporter.Linef("%s already exists.", existing)
		return status.ConfigurationFileAlreadyExists
	}

	values := mergeInitValues(defaultInitValues(root), i.values)
	if i.prompt != nil {
		values, err = i.prompt(values)
		if errors.Is(err, tui.ErrCancelled) {
			i.reporter.Line("Init cancelled.")
			return status.Success
		}
		if err != nil {
			i.logger.Error("init prompt failed", "error", err)
			return status.InvalidArguments
		}
	}

	m := manifest.Default()
	m.Name = values.Name
	m.Build.Script = values.BuildScript
	m.Packages.Directory = values.PackagesDirectory
	m.Packages.Pattern = values.PackagesPattern

	path := filepath.Join(root, manifest.DefaultFileName)
	if err := manifest.Save(path, m); err != nil {
		i.logger.Error("failed to save manifest", "path", path, "error", err)
		return status.FailedToSaveConfiguration
	}

	i.logger.Info("manifest created", "path", path)
	i.reporter.Line(i.styles.SuccessStyle().Render("Created " + path))
	return status.Success
}

func defaultInitValues(root string) tui.InitValues {
	d := manifest.Default()
	return tui.InitValues{
		Name:              filepath.Base(root),
		BuildScript:       d.Build.Script,
		PackagesDirectory: d.Packages.Directory,
		PackagesPattern:   d.Packages.Pattern,
	}
}

func mergeInitValues(base, override tui.InitValues) tui.InitValues {
	if override.Name != "" {
		base.Name = override.Name
	}
	if override.BuildScript != "" {
		base.BuildScript = override.BuildScript
	}
	if override.PackagesDirectory != "" {
		base.PackagesDirectory = override.PackagesDirectory
	}
	if override.PackagesPattern != "" {
		base.PackagesPattern = override.PackagesPattern
	}
	return base
}
