// pattern: Functional Core

// Package status defines the closed set of outcome codes shared by the
// traversal engine, visitors and commands.
package status

// Code is the outcome of a traversal-relevant operation. Success is the only
// non-failure value; codes are compared by equality and never combined.
type Code int

const (
	Success Code = iota
	GitRepositoryNotFound
	DirectoryDoesNotExist
	FailedToRunGitCommand
	FailedToRunBuildScript
	FailedToRunPackageManagerCommand
	CouldNotLocatePackagesDirectory
	ConfigurationFileAlreadyExists
	FailedToSaveConfiguration
	CircularDependency
	InvalidArguments
	InstanceLocked
	UnknownCommand
	codeCount
)

var names = [...]string{
	Success:                          "success",
	GitRepositoryNotFound:            "git repository not found",
	DirectoryDoesNotExist:            "directory does not exist",
	FailedToRunGitCommand:            "failed to run git command",
	FailedToRunBuildScript:           "failed to run build script",
	FailedToRunPackageManagerCommand: "failed to run package manager command",
	CouldNotLocatePackagesDirectory:  "could not locate packages directory",
	ConfigurationFileAlreadyExists:   "configuration file already exists",
	FailedToSaveConfiguration:        "failed to save configuration",
	CircularDependency:               "circular dependency",
	InvalidArguments:                 "invalid arguments",
	InstanceLocked:                   "another gitdepend instance is running",
	UnknownCommand:                   "unknown command",
}

// String returns a human-readable description of the code.
func (c Code) String() string {
	if c < 0 || c >= codeCount {
		return "unknown status"
	}
	return names[c]
}

// ExitCode maps the code to a process exit code. Success is 0; every
// failure maps to its own non-zero value.
func (c Code) ExitCode() int {
	if c < 0 || c >= codeCount {
		return int(codeCount)
	}
	return int(c)
}
