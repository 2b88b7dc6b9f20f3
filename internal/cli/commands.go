// pattern: Imperative Shell

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"gitdepend/internal/build"
	"gitdepend/internal/command"
	"gitdepend/internal/config"
	"gitdepend/internal/git"
	"gitdepend/internal/instance"
	"gitdepend/internal/logging"
	"gitdepend/internal/manifest"
	"gitdepend/internal/status"
	"gitdepend/internal/traverse"
	"gitdepend/internal/tui"
)

// Env carries everything the commands are built from.
type Env struct {
	ConfigDir string
	// Directory is the working directory the graph is rooted at.
	Directory string
	NoColor   bool
	// Interactive allows init to prompt on the terminal.
	Interactive bool
	LogPath     string

	Config   config.Config
	Logs     logging.LoggerProvider
	Gateway  git.Gateway
	Accessor manifest.Accessor

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

type nopProvider struct{}

func (nopProvider) For(string) *logging.ScopedLogger { return logging.NopLogger() }

func (e *Env) defaults() {
	if e.Logs == nil {
		e.Logs = nopProvider{}
	}
	if e.Accessor == nil {
		e.Accessor = manifest.NewFileAccessor(e.Logs.For("manifest"))
	}
	if e.Gateway == nil {
		e.Gateway = git.NewCLI(e.Config.Git.Binary, e.Logs.For("git"))
	}
	if e.Stdin == nil {
		e.Stdin = os.Stdin
	}
	if e.Stdout == nil {
		e.Stdout = os.Stdout
	}
	if e.Stderr == nil {
		e.Stderr = os.Stderr
	}
	if e.Directory == "" {
		e.Directory = "."
	}
}

func (e *Env) reporter() *command.Reporter {
	return command.NewReporter(e.Stdout, !e.NoColor)
}

func (e *Env) styles() *tui.Styles {
	return tui.NewStyles(e.Config.Theme)
}

func (e *Env) engine() *traverse.Engine {
	return traverse.NewEngine(e.Accessor, e.Gateway, traverse.WithLogger(e.Logs.For("traverse")))
}

func (e *Env) procedure() *build.Procedure {
	return build.NewProcedure(e.Accessor, build.Options{
		Shell:          e.Config.Build.Shell,
		PackageManager: e.Config.PackageManager.Command,
		UpdateArgs:     e.Config.PackageManager.UpdateArgs,
		Output:         e.Stderr,
	}, e.Logs.For("build"))
}

// ResolveDataDir returns the directory holding the lock and log files.
// If configDir is specified, uses that; otherwise uses ~/.config/gitdepend.
func ResolveDataDir(configDir string) string {
	if configDir != "" {
		return configDir
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "gitdepend")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "gitdepend")
	}
	return filepath.Join(home, ".config", "gitdepend")
}

// BuildApp creates and configures the CLI application with all commands.
func BuildApp(version string, env Env) *App {
	env.defaults()

	app := NewApp(version)
	app.SetOutput(env.Stdout, env.Stderr)

	dataDir := ResolveDataDir(env.ConfigDir)
	app.SetLock(func(name string) (func(), error) {
		fl, err := instance.Lock(dataDir, name)
		if err != nil {
			return nil, err
		}
		return func() { instance.Release(dataDir, fl) }, nil
	})

	app.AddCommand(&Command{
		Name:    "init",
		Summary: "Create a GitDepend.yaml in the current repository",
		Usage:   "Usage: gitdepend init [--name NAME] [--build-script PATH] [--packages-dir DIR] [--packages-pattern GLOB] [--no-prompt]",
		Run: func(args []string) status.Code {
			return runInit(&env, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "config",
		Summary: "Show the manifest of the current repository",
		Usage:   "Usage: gitdepend config [DIR]",
		Run: func(args []string) status.Code {
			dir, code := directoryArg(&env, "config", args)
			if code != status.Success {
				return code
			}
			return command.NewShowConfig(dir, env.Accessor, env.reporter(), env.Logs.For("command.config")).Execute()
		},
	})

	app.AddCommand(&Command{
		Name:         "clone",
		Summary:      "Clone every missing dependency",
		Usage:        "Usage: gitdepend clone [DIR]",
		RequiresLock: true,
		Run: func(args []string) status.Code {
			dir, code := directoryArg(&env, "clone", args)
			if code != status.Success {
				return code
			}
			return command.NewClone(dir, env.engine(), env.reporter(), env.styles(), env.Logs.For("command.clone")).Execute()
		},
	})

	app.AddCommand(&Command{
		Name:         "update",
		Summary:      "Check out, build and update every dependency",
		Usage:        "Usage: gitdepend update [DIR]",
		RequiresLock: true,
		Run: func(args []string) status.Code {
			dir, code := directoryArg(&env, "update", args)
			if code != status.Success {
				return code
			}
			return command.NewUpdate(dir, env.engine(), env.Gateway, env.procedure(), env.reporter(), env.styles(), env.Logs.For("command.update")).Execute()
		},
	})

	app.AddCommand(&Command{
		Name:    "list",
		Summary: "Show the dependency graph in build order",
		Usage:   "Usage: gitdepend list [DIR]",
		Run: func(args []string) status.Code {
			dir, code := directoryArg(&env, "list", args)
			if code != status.Success {
				return code
			}
			return command.NewList(dir, env.engine(), env.reporter(), env.styles(), env.Logs.For("command.list")).Execute()
		},
	})

	app.AddCommand(&Command{
		Name:    "status",
		Summary: "Show which dependencies are off their declared branch",
		Usage:   "Usage: gitdepend status [DIR]",
		Run: func(args []string) status.Code {
			dir, code := directoryArg(&env, "status", args)
			if code != status.Success {
				return code
			}
			tr := traverse.NewEngine(env.Accessor, env.Gateway, traverse.WithLogger(env.Logs.For("traverse")), traverse.WithoutClone())
			return command.NewBranches(dir, tr, env.Gateway, env.reporter(), env.styles(), env.Logs.For("command.status")).Execute()
		},
	})

	app.AddCommand(&Command{
		Name:    "log",
		Summary: "Print recent entries from the gitdepend log",
		Usage:   "Usage: gitdepend log [--lines N] [--scope SCOPE]",
		Run: func(args []string) status.Code {
			return runLog(&env, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: gitdepend version",
		Run: func(args []string) status.Code {
			fmt.Fprintln(env.Stdout, version)
			return status.Success
		},
	})

	return app
}

// directoryArg parses a command taking at most one positional directory,
// which overrides the working directory.
func directoryArg(env *Env, name string, args []string) (string, status.Code) {
	fs := newFlagSet(env, name)
	if err := fs.Parse(args); err != nil {
		return "", status.InvalidArguments
	}

	switch fs.NArg() {
	case 0:
		return env.Directory, status.Success
	case 1:
		return fs.Arg(0), status.Success
	default:
		fmt.Fprintf(env.Stderr, "error: %s takes at most one directory\n", name)
		return "", status.InvalidArguments
	}
}

func newFlagSet(env *Env, name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	return fs
}

func runInit(env *Env, args []string) status.Code {
	fs := newFlagSet(env, "init")
	var values tui.InitValues
	fs.StringVar(&values.Name, "name", "", "project name (default: repository directory name)")
	fs.StringVar(&values.BuildScript, "build-script", "", "build script relative to the repository root")
	fs.StringVar(&values.PackagesDirectory, "packages-dir", "", "directory the build writes packages to")
	fs.StringVar(&values.PackagesPattern, "packages-pattern", "", "glob matching package files")
	noPrompt := fs.Bool("no-prompt", false, "write the manifest without asking")
	if err := fs.Parse(args); err != nil {
		return status.InvalidArguments
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(env.Stderr, "error: init takes no arguments\n")
		return status.InvalidArguments
	}

	var prompt command.PromptFunc
	if env.Interactive && !*noPrompt {
		styles := env.styles()
		prompt = func(defaults tui.InitValues) (tui.InitValues, error) {
			return tui.RunInitForm(defaults, styles, env.Stdin, env.Stdout)
		}
	}

	return command.NewInit(env.Directory, values, prompt, env.reporter(), env.styles(), env.Logs.For("command.init")).Execute()
}

func runLog(env *Env, args []string) status.Code {
	fs := newFlagSet(env, "log")
	lines := fs.IntP("lines", "n", 20, "number of entries to show, 0 for all")
	scope := fs.String("scope", "", "only show entries from this scope and its children, e.g. command or git")
	if err := fs.Parse(args); err != nil {
		return status.InvalidArguments
	}
	if *lines < 0 {
		fmt.Fprintf(env.Stderr, "error: --lines must not be negative\n")
		return status.InvalidArguments
	}

	err := TailLog(TailConfig{
		Path:    env.LogPath,
		Lines:   *lines,
		Scope:   *scope,
		NoColor: env.NoColor,
		Styles:  env.styles(),
		Writer:  env.Stdout,
	})
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintln(env.Stdout, "No log entries yet.")
		return status.Success
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return status.InvalidArguments
	}
	return status.Success
}
