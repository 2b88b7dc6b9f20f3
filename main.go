// pattern: Imperative Shell
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/x/term"
	flag "github.com/spf13/pflag"

	"gitdepend/internal/cli"
	"gitdepend/internal/config"
	"gitdepend/internal/git"
	"gitdepend/internal/logging"
	"gitdepend/internal/status"
)

var version = "dev"

const logFileName = "gitdepend.log"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run parses the global options, wires configuration and logging, and
// dispatches to the verb. It returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("gitdepend", flag.ContinueOnError)
	fs.SetOutput(stderr)
	// Stop parsing flags after the first non-flag arg (the verb),
	// so that flags after the verb are handled by the verb.
	fs.SetInterspersed(false)

	configDir := fs.StringP("config-dir", "c", "", "config directory (default: ~/.config/gitdepend)")
	dir := fs.StringP("dir", "d", ".", "directory of the project to operate on")
	verbose := fs.BoolP("verbose", "v", false, "log to stderr as well as the log file")
	noColor := fs.Bool("no-color", false, "disable colored output")

	fs.Usage = func() {
		app := cli.BuildApp(version, cli.Env{Stdout: stderr, Stderr: stderr})
		app.PrintHelp(stderr)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return status.Success.ExitCode()
		}
		return status.InvalidArguments.ExitCode()
	}

	cfg, err := config.LoadFromDir(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to load config: %v\n", err)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return status.InvalidArguments.ExitCode()
	}

	dataDir := cli.ResolveDataDir(*configDir)
	logPath := filepath.Join(dataDir, logFileName)

	logCfg := logging.Config{
		FilePath:   logPath,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 7,
		Level:      cfg.LogLevel,
	}
	if *verbose {
		logCfg.Console = stderr
		logCfg.ConsoleLevel = "debug"
	}
	logManager, err := logging.NewManager(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to initialize logging: %v\n", err)
		return status.InvalidArguments.ExitCode()
	}
	defer func() { _ = logManager.Close() }()

	appLogger := logManager.For("app")
	appLogger.Info("gitdepend starting", "version", version, "args", fmt.Sprintf("%v", args))

	backend := cfg.DetectedGitBackend()
	gateway, err := git.New(backend, cfg.Git.Binary, logManager.For("git"))
	if err != nil {
		appLogger.Error("invalid git backend", "backend", backend, "error", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return status.InvalidArguments.ExitCode()
	}

	env := cli.Env{
		ConfigDir:   *configDir,
		Directory:   *dir,
		NoColor:     *noColor || os.Getenv("NO_COLOR") != "" || !isTerminal(stdout),
		Interactive: isTerminal(stdin) && isTerminal(stdout),
		LogPath:     logPath,
		Config:      cfg,
		Logs:        logManager,
		Gateway:     gateway,
		Stdin:       stdin,
		Stdout:      stdout,
		Stderr:      stderr,
	}

	code := cli.BuildApp(version, env).Execute(fs.Args())
	switch code {
	case status.Success:
		appLogger.Debug("gitdepend finished")
	case status.InvalidArguments, status.UnknownCommand, status.InstanceLocked:
		// Already reported by the dispatcher.
		appLogger.Warn("gitdepend finished", "status", code.String())
	default:
		appLogger.Error("gitdepend failed", "status", code.String())
		fmt.Fprintf(stderr, "error: %s\n", code)
	}
	return code.ExitCode()
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}
