// pattern: Functional Core

// Package cli dispatches gitdepend verbs to their orchestrators.
package cli

import (
	"fmt"
	"io"
	"os"
	"slices"

	"gitdepend/internal/status"
)

// Command represents a single CLI verb with its metadata and handler.
type Command struct {
	Name         string
	Summary      string
	Usage        string
	RequiresLock bool
	Run          func(args []string) status.Code
}

// LockFunc acquires the instance lock for the named command and returns the
// function releasing it.
type LockFunc func(command string) (release func(), err error)

// App is the top-level CLI application.
type App struct {
	commands map[string]*Command
	order    []string
	version  string
	lock     LockFunc
	stdout   io.Writer
	stderr   io.Writer
}

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		commands: make(map[string]*Command),
		version:  version,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// SetOutput redirects help and error output.
func (a *App) SetOutput(stdout, stderr io.Writer) {
	a.stdout = stdout
	a.stderr = stderr
}

// SetLock installs the lock taken around commands with RequiresLock.
func (a *App) SetLock(lock LockFunc) {
	a.lock = lock
}

// AddCommand registers a command. Help lists commands in registration order.
func (a *App) AddCommand(cmd *Command) {
	if _, ok := a.commands[cmd.Name]; !ok {
		a.order = append(a.order, cmd.Name)
	}
	a.commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the matching command and returns
// its status.
func (a *App) Execute(args []string) status.Code {
	if len(args) == 0 {
		a.PrintHelp(a.stderr)
		return status.InvalidArguments
	}

	cmdName := args[0]
	if cmdName == "help" || cmdName == "--help" || cmdName == "-h" {
		if len(args) > 1 {
			if cmd, ok := a.commands[args[1]]; ok {
				fmt.Fprintf(a.stdout, "%s\n", cmd.Usage)
				return status.Success
			}
		}
		a.PrintHelp(a.stdout)
		return status.Success
	}

	cmd, ok := a.commands[cmdName]
	if !ok {
		fmt.Fprintf(a.stderr, "unknown command %q\n\n", cmdName)
		a.PrintHelp(a.stderr)
		return status.UnknownCommand
	}

	if slices.Contains(args[1:], "--help") || slices.Contains(args[1:], "-h") {
		fmt.Fprintf(a.stdout, "%s\n", cmd.Usage)
		return status.Success
	}

	if cmd.RequiresLock && a.lock != nil {
		release, err := a.lock(cmd.Name)
		if err != nil {
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			return status.InstanceLocked
		}
		defer release()
	}

	return cmd.Run(args[1:])
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: gitdepend [options] <command> [flags]\n\n")
	fmt.Fprintf(w, "Commands:\n")
	for _, name := range a.order {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "  %-10s %s\n", "help", "Show help for gitdepend or a command")
	fmt.Fprintf(w, "\nUse \"gitdepend <command> --help\" for command details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}
