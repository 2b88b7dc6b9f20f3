// pattern: Imperative Shell

// Package process runs build tooling subprocesses to completion, forwarding
// their output to the logger and, optionally, to the user.
package process

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"gitdepend/internal/logging"
)

// Config describes a child process to run.
type Config struct {
	Name   string
	Binary string
	Args   []string
	Dir    string
	Env    []string  // appended to the current environment
	Output io.Writer // receives stdout and stderr lines; nil discards them
}

// maxLineBytes bounds one forwarded output line. Output after a longer line
// is discarded.
const maxLineBytes = 1 << 20

// ExitError reports a process that ran but exited non-zero.
type ExitError struct {
	Name string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d", e.Name, e.Code)
}

// Run starts the process described by cfg and waits for it to exit. It
// returns nil on a zero exit status, an *ExitError on a non-zero status, and
// a wrapped error when the process could not be started.
func Run(cfg Config, logger *logging.ScopedLogger) error {
	if logger == nil {
		logger = logging.NopLogger()
	}

	cmd := exec.Command(cfg.Binary, cfg.Args...)
	cmd.Dir = cfg.Dir
	if len(cfg.Env) > 0 {
		cmd.Env = append(os.Environ(), cfg.Env...)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%s: stdout pipe: %w", cfg.Name, err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("%s: stderr pipe: %w", cfg.Name, err)
	}

	logger.Info("starting process", "process", cfg.Name, "binary", cfg.Binary, "args", fmt.Sprintf("%v", cfg.Args), "dir", cfg.Dir)

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%s: start: %w", cfg.Name, err)
	}

	// Capture stdout and stderr into logger
	var outMu sync.Mutex
	forward := func(r io.Reader, stream string) {
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			line := scanner.Text()
			logger.Debug(line, "stream", stream, "process", cfg.Name)
			if cfg.Output != nil {
				outMu.Lock()
				_, _ = fmt.Fprintln(cfg.Output, line)
				outMu.Unlock()
			}
		}
		if err := scanner.Err(); err != nil {
			logger.Warn("discarding remaining output", "process", cfg.Name, "stream", stream, "error", err)
		}
		// The child blocks on a full pipe unless the rest is read.
		_, _ = io.Copy(io.Discard, r)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		forward(stdout, "stdout")
	}()
	go func() {
		defer wg.Done()
		forward(stderr, "stderr")
	}()

	wg.Wait()
	err = cmd.Wait()

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			logger.Warn("process exited", "process", cfg.Name, "exit_code", code)
			return &ExitError{Name: cfg.Name, Code: code}
		}
		return fmt.Errorf("%s: wait: %w", cfg.Name, err)
	}

	logger.Info("process exited cleanly", "process", cfg.Name)
	return nil
}
