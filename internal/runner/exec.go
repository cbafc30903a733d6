package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"time"
)

// ExecRunner runs commands as child processes.
type ExecRunner struct {
	// Stdout and Stderr receive the live output stream; defaults to
	// os.Stdout/os.Stderr. Output is captured regardless.
	Stdout io.Writer
	Stderr io.Writer
	// Stdin is connected to the child when set. Generators run without a
	// terminal by default.
	Stdin io.Reader
	// Timeout bounds each command. Zero means no limit.
	Timeout time.Duration
	Logger  *slog.Logger
}

// Run executes cmd, streaming its output to the configured writers while
// also capturing it into the returned Output.
func (r *ExecRunner) Run(ctx context.Context, c Command) (*Output, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	bin, err := LookPath(c.Name)
	if err != nil {
		return nil, err
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, bin, c.Args...)
	cmd.Dir = c.Dir
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	cmd.Stdin = r.Stdin

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = io.MultiWriter(stdout, &stdoutBuf)
	cmd.Stderr = io.MultiWriter(stderr, &stderrBuf)

	logger.Debug("running command", "cmd", c.String(), "dir", c.Dir)
	start := time.Now()
	err = cmd.Run()

	output := &Output{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) && r.Timeout > 0 {
			return output, fmt.Errorf("%s timed out after %s", c.String(), r.Timeout)
		}
		return output, fmt.Errorf("%s interrupted: %w", c.String(), ctxErr)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			logger.Debug("command failed", "cmd", c.Name, "exit", output.ExitCode, "elapsed", time.Since(start))
			return output, nil
		}
		return output, fmt.Errorf("executing %s: %w", c.Name, err)
	}

	logger.Debug("command finished", "cmd", c.Name, "elapsed", time.Since(start))
	return output, nil
}
