package runner

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Runner defines the interface for executing an external command.
type Runner interface {
	// Run executes cmd and blocks until it exits. The returned error is only
	// set when the command could not be started or was interrupted; a non-zero
	// exit status is reported through Output.ExitCode.
	Run(ctx context.Context, cmd Command) (*Output, error)
}

// Command is a single external invocation. Args are passed to the process
// verbatim; no shell is involved.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds extra KEY=VALUE pairs appended to the inherited environment.
	Env []string
}

// String renders the command the way a user would type it.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, quoteArg(c.Name))
	for _, a := range c.Args {
		parts = append(parts, quoteArg(a))
	}
	return strings.Join(parts, " ")
}

func quoteArg(s string) string {
	if s == "" || strings.ContainsAny(s, " \t\n\"'\\$`;&|<>*?()") {
		return strconv.Quote(s)
	}
	return s
}

// Output captures the result of a command execution.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// ExitError reports a command that ran but exited with a non-zero status.
type ExitError struct {
	Command Command
	Output  *Output
}

func (e *ExitError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", e.Command.String(), e.Output.ExitCode)
	if tail := lastLines(e.Output.Stderr, 10); tail != "" {
		msg += "\n" + tail
	}
	return msg
}

// Check runs cmd through r and turns a non-zero exit status into an
// *ExitError, so callers that treat any failure as fatal need one error check.
func Check(ctx context.Context, r Runner, cmd Command) (*Output, error) {
	out, err := r.Run(ctx, cmd)
	if err != nil {
		return out, err
	}
	if out.ExitCode != 0 {
		return out, &ExitError{Command: cmd, Output: out}
	}
	return out, nil
}

// LookPath reports the absolute path of a binary on PATH.
func LookPath(name string) (string, error) {
	p, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s is required but not found in PATH", name)
	}
	return p, nil
}

// lastLines returns at most n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
