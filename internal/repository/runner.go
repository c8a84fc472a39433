package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// CommandRunner executes a single git command and waits for it to exit.
// A non-zero exit is returned in the result, not as an error.
type CommandRunner interface {
	Run(ctx context.Context, args ...string) (CommandResult, error)
}

// CommandResult holds the captured output of one git invocation.
type CommandResult struct {
	Args     []string
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports whether the command exited with status zero.
func (r CommandResult) Success() bool {
	return r.ExitCode == 0
}

// Output returns stdout followed by stderr, trimmed.
func (r CommandResult) Output() string {
	out := strings.TrimSpace(string(r.Stdout))
	errOut := strings.TrimSpace(string(r.Stderr))
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// ExecutionError is returned when the git binary could not be launched at all.
type ExecutionError struct {
	Args []string
	Err  error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to launch git %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// CommandError describes a command that ran but exited non-zero.
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
}

// NewCommandError builds a CommandError from a failed result.
func NewCommandError(result CommandResult) *CommandError {
	return &CommandError{
		Args:     result.Args,
		ExitCode: result.ExitCode,
		Output:   result.Output(),
	}
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("git %s exited with status %d", strings.Join(e.Args, " "), e.ExitCode)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// ExecRunner shells out to the system git binary.
type ExecRunner struct {
	// Binary is the git executable. Defaults to "git".
	Binary string
	// Dir is the working directory for every command. Empty means the process cwd.
	Dir string
}

// NewExecRunner creates a runner rooted at dir.
func NewExecRunner(binary, dir string) *ExecRunner {
	return &ExecRunner{Binary: binary, Dir: dir}
}

func (r *ExecRunner) binary() string {
	if r.Binary == "" {
		return "git"
	}
	return r.Binary
}

// Run executes the command once. The context is handed to exec but no
// deadline is added here.
func (r *ExecRunner) Run(ctx context.Context, args ...string) (CommandResult, error) {
	cmd := exec.CommandContext(ctx, r.binary(), args...)
	if r.Dir != "" {
		cmd.Dir = r.Dir
	}
	// Porcelain text such as "On branch" is localized otherwise.
	cmd.Env = append(os.Environ(), "LC_ALL=C", "LANG=C")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	result := CommandResult{Args: args}
	err := cmd.Run()
	result.Stdout = stdout.Bytes()
	result.Stderr = stderr.Bytes()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// -1 when the process was killed by a signal.
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, &ExecutionError{Args: args, Err: err}
	}
	return result, nil
}
