package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// CommandRunner handles execution of linter processes
type CommandRunner struct {
	defaultTimeout time.Duration
}

// NewCommandRunner creates a new command runner
func NewCommandRunner() *CommandRunner {
	return &CommandRunner{
		defaultTimeout: 5 * time.Minute,
	}
}

// RunConfig contains configuration for executing one linter process.
type RunConfig struct {
	Command     string
	Args        []string
	WorkingDir  string
	Env         map[string]string
	Timeout     time.Duration
	Description string
}

// RunResult contains the result of a linter process execution
type RunResult struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
	TimedOut bool
	Err      error // nil when the process started and exited on its own
}

// Run executes a command with the given configuration. The command is
// invoked directly (argv form), never through a shell: linter arguments
// include user-controlled file paths.
func (r *CommandRunner) Run(ctx context.Context, config RunConfig) *RunResult {
	startTime := time.Now()
	result := &RunResult{}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = r.defaultTimeout
	}

	execCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	//nolint:gosec // G204: command and args come from gate configuration
	cmd := exec.CommandContext(execCtx, config.Command, config.Args...)

	if config.WorkingDir != "" {
		cmd.Dir = config.WorkingDir
	}

	env := os.Environ()
	for key, value := range config.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()

	if err != nil {
		var exitErr *exec.ExitError
		switch {
		case errors.As(err, &exitErr):
			// Non-zero exit is a normal outcome for a linter with
			// findings; the caller interprets the code.
			result.ExitCode = exitErr.ExitCode()
			if execCtx.Err() == context.DeadlineExceeded {
				result.TimedOut = true
				result.Err = fmt.Errorf("%s timed out after %v", config.Command, timeout)
			}
		case execCtx.Err() == context.DeadlineExceeded:
			result.ExitCode = -1
			result.TimedOut = true
			result.Err = fmt.Errorf("%s timed out after %v", config.Command, timeout)
		default:
			// Start failure (missing executable, permission denied)
			result.ExitCode = -1
			result.Err = err
		}
		return result
	}

	result.ExitCode = 0
	return result
}
