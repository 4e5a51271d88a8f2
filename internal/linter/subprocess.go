package linter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"
)

// SubprocessExecutor runs external tools as subprocesses.
type SubprocessExecutor struct {
	// Timeout is the max execution time.
	// Default: 2 minutes
	Timeout time.Duration

	// WorkDir is the working directory.
	WorkDir string

	// Env is additional environment variables.
	Env map[string]string
}

// NewSubprocessExecutor creates a new executor.
func NewSubprocessExecutor() *SubprocessExecutor {
	return &SubprocessExecutor{
		Timeout: 2 * time.Minute,
		Env:     make(map[string]string),
	}
}

// Execute runs a command and returns its output.
func (e *SubprocessExecutor) Execute(ctx context.Context, name string, args ...string) (*ToolOutput, error) {
	return e.ExecuteWithInput(ctx, nil, name, args...)
}

// ExecuteWithInput runs a command with stdin connected to input.
// A non-zero exit code is not an error; it is reported in ToolOutput.
func (e *SubprocessExecutor) ExecuteWithInput(ctx context.Context, input io.Reader, name string, args ...string) (*ToolOutput, error) {
	// Apply timeout
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)

	if e.WorkDir != "" {
		cmd.Dir = e.WorkDir
	}

	if len(e.Env) > 0 {
		cmd.Env = append(os.Environ(), e.envSlice()...)
	}

	if input != nil {
		cmd.Stdin = input
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	duration := time.Since(start)

	output := &ToolOutput{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: duration.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			output.ExitCode = exitErr.ExitCode()
			return output, nil // Return output even on non-zero exit
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("failed to execute %s: %w", name, ctx.Err())
		}
		return nil, fmt.Errorf("failed to execute %s: %w", name, err)
	}

	output.ExitCode = 0
	return output, nil
}

func (e *SubprocessExecutor) envSlice() []string {
	result := make([]string, 0, len(e.Env))
	for k, v := range e.Env {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	return result
}
