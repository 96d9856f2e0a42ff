package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// DefaultCommandTimeout bounds a single external check.
const DefaultCommandTimeout = 2 * time.Minute

// CommandRunnerAdapter abstracts running an external process, such as a test
// runner, inside a scenario's working directory.
type CommandRunnerAdapter interface {
	// Run executes name with args in workDir and returns the combined
	// stdout/stderr output and any error (including non-zero exits).
	Run(ctx context.Context, workDir string, name string, args ...string) (output string, err error)
}

// LocalCommandRunnerAdapter provides a concrete implementation using os/exec.
type LocalCommandRunnerAdapter struct {
	timeout time.Duration
}

// NewLocalCommandRunnerAdapter constructs a runner that kills commands after timeout.
// A non-positive timeout selects DefaultCommandTimeout.
func NewLocalCommandRunnerAdapter(timeout time.Duration) *LocalCommandRunnerAdapter {
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}

	return &LocalCommandRunnerAdapter{
		timeout: timeout,
	}
}

// Run executes the command and collects its output.
func (a *LocalCommandRunnerAdapter) Run(ctx context.Context, workDir string, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	// #nosec G204 - commands come from the scenario definition
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = workDir
	cmd.WaitDelay = time.Second

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}
