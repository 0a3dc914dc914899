package adapter

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

// ErrToolNotFound reports that the external build tool could not be resolved
// on the system PATH.
var ErrToolNotFound = errors.New("build tool not found")

// CommandError reports a failed external invocation together with its
// captured standard error.
type CommandError struct {
	Bin      string
	Args     []string
	ExitCode int
	Stderr   string
	Duration time.Duration
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("command %q exited with code %d after %s",
		e.Bin+" "+strings.Join(e.Args, " "), e.ExitCode, e.Duration.Round(time.Millisecond))

	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}

	return msg
}

// ToolRunnerAdapter abstracts external build-tool execution so the workflow
// can be tested without a Flutter SDK on the machine.
type ToolRunnerAdapter interface {
	// Probe resolves bin on PATH and asks it for its version. It fails with
	// ErrToolNotFound when the executable cannot be resolved.
	Probe(bin string) (path string, version string, err error)

	// Run executes bin with args in workDir, capturing output and timing.
	// A non-zero exit is returned as a *CommandError.
	Run(workDir, bin string, args []string) (m.CommandResult, error)
}

// LocalToolRunnerAdapter provides a concrete implementation using os/exec.
type LocalToolRunnerAdapter struct{}

// NewLocalToolRunnerAdapter constructs a LocalToolRunnerAdapter.
func NewLocalToolRunnerAdapter() *LocalToolRunnerAdapter {
	return &LocalToolRunnerAdapter{}
}

// Probe resolves bin on PATH and reports the first line of its version output.
func (a *LocalToolRunnerAdapter) Probe(bin string) (string, string, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", "", fmt.Errorf(
			"%w: %q is not on PATH; install the Flutter SDK and make sure %q resolves (https://docs.flutter.dev/get-started/install)",
			ErrToolNotFound, bin, bin,
		)
	}

	result, err := a.Run("", bin, []string{"--version"})
	if err != nil {
		return path, "", fmt.Errorf("probe %s: %w", bin, err)
	}

	version := strings.TrimSpace(result.Stdout)
	if idx := strings.IndexByte(version, '\n'); idx >= 0 {
		version = strings.TrimSpace(version[:idx])
	}

	return path, version, nil
}

// Run executes the command synchronously and returns its captured output.
func (a *LocalToolRunnerAdapter) Run(workDir, bin string, args []string) (m.CommandResult, error) {
	cmd := exec.Command(bin, args...)
	if workDir != "" {
		cmd.Dir = workDir
	}

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()

	result := m.CommandResult{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, fmt.Errorf("run %s: %w", bin, err)
		}

		return result, &CommandError{
			Bin:      bin,
			Args:     args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   result.Stderr,
			Duration: result.Duration,
		}
	}

	return result, nil
}
