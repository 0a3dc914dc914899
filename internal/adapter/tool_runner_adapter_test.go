package adapter

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestLocalToolRunnerAdapter_Probe_NotFound(t *testing.T) {
	adapter := NewLocalToolRunnerAdapter()

	_, _, err := adapter.Probe("definitely-not-a-real-binary-buildsync")
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("Probe() error = %v, want ErrToolNotFound", err)
	}

	if !strings.Contains(err.Error(), "PATH") {
		t.Fatalf("Probe() error %q does not mention PATH", err)
	}
}

func TestLocalToolRunnerAdapter_Probe_ResolvesVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses a shell script stub")
	}

	adapter := NewLocalToolRunnerAdapter()

	binDir := t.TempDir()
	stub := filepath.Join(binDir, "fakeflutter")
	script := "#!/bin/sh\necho 'Flutter 3.24.0 - stub'\necho 'Tools - stub second line'\n"

	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	path, version, err := adapter.Probe("fakeflutter")
	if err != nil {
		t.Fatalf("Probe() error = %v", err)
	}

	if path != stub {
		t.Fatalf("Probe() path = %q, want %q", path, stub)
	}

	if version != "Flutter 3.24.0 - stub" {
		t.Fatalf("Probe() version = %q", version)
	}
}

func TestLocalToolRunnerAdapter_Run_CapturesOutput(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses /bin/sh")
	}

	adapter := NewLocalToolRunnerAdapter()

	result, err := adapter.Run("", "sh", []string{"-c", "echo out; echo err >&2"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stdout != "out\n" {
		t.Fatalf("Run() stdout = %q", result.Stdout)
	}

	if result.Stderr != "err\n" {
		t.Fatalf("Run() stderr = %q", result.Stderr)
	}

	if result.Duration <= 0 {
		t.Fatalf("Run() duration = %v, want > 0", result.Duration)
	}
}

func TestLocalToolRunnerAdapter_Run_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses /bin/sh")
	}

	adapter := NewLocalToolRunnerAdapter()

	_, err := adapter.Run("", "sh", []string{"-c", "echo broken >&2; exit 3"})

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("Run() error = %T, want *CommandError", err)
	}

	if cmdErr.ExitCode != 3 {
		t.Fatalf("CommandError.ExitCode = %d, want 3", cmdErr.ExitCode)
	}

	if !strings.Contains(cmdErr.Stderr, "broken") {
		t.Fatalf("CommandError.Stderr = %q, want captured stderr", cmdErr.Stderr)
	}

	if !strings.Contains(cmdErr.Error(), "broken") {
		t.Fatalf("CommandError.Error() = %q, want stderr surfaced", cmdErr.Error())
	}
}

func TestLocalToolRunnerAdapter_Run_HonorsWorkDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test uses /bin/sh")
	}

	adapter := NewLocalToolRunnerAdapter()
	workDir := t.TempDir()

	result, err := adapter.Run(workDir, "sh", []string{"-c", "pwd"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	got, err := filepath.EvalSymlinks(strings.TrimSpace(result.Stdout))
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}

	want, err := filepath.EvalSymlinks(workDir)
	if err != nil {
		t.Fatalf("eval symlinks: %v", err)
	}

	if got != want {
		t.Fatalf("Run() in %q reported pwd %q", want, got)
	}
}
