package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "buildsync.dev/pkg/buildsync/internal/model"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()

	if err := os.MkdirAll(path, 0o750); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "main.dart"), "void main() {}\n")

	nestedDir := filepath.Join(root, "models")
	mustMkdir(t, nestedDir)
	child := filepath.Join(nestedDir, "user.dart")
	writeTestFile(t, child, "class User {}\n")

	var visited []string
	err := adapter.Walk(m.Path(root), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk() error = %v", err)
	}

	for _, expected := range []string{filepath.Join(root, "main.dart"), child} {
		if !containsPath(visited, expected) {
			t.Fatalf("Walk() did not visit %s", expected)
		}
	}
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "user.dart")
	content := "@HiveType(typeId: 0)\nclass User {}\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	if string(got) != content {
		t.Fatalf("ReadFile() = %q, want %q", string(got), content)
	}
}

func TestLocalSourceFSAdapter_WriteFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "build.yaml")
	content := []byte("targets:\n")

	if err := adapter.WriteFile(m.Path(path), content, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	if string(got) != string(content) {
		t.Fatalf("WriteFile() wrote %q, want %q", string(got), string(content))
	}
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()

	info, err := adapter.FileInfo(m.Path(root))
	if err != nil {
		t.Fatalf("FileInfo() error = %v", err)
	}

	if !info.IsDir() {
		t.Fatalf("FileInfo() on a directory reported IsDir() = false")
	}

	if _, err := adapter.FileInfo(m.Path(filepath.Join(root, "missing"))); err == nil {
		t.Fatalf("FileInfo() on a missing path did not error")
	}
}

func TestLocalSourceFSAdapter_JoinPath(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	got := adapter.JoinPath("a", "b", "c.dart")
	want := m.Path(filepath.Join("a", "b", "c.dart"))

	if got != want {
		t.Fatalf("JoinPath() = %q, want %q", got, want)
	}
}
