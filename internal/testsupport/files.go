package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates the target path with placeholder contents, making any
// parent directories first.
func WriteFile(t testing.TB, path string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// CaptureDir creates a directory populated with the named image files and
// returns its path.
func CaptureDir(t testing.TB, names ...string) string {
	t.Helper()

	dir := t.TempDir()
	for _, name := range names {
		WriteFile(t, filepath.Join(dir, name))
	}
	return dir
}

// StubBinary writes an executable shell script with the given body into dir
// and returns its path.
func StubBinary(t testing.TB, dir, name, body string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}
