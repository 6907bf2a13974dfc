package reconstruct

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"photoforge/internal/services"
)

type fakeReconstructor struct {
	calls       int
	inputDir    string
	modelFile   string
	projectFile string
	err         error
}

func (f *fakeReconstructor) Reconstruct(ctx context.Context, inputDir, modelFile, projectFile string) error {
	f.calls++
	f.inputDir = inputDir
	f.modelFile = modelFile
	f.projectFile = projectFile
	return f.err
}

func TestNewJobPathDerivation(t *testing.T) {
	base := t.TempDir()
	input := filepath.Join(base, "ProjectX")
	if err := os.MkdirAll(input, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	job, err := NewJob(input)
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	if job.ProjectName != "ProjectX" {
		t.Fatalf("expected project name ProjectX, got %s", job.ProjectName)
	}
	if job.ModelFile != filepath.Join(input, "models", "ProjectX.glb") {
		t.Fatalf("unexpected model file: %s", job.ModelFile)
	}
	if job.ProjectFile != filepath.Join(input, "models", "ProjectX.rsproj") {
		t.Fatalf("unexpected project file: %s", job.ProjectFile)
	}
}

func TestNewJobMissingDirectory(t *testing.T) {
	_, err := NewJob(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestNewJobRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file.jpg")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewJob(path); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestBuildInvokesTool(t *testing.T) {
	input := filepath.Join(t.TempDir(), "Statue")
	if err := os.MkdirAll(input, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(input, "shot1.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tool := &fakeReconstructor{}
	builder, err := New(tool, Options{})
	if err != nil {
		t.Fatalf("construct builder: %v", err)
	}
	if err := builder.Build(context.Background(), input); err != nil {
		t.Fatalf("build: %v", err)
	}
	if tool.calls != 1 {
		t.Fatalf("expected one invocation, got %d", tool.calls)
	}
	if tool.modelFile != filepath.Join(input, "models", "Statue.glb") {
		t.Fatalf("unexpected model file: %s", tool.modelFile)
	}

	// The builder prepares the output directory before invoking the tool.
	info, err := os.Stat(filepath.Join(input, "models"))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected models directory: %v", err)
	}
}

func TestBuildEmptyDirectoryIsNoOp(t *testing.T) {
	input := t.TempDir()
	tool := &fakeReconstructor{}
	builder, err := New(tool, Options{})
	if err != nil {
		t.Fatalf("construct builder: %v", err)
	}
	if err := builder.Build(context.Background(), input); err != nil {
		t.Fatalf("expected success for empty directory, got %v", err)
	}
	if tool.calls != 0 {
		t.Fatal("no invocation expected for empty directory")
	}
}

func TestBuildSkipsExistingProject(t *testing.T) {
	input := filepath.Join(t.TempDir(), "Statue")
	if err := os.MkdirAll(filepath.Join(input, "models"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, f := range []string{filepath.Join(input, "shot1.jpg"), filepath.Join(input, "models", "Statue.rsproj")} {
		if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", f, err)
		}
	}

	tool := &fakeReconstructor{}
	builder, err := New(tool, Options{})
	if err != nil {
		t.Fatalf("construct builder: %v", err)
	}
	if err := builder.Build(context.Background(), input); err != nil {
		t.Fatalf("build: %v", err)
	}
	if tool.calls != 0 {
		t.Fatal("expected skip when project exists")
	}

	overwriting, err := New(tool, Options{Overwrite: true})
	if err != nil {
		t.Fatalf("construct builder: %v", err)
	}
	if err := overwriting.Build(context.Background(), input); err != nil {
		t.Fatalf("build with overwrite: %v", err)
	}
	if tool.calls != 1 {
		t.Fatal("expected overwrite to rebuild")
	}
}

func TestBuildPropagatesToolError(t *testing.T) {
	input := filepath.Join(t.TempDir(), "Statue")
	if err := os.MkdirAll(input, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(input, "shot1.jpg"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	toolErr := services.Wrap(services.ErrExternalTool, "realityscan", "reconstruct", "exit code 2", nil)
	builder, err := New(&fakeReconstructor{err: toolErr}, Options{})
	if err != nil {
		t.Fatalf("construct builder: %v", err)
	}
	if buildErr := builder.Build(context.Background(), input); !errors.Is(buildErr, services.ErrExternalTool) {
		t.Fatalf("expected tool error propagated, got %v", buildErr)
	}
}
