package blender

import (
	"context"
	"errors"
	"strings"
	"testing"

	"photoforge/internal/services"
)

type fakeExecutor struct {
	binary string
	args   []string
	err    error
}

func (f *fakeExecutor) Run(ctx context.Context, binary string, args []string) error {
	f.binary = binary
	f.args = args
	return f.err
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", "render.py"); err == nil {
		t.Fatal("expected error for empty binary")
	}
	if _, err := New("blender", " "); err == nil {
		t.Fatal("expected error for empty script")
	}
}

func TestBuildArgs(t *testing.T) {
	client, err := New("blender", "/opt/photoforge/preview.py")
	if err != nil {
		t.Fatalf("construct client: %v", err)
	}

	joined := strings.Join(client.BuildArgs("/m/scan.glb", "/m/previews", true), " ")
	want := "--background --python /opt/photoforge/preview.py -- --input /m/scan.glb --output /m/previews --overwrite"
	if joined != want {
		t.Fatalf("expected %q, got %q", want, joined)
	}

	joined = strings.Join(client.BuildArgs("/m/scan.glb", "", false), " ")
	if strings.Contains(joined, "--output") || strings.Contains(joined, "--overwrite") {
		t.Fatalf("expected optional flags omitted, got %q", joined)
	}
}

func TestRenderPreviewWrapsFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("segfault")}
	client, err := New("blender", "preview.py", WithExecutor(exec))
	if err != nil {
		t.Fatalf("construct client: %v", err)
	}
	renderErr := client.RenderPreview(context.Background(), "/m/scan.glb", "", false)
	if !errors.Is(renderErr, services.ErrExternalTool) {
		t.Fatalf("expected ErrExternalTool, got %v", renderErr)
	}
	if exec.binary != "blender" {
		t.Fatalf("unexpected binary %q", exec.binary)
	}
}
