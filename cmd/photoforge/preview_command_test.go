package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPreviewCommandRequiresConfiguration(t *testing.T) {
	base := t.TempDir()
	// No preview_script configured.
	cfgPath := writeTestConfig(t, base, "RealityScan", "magick")

	model := filepath.Join(base, "Statue.glb")
	if err := os.WriteFile(model, []byte("glb"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	_, err := runCommand(t, "--config", cfgPath, "preview", model)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.Contains(err.Error(), "preview_script") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPreviewCommandInvokesBlender(t *testing.T) {
	base := t.TempDir()
	marker := filepath.Join(base, "invoked")
	blender := stubTool(t, base, "blender", fmt.Sprintf("touch %q", marker))
	script := filepath.Join(base, "preview.py")
	if err := os.WriteFile(script, []byte("# render script\n"), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}

	cfgPath := filepath.Join(base, "photoforge.toml")
	contents := fmt.Sprintf(`[paths]
log_dir = %q

[tools]
realityscan = "RealityScan"
magick = "magick"
blender = %q
preview_script = %q

[logging]
format = "json"
level = "error"
`, filepath.Join(base, "logs"), blender, script)
	if err := os.WriteFile(cfgPath, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	model := filepath.Join(base, "Statue.glb")
	if err := os.WriteFile(model, []byte("glb"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := runCommand(t, "--config", cfgPath, "preview", model)
	if err != nil {
		t.Fatalf("preview command: %v\n%s", err, out)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Fatalf("expected blender invoked: %v", err)
	}
}
