package deps

import (
	"os"
	"path/filepath"
	"testing"

	"photoforge/internal/config"
	"photoforge/internal/testsupport"
)

func TestCheck(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Unconfigured", Command: "  ", Optional: true},
	}
	results := Check(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}

	if !results[0].Available || results[0].Path != present {
		t.Fatalf("expected first requirement available at %s, got %#v", present, results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary with detail, got %#v", results[1])
	}
	if results[2].Available || results[2].Detail != "command not configured" {
		t.Fatalf("expected unconfigured detail, got %#v", results[2])
	}
}

func TestMissingRequired(t *testing.T) {
	statuses := []Status{
		{Requirement: Requirement{Name: "A"}, Available: true},
		{Requirement: Requirement{Name: "B"}, Available: false},
		{Requirement: Requirement{Name: "C", Optional: true}, Available: false},
	}
	missing := MissingRequired(statuses)
	if len(missing) != 1 || missing[0] != "B" {
		t.Fatalf("expected only B missing, got %v", missing)
	}
}

func TestCheckWithStubbedBinaries(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())

	statuses := Check(ForConfig(cfg))
	if missing := MissingRequired(statuses); len(missing) != 0 {
		t.Fatalf("expected all required binaries stubbed, missing: %v", missing)
	}
}

func TestForConfig(t *testing.T) {
	cfg := config.Default()
	reqs := ForConfig(&cfg)
	if len(reqs) != 3 {
		t.Fatalf("expected 3 requirements, got %d", len(reqs))
	}
	for _, req := range reqs {
		if req.Name == "Blender" && !req.Optional {
			t.Fatal("blender should be optional")
		}
		if req.Name != "Blender" && req.Optional {
			t.Fatalf("%s should be required", req.Name)
		}
	}
}
