package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal", "runs.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestRecordAndListRuns(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		run := Run{
			ID:               uuid.NewString(),
			Command:          "masks",
			InputDir:         "/captures/statue",
			Workers:          4,
			ThreadsPerWorker: 2,
			Found:            10,
			Succeeded:        9,
			Skipped:          1,
			StartedAt:        base.Add(time.Duration(i) * time.Hour),
			FinishedAt:       base.Add(time.Duration(i)*time.Hour + 5*time.Minute),
		}
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("record run %d: %v", i, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	if !runs[0].StartedAt.After(runs[1].StartedAt) {
		t.Fatal("expected newest run first")
	}
	if runs[0].Duration() != 5*time.Minute {
		t.Fatalf("unexpected duration: %s", runs[0].Duration())
	}

	limited, err := store.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected limit applied, got %d runs", len(limited))
	}
}

func TestRecordAndListItemFailures(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	run := Run{
		ID:         uuid.NewString(),
		Command:    "masks",
		InputDir:   "/captures/statue",
		Found:      3,
		Failed:     2,
		StartedAt:  time.Now(),
		FinishedAt: time.Now(),
	}
	if err := store.RecordRun(ctx, run); err != nil {
		t.Fatalf("record run: %v", err)
	}

	failures := []ItemFailure{
		{Source: "/captures/statue/b.jpg", Detail: "exit code 1"},
		{Source: "/captures/statue/a.jpg", Detail: "corrupt image"},
	}
	if err := store.RecordItemFailures(ctx, run.ID, failures); err != nil {
		t.Fatalf("record failures: %v", err)
	}

	listed, err := store.ListItemFailures(ctx, run.ID)
	if err != nil {
		t.Fatalf("list failures: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(listed))
	}
	if listed[0].Source != "/captures/statue/a.jpg" {
		t.Fatalf("expected source-ordered failures, got %+v", listed)
	}
	if listed[0].RunID != run.ID {
		t.Fatalf("expected run id on failure, got %q", listed[0].RunID)
	}

	// Recording no failures is a no-op, not an error.
	if err := store.RecordItemFailures(ctx, run.ID, nil); err != nil {
		t.Fatalf("record empty failures: %v", err)
	}
}

func TestListRunsEmpty(t *testing.T) {
	store := openTestStore(t)
	runs, err := store.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no runs, got %d", len(runs))
	}
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "runs.db")
	store, err := Open(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer store.Close()
	if store.Path() != path {
		t.Fatalf("unexpected path: %s", store.Path())
	}
}
