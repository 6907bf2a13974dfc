package masking

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"photoforge/internal/batch"
	"photoforge/internal/services"
	"photoforge/internal/testsupport"
)

type fakeMasker struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]error
	write bool
}

func (f *fakeMasker) CreateMask(ctx context.Context, src, dst string, threads int) error {
	f.mu.Lock()
	f.calls = append(f.calls, src)
	f.mu.Unlock()
	if err, ok := f.fail[filepath.Base(src)]; ok {
		return err
	}
	if f.write {
		return os.WriteFile(dst, []byte("mask"), 0o644)
	}
	return nil
}

func (f *fakeMasker) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newBatch(t *testing.T, masker Masker, opts Options) *Batch {
	t.Helper()
	b, err := New(masker, batch.Plan{Workers: 2, ThreadsPerWorker: 1}, opts)
	if err != nil {
		t.Fatalf("construct batch: %v", err)
	}
	return b
}

func TestMaskPathDerivation(t *testing.T) {
	src := filepath.Join("foo", "bar.jpg")
	want := filepath.Join("foo", "bar.mask.png")
	if got := MaskPath(src); got != want {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if got := MaskPath("shot.JPEG"); got != "shot.mask.png" {
		t.Fatalf("expected shot.mask.png, got %s", got)
	}
}

func TestRunSkipsExistingMasks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "b.jpg"))
	writeFile(t, filepath.Join(dir, "a.mask.png"))

	masker := &fakeMasker{write: true}
	b := newBatch(t, masker, Options{})

	summary, results, err := b.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Found != 2 || summary.Skipped != 1 || summary.Succeeded != 1 || summary.Failed != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if masker.callCount() != 1 {
		t.Fatalf("expected one invocation, got %d", masker.callCount())
	}
	if masker.calls[0] != filepath.Join(dir, "b.jpg") {
		t.Fatalf("expected only b.jpg dispatched, got %v", masker.calls)
	}
	for _, r := range results {
		if filepath.Base(r.Source) == "a.jpg" && r.State != StateSkipped {
			t.Fatalf("expected a.jpg skipped, got %s", r.State)
		}
	}
}

func TestRunOverwriteRedispatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "a.mask.png"))

	masker := &fakeMasker{write: true}
	b := newBatch(t, masker, Options{Overwrite: true})

	summary, _, err := b.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Succeeded != 1 || summary.Skipped != 0 {
		t.Fatalf("expected overwrite to dispatch, got %+v", summary)
	}
}

func TestRunEmptyDirectorySucceeds(t *testing.T) {
	dir := t.TempDir()
	masker := &fakeMasker{}
	b := newBatch(t, masker, Options{})

	summary, results, err := b.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("expected success for empty directory, got %v", err)
	}
	if summary.Found != 0 || len(results) != 0 {
		t.Fatalf("expected zero work, got %+v", summary)
	}
	if masker.callCount() != 0 {
		t.Fatal("no process should be spawned for an empty directory")
	}
}

func TestRunMissingDirectory(t *testing.T) {
	b := newBatch(t, &fakeMasker{}, Options{})
	_, _, err := b.Run(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRunIsolatesItemFailures(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(dir, "b.jpg"))
	writeFile(t, filepath.Join(dir, "c.jpg"))

	masker := &fakeMasker{
		write: true,
		fail:  map[string]error{"b.jpg": errors.New("corrupt image")},
	}
	b := newBatch(t, masker, Options{})

	summary, results, err := b.Run(context.Background(), dir)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected aggregate ErrExternalTool, got %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 2 {
		t.Fatalf("expected failure isolation, got %+v", summary)
	}
	if masker.callCount() != 3 {
		t.Fatalf("expected all items dispatched despite failure, got %d", masker.callCount())
	}
	var failed int
	for _, r := range results {
		if r.State == StateFailed {
			failed++
			if r.Err == nil {
				t.Fatal("failed result should carry its error")
			}
		}
	}
	if failed != 1 {
		t.Fatalf("expected one failed result, got %d", failed)
	}
}

func TestRunRecursesAndIgnoresMaskOutputs(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "session1")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "a.jpg"))
	writeFile(t, filepath.Join(sub, "b.jpg"))
	writeFile(t, filepath.Join(dir, "notes.txt"))

	masker := &fakeMasker{write: true}
	// Source extension .png would otherwise re-discover mask outputs on a
	// second run.
	b := newBatch(t, masker, Options{Extensions: []string{".jpg", ".png"}})

	summary, _, err := b.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Found != 2 || summary.Succeeded != 2 {
		t.Fatalf("unexpected summary: %+v", summary)
	}

	summary, _, err = b.Run(context.Background(), dir)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Found != 2 || summary.Skipped != 2 || summary.Succeeded != 0 {
		t.Fatalf("expected fully skipped second run, got %+v", summary)
	}
}

func TestRunReportsCallbacks(t *testing.T) {
	dir := testsupport.CaptureDir(t, "a.jpg", "b.jpg")

	var found int
	var outcomes []ItemState
	b := newBatch(t, &fakeMasker{write: true}, Options{
		OnStart: func(n int) { found = n },
		OnItem:  func(r ItemResult) { outcomes = append(outcomes, r.State) },
	})

	if _, _, err := b.Run(context.Background(), dir); err != nil {
		t.Fatalf("run: %v", err)
	}
	if found != 2 {
		t.Fatalf("expected OnStart with 2, got %d", found)
	}
	if len(outcomes) != 2 {
		t.Fatalf("expected 2 OnItem callbacks, got %d", len(outcomes))
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
