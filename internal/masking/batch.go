package masking

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"photoforge/internal/batch"
	"photoforge/internal/fileutil"
	"photoforge/internal/logging"
	"photoforge/internal/services"
)

const lockFileName = ".photoforge.lock"

// Masker is the external tool contract the batch dispatches through.
type Masker interface {
	CreateMask(ctx context.Context, src, dst string, threads int) error
}

// Options configures a Batch beyond its masker and concurrency plan.
type Options struct {
	// Extensions lists source image extensions considered during discovery.
	Extensions []string
	// Overwrite regenerates masks whose output already exists.
	Overwrite bool
	Logger    *slog.Logger
	// OnStart observes the discovered item count before dispatch begins.
	OnStart func(found int)
	// OnItem observes each item outcome. Called from worker goroutines,
	// serialized by the batch.
	OnItem func(ItemResult)
}

// Batch dispatches mask generation for every image under a directory.
type Batch struct {
	masker Masker
	plan   batch.Plan
	opts   Options
	logger *slog.Logger
}

// New constructs a mask batch.
func New(masker Masker, plan batch.Plan, opts Options) (*Batch, error) {
	if masker == nil {
		return nil, errors.New("masker required")
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".jpg", ".jpeg"}
	}
	return &Batch{
		masker: masker,
		plan:   plan,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "masks"),
	}, nil
}

// Run discovers images under inputDir and processes them through the worker
// pool, returning only after every dispatched item has completed. Per-item
// failures do not abort the batch; they surface in the summary and the
// returned aggregate error.
func (b *Batch) Run(ctx context.Context, inputDir string) (Summary, []ItemResult, error) {
	dir, err := filepath.Abs(inputDir)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("resolve input directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Summary{}, nil, services.Wrap(services.ErrNotFound, "masks", "discover",
				fmt.Sprintf("input directory does not exist: %s", dir), nil)
		}
		return Summary{}, nil, fmt.Errorf("inspect input directory: %w", err)
	}
	if !info.IsDir() {
		return Summary{}, nil, services.Wrap(services.ErrValidation, "masks", "discover",
			fmt.Sprintf("%s is not a directory", dir), nil)
	}

	lock := flock.New(filepath.Join(dir, lockFileName))
	held, err := lock.TryLock()
	if err != nil {
		return Summary{}, nil, fmt.Errorf("acquire batch lock: %w", err)
	}
	if !held {
		return Summary{}, nil, services.Wrap(services.ErrValidation, "masks", "lock",
			fmt.Sprintf("another mask batch is already running for %s", dir), nil)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	files, err := b.discover(dir)
	if err != nil {
		return Summary{}, nil, fmt.Errorf("discover images: %w", err)
	}

	logger := logging.WithContext(ctx, b.logger)

	summary := Summary{Found: len(files)}
	if len(files) == 0 {
		logger.Info("no images found", logging.String("input_dir", dir))
		return summary, nil, nil
	}

	logger.Info("batch starting",
		logging.String("input_dir", dir),
		logging.Int("found", summary.Found),
		logging.Int("workers", b.plan.Workers),
		logging.Int("threads_per_worker", b.plan.ThreadsPerWorker),
	)
	if b.opts.OnStart != nil {
		b.opts.OnStart(summary.Found)
	}

	results := make([]ItemResult, len(files))
	var mu sync.Mutex

	poolErr := batch.Run(ctx, b.plan.Workers, len(files), func(ctx context.Context, i int) {
		result := b.processItem(ctx, files[i])
		mu.Lock()
		results[i] = result
		switch result.State {
		case StateSkipped:
			summary.Skipped++
		case StateCompleted:
			summary.Succeeded++
		case StateFailed:
			summary.Failed++
		}
		if b.opts.OnItem != nil {
			b.opts.OnItem(result)
		}
		mu.Unlock()
	})

	logger.Info("batch finished",
		logging.Int("succeeded", summary.Succeeded),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
	)

	if poolErr != nil {
		return summary, results, poolErr
	}
	if summary.Failed > 0 {
		return summary, results, services.Wrap(services.ErrExternalTool, "masks", "batch",
			fmt.Sprintf("%d of %d images failed", summary.Failed, summary.Found), nil)
	}
	return summary, results, nil
}

func (b *Batch) discover(dir string) ([]string, error) {
	candidates, err := fileutil.DiscoverImages(dir, b.opts.Extensions, true)
	if err != nil {
		return nil, err
	}
	files := candidates[:0]
	for _, path := range candidates {
		if IsMask(path) {
			continue
		}
		files = append(files, path)
	}
	return files, nil
}

func (b *Batch) processItem(ctx context.Context, src string) ItemResult {
	result := ItemResult{Source: src, MaskPath: MaskPath(src)}
	logger := logging.WithContext(ctx, b.logger)

	if !b.opts.Overwrite && fileutil.Exists(result.MaskPath) {
		result.State = StateSkipped
		logger.Debug("mask exists, skipping", logging.String("source", src))
		return result
	}

	start := time.Now()
	err := b.masker.CreateMask(ctx, src, result.MaskPath, b.plan.ThreadsPerWorker)
	result.Duration = time.Since(start)
	if err != nil {
		result.State = StateFailed
		result.Err = err
		logger.Error("mask failed",
			logging.String("source", src),
			logging.Error(err),
		)
		return result
	}

	result.State = StateCompleted
	logger.Info("mask written",
		logging.String("source", src),
		logging.String("mask", result.MaskPath),
		logging.Duration("elapsed", result.Duration),
	)
	return result
}
