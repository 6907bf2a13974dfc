package reconstruct

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"photoforge/internal/fileutil"
	"photoforge/internal/logging"
	"photoforge/internal/services"
)

// Job captures the derived paths for one model build.
type Job struct {
	InputDir    string
	OutputDir   string
	ProjectName string
	ModelFile   string
	ProjectFile string
}

// NewJob resolves inputDir and derives the build artifacts: a models/
// subdirectory holding <name>.glb and <name>.rsproj where <name> is the
// input directory's base name.
func NewJob(inputDir string) (Job, error) {
	dir, err := filepath.Abs(inputDir)
	if err != nil {
		return Job{}, fmt.Errorf("resolve input directory: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Job{}, services.Wrap(services.ErrNotFound, "model", "resolve",
				fmt.Sprintf("input directory does not exist: %s", dir), nil)
		}
		return Job{}, fmt.Errorf("inspect input directory: %w", err)
	}
	if !info.IsDir() {
		return Job{}, services.Wrap(services.ErrValidation, "model", "resolve",
			fmt.Sprintf("%s is not a directory", dir), nil)
	}

	name := filepath.Base(dir)
	outputDir := filepath.Join(dir, "models")
	return Job{
		InputDir:    dir,
		OutputDir:   outputDir,
		ProjectName: name,
		ModelFile:   filepath.Join(outputDir, name+".glb"),
		ProjectFile: filepath.Join(outputDir, name+".rsproj"),
	}, nil
}

// Reconstructor is the external tool contract the builder drives.
type Reconstructor interface {
	Reconstruct(ctx context.Context, inputDir, modelFile, projectFile string) error
}

// Options configures a Builder.
type Options struct {
	// Extensions lists the image extensions that must be present for a
	// build to proceed.
	Extensions []string
	// Overwrite rebuilds even when the project file already exists.
	Overwrite bool
	Logger    *slog.Logger
}

// Builder runs model builds.
type Builder struct {
	tool   Reconstructor
	opts   Options
	logger *slog.Logger
}

// New constructs a Builder.
func New(tool Reconstructor, opts Options) (*Builder, error) {
	if tool == nil {
		return nil, errors.New("reconstructor required")
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = []string{".jpg", ".jpeg"}
	}
	return &Builder{
		tool:   tool,
		opts:   opts,
		logger: logging.NewComponentLogger(opts.Logger, "model"),
	}, nil
}

// Build derives the job for inputDir and blocks on one reconstruction
// invocation. A directory with no matching images is a successful no-op;
// an existing project file skips the build unless overwrite is set.
func (b *Builder) Build(ctx context.Context, inputDir string) error {
	job, err := NewJob(inputDir)
	if err != nil {
		return err
	}

	logger := logging.WithContext(ctx, b.logger)

	images, err := fileutil.DiscoverImages(job.InputDir, b.opts.Extensions, false)
	if err != nil {
		return fmt.Errorf("list images: %w", err)
	}
	if len(images) == 0 {
		logger.Info("no images found, nothing to build", logging.String("input_dir", job.InputDir))
		return nil
	}

	if !b.opts.Overwrite && fileutil.Exists(job.ProjectFile) {
		logger.Info("project exists, skipping build",
			logging.String("project_file", job.ProjectFile),
		)
		return nil
	}

	if err := fileutil.EnsureDir(job.OutputDir); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	logger.Info("reconstruction starting",
		logging.String("input_dir", job.InputDir),
		logging.Int("images", len(images)),
		logging.String("model_file", job.ModelFile),
	)

	if err := b.tool.Reconstruct(ctx, job.InputDir, job.ModelFile, job.ProjectFile); err != nil {
		return err
	}

	logger.Info("reconstruction finished",
		logging.String("model_file", job.ModelFile),
		logging.String("project_file", job.ProjectFile),
	)
	return nil
}
