package preview

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"photoforge/internal/fileutil"
	"photoforge/internal/logging"
	"photoforge/internal/services"
)

// PreviewPath derives the preview image path for a model file:
// <dir>/<stem>-preview.png.
func PreviewPath(modelPath string) string {
	ext := filepath.Ext(modelPath)
	return strings.TrimSuffix(modelPath, ext) + "-preview.png"
}

// Renderer is the external tool contract for preview generation.
type Renderer interface {
	RenderPreview(ctx context.Context, modelPath, outputDir string, overwrite bool) error
}

// Options configures a preview run.
type Options struct {
	// Overwrite re-renders even when the preview image already exists.
	Overwrite bool
	Logger    *slog.Logger
}

// Run renders a preview for the model at modelPath. An existing preview
// image skips the render unless overwrite is set.
func Run(ctx context.Context, tool Renderer, modelPath string, opts Options) error {
	if tool == nil {
		return errors.New("renderer required")
	}
	logger := logging.NewComponentLogger(opts.Logger, "preview")

	path, err := filepath.Abs(modelPath)
	if err != nil {
		return fmt.Errorf("resolve model path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "preview", "resolve",
				fmt.Sprintf("model file does not exist: %s", path), nil)
		}
		return fmt.Errorf("inspect model file: %w", err)
	}

	previewPath := PreviewPath(path)
	if !opts.Overwrite && fileutil.Exists(previewPath) {
		logger.Info("preview exists, skipping render", logging.String("preview", previewPath))
		return nil
	}

	logger.Info("render starting",
		logging.String("model", path),
		logging.String("preview", previewPath),
	)
	if err := tool.RenderPreview(ctx, path, filepath.Dir(path), opts.Overwrite); err != nil {
		return err
	}
	logger.Info("render finished", logging.String("preview", previewPath))
	return nil
}
