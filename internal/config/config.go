package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	LogDir       string `toml:"log_dir"`
	DatabasePath string `toml:"database_path"`
}

// Tools contains the external binaries photoforge shells out to.
type Tools struct {
	RealityScan   string `toml:"realityscan"`
	Magick        string `toml:"magick"`
	Blender       string `toml:"blender"`
	PreviewScript string `toml:"preview_script"`
}

// Masks contains configuration for the mask batch pipeline.
type Masks struct {
	// Extensions lists the source image extensions considered during discovery.
	Extensions []string `toml:"extensions"`
	// Workers caps concurrent magick invocations; 0 derives from CPU count.
	Workers int `toml:"workers"`
	// ThreadsPerWorker limits each magick invocation's internal threads;
	// 0 derives from CPU count.
	ThreadsPerWorker int `toml:"threads_per_worker"`
	// Blur is the magick blur geometry applied before thresholding.
	Blur string `toml:"blur"`
	// ThresholdPercent is the binarization threshold (1-100).
	ThresholdPercent int `toml:"threshold_percent"`
	// KeepTop is how many connected components survive filtering.
	KeepTop int `toml:"keep_top"`
	// Connectivity is the component labeling connectivity (4 or 8).
	Connectivity int `toml:"connectivity"`
	// Overwrite regenerates masks whose output already exists.
	Overwrite bool `toml:"overwrite"`
}

// Model contains configuration for RealityScan reconstruction.
type Model struct {
	// ModelName is the reconstruction component exported to the .glb file.
	ModelName string `toml:"model_name"`
	// TextureMaxSize bounds the unwrap and texture dimensions.
	TextureMaxSize int `toml:"texture_max_size"`
	// TextureFileType is the texture image format RealityScan writes.
	TextureFileType string `toml:"texture_file_type"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for photoforge.
type Config struct {
	Paths   Paths   `toml:"paths"`
	Tools   Tools   `toml:"tools"`
	Masks   Masks   `toml:"masks"`
	Model   Model   `toml:"model"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized. The second return is
// the resolved path, the third reports whether a file was found there.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := ExpandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	projectPath, err := filepath.Abs("photoforge.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories the toolkit writes into.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Paths.LogDir}
	if c.Paths.DatabasePath != "" {
		dirs = append(dirs, filepath.Dir(c.Paths.DatabasePath))
	}
	for _, dir := range dirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ExpandPath resolves a leading ~ against the current user's home directory
// and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	trimmed := strings.TrimSpace(pathValue)
	if trimmed == "" {
		return "", nil
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if trimmed == "~" {
			return home, nil
		}
		trimmed = filepath.Join(home, trimmed[2:])
	}
	return filepath.Abs(trimmed)
}
