package realityscan

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"photoforge/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
}

// Options carries the reconstruction settings that parameterize the
// otherwise fixed argument list.
type Options struct {
	// ModelName is the reconstruction component exported to the model file.
	ModelName string
	// TextureMaxSize bounds unwrap and texture dimensions.
	TextureMaxSize int
	// TextureFileType is the texture image format.
	TextureFileType string
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps RealityScan CLI interactions.
type Client struct {
	binary string
	opts   Options
	exec   Executor
}

// New constructs a RealityScan client.
func New(binary string, opts Options, options ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("realityscan binary required")
	}
	if strings.TrimSpace(opts.ModelName) == "" {
		opts.ModelName = "Model 1"
	}
	client := &Client{binary: binary, opts: opts, exec: services.CommandExecutor{}}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// BuildArgs assembles the fixed ordered headless argument list: add the
// capture folder, align, auto-set the reconstruction region, compute the
// high-detail model and texture, export the named component, save the
// project, quit.
func (c *Client) BuildArgs(inputDir, modelFile, projectFile string) []string {
	args := []string{
		"-headless",
		"-addFolder", inputDir,
		"-align",
		"-setReconstructionRegionAuto",
	}
	if c.opts.TextureMaxSize > 0 {
		size := strconv.Itoa(c.opts.TextureMaxSize)
		args = append(args,
			"-set", "UnwrapMaxTextureSize="+size,
			"-set", "TextureMaxSize="+size,
		)
	}
	if fileType := strings.TrimSpace(c.opts.TextureFileType); fileType != "" {
		args = append(args, "-set", "TextureFileType="+fileType)
	}
	args = append(args,
		"-calculateHighModel",
		"-calculateTexture",
		"-exportModel", c.opts.ModelName, modelFile,
		"-save", projectFile,
		"-quit",
	)
	return args
}

// Reconstruct runs RealityScan synchronously, blocking until the external
// process exits. The external tool writes the model and project artifacts.
func (c *Client) Reconstruct(ctx context.Context, inputDir, modelFile, projectFile string) error {
	args := c.BuildArgs(inputDir, modelFile, projectFile)
	if err := c.exec.Run(ctx, c.binary, args); err != nil {
		message := "reconstruction failed"
		if code := services.ExitCode(err); code >= 0 {
			message = fmt.Sprintf("reconstruction failed with exit code %d", code)
		}
		return services.Wrap(services.ErrExternalTool, "realityscan", "reconstruct", message, err)
	}
	return nil
}
