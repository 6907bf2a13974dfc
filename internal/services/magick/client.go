package magick

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

// Pipeline carries the tunable parameters of the otherwise fixed mask
// transformation pipeline.
type Pipeline struct {
	// Blur is the blur geometry (radius x sigma) applied before thresholding.
	Blur string
	// ThresholdPercent is the binarization threshold (1-100).
	ThresholdPercent int
	// KeepTop is how many connected components survive filtering.
	KeepTop int
	// Connectivity is the component labeling connectivity (4 or 8).
	Connectivity int
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

// Client wraps ImageMagick CLI interactions.
type Client struct {
	binary   string
	pipeline Pipeline
	exec     Executor
}

// New constructs an ImageMagick client.
func New(binary string, pipeline Pipeline, options ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("magick binary required")
	}
	if strings.TrimSpace(pipeline.Blur) == "" {
		pipeline.Blur = "0x4"
	}
	if pipeline.ThresholdPercent < 1 {
		pipeline.ThresholdPercent = 4
	}
	if pipeline.KeepTop < 1 {
		pipeline.KeepTop = 2
	}
	if pipeline.Connectivity != 4 {
		pipeline.Connectivity = 8
	}
	client := &Client{binary: binary, pipeline: pipeline, exec: services.CommandExecutor{}}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// BuildArgs assembles the mask pipeline invocation for one source image.
// The thread limit leads the argument list so it applies to the whole
// pipeline.
func (c *Client) BuildArgs(src, dst string, threads int) []string {
	if threads < 1 {
		threads = 1
	}
	return []string{
		"-limit", "thread", strconv.Itoa(threads),
		src,
		"-colorspace", "Gray",
		"-blur", c.pipeline.Blur,
		"-auto-level",
		"-threshold", strconv.Itoa(c.pipeline.ThresholdPercent) + "%",
		"-define", "connected-components:keep-top=" + strconv.Itoa(c.pipeline.KeepTop),
		"-connected-components", strconv.Itoa(c.pipeline.Connectivity),
		"-type", "bilevel",
		dst,
	}
}

// CreateMask runs one masking invocation, blocking until the external
// process exits and dst has been written.
func (c *Client) CreateMask(ctx context.Context, src, dst string, threads int) error {
	if err := c.exec.Run(ctx, c.binary, c.BuildArgs(src, dst, threads)); err != nil {
		message := "mask generation failed"
		if code := services.ExitCode(err); code >= 0 {
			message = fmt.Sprintf("mask generation failed with exit code %d", code)
		}
		return services.Wrap(services.ErrExternalTool, "magick", "mask", message, err)
	}
	return nil
}
