package blender

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"photoforge/internal/services"
)

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) error
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

// Client wraps headless Blender invocations.
type Client struct {
	binary string
	script string
	exec   Executor
}

// New constructs a Blender client around the given render script.
func New(binary, script string, options ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("blender binary required")
	}
	script = strings.TrimSpace(script)
	if script == "" {
		return nil, errors.New("blender preview script required")
	}
	client := &Client{binary: binary, script: script, exec: services.CommandExecutor{}}
	for _, opt := range options {
		opt(client)
	}
	return client, nil
}

// BuildArgs assembles the background invocation; everything after -- goes
// to the render script.
func (c *Client) BuildArgs(modelPath, outputDir string, overwrite bool) []string {
	args := []string{
		"--background",
		"--python", c.script,
		"--",
		"--input", modelPath,
	}
	if outputDir != "" {
		args = append(args, "--output", outputDir)
	}
	if overwrite {
		args = append(args, "--overwrite")
	}
	return args
}

// RenderPreview runs one preview render, blocking until Blender exits.
func (c *Client) RenderPreview(ctx context.Context, modelPath, outputDir string, overwrite bool) error {
	if err := c.exec.Run(ctx, c.binary, c.BuildArgs(modelPath, outputDir, overwrite)); err != nil {
		message := "preview render failed"
		if code := services.ExitCode(err); code >= 0 {
			message = fmt.Sprintf("preview render failed with exit code %d", code)
		}
		return services.Wrap(services.ErrExternalTool, "blender", "preview", message, err)
	}
	return nil
}
