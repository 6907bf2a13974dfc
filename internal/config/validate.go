package config

import (
	"errors"
	"fmt"
)

// Validate checks semantic constraints after normalization.
func (c *Config) Validate() error {
	if err := c.validateTools(); err != nil {
		return err
	}
	if err := c.validateMasks(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTools() error {
	if c.Tools.RealityScan == "" {
		return errors.New("tools.realityscan must not be empty")
	}
	if c.Tools.Magick == "" {
		return errors.New("tools.magick must not be empty")
	}
	return nil
}

func (c *Config) validateMasks() error {
	if c.Masks.Workers < 0 {
		return fmt.Errorf("masks.workers must not be negative, got %d", c.Masks.Workers)
	}
	if c.Masks.ThreadsPerWorker < 0 {
		return fmt.Errorf("masks.threads_per_worker must not be negative, got %d", c.Masks.ThreadsPerWorker)
	}
	if c.Masks.ThresholdPercent < 1 || c.Masks.ThresholdPercent > 100 {
		return fmt.Errorf("masks.threshold_percent must be between 1 and 100, got %d", c.Masks.ThresholdPercent)
	}
	if c.Masks.KeepTop < 1 {
		return fmt.Errorf("masks.keep_top must be at least 1, got %d", c.Masks.KeepTop)
	}
	if c.Masks.Connectivity != 4 && c.Masks.Connectivity != 8 {
		return fmt.Errorf("masks.connectivity must be 4 or 8, got %d", c.Masks.Connectivity)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
