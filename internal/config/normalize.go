package config

import "strings"

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeTools()
	c.normalizeMasks()
	c.normalizeModel()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	logDir, err := ExpandPath(c.Paths.LogDir)
	if err != nil {
		return err
	}
	c.Paths.LogDir = logDir

	dbPath, err := ExpandPath(c.Paths.DatabasePath)
	if err != nil {
		return err
	}
	c.Paths.DatabasePath = dbPath
	return nil
}

func (c *Config) normalizeTools() {
	c.Tools.RealityScan = strings.TrimSpace(c.Tools.RealityScan)
	c.Tools.Magick = strings.TrimSpace(c.Tools.Magick)
	c.Tools.Blender = strings.TrimSpace(c.Tools.Blender)
	if expanded, err := ExpandPath(c.Tools.PreviewScript); err == nil {
		c.Tools.PreviewScript = expanded
	}
}

func (c *Config) normalizeMasks() {
	exts := make([]string, 0, len(c.Masks.Extensions))
	for _, ext := range c.Masks.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".jpg", ".jpeg"}
	}
	c.Masks.Extensions = exts

	if strings.TrimSpace(c.Masks.Blur) == "" {
		c.Masks.Blur = defaultBlur
	}
	if c.Masks.ThresholdPercent == 0 {
		c.Masks.ThresholdPercent = defaultThresholdPercent
	}
	if c.Masks.KeepTop == 0 {
		c.Masks.KeepTop = defaultKeepTop
	}
	if c.Masks.Connectivity == 0 {
		c.Masks.Connectivity = defaultConnectivity
	}
}

func (c *Config) normalizeModel() {
	if strings.TrimSpace(c.Model.ModelName) == "" {
		c.Model.ModelName = defaultModelName
	}
	if c.Model.TextureMaxSize == 0 {
		c.Model.TextureMaxSize = defaultTextureMaxSize
	}
	if strings.TrimSpace(c.Model.TextureFileType) == "" {
		c.Model.TextureFileType = defaultTextureFileType
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
