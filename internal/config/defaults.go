package config

const (
	defaultConfigPath       = "~/.config/photoforge/config.toml"
	defaultLogDir           = "~/.local/share/photoforge/logs"
	defaultDatabasePath     = "~/.local/share/photoforge/photoforge.db"
	defaultRealityScan      = "RealityScan"
	defaultMagick           = "magick"
	defaultBlender          = "blender"
	defaultBlur             = "0x4"
	defaultThresholdPercent = 4
	defaultKeepTop          = 2
	defaultConnectivity     = 8
	defaultModelName        = "Model 1"
	defaultTextureMaxSize   = 4096
	defaultTextureFileType  = "png"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir:       defaultLogDir,
			DatabasePath: defaultDatabasePath,
		},
		Tools: Tools{
			RealityScan: defaultRealityScan,
			Magick:      defaultMagick,
			Blender:     defaultBlender,
		},
		Masks: Masks{
			Extensions:       []string{".jpg", ".jpeg"},
			Blur:             defaultBlur,
			ThresholdPercent: defaultThresholdPercent,
			KeepTop:          defaultKeepTop,
			Connectivity:     defaultConnectivity,
		},
		Model: Model{
			ModelName:       defaultModelName,
			TextureMaxSize:  defaultTextureMaxSize,
			TextureFileType: defaultTextureFileType,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
