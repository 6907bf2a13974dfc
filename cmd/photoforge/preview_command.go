package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"photoforge/internal/preview"
	"photoforge/internal/services"
	"photoforge/internal/services/blender"
)

func newPreviewCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "preview <model-file>",
		Short: "Render a preview image for a built model",
		Long: `Render a turntable preview image next to a model file using a
headless Blender script. Requires tools.blender and
tools.preview_script in the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			if cfg.Tools.Blender == "" || cfg.Tools.PreviewScript == "" {
				return services.Wrap(services.ErrConfiguration, "preview", "setup",
					"tools.blender and tools.preview_script must be configured", nil)
			}

			client, err := blender.New(cfg.Tools.Blender, cfg.Tools.PreviewScript)
			if err != nil {
				return fmt.Errorf("create blender client: %w", err)
			}

			return preview.Run(cmd.Context(), client, args[0], preview.Options{
				Overwrite: overwrite,
				Logger:    logger,
			})
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Re-render even when the preview image exists")

	return cmd
}
