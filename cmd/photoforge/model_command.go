package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photoforge/internal/reconstruct"
	"photoforge/internal/runlog"
	"photoforge/internal/services"
	"photoforge/internal/services/realityscan"
)

func newModelCommand(ctx *commandContext) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "model <directory>",
		Short: "Build a textured 3D model from a directory of images",
		Long: `Run a full RealityScan reconstruction over a capture directory. The
model and project file land in a models/ subdirectory, named after the
directory itself. An existing project file skips the build unless
--overwrite is set.`,
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

			runID := uuid.NewString()
			runCtx := services.WithStage(services.WithRunID(cmd.Context(), runID), "model")

			client, err := realityscan.New(cfg.Tools.RealityScan, realityscan.Options{
				ModelName:       cfg.Model.ModelName,
				TextureMaxSize:  cfg.Model.TextureMaxSize,
				TextureFileType: cfg.Model.TextureFileType,
			})
			if err != nil {
				return fmt.Errorf("create realityscan client: %w", err)
			}

			builder, err := reconstruct.New(client, reconstruct.Options{
				Extensions: cfg.Masks.Extensions,
				Overwrite:  overwrite,
				Logger:     logger,
			})
			if err != nil {
				return fmt.Errorf("create builder: %w", err)
			}

			started := time.Now()
			buildErr := builder.Build(runCtx, args[0])

			run := runlog.Run{
				ID:        runID,
				Command:   "model",
				InputDir:  args[0],
				Workers:   1,
				StartedAt: started,
			}
			if buildErr == nil {
				run.Succeeded = 1
			} else {
				run.Failed = 1
			}
			recordRun(cmd.Context(), cfg, logger, run)

			if buildErr != nil {
				return buildErr
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Model build finished in %s\n",
				time.Since(started).Round(time.Second))
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Rebuild even when the project file exists")

	return cmd
}
