package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"photoforge/internal/batch"
	"photoforge/internal/masking"
	"photoforge/internal/runlog"
	"photoforge/internal/services"
	"photoforge/internal/services/magick"
)

func newMasksCommand(ctx *commandContext) *cobra.Command {
	var workersFlag int
	var threadsFlag int
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "masks <directory>",
		Short: "Generate background masks for every image under a directory",
		Long: `Generate a binary background mask next to each source image using
ImageMagick. Images whose mask already exists are skipped, so an
interrupted batch can be re-run and picks up where it left off.

Worker and thread counts derive from the machine's CPU count unless
pinned by config or flags.`,
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
			runCtx := services.WithStage(services.WithRunID(cmd.Context(), runID), "masks")

			plan := batch.DerivePlan(runtime.NumCPU(),
				firstPositive(workersFlag, cfg.Masks.Workers),
				firstPositive(threadsFlag, cfg.Masks.ThreadsPerWorker),
			)

			client, err := magick.New(cfg.Tools.Magick, magick.Pipeline{
				Blur:             cfg.Masks.Blur,
				ThresholdPercent: cfg.Masks.ThresholdPercent,
				KeepTop:          cfg.Masks.KeepTop,
				Connectivity:     cfg.Masks.Connectivity,
			})
			if err != nil {
				return fmt.Errorf("create magick client: %w", err)
			}

			advance := func() {}
			finish := func() {}

			maskBatch, err := masking.New(client, plan, masking.Options{
				Extensions: cfg.Masks.Extensions,
				Overwrite:  overwrite || cfg.Masks.Overwrite,
				Logger:     logger,
				OnStart: func(found int) {
					if pb := newProgressBar(found, "masking"); pb != nil {
						advance = func() { _ = pb.Add(1) }
						finish = func() { _ = pb.Finish() }
					}
				},
				OnItem: func(masking.ItemResult) { advance() },
			})
			if err != nil {
				return fmt.Errorf("create mask batch: %w", err)
			}

			started := time.Now()
			summary, results, runErr := maskBatch.Run(runCtx, args[0])
			finish()

			var failures []runlog.ItemFailure
			for _, result := range results {
				if result.State == masking.StateFailed && result.Err != nil {
					failures = append(failures, runlog.ItemFailure{
						Source: result.Source,
						Detail: result.Err.Error(),
					})
				}
			}

			recordRun(cmd.Context(), cfg, logger, runlog.Run{
				ID:               runID,
				Command:          "masks",
				InputDir:         args[0],
				Workers:          plan.Workers,
				ThreadsPerWorker: plan.ThreadsPerWorker,
				Found:            summary.Found,
				Succeeded:        summary.Succeeded,
				Skipped:          summary.Skipped,
				Failed:           summary.Failed,
				StartedAt:        started,
				FinishedAt:       time.Now(),
			}, failures...)

			fmt.Fprintf(cmd.OutOrStdout(),
				"Masks: %d found, %d created, %d skipped, %d failed (%s)\n",
				summary.Found, summary.Succeeded, summary.Skipped, summary.Failed,
				time.Since(started).Round(time.Millisecond),
			)
			return runErr
		},
	}

	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent magick processes (default: derived from CPU count)")
	cmd.Flags().IntVar(&threadsFlag, "threads-per-worker", 0, "Thread limit per magick process (default: derived from CPU count)")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Regenerate masks that already exist")

	return cmd
}
