package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"photoforge/internal/config"
	"photoforge/internal/logging"
	"photoforge/internal/runlog"
)

func firstPositive(values ...int) int {
	for _, v := range values {
		if v > 0 {
			return v
		}
	}
	return 0
}

// recordRun journals a completed run best-effort. The journal never fails
// the command that produced the run.
func recordRun(ctx context.Context, cfg *config.Config, logger *slog.Logger, run runlog.Run, failures ...runlog.ItemFailure) {
	if cfg.Paths.DatabasePath == "" {
		return
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}

	store, err := runlog.Open(cfg.Paths.DatabasePath)
	if err != nil {
		logger.Warn("run journal unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	if err := store.RecordRun(ctx, run); err != nil {
		logger.Warn("record run failed", logging.Error(err))
		return
	}
	if err := store.RecordItemFailures(ctx, run.ID, failures); err != nil {
		logger.Warn("record item failures failed", logging.Error(err))
	}
}
