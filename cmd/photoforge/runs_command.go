package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"photoforge/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var showFailed bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent batch runs from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cfg.Paths.DatabasePath == "" {
				return fmt.Errorf("run journal disabled: paths.database_path is not configured")
			}

			store, err := runlog.Open(cfg.Paths.DatabasePath)
			if err != nil {
				return fmt.Errorf("open run journal: %w", err)
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.Command,
					run.InputDir,
					strconv.Itoa(run.Workers),
					strconv.Itoa(run.Found),
					strconv.Itoa(run.Succeeded),
					strconv.Itoa(run.Skipped),
					strconv.Itoa(run.Failed),
					run.Duration().Round(time.Second).String(),
				})
			}

			headers := []string{"Started", "Command", "Input", "Workers", "Found", "OK", "Skipped", "Failed", "Duration"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, 3, 4, 5, 6, 7, 8))

			if showFailed {
				for _, run := range runs {
					if run.Failed == 0 {
						continue
					}
					failures, err := store.ListItemFailures(cmd.Context(), run.ID)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "\nFailed items for %s run at %s:\n",
						run.Command, run.StartedAt.Local().Format("2006-01-02 15:04"))
					for _, failure := range failures {
						fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", failure.Source, failure.Detail)
					}
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show (0 for all)")
	cmd.Flags().BoolVar(&showFailed, "failed", false, "Also list the failed items of each run")

	return cmd
}
