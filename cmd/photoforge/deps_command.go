package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"photoforge/internal/deps"
)

func newDepsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "deps",
		Short: "Check that required external tools are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			statuses := deps.Check(deps.ForConfig(cfg))

			rows := make([][]string, 0, len(statuses))
			for _, status := range statuses {
				state := "missing"
				detail := status.Detail
				if status.Available {
					state = "ok"
					detail = status.Path
				}
				if status.Optional && !status.Available {
					state = "missing (optional)"
				}
				rows = append(rows, []string{status.Name, state, detail, status.Description})
			}

			headers := []string{"Tool", "Status", "Location", "Used by"}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows))

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
			}
			return nil
		},
	}
}
