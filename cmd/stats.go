package cmd

import (
	"fmt"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/screens/report"
	"github.com/abhisek/mathdrill/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show accuracy, timing and streak statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		r, err := stats.Build(cmd.Context(), rt.deps.Analytics, rt.deps.Now())
		if err != nil {
			return fmt.Errorf("build report: %w", err)
		}
		_, err = lipgloss.Fprintln(cmd.OutOrStdout(), report.RenderReport(r, -1))
		return err
	},
}
