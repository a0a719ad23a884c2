package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "mathdrill",
	Short: "Arithmetic drills with spaced repetition",
	Long: "Mathdrill deals ten-question decks of addition or multiplication problems, " +
		"grades each answer by speed, and brings missed problems back on an SM-2 schedule.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()
		return app.Run(app.Options{Deps: rt.deps})
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("db", "", "Path to SQLite database file (overrides MATHDRILL_DB env var)")
	pf.String("db-path", "", "Alias for --db")
	pf.Bool("memory", false, "Keep all data in memory and discard it on exit")
	pf.Bool("test", false, "Alias for --memory")
	pf.String("override-date", "", "Pretend today is this date (YYYY-MM-DD)")
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/mathdrill/config.yaml)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	_ = pf.MarkHidden("db-path")
	_ = pf.MarkHidden("test")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}
