package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a drill deck",
	Long:  "Start a ten-question deck straight away. Due reviews of the chosen kind come first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := setup(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		kind, err := rt.cfg.DrillKind()
		if err != nil {
			return err
		}
		return app.Run(app.Options{Deps: rt.deps, StartKind: &kind})
	},
}

func init() {
	playCmd.Flags().String("kind", "", "Operation kind: add or multiply (default from config)")
}
