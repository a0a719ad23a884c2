package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all drill history",
	Long:  "Delete the database file, removing every deck, answer and review schedule.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if cfg.Memory {
			fmt.Fprintln(out, "Nothing to reset: the in-memory store is discarded on exit.")
			return nil
		}

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			fmt.Fprintf(out, "This deletes %s and all drill history.\nRe-run with --yes to confirm.\n", dbPath)
			return nil
		}

		removed, err := removeDatabase(dbPath)
		if err != nil {
			return err
		}
		if !removed {
			fmt.Fprintf(out, "No database at %s\n", dbPath)
			return nil
		}
		fmt.Fprintf(out, "Deleted %s\n", dbPath)
		return nil
	},
}

// removeDatabase deletes the SQLite file and its WAL side files. It reports
// whether the main file existed.
func removeDatabase(path string) (bool, error) {
	removed := true
	if err := os.Remove(path); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("remove %s: %w", path, err)
		}
		removed = false
	}
	for _, suffix := range []string{"-wal", "-shm"} {
		if err := os.Remove(path + suffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return removed, fmt.Errorf("remove %s: %w", path+suffix, err)
		}
	}
	return removed, nil
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm deletion")
}
