package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathdrill/internal/spacedrep"
	"github.com/abhisek/mathdrill/internal/timefmt"
)

// previewGrades are the outcomes the schedule preview shows: a miss and the
// three passing grades the drill can award.
var previewGrades = []spacedrep.Grade{
	spacedrep.GradeBlackout,
	spacedrep.GradeHard,
	spacedrep.GradeGood,
	spacedrep.GradePerfect,
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Preview the next SM-2 review for each grade",
	Long: "Given a review state, print when the item would come back and its new " +
		"state for a miss and for each passing grade.",
	RunE: func(cmd *cobra.Command, args []string) error {
		reps, _ := cmd.Flags().GetInt("reps")
		interval, _ := cmd.Flags().GetInt("interval")
		ease, _ := cmd.Flags().GetFloat64("ease")
		if reps < 0 || interval < 0 {
			return fmt.Errorf("reps and interval must not be negative")
		}
		if ease < spacedrep.MinEaseFactor {
			return fmt.Errorf("ease must be at least %.1f", spacedrep.MinEaseFactor)
		}

		clk, err := commandClock(cmd)
		if err != nil {
			return err
		}
		cur := spacedrep.State{Repetitions: reps, Interval: interval, EaseFactor: ease}
		return writeSchedulePreview(cmd.OutOrStdout(), cur, clk.Now())
	},
}

// writeSchedulePreview prints one line per preview grade.
func writeSchedulePreview(w io.Writer, cur spacedrep.State, now time.Time) error {
	for _, g := range previewGrades {
		next, err := spacedrep.Review(cur, g, now)
		if err != nil {
			return fmt.Errorf("review grade %d: %w", g, err)
		}
		_, err = fmt.Fprintf(w, "Grade: %d (%s) | Next review: %s | Reps: %d | Interval: %d | Ease: %.2f\n",
			int(g), g, timefmt.Until(now, next.NextReviewDate),
			next.Repetitions, next.Interval, next.EaseFactor)
		if err != nil {
			return err
		}
	}
	return nil
}

func init() {
	f := scheduleCmd.Flags()
	f.Int("reps", 0, "Consecutive successful reviews so far")
	f.Int("interval", 0, "Current interval in days")
	f.Float64("ease", spacedrep.DefaultEaseFactor, "Current ease factor")
}
