package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/spacedrep"
	"github.com/abhisek/cadence/internal/store"
)

var reviewCmd = &cobra.Command{
	Use:   "review <id>",
	Short: "Record a review of a study item",
	Long:  "Record how well you recalled an item (0-100). A score of 100 extends the item's success streak and spaces the next review further out.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("score") {
			return errors.New("--score is required")
		}
		score, _ := cmd.Flags().GetInt("score")
		if score < spacedrep.MinRecallScore || score > spacedrep.MaxRecallScore {
			return fmt.Errorf("score must be between %d and %d", spacedrep.MinRecallScore, spacedrep.MaxRecallScore)
		}

		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		res, err := a.RecordReview(cmd.Context(), args[0], score)
		if errors.Is(err, store.ErrItemNotFound) {
			return fmt.Errorf("no item with id %q", args[0])
		}
		if err != nil {
			return err
		}

		it := res.Item
		fmt.Printf("%s: score %d, success streak %d\n", it.Title, it.RecallScore, it.SuccessStreak)
		fmt.Printf("Next review: %s (in %s)\n", calendar.Format(it.NextReview), days(it.DaysUntilReview(a.Now())))
		if res.Outcome.UsedDeadline {
			fmt.Printf("Planned %d review(s) before %s.\n", len(res.Outcome.Plan), calendar.Format(it.TargetDate))
		}
		return nil
	},
}

func init() {
	reviewCmd.Flags().Int("score", 0, "Recall score from 0 (forgot) to 100 (perfect)")
}
