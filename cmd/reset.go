package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:       "reset <habit|engagement>",
	Short:     "Reset a streak",
	Long:      "Reset the habit challenge (counters and unlocked tiers) or the engagement streak. Recorded sessions and awards are kept.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"habit", "engagement"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		switch args[0] {
		case "habit":
			err = a.ResetHabit(cmd.Context())
		case "engagement":
			err = a.ResetEngagement(cmd.Context())
		}
		if err != nil {
			return err
		}
		fmt.Printf("Reset %s streak.\n", args[0])
		return nil
	},
}
