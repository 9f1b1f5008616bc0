package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/awards"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		history, _ := cmd.Flags().GetInt("awards")

		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		st, err := a.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Println("Today")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-16s %d\n", "Sessions", st.Today.Sessions)
		fmt.Printf("%-16s %d (study %d, review %d)\n", "Minutes",
			st.Today.TotalMinutes, st.Today.StudyMinutes, st.Today.ReviewMinutes)
		for _, s := range st.Today.BySubject {
			fmt.Printf("  %-14s %3d min  %d session(s)\n", s.Subject, s.Minutes, s.Sessions)
		}

		fmt.Println("\nOverall")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-16s %d min\n", "Last 7 days", st.WeekMinutes)
		fmt.Printf("%-16s %s (longest %s)\n", "Streak",
			days(st.Streaks.Engagement.Current), days(st.Streaks.Engagement.Longest))
		fmt.Printf("%-16s %s\n", "Habit", days(st.Streaks.Habit.Current))
		fmt.Printf("%-16s %d (%d due)\n", "Study items", st.Items, st.DueItems)
		fmt.Printf("%-16s %d\n", "Awards", st.AwardTotal)
		for _, k := range awards.AllKinds() {
			if n := st.AwardCounts[k]; n > 0 {
				fmt.Printf("  %s %-14s %d\n", k.Icon(), k.DisplayName(), n)
			}
		}

		if history > 0 {
			recent, err := a.Awards().History(cmd.Context(), history)
			if err != nil {
				return err
			}
			if len(recent) > 0 {
				fmt.Println("\nRecent awards")
				fmt.Println(strings.Repeat("─", 40))
				for _, aw := range recent {
					fmt.Printf("%s  %s %s\n", aw.AwardedAt.In(a.Location()).Format("2006-01-02"), aw.Kind.Icon(), aw.Reason)
				}
			}
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().Int("awards", 5, "Number of recent awards to list (0 to hide)")
}
