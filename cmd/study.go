package cmd

import (
	"bufio"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/app"
	"github.com/abhisek/cadence/internal/session"
)

var studyCmd = &cobra.Command{
	Use:   "study <subject>",
	Short: "Time a study session (or log one with --minutes)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := strings.Join(args, " ")
		kindFlag, _ := cmd.Flags().GetString("kind")
		minutes, _ := cmd.Flags().GetInt("minutes")
		note, _ := cmd.Flags().GetString("note")

		kind := session.Kind(kindFlag)
		if !kind.Valid() {
			return fmt.Errorf("unknown kind %q (use %s or %s)", kindFlag, session.KindStudy, session.KindReview)
		}

		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if minutes > 0 {
			out, err := a.LogActivity(cmd.Context(), kind, subject, note, minutes)
			if err != nil {
				return err
			}
			fmt.Printf("Logged %d min of %s.\n", out.Activity.Minutes, subject)
			printDay(out.TodayMinutes, a.Streaks())
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		h := a.StartStudy(kind, subject)
		fmt.Printf("Studying %s. Press Enter to finish, Ctrl+C to discard.\n", subject)

		done := make(chan struct{})
		go func() {
			bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			close(done)
		}()

		select {
		case <-ctx.Done():
			a.CancelStudy(h)
			fmt.Println("\nSession discarded.")
			return nil
		case <-done:
		}

		out, err := a.EndStudy(cmd.Context(), h, "", note)
		if err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		fmt.Printf("Credited %d min of %s.\n", out.Activity.Minutes, subject)
		printDay(out.TodayMinutes, a.Streaks())
		return nil
	},
}

func init() {
	studyCmd.Flags().String("kind", string(session.KindStudy), "Activity kind: study or review")
	studyCmd.Flags().Int("minutes", 0, "Log a finished session of this many minutes instead of timing one")
	studyCmd.Flags().String("note", "", "Free-form note stored with the session")
}

// printDay prints today's progress toward the goal and both streaks.
func printDay(today int, r app.StreakReport) {
	mark := " "
	if today >= r.GoalMinutes {
		mark = "✓"
	}
	fmt.Printf("Today: %d/%d min %s  Streak: %s  Habit: %s\n",
		today, r.GoalMinutes, mark, days(r.Engagement.Current), days(r.Habit.Current))
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
