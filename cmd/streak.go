package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/app"
	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/streak"
)

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Show the engagement streak and the habit challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		check, _ := cmd.Flags().GetBool("check")

		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		report := a.Streaks()
		if check {
			report, err = a.CheckStreaks(cmd.Context())
			if err != nil {
				return err
			}
		}
		today, err := a.TodayMinutes(cmd.Context())
		if err != nil {
			return err
		}
		printStreaks(report, today, a)
		return nil
	},
}

func init() {
	streakCmd.Flags().Bool("check", false, "Zero any streak that missed a whole day before showing it")
}

func printStreaks(r app.StreakReport, today int, a *app.App) {
	now := a.Now()
	e := r.Engagement
	fmt.Printf("🔥 Engagement streak (%d min/day)\n", r.GoalMinutes)
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("%-14s %s\n", "Current", days(e.Current))
	fmt.Printf("%-14s %s\n", "Longest", days(e.Longest))
	fmt.Printf("%-14s %s\n", "Last active", orDash(calendar.Format(e.LastActive)))
	fmt.Printf("%-14s %d/%d min\n", "Today", today, r.GoalMinutes)
	fmt.Printf("%-14s %s\n", "Next milestone", days(streak.NextMilestone(e.Current)))
	printAtRisk(e, now)

	h := r.Habit
	fmt.Printf("\n🏆 Habit challenge (%d min/day)\n", streak.HabitDailyMinutes)
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("%-14s %s\n", "Current", days(h.Current))
	fmt.Printf("%-14s %s\n", "Longest", days(h.Longest))
	var tiers []string
	for _, t := range streak.AllTiers() {
		mark := "·"
		if h.Has(t) {
			mark = t.Icon()
		}
		tiers = append(tiers, fmt.Sprintf("%s %s (%d)", mark, t.DisplayName(), t.Days()))
	}
	fmt.Printf("%-14s %s\n", "Tiers", strings.Join(tiers, "  "))
	if next, ok := h.NextTier(); ok {
		fmt.Printf("%-14s %s in %s\n", "Next tier", next.DisplayName(), days(next.Days()-h.Current))
	}
	printAtRisk(h.State, now)
}

func printAtRisk(s streak.State, now time.Time) {
	if s.DaysUntilBreak(now) == 1 {
		fmt.Println("Study today to keep this streak alive.")
	}
}
