package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/cadence/internal/app"
	"github.com/abhisek/cadence/internal/calendar"
	"github.com/abhisek/cadence/internal/spacedrep"
	"github.com/abhisek/cadence/internal/store"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Manage study items",
}

var itemAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a study item",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		target, err := targetFlag(cmd, a)
		if err != nil {
			return err
		}

		it, err := a.AddItem(cmd.Context(), strings.Join(args, " "), target)
		if err != nil {
			return err
		}
		fmt.Printf("Added %s  %s\n", it.ID, it.Title)
		fmt.Printf("First review: %s\n", calendar.Format(it.NextReview))
		return nil
	},
}

var itemListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study items, soonest review first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		items, err := a.Items(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("No study items yet. Add one with `cadence item add <title>`.")
			return nil
		}
		printItems(items, a.Now())
		return nil
	},
}

var itemShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a study item and its review plan",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		it, err := a.Item(cmd.Context(), args[0])
		if err != nil {
			return itemErr(args[0], err)
		}
		plan, err := a.Plan(cmd.Context(), it.ID)
		if err != nil {
			return err
		}

		now := a.Now()
		fmt.Printf("%s  %s\n", it.ID, it.Title)
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-16s %d\n", "Recall score", it.RecallScore)
		fmt.Printf("%-16s %d\n", "Success streak", it.SuccessStreak)
		fmt.Printf("%-16s %s\n", "Last reviewed", orDash(calendar.Format(it.LastReviewed)))
		fmt.Printf("%-16s %s (%s)\n", "Next review", orDash(calendar.Format(it.NextReview)), it.Status(now))
		fmt.Printf("%-16s %s\n", "Target date", orDash(calendar.Format(it.TargetDate)))

		fmt.Println("\nUpcoming reviews:")
		for i, d := range plan {
			fmt.Printf("  %d. %s\n", i+1, calendar.Format(d))
		}
		return nil
	},
}

var itemTargetCmd = &cobra.Command{
	Use:   "target <id> <YYYY-MM-DD|none>",
	Short: "Set or clear an item's target date",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		var target time.Time
		if args[1] != "none" {
			target, err = calendar.Parse(args[1], a.Location())
			if err != nil {
				return err
			}
		}

		res, err := a.SetTarget(cmd.Context(), args[0], target)
		if err != nil {
			return itemErr(args[0], err)
		}
		fmt.Printf("Next review: %s\n", calendar.Format(res.Item.NextReview))
		if res.Outcome.UsedDeadline {
			fmt.Printf("Planned %d review(s) before %s.\n", len(res.Outcome.Plan), calendar.Format(res.Item.TargetDate))
		}
		return nil
	},
}

var itemRemoveCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove"},
	Short:   "Delete a study item",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		if err := a.RemoveItem(cmd.Context(), args[0]); err != nil {
			return itemErr(args[0], err)
		}
		fmt.Printf("Removed %s.\n", args[0])
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:     "next",
	Aliases: []string{"due"},
	Short:   "List items due for review",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		due, err := a.DueItems(cmd.Context())
		if err != nil {
			return err
		}
		if len(due) == 0 {
			fmt.Println("Nothing due. Nice work.")
			return nil
		}
		printItems(due, a.Now())
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan <id>",
	Short: "Show the upcoming review days for an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, closeFn, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		it, err := a.Item(cmd.Context(), args[0])
		if err != nil {
			return itemErr(args[0], err)
		}
		plan, err := a.Plan(cmd.Context(), it.ID)
		if err != nil {
			return err
		}

		now := a.Now()
		if it.HasDeadline(now) {
			fmt.Printf("%s: %d review(s) before %s\n", it.Title, len(plan), calendar.Format(it.TargetDate))
		} else {
			fmt.Printf("%s: next review\n", it.Title)
		}
		for i, d := range plan {
			fmt.Printf("  %d. %s  (in %s)\n", i+1, calendar.Format(d), days(max(0, calendar.DayDiff(now, d))))
		}
		return nil
	},
}

func init() {
	itemAddCmd.Flags().String("target", "", "Target date (YYYY-MM-DD) to be review-ready by")

	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemShowCmd)
	itemCmd.AddCommand(itemTargetCmd)
	itemCmd.AddCommand(itemRemoveCmd)
}

func targetFlag(cmd *cobra.Command, a *app.App) (time.Time, error) {
	s, _ := cmd.Flags().GetString("target")
	return calendar.Parse(s, a.Location())
}

func printItems(items []spacedrep.StudyItem, now time.Time) {
	fmt.Printf("%-8s  %-36s  %5s  %6s  %-10s  %-10s  %s\n",
		"ID", "Title", "Score", "Streak", "Next", "Target", "Status")
	fmt.Println(strings.Repeat("─", 100))
	for _, it := range items {
		title := it.Title
		if len(title) > 36 {
			title = title[:33] + "..."
		}
		fmt.Printf("%-8s  %-36s  %5d  %6d  %-10s  %-10s  %s\n",
			it.ID, title, it.RecallScore, it.SuccessStreak,
			orDash(calendar.Format(it.NextReview)), orDash(calendar.Format(it.TargetDate)), it.Status(now))
	}
	fmt.Printf("\n%d items\n", len(items))
}

func itemErr(id string, err error) error {
	if errors.Is(err, store.ErrItemNotFound) {
		return fmt.Errorf("no item with id %q", id)
	}
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
