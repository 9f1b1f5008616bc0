package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// runStatus prints today's progress and the review backlog. It is what
// `cadence` with no subcommand shows.
func runStatus(cmd *cobra.Command) error {
	a, closeFn, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	report, err := a.CheckStreaks(cmd.Context())
	if err != nil {
		return err
	}
	today, err := a.TodayMinutes(cmd.Context())
	if err != nil {
		return err
	}
	printDay(today, report)

	due, err := a.DueItems(cmd.Context())
	if err != nil {
		return err
	}
	switch len(due) {
	case 0:
		fmt.Println("No reviews due.")
	default:
		fmt.Printf("%d item(s) due for review:\n", len(due))
		for _, it := range due {
			fmt.Printf("  %-8s  %s\n", it.ID, it.Title)
		}
	}
	return nil
}
