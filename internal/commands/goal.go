package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var goalCmd = &cobra.Command{
	Use:   "goal [target]",
	Short: "Show or set the weekly completion goal",
	Args:  cobra.MaximumNArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n <= 0 {
				fmt.Printf("Error: invalid goal %q\n", args[0])
				return
			}
			a.tracker.SetWeeklyGoal(n)
		}

		snap := a.tracker.Snapshot()
		thisWeek := a.store.AssigneeStats()[0].ThroughputThisWeek
		fmt.Printf("Weekly goal: %d/%d tasks\n", thisWeek, snap.WeeklyGoal)
		fmt.Printf("Streak: %d day(s)\n", snap.StreakDays)
		if snap.LastDoneAt != nil {
			fmt.Printf("Last completion: %s\n", snap.LastDoneAt.Format("2006-01-02 15:04"))
		}
	}),
}
