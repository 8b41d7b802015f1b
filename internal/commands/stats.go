package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/tui"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Weekly productivity analytics",
	Long: `Show weekly throughput, average cycle time and on-time rate over
the last N ISO weeks (Monday start), plus the whole-history snapshot and
goal streak.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		weeks, _ := cmd.Flags().GetInt("weeks")
		if weeks <= 0 {
			weeks = a.cfg.StatsWeeks
		}

		report := tui.StatsReport{
			Done:     a.store.WeeklyDoneCounts(weeks),
			Cycle:    a.store.WeeklyCycleTime(weeks),
			OnTime:   a.store.WeeklyOnTimeRate(weeks),
			Assignee: a.store.AssigneeStats()[0],
			Goals:    a.tracker.Snapshot(),
		}
		fmt.Print(tui.RenderStats(report))
	}),
}

func init() {
	statsCmd.Flags().IntP("weeks", "w", 0, "Window size in ISO weeks")
}
