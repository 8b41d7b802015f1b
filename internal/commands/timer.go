package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/tui"
)

var startCmd = &cobra.Command{
	Use:   "start <task-id>",
	Short: "Start tracking time on a task",
	Long: `Start a timing session on a task. Opens the interactive timer by
default; use --no-ui for a plain start. A task has at most one active
session; starting twice is a no-op.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if task.TimerActive() {
			fmt.Printf("Task %s already has a running timer\n", shortID(task.ID))
			return
		}
		a.store.StartTimer(task.ID)

		noUI, _ := cmd.Flags().GetBool("no-ui")
		if noUI {
			fmt.Printf("Started timer on task %s: %s\n", shortID(task.ID), task.Title)
			return
		}
		started, _ := a.store.Task(task.ID)
		if err := tui.RunTimer(a.store, started, a.cfg.Animations); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}

var pauseCmd = &cobra.Command{
	Use:   "pause <task-id>",
	Short: "Pause the task's running timer",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if !task.TimerActive() {
			fmt.Printf("Task %s has no running timer\n", shortID(task.ID))
			return
		}
		a.store.PauseTimer(task.ID)
		paused, _ := a.store.Task(task.ID)
		fmt.Printf("Paused timer on task %s (total %s)\n",
			shortID(task.ID), formatDuration(time.Duration(paused.TimeSpentMs)*time.Millisecond))
	}),
}

var stopCmd = &cobra.Command{
	Use:   "stop <task-id>",
	Short: "Stop the timer, optionally completing the task",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		markDone, _ := cmd.Flags().GetBool("done")
		a.store.StopTimer(task.ID, markDone)

		stopped, _ := a.store.Task(task.ID)
		fmt.Printf("Stopped timer on task %s (total %s)\n",
			shortID(task.ID), formatDuration(time.Duration(stopped.TimeSpentMs)*time.Millisecond))
		if markDone && stopped.Status == models.StatusDone {
			fmt.Printf("Marked done: %s\n", stopped.Title)
		}
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show running timers",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		now := time.Now()
		running := 0
		for _, t := range a.store.Tasks() {
			if !t.TimerActive() {
				continue
			}
			running++
			elapsed := now.Sub(*t.TimerStartedAt)
			fmt.Printf("Tracking task %s: %s (running %s, total %s)\n",
				shortID(t.ID), t.Title,
				formatDuration(elapsed),
				formatDuration(time.Duration(t.TimeSpentMs)*time.Millisecond+elapsed))
		}
		if running == 0 {
			fmt.Println("No active timing session")
		}
	}),
}

func init() {
	startCmd.Flags().Bool("no-ui", false, "Start without the interactive timer")
	stopCmd.Flags().BoolP("done", "d", false, "Also mark the task as done")
}
