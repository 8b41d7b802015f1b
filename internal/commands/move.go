package commands

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/models"
)

var moveCmd = &cobra.Command{
	Use:   "mv <task-id> <status> [index]",
	Short: "Move a task to another column",
	Long: `Move a task to todo, in-progress or done, optionally at a given
position in the column ordering. Done is terminal: finished tasks cannot be
moved back.`,
	Args: cobra.RangeArgs(2, 3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		next := models.Status(args[1])
		if !next.IsValid() {
			fmt.Printf("Error: unknown status %q (use todo, in-progress, done)\n", args[1])
			return
		}
		index := -1
		if len(args) == 3 {
			index, err = strconv.Atoi(args[2])
			if err != nil || index < 0 {
				fmt.Printf("Error: invalid index %q\n", args[2])
				return
			}
		}

		if err := a.store.MoveTask(task.ID, next, index); err != nil {
			if errors.Is(err, errs.ErrIllegalTransition) {
				fmt.Printf("Error: task %s is done; finished tasks cannot be moved back\n", shortID(task.ID))
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Moved task %s to %s: %s\n", shortID(task.ID), next, task.Title)
	}),
}

var doneCmd = &cobra.Command{
	Use:   "done <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if task.Status == models.StatusDone {
			fmt.Printf("Task %s is already done\n", shortID(task.ID))
			return
		}
		if err := a.store.MoveTask(task.ID, models.StatusDone, -1); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		done, _ := a.store.Task(task.ID)
		fmt.Printf("Marked task %s as done: %s\n", shortID(done.ID), done.Title)
		if done.CompletedAt != nil {
			fmt.Printf("Completed at: %s\n", done.CompletedAt.Format("15:04:05"))
		}
	}),
}

var deleteCmd = &cobra.Command{
	Use:     "rm <task-id>",
	Aliases: []string{"delete"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		a.store.DeleteTask(task.ID)
		fmt.Printf("Deleted task %s: %s\n", shortID(task.ID), task.Title)
	}),
}
