package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
	"github.com/taskdeck/taskdeck/internal/tui"
)

var editCmd = &cobra.Command{
	Use:   "edit <task-id>",
	Short: "Edit an existing task",
	Long: `Edit a task. Without flags this opens the interactive form
prefilled with the current values; with flags it applies the changes
directly.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		task, err := resolveTask(a, args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		patch, hasFlags, err := patchFromFlags(cmd)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if !hasFlags {
			result, err := tui.RunTaskForm(tui.FormOptions{
				Title:      "Edit task",
				Task:       task,
				Animations: a.cfg.Animations,
			})
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			if result.Cancelled {
				fmt.Println("Edit cancelled.")
				return
			}
			patch = patchFromForm(task, result.Task)
		}

		if patch.IsZero() {
			fmt.Println("Nothing to change.")
			return
		}
		if err := a.store.UpdateTask(task.ID, patch); err != nil {
			if errors.Is(err, errs.ErrIllegalTransition) {
				fmt.Printf("Error: task %s is done; finished tasks cannot change status\n", shortID(task.ID))
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Updated task %s\n", shortID(task.ID))
	}),
}

// patchFromFlags builds a patch from explicit flags, reporting whether any
// were set.
func patchFromFlags(cmd *cobra.Command) (models.Patch, bool, error) {
	var patch models.Patch
	has := false

	if cmd.Flags().Changed("title") {
		title, _ := cmd.Flags().GetString("title")
		patch.Title = &title
		has = true
	}
	if cmd.Flags().Changed("desc") {
		desc, _ := cmd.Flags().GetString("desc")
		patch.Description = &desc
		has = true
	}
	if cmd.Flags().Changed("priority") {
		raw, _ := cmd.Flags().GetString("priority")
		p, err := parser.ParsePriority(raw)
		if err != nil {
			return patch, true, err
		}
		patch.Priority = &p
		has = true
	}
	if cmd.Flags().Changed("status") {
		raw, _ := cmd.Flags().GetString("status")
		s := models.Status(raw)
		if !s.IsValid() {
			return patch, true, fmt.Errorf("unknown status %q", raw)
		}
		patch.Status = &s
		has = true
	}
	if cmd.Flags().Changed("due") {
		raw, _ := cmd.Flags().GetString("due")
		if raw == "" || raw == "none" {
			patch.ClearDueDate = true
		} else {
			due, err := parser.ParseDue(raw, time.Now())
			if err != nil {
				return patch, true, err
			}
			patch.DueDate = due
		}
		has = true
	}
	if cmd.Flags().Changed("estimate") {
		raw, _ := cmd.Flags().GetString("estimate")
		minutes, err := parser.ParseEstimate(raw)
		if err != nil {
			return patch, true, err
		}
		patch.EstimateMinutes = &minutes
		has = true
	}
	return patch, has, nil
}

// patchFromForm diffs the form result against the original task.
func patchFromForm(before, after models.Task) models.Patch {
	var patch models.Patch
	if after.Title != before.Title {
		patch.Title = &after.Title
	}
	if after.Description != before.Description {
		patch.Description = &after.Description
	}
	if after.Priority != before.Priority {
		patch.Priority = &after.Priority
	}
	switch {
	case after.DueDate == nil && before.DueDate != nil:
		patch.ClearDueDate = true
	case after.DueDate != nil && (before.DueDate == nil || !after.DueDate.Equal(*before.DueDate)):
		patch.DueDate = after.DueDate
	}
	if after.EstimateMinutes != before.EstimateMinutes {
		patch.EstimateMinutes = &after.EstimateMinutes
	}
	return patch
}

func init() {
	editCmd.Flags().StringP("title", "t", "", "New title")
	editCmd.Flags().StringP("desc", "d", "", "New description")
	editCmd.Flags().StringP("priority", "p", "", "New priority")
	editCmd.Flags().StringP("status", "s", "", "New status (done is terminal)")
	editCmd.Flags().String("due", "", "New due date, or 'none' to clear")
	editCmd.Flags().StringP("estimate", "e", "", "New estimate")
}
