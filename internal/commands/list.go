package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List tasks",
	Long:    "List tasks in board order, optionally filtered by status or priority",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		tasks := a.store.Tasks()

		if status, _ := cmd.Flags().GetString("status"); status != "" {
			if !models.Status(status).IsValid() {
				fmt.Printf("Error: unknown status %q (use todo, in-progress, done)\n", status)
				return
			}
			tasks = filterByStatus(tasks, models.Status(status))
		}
		if prio, _ := cmd.Flags().GetString("priority"); prio != "" {
			p, err := parser.ParsePriority(prio)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			tasks = filterByPriority(tasks, p)
		}

		if len(tasks) == 0 {
			fmt.Println("No tasks found. Use 'taskdeck add \"task title\"' to create one.")
			return
		}

		now := time.Now()
		fmt.Printf("%-9s %-12s %-40s %-8s %-9s %s\n", "ID", "STATUS", "TITLE", "PRIO", "DUE", "SPENT")
		fmt.Println(strings.Repeat("-", 88))
		for _, t := range tasks {
			title := t.Title
			if len(title) > 38 {
				title = title[:35] + "..."
			}
			fmt.Printf("%-9s %-12s %-40s %-8s %-9s %s\n",
				shortID(t.ID),
				t.Status,
				title,
				t.Priority,
				parser.FormatDue(t.DueDate, now),
				formatSpent(t),
			)
		}
	}),
}

func filterByStatus(tasks []models.Task, s models.Status) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Status == s {
			out = append(out, t)
		}
	}
	return out
}

func filterByPriority(tasks []models.Task, p models.Priority) []models.Task {
	var out []models.Task
	for _, t := range tasks {
		if t.Priority == p {
			out = append(out, t)
		}
	}
	return out
}

// formatSpent renders accumulated tracked time, marking a running session.
func formatSpent(t models.Task) string {
	d := time.Duration(t.TimeSpentMs) * time.Millisecond
	s := formatDuration(d)
	if t.TimerActive() {
		s += " *"
	}
	return s
}

// formatDuration renders a duration compactly.
func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d >= time.Minute:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

func init() {
	listCmd.Flags().StringP("status", "s", "", "Filter by status: todo, in-progress, done")
	listCmd.Flags().StringP("priority", "p", "", "Filter by priority")
}
