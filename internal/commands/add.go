package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
	"github.com/taskdeck/taskdeck/internal/tui"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task to the board.

Modes:
  Interactive: taskdeck add (no arguments, or -i)
  Quick:       taskdeck add "Task title" (with optional flags)
  Smart:       taskdeck add "Write report +high due:tomorrow est:90m"

Smart syntax:
  +priority   low/medium/high/urgent or 1-4
  due:<spec>  dd/mm/yyyy, today, tomorrow, or N days/hours/weeks
  est:<dur>   estimate (90m, 2h, 1h30m, or bare minutes)`,
	Args: cobra.ArbitraryArgs,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		interactive, _ := cmd.Flags().GetBool("interactive")
		if len(args) == 0 {
			interactive = true
		}

		parsed := parser.ParseTitle(strings.Join(args, " "), time.Now())
		fields, err := fieldsFromFlags(cmd, parsed)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		if interactive || len(parsed.Errors) > 0 {
			if len(parsed.Errors) > 0 {
				fmt.Printf("Could not parse everything: %s\n", strings.Join(parsed.Errors, "; "))
				fmt.Println("Opening the form to confirm...")
			}
			runAddForm(a, fields)
			return
		}

		if fields.Title == "" {
			fmt.Println("Error: title cannot be empty")
			return
		}
		task := a.store.AddTask(fields)
		printCreated(task)
	}),
}

// fieldsFromFlags merges explicit flags over smart-parsed values.
func fieldsFromFlags(cmd *cobra.Command, parsed parser.ParsedTask) (models.Task, error) {
	fields := models.Task{
		Title:           parsed.Title,
		Priority:        parsed.Priority,
		DueDate:         parsed.DueDate,
		EstimateMinutes: parsed.EstimateMinutes,
	}

	if desc, _ := cmd.Flags().GetString("desc"); desc != "" {
		fields.Description = desc
	}
	if prio, _ := cmd.Flags().GetString("priority"); prio != "" {
		p, err := parser.ParsePriority(prio)
		if err != nil {
			return fields, err
		}
		fields.Priority = p
	}
	if due, _ := cmd.Flags().GetString("due"); due != "" {
		d, err := parser.ParseDue(due, time.Now())
		if err != nil {
			return fields, err
		}
		fields.DueDate = d
	}
	if est, _ := cmd.Flags().GetString("estimate"); est != "" {
		minutes, err := parser.ParseEstimate(est)
		if err != nil {
			return fields, err
		}
		fields.EstimateMinutes = minutes
	}
	return fields, nil
}

// runAddForm opens the interactive form prefilled with fields.
func runAddForm(a *app, fields models.Task) {
	result, err := tui.RunTaskForm(tui.FormOptions{
		Title:      "New task",
		Task:       fields,
		Animations: a.cfg.Animations,
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if result.Cancelled {
		fmt.Println("Task creation cancelled.")
		return
	}
	task := a.store.AddTask(result.Task)
	printCreated(task)
}

func printCreated(task models.Task) {
	fmt.Printf("Created task %s: %s\n", shortID(task.ID), task.Title)
	if task.Priority != "" {
		fmt.Printf("  Priority: %s\n", task.Priority)
	}
	if task.DueDate != nil {
		fmt.Printf("  Due: %s\n", task.DueDate.Format("02/01/2006"))
	}
	if task.EstimateMinutes > 0 {
		fmt.Printf("  Estimate: %dm\n", task.EstimateMinutes)
	}
}

func init() {
	addCmd.Flags().BoolP("interactive", "i", false, "Interactive form")
	addCmd.Flags().StringP("desc", "d", "", "Description")
	addCmd.Flags().StringP("priority", "p", "", "Priority: low, medium, high, urgent, or 1-4")
	addCmd.Flags().String("due", "", "Due date: dd/mm/yyyy, today, tomorrow, N days/hours/weeks")
	addCmd.Flags().StringP("estimate", "e", "", "Estimate: 90m, 2h, 1h30m, or minutes")
}
