package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
)

// shiftRecord is one entry of a shift export file.
type shiftRecord struct {
	Ref      string     `json:"ref"`
	Title    string     `json:"title"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

var importCmd = &cobra.Command{
	Use:   "import <shifts.json>",
	Short: "Import shifts as tasks",
	Long: `Import a JSON shift export as tasks. Each shift's task ID is
derived deterministically from its reference (SHIFT-YYYYMMDD-<code>), so
re-importing the same file never creates duplicates.`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		var shifts []shiftRecord
		if err := json.Unmarshal(data, &shifts); err != nil {
			fmt.Printf("Error: invalid shift file: %v\n", err)
			return
		}

		created, skipped := 0, 0
		for _, sh := range shifts {
			ref, err := parser.NormalizeShiftRef(sh.Ref)
			if err != nil {
				fmt.Printf("Skipping: %v\n", err)
				skipped++
				continue
			}
			fields := shiftTask(ref, sh)
			if _, exists := a.store.Task(fields.ID); exists {
				skipped++
				continue
			}
			a.store.AddTask(fields)
			created++
		}
		fmt.Printf("Imported %d task(s), skipped %d\n", created, skipped)
	}),
}

// shiftTask maps a shift to task fields with a deterministic ID.
func shiftTask(ref string, sh shiftRecord) models.Task {
	title := sh.Title
	if title == "" {
		title = "Shift " + ref
	}
	fields := models.Task{
		ID:          uuid.NewSHA1(uuid.NameSpaceURL, []byte("taskdeck:shift:"+ref)).String(),
		Title:       title,
		Description: "Imported from shift " + ref,
		Priority:    models.PriorityMedium,
		DueDate:     sh.EndsAt,
	}
	if sh.StartsAt != nil && sh.EndsAt != nil && sh.EndsAt.After(*sh.StartsAt) {
		fields.EstimateMinutes = int(sh.EndsAt.Sub(*sh.StartsAt).Minutes())
	}
	return fields
}
