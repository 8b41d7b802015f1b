package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/models"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the mutation history, most recent first",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")
		entries := a.store.History()
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return
		}
		if limit > 0 && len(entries) > limit {
			entries = entries[:limit]
		}
		for _, e := range entries {
			fmt.Printf("%s  %-14s task %s  %s\n",
				e.At.Format("2006-01-02 15:04:05"),
				e.Type,
				shortID(e.TaskID),
				describeEntry(e))
		}
	}),
}

func describeEntry(e models.HistoryEntry) string {
	switch e.Type {
	case models.EntryCreate:
		if e.Payload.Fields != nil {
			return fmt.Sprintf("%q", e.Payload.Fields.Title)
		}
	case models.EntryStatusChanged:
		return fmt.Sprintf("%s -> %s", e.Payload.From, e.Payload.To)
	case models.EntryUpdate:
		if e.Payload.Timer != "" {
			return "timer " + e.Payload.Timer
		}
		return "fields changed"
	case models.EntryDelete:
		if e.Payload.Snapshot != nil {
			return fmt.Sprintf("%q", e.Payload.Snapshot.Title)
		}
	}
	return ""
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum entries to show (0 for all)")
}
