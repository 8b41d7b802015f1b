package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:     "board",
	Aliases: []string{"b"},
	Short:   "Open the interactive kanban board",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := tui.RunBoard(a.store, a.cfg.Animations); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
