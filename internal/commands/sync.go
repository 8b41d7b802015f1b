package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/errs"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Force a refresh from the task API",
	Long: `Re-fetch the task list from the task API and replace the local
state with it. Normal commands already hydrate on startup; sync is for
forcing a refresh when the API was down earlier in the session.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if a.cfg.APIURL == "" {
			fmt.Println("No task API configured (set api_url); nothing to sync.")
			return
		}
		if err := a.store.Sync(context.Background()); err != nil {
			if errors.Is(err, errs.ErrRemoteUnavailable) {
				fmt.Printf("Task API unavailable: %v\n", err)
				fmt.Println("Local cache left untouched.")
				return
			}
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("Synced %d task(s) from %s\n", len(a.store.Tasks()), a.cfg.APIURL)
	}),
}
