package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/taskdeck/taskdeck/internal/cache"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/goals"
	"github.com/taskdeck/taskdeck/internal/remote"
	"github.com/taskdeck/taskdeck/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "taskdeck",
	Short: "A kanban board, timer and weekly stats in your terminal",
	Long: `taskdeck is a single-user task tracker: a kanban board with
drag-style moves, per-task timers, and weekly productivity analytics.
Tasks hydrate from the task API when it is reachable and fall back to a
local cache when it is not.`,
}

// app bundles the wired collaborators behind every command.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	cache   *cache.Cache
	store   *store.Store
	tracker *goals.Tracker
}

// newApp loads config, opens the cache, wires the event bus and hydrates
// the store.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := initLogger(cfg.LogPath(), flagVerbose, flagQuiet)

	c, err := cache.Open(cfg.CachePath())
	if err != nil {
		return nil, err
	}

	bus := events.NewBus(log)
	tracker := goals.NewTracker(c, log)
	tracker.Listen(bus)

	var src store.Source
	if cfg.APIURL != "" {
		src = remote.NewClient(cfg.APIURL, nil)
	}

	st := store.New(store.Options{
		Cache:    c,
		Source:   src,
		Bus:      bus,
		Assignee: cfg.User,
		Logger:   log,
	})
	st.Hydrate(context.Background())

	return &app{cfg: cfg, log: log, cache: c, store: st, tracker: tracker}, nil
}

func (a *app) close() {
	if err := a.cache.Close(); err != nil {
		a.log.Debug().Err(err).Msg("failed to close cache")
	}
}

// withApp wraps a command body with app construction and teardown.
func withApp(fn func(a *app, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

// SetVersion sets build metadata injected by the linker.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Warnings and errors only")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(doneCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(versionCmd)
}
