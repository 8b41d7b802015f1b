package store

import (
	"context"

	"github.com/taskdeck/taskdeck/internal/models"
)

// Hydrate populates the store from the remote task API, falling back to the
// local cache when the API is unreachable or returns garbage. It is
// idempotent: once the hydrated flag is set, further calls return
// immediately without refetching. Hydration failure is never an error for
// the caller; the worst case is starting from empty lists.
func (s *Store) Hydrate(ctx context.Context) {
	// Serialize concurrent hydrations: the second caller blocks until the
	// first finishes, then sees the flag and no-ops.
	s.hydrateMu.Lock()
	defer s.hydrateMu.Unlock()

	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// The cache is read up front so history survives even when the remote
	// serves the task list (the API does not serve history yet).
	tasks, history := s.loadCache()

	if s.source != nil {
		fetched, err := s.source.FetchTasks(ctx)
		if err != nil {
			s.log.Warn().Err(err).Msg("task API unavailable, using local cache")
		} else {
			tasks = fetched
		}
	}

	s.backfillCompletions(tasks)

	s.mu.Lock()
	s.tasks = tasks
	s.history = history
	s.hydrated = true
	s.mu.Unlock()
}

// Sync forces a remote refresh regardless of hydration state: a reachable
// task API replaces the task list (history is kept) and the new snapshot is
// persisted. Unlike Hydrate, an unreachable API is reported to the caller.
func (s *Store) Sync(ctx context.Context) error {
	if s.source == nil {
		return nil
	}
	fetched, err := s.source.FetchTasks(ctx)
	if err != nil {
		return err
	}
	s.backfillCompletions(fetched)

	s.mu.Lock()
	s.tasks = fetched
	s.hydrated = true
	s.persist()
	s.mu.Unlock()
	return nil
}

// loadCache reads the cached snapshot, degrading to empty lists when the
// cache is missing or unreadable.
func (s *Store) loadCache() ([]models.Task, []models.HistoryEntry) {
	if s.cache == nil {
		return nil, nil
	}
	tasks, history, err := s.cache.Load()
	if err != nil {
		s.log.Warn().Err(err).Msg("local cache unreadable, starting empty")
		return nil, nil
	}
	return tasks, history
}

// backfillCompletions is the one-time migration for legacy records: a done
// task without a completion stamp gets its UpdatedAt (or the current time
// when even that is missing).
func (s *Store) backfillCompletions(tasks []models.Task) {
	for i := range tasks {
		t := &tasks[i]
		if t.Status != models.StatusDone || t.CompletedAt != nil {
			continue
		}
		stamp := t.UpdatedAt
		if stamp.IsZero() {
			stamp = s.clk.Now()
		}
		t.CompletedAt = &stamp
	}
}
