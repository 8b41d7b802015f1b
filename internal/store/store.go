// Package store owns the authoritative in-memory task list and history log.
// Every mutation goes through here: it updates timestamps, appends exactly
// one history entry, persists a best-effort snapshot to the local cache and,
// on first completion of a task, publishes a completion event.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck/internal/analytics"
	"github.com/taskdeck/taskdeck/internal/clock"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/models"
)

// Snapshotter is the durable local cache the store writes through to.
type Snapshotter interface {
	Save(tasks []models.Task, history []models.HistoryEntry) error
	Load() ([]models.Task, []models.HistoryEntry, error)
}

// Source is the remote task API consulted during hydration.
type Source interface {
	FetchTasks(ctx context.Context) ([]models.Task, error)
}

// Options wires the store's collaborators. Any of them may be nil: a nil
// cache skips persistence, a nil source skips the remote hydration attempt,
// a nil bus skips completion events.
type Options struct {
	Clock    clock.Clock
	Cache    Snapshotter
	Source   Source
	Bus      *events.Bus
	Assignee string
	Logger   zerolog.Logger
}

// Store is the single writer for tasks and history in this process.
type Store struct {
	mu        sync.Mutex
	hydrateMu sync.Mutex

	clk      clock.Clock
	cache    Snapshotter
	source   Source
	bus      *events.Bus
	assignee string
	log      zerolog.Logger

	tasks    []models.Task
	history  []models.HistoryEntry
	hydrated bool
}

// New builds a store from opts.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Assignee == "" {
		opts.Assignee = "Me"
	}
	return &Store{
		clk:      opts.Clock,
		cache:    opts.Cache,
		source:   opts.Source,
		bus:      opts.Bus,
		assignee: opts.Assignee,
		log:      opts.Logger,
	}
}

// Tasks returns a deep copy of the task list in board order. Mutating the
// result, pointer fields included, never touches store state.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Task, len(s.tasks))
	for i := range s.tasks {
		out[i] = s.tasks[i].Clone()
	}
	return out
}

// Task returns a deep copy of the task with the given id.
func (s *Store) Task(id string) (models.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return s.tasks[i].Clone(), true
		}
	}
	return models.Task{}, false
}

// History returns a deep copy of the history log, most recent first.
func (s *Store) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HistoryEntry, len(s.history))
	for i := range s.history {
		out[i] = s.history[i].Clone()
	}
	return out
}

// Hydrated reports whether Hydrate has completed.
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// WeeklyDoneCounts is the throughput series over the current task list.
func (s *Store) WeeklyDoneCounts(weeks int) []analytics.WeekCount {
	return analytics.WeeklyDoneCounts(s.Tasks(), s.clk.Now(), weeks)
}

// WeeklyCycleTime is the cycle-time series over the current task list.
func (s *Store) WeeklyCycleTime(weeks int) []analytics.WeekCycle {
	return analytics.WeeklyCycleTime(s.Tasks(), s.clk.Now(), weeks)
}

// WeeklyOnTimeRate is the on-time series over the current task list.
func (s *Store) WeeklyOnTimeRate(weeks int) []analytics.WeekOnTime {
	return analytics.WeeklyOnTimeRate(s.Tasks(), s.clk.Now(), weeks)
}

// AssigneeStats is the single-user whole-history snapshot.
func (s *Store) AssigneeStats() []analytics.AssigneeStat {
	return analytics.AssigneeStats(s.Tasks(), s.assignee, s.clk.Now())
}

// newEntry mints a history entry. Caller holds the lock.
func (s *Store) newEntry(taskID string, typ models.EntryType, payload models.EntryPayload) models.HistoryEntry {
	return models.HistoryEntry{
		ID:      uuid.NewString(),
		TaskID:  taskID,
		Type:    typ,
		At:      s.clk.Now(),
		Payload: payload,
	}
}

// record prepends an entry to the history log. Caller holds the lock.
func (s *Store) record(e models.HistoryEntry) {
	s.history = append([]models.HistoryEntry{e}, s.history...)
}

// persist writes the current snapshot to the cache. Failures are logged and
// swallowed: the in-memory mutation has already succeeded and durability
// here is best-effort. Caller holds the lock.
func (s *Store) persist() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Save(s.tasks, s.history); err != nil {
		s.log.Error().Err(err).Msg("failed to persist snapshot")
	}
}

// publish emits a completion event outside the lock.
func (s *Store) publish(ev *events.TaskCompleted) {
	if ev == nil || s.bus == nil {
		return
	}
	s.bus.PublishCompleted(*ev)
}
