// Package goals tracks the weekly completion goal and the day streak.
// The tracker listens for completion events from the store's bus; it never
// reads the task list itself.
package goals

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck/internal/events"
)

// DefaultWeeklyGoal is used until the user sets their own target.
const DefaultWeeklyGoal = 7

// Snapshot is the persisted goals state.
type Snapshot struct {
	WeeklyGoal int        `json:"weekly_goal"`
	StreakDays int        `json:"streak_days"`
	LastDoneAt *time.Time `json:"last_done_at"`
}

// Storage persists the snapshot. Implemented by the cache package.
type Storage interface {
	LoadGoals() (Snapshot, bool, error)
	SaveGoals(Snapshot) error
}

// Tracker owns the goals state for the current user.
type Tracker struct {
	mu      sync.Mutex
	storage Storage
	log     zerolog.Logger
	snap    Snapshot
}

// NewTracker loads the stored snapshot (or defaults) and returns a tracker.
func NewTracker(storage Storage, log zerolog.Logger) *Tracker {
	t := &Tracker{
		storage: storage,
		log:     log,
		snap:    Snapshot{WeeklyGoal: DefaultWeeklyGoal},
	}
	if storage != nil {
		snap, ok, err := storage.LoadGoals()
		if err != nil {
			log.Warn().Err(err).Msg("failed to load goals, using defaults")
		} else if ok {
			t.snap = snap
			if t.snap.WeeklyGoal <= 0 {
				t.snap.WeeklyGoal = DefaultWeeklyGoal
			}
		}
	}
	return t
}

// Listen subscribes the tracker to completion events on bus.
func (t *Tracker) Listen(bus *events.Bus) {
	bus.SubscribeCompleted(func(ev events.TaskCompleted) {
		t.BumpOnDone(ev.At)
	})
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snap
}

// SetWeeklyGoal updates the weekly completion target.
func (t *Tracker) SetWeeklyGoal(n int) {
	if n <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.snap.WeeklyGoal = n
	t.persist()
}

// BumpOnDone advances the streak for a completion at the given time:
// +1 on the day after the last completion, unchanged on the same day,
// reset to 1 after a gap or on the very first completion.
func (t *Tracker) BumpOnDone(at time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.snap.LastDoneAt == nil:
		t.snap.StreakDays = 1
	default:
		gap := dayOf(at).Sub(dayOf(*t.snap.LastDoneAt)) / (24 * time.Hour)
		switch gap {
		case 0:
			// same day, streak unchanged
		case 1:
			t.snap.StreakDays++
		default:
			t.snap.StreakDays = 1
		}
	}
	stamp := at
	t.snap.LastDoneAt = &stamp
	t.persist()
}

// persist writes the snapshot best-effort. Caller holds the lock.
func (t *Tracker) persist() {
	if t.storage == nil {
		return
	}
	if err := t.storage.SaveGoals(t.snap); err != nil {
		t.log.Error().Err(err).Msg("failed to persist goals")
	}
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
