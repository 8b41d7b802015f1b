package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/models"
)

// AddTask creates a task from fields and prepends it to the board. A fresh
// ID and CreatedAt==UpdatedAt timestamps are generated unless the caller
// supplies them (import scenarios use deterministic IDs; re-adding an
// existing ID is a no-op that returns the existing task).
func (s *Store) AddTask(fields models.Task) models.Task {
	s.mu.Lock()

	if fields.ID != "" {
		for i := range s.tasks {
			if s.tasks[i].ID == fields.ID {
				existing := s.tasks[i]
				s.mu.Unlock()
				return existing
			}
		}
	}

	now := s.clk.Now()
	task := fields
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = task.CreatedAt
	}
	if task.Status == "" {
		task.Status = models.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	task.TimerStartedAt = nil

	s.tasks = append([]models.Task{task}, s.tasks...)
	snapshot := task
	s.record(s.newEntry(task.ID, models.EntryCreate, models.EntryPayload{Fields: &snapshot}))
	s.persist()
	s.mu.Unlock()
	return task
}

// UpdateTask shallow-merges patch onto the task. Missing ids are a silent
// no-op; a patch that would move a done task elsewhere is rejected with
// ErrIllegalTransition. The first transition into done stamps CompletedAt
// and publishes a completion event.
func (s *Store) UpdateTask(id string, patch models.Patch) error {
	s.mu.Lock()

	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", id).Msg("update of unknown task ignored")
		return nil
	}
	t := &s.tasks[idx]
	if patch.Status != nil && !models.CanTransition(t.Status, *patch.Status) {
		s.mu.Unlock()
		return errs.Wrapf(errs.ErrIllegalTransition, "cannot move task %s from %s to %s", id, t.Status, *patch.Status)
	}

	before := *t
	patch.Apply(t)
	now := s.clk.Now()
	t.UpdatedAt = now

	ev := s.stampIfCompleted(t, before.Status)

	payload := models.EntryPayload{Patch: &patch, Before: &before}
	typ := models.EntryUpdate
	if before.Status != t.Status {
		typ = models.EntryStatusChanged
		payload.From = before.Status
		payload.To = t.Status
	}
	s.record(s.newEntry(id, typ, payload))
	s.persist()
	s.mu.Unlock()

	s.publish(ev)
	return nil
}

// MoveTask sets the task's status and reinserts it at index (or at the head
// when index is negative). Missing ids are a silent no-op; leaving done is
// rejected with ErrIllegalTransition.
func (s *Store) MoveTask(id string, next models.Status, index int) error {
	s.mu.Lock()

	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		s.log.Debug().Str("task_id", id).Msg("move of unknown task ignored")
		return nil
	}
	from := s.tasks[idx].Status
	if !models.CanTransition(from, next) {
		s.mu.Unlock()
		return errs.Wrapf(errs.ErrIllegalTransition, "cannot move task %s from %s to %s", id, from, next)
	}

	t := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)

	t.Status = next
	t.UpdatedAt = s.clk.Now()
	ev := s.stampIfCompleted(&t, from)

	if index < 0 || index > len(s.tasks) {
		index = 0
	}
	s.tasks = append(s.tasks[:index], append([]models.Task{t}, s.tasks[index:]...)...)

	s.record(s.newEntry(id, models.EntryStatusChanged, models.EntryPayload{From: from, To: next}))
	s.persist()
	s.mu.Unlock()

	s.publish(ev)
	return nil
}

// DeleteTask removes the task. Deleting an unknown id is a true no-op: no
// history entry is appended.
func (s *Store) DeleteTask(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 {
		s.log.Debug().Str("task_id", id).Msg("delete of unknown task ignored")
		return
	}
	snapshot := s.tasks[idx]
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.record(s.newEntry(id, models.EntryDelete, models.EntryPayload{Snapshot: &snapshot}))
	s.persist()
}

// StartTimer begins a timing session. No-op if the task is missing or a
// session is already running.
func (s *Store) StartTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 || s.tasks[idx].TimerActive() {
		return
	}
	t := &s.tasks[idx]
	now := s.clk.Now()
	t.TimerStartedAt = &now
	t.UpdatedAt = now
	s.record(s.newEntry(id, models.EntryUpdate, models.EntryPayload{Timer: "start"}))
	s.persist()
}

// PauseTimer folds the active session into TimeSpentMs. No-op if the task is
// missing or no session is running. Elapsed time is clamped at zero to
// tolerate clock skew.
func (s *Store) PauseTimer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.index(id)
	if idx < 0 || !s.tasks[idx].TimerActive() {
		return
	}
	t := &s.tasks[idx]
	now := s.clk.Now()
	add := s.foldSession(t, now)
	t.UpdatedAt = now
	s.record(s.newEntry(id, models.EntryUpdate, models.EntryPayload{Timer: "pause", AddMs: add}))
	s.persist()
}

// StopTimer folds any active session and, when markDone is set and the task
// is not already done, completes it. Either way exactly one history entry is
// appended.
func (s *Store) StopTimer(id string, markDone bool) {
	s.mu.Lock()

	idx := s.index(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	t := &s.tasks[idx]
	now := s.clk.Now()
	add := s.foldSession(t, now)
	t.UpdatedAt = now

	var ev *events.TaskCompleted
	if markDone && t.Status != models.StatusDone {
		from := t.Status
		t.Status = models.StatusDone
		ev = s.stampIfCompleted(t, from)
		s.record(s.newEntry(id, models.EntryStatusChanged, models.EntryPayload{
			From: from, To: models.StatusDone, Timer: "stop", AddMs: add,
		}))
	} else {
		s.record(s.newEntry(id, models.EntryUpdate, models.EntryPayload{Timer: "stop", AddMs: add}))
	}
	s.persist()
	s.mu.Unlock()

	s.publish(ev)
}

// index returns the slice position of id, or -1. Caller holds the lock.
func (s *Store) index(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// foldSession adds the elapsed session time to t and clears the session.
// Returns the milliseconds added (zero when no session was active). Elapsed
// time is clamped at zero to tolerate clock skew.
func (s *Store) foldSession(t *models.Task, now time.Time) int64 {
	if t.TimerStartedAt == nil {
		return 0
	}
	add := now.Sub(*t.TimerStartedAt).Milliseconds()
	if add < 0 {
		add = 0
	}
	t.TimeSpentMs += add
	t.TimerStartedAt = nil
	return add
}

// stampIfCompleted sets CompletedAt exactly once when the task has just
// transitioned into done, and returns the completion event to publish.
// Re-entering done never refreshes the stamp. Caller holds the lock.
func (s *Store) stampIfCompleted(t *models.Task, from models.Status) *events.TaskCompleted {
	if from == models.StatusDone || t.Status != models.StatusDone {
		return nil
	}
	now := s.clk.Now()
	if t.CompletedAt == nil {
		stamp := now
		t.CompletedAt = &stamp
	}
	return &events.TaskCompleted{Task: *t, At: *t.CompletedAt}
}
