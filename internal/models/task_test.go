package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"todo to in-progress", StatusTodo, StatusInProgress, true},
		{"todo to done", StatusTodo, StatusDone, true},
		{"in-progress to todo", StatusInProgress, StatusTodo, true},
		{"in-progress to done", StatusInProgress, StatusDone, true},
		{"done to todo rejected", StatusDone, StatusTodo, false},
		{"done to in-progress rejected", StatusDone, StatusInProgress, false},
		{"done to done allowed", StatusDone, StatusDone, true},
		{"todo to todo allowed", StatusTodo, StatusTodo, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanTransition(tc.from, tc.to))
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	assert.True(t, StatusTodo.IsValid())
	assert.True(t, StatusInProgress.IsValid())
	assert.True(t, StatusDone.IsValid())
	assert.False(t, Status("archived").IsValid())
	assert.False(t, Status("").IsValid())
}

func TestCompletionInstant(t *testing.T) {
	t.Run("prefers CompletedAt", func(t *testing.T) {
		done := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		updated := done.Add(time.Hour)
		task := Task{UpdatedAt: updated, CompletedAt: &done}
		assert.Equal(t, done, task.CompletionInstant())
	})

	t.Run("falls back to UpdatedAt", func(t *testing.T) {
		updated := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
		task := Task{UpdatedAt: updated}
		assert.Equal(t, updated, task.CompletionInstant())
	})
}

func TestPatch(t *testing.T) {
	t.Run("zero patch changes nothing", func(t *testing.T) {
		assert.True(t, Patch{}.IsZero())

		title := "x"
		assert.False(t, Patch{Title: &title}.IsZero())
		assert.False(t, Patch{ClearDueDate: true}.IsZero())
	})

	t.Run("applies set fields only", func(t *testing.T) {
		due := time.Date(2026, 4, 1, 23, 59, 59, 0, time.UTC)
		task := Task{
			Title:       "original",
			Description: "keep me",
			Status:      StatusTodo,
			Priority:    PriorityMedium,
			DueDate:     &due,
		}

		title := "renamed"
		prio := PriorityHigh
		Patch{Title: &title, Priority: &prio}.Apply(&task)

		assert.Equal(t, "renamed", task.Title)
		assert.Equal(t, "keep me", task.Description)
		assert.Equal(t, StatusTodo, task.Status)
		assert.Equal(t, PriorityHigh, task.Priority)
		assert.Equal(t, &due, task.DueDate)
	})

	t.Run("ClearDueDate removes the due date", func(t *testing.T) {
		due := time.Now()
		task := Task{DueDate: &due}
		Patch{ClearDueDate: true}.Apply(&task)
		assert.Nil(t, task.DueDate)
	})

	t.Run("empty description pointer clears the field", func(t *testing.T) {
		task := Task{Description: "old"}
		empty := ""
		Patch{Description: &empty}.Apply(&task)
		assert.Empty(t, task.Description)
	})
}

func TestClone(t *testing.T) {
	t.Run("task clone does not share pointer fields", func(t *testing.T) {
		due := time.Date(2026, 5, 1, 23, 59, 59, 0, time.UTC)
		done := due.Add(-time.Hour)
		started := due.Add(-2 * time.Hour)
		task := Task{ID: "t1", DueDate: &due, CompletedAt: &done, TimerStartedAt: &started}

		dup := task.Clone()
		assert.Equal(t, task, dup)
		assert.NotSame(t, task.DueDate, dup.DueDate)
		assert.NotSame(t, task.CompletedAt, dup.CompletedAt)
		assert.NotSame(t, task.TimerStartedAt, dup.TimerStartedAt)

		*dup.DueDate = due.Add(48 * time.Hour)
		assert.Equal(t, due, *task.DueDate)
	})

	t.Run("nil pointers stay nil", func(t *testing.T) {
		dup := Task{ID: "t2"}.Clone()
		assert.Nil(t, dup.DueDate)
		assert.Nil(t, dup.CompletedAt)
		assert.Nil(t, dup.TimerStartedAt)
	})

	t.Run("payload clone detaches nested snapshots", func(t *testing.T) {
		due := time.Date(2026, 5, 1, 23, 59, 59, 0, time.UTC)
		title := "before rename"
		entry := HistoryEntry{
			ID:   "e1",
			Type: EntryUpdate,
			Payload: EntryPayload{
				Patch:  &Patch{Title: &title, DueDate: &due},
				Before: &Task{ID: "t1", Title: title, DueDate: &due},
			},
		}

		dup := entry.Clone()
		assert.Equal(t, entry, dup)
		assert.NotSame(t, entry.Payload.Patch, dup.Payload.Patch)
		assert.NotSame(t, entry.Payload.Before, dup.Payload.Before)
		assert.NotSame(t, entry.Payload.Before.DueDate, dup.Payload.Before.DueDate)

		*dup.Payload.Patch.Title = "changed"
		assert.Equal(t, "before rename", *entry.Payload.Patch.Title)
	})
}

func TestTimerActive(t *testing.T) {
	now := time.Now()
	assert.False(t, (&Task{}).TimerActive())
	assert.True(t, (&Task{TimerStartedAt: &now}).TimerActive())
}
