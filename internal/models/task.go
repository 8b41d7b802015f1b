package models

import (
	"time"
)

// Status represents the board column a task lives in
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// CanTransition reports whether a status change is legal.
// Self-transitions are always allowed; done is terminal.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	if from == StatusDone {
		return false
	}
	return true
}

// Priority represents task urgency
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// IsValid reports whether p is one of the known priorities
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Task represents a unit of work on the board
type Task struct {
	ID          string `gorm:"primarykey" json:"id"`
	Title       string `gorm:"not null" json:"title"`
	Description string `json:"description"`

	Status   Status   `gorm:"default:todo" json:"status"`
	Priority Priority `gorm:"default:medium" json:"priority"`

	DueDate         *time.Time `json:"due_date"`
	EstimateMinutes int        `json:"estimate_minutes"`

	// Timer accounting: at most one active session per task
	TimeSpentMs    int64      `json:"time_spent_ms"`
	TimerStartedAt *time.Time `json:"timer_started_at"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Position preserves board ordering across cache round-trips
	Position int `json:"-"`
}

// Clone returns a deep copy of the task. The pointer fields are duplicated
// so writes through the copy never reach the original.
func (t Task) Clone() Task {
	out := t
	out.DueDate = clonePtr(t.DueDate)
	out.TimerStartedAt = clonePtr(t.TimerStartedAt)
	out.CompletedAt = clonePtr(t.CompletedAt)
	return out
}

// clonePtr duplicates a pointer's value, preserving nil.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Completed reports whether the task has ever reached done
func (t *Task) Completed() bool {
	return t.CompletedAt != nil
}

// CompletionInstant returns the timestamp used to attribute the task to a
// weekly bucket: CompletedAt when present, UpdatedAt as the legacy fallback.
func (t *Task) CompletionInstant() time.Time {
	if t.CompletedAt != nil {
		return *t.CompletedAt
	}
	return t.UpdatedAt
}

// TimerActive reports whether a timing session is running
func (t *Task) TimerActive() bool {
	return t.TimerStartedAt != nil
}

// Patch describes a partial update to a task. Nil fields are left untouched;
// ClearDueDate removes the due date (a nil DueDate alone means "no change").
type Patch struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Status          *Status    `json:"status,omitempty"`
	Priority        *Priority  `json:"priority,omitempty"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	ClearDueDate    bool       `json:"clear_due_date,omitempty"`
	EstimateMinutes *int       `json:"estimate_minutes,omitempty"`
	TimeSpentMs     *int64     `json:"time_spent_ms,omitempty"`
}

// Clone returns a deep copy of the patch.
func (p Patch) Clone() Patch {
	out := p
	out.Title = clonePtr(p.Title)
	out.Description = clonePtr(p.Description)
	out.Status = clonePtr(p.Status)
	out.Priority = clonePtr(p.Priority)
	out.DueDate = clonePtr(p.DueDate)
	out.EstimateMinutes = clonePtr(p.EstimateMinutes)
	out.TimeSpentMs = clonePtr(p.TimeSpentMs)
	return out
}

// IsZero reports whether the patch changes nothing
func (p Patch) IsZero() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Priority == nil && p.DueDate == nil && !p.ClearDueDate &&
		p.EstimateMinutes == nil && p.TimeSpentMs == nil
}

// Apply merges the patch onto the task. Timestamps and completion stamping
// are the store's responsibility, not the patch's.
func (p Patch) Apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.ClearDueDate {
		t.DueDate = nil
	}
	if p.EstimateMinutes != nil {
		t.EstimateMinutes = *p.EstimateMinutes
	}
	if p.TimeSpentMs != nil {
		t.TimeSpentMs = *p.TimeSpentMs
	}
}
