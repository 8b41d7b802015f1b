package models

import (
	"time"
)

// EntryType classifies a history entry
type EntryType string

const (
	EntryCreate EntryType = "create"
	EntryUpdate EntryType = "update"
	// EntryStatusChanged is the single canonical encoding for every status
	// change, whether it came from a move or an update patch. Consumers
	// looking for completions match Type == EntryStatusChanged && To == done.
	EntryStatusChanged EntryType = "status_changed"
	EntryDelete        EntryType = "delete"
)

// EntryPayload carries the variant detail for a history entry. Only the
// fields relevant to the entry's type are populated.
type EntryPayload struct {
	// status_changed
	From Status `json:"from,omitempty"`
	To   Status `json:"to,omitempty"`

	// update (and status_changed driven by an update patch)
	Patch  *Patch `json:"patch,omitempty"`
	Before *Task  `json:"before,omitempty"`

	// delete
	Snapshot *Task `json:"snapshot,omitempty"`

	// timer bookkeeping on update entries
	Timer string `json:"timer,omitempty"` // "start", "pause" or "stop"
	AddMs int64  `json:"add_ms,omitempty"`

	// create
	Fields *Task `json:"fields,omitempty"`
}

// Clone returns a deep copy of the payload.
func (p EntryPayload) Clone() EntryPayload {
	out := p
	if p.Patch != nil {
		dup := p.Patch.Clone()
		out.Patch = &dup
	}
	if p.Before != nil {
		dup := p.Before.Clone()
		out.Before = &dup
	}
	if p.Snapshot != nil {
		dup := p.Snapshot.Clone()
		out.Snapshot = &dup
	}
	if p.Fields != nil {
		dup := p.Fields.Clone()
		out.Fields = &dup
	}
	return out
}

// HistoryEntry is an immutable audit record of one store mutation.
// Entries are prepended to the log and never modified or removed.
type HistoryEntry struct {
	ID      string       `gorm:"primarykey" json:"id"`
	TaskID  string       `gorm:"index" json:"task_id"`
	Type    EntryType    `json:"type"`
	At      time.Time    `json:"at"`
	Payload EntryPayload `gorm:"serializer:json" json:"payload"`

	// Position preserves log ordering across cache round-trips
	Position int `json:"-"`
}

// Clone returns a deep copy of the entry, payload included.
func (e HistoryEntry) Clone() HistoryEntry {
	out := e
	out.Payload = e.Payload.Clone()
	return out
}
