// Package events decouples the task store from collaborators that react to
// completions. The store publishes; subscribers (goal tracker, future
// integrations) register handlers. Handler failures are isolated so a broken
// subscriber can never fail or roll back a mutation.
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskdeck/taskdeck/internal/models"
)

// TaskCompleted is published once per task, on its first transition into
// done.
type TaskCompleted struct {
	Task models.Task
	At   time.Time
}

// Bus is a minimal synchronous publish/subscribe hub.
type Bus struct {
	mu       sync.Mutex
	handlers []func(TaskCompleted)
	log      zerolog.Logger
}

// NewBus returns a Bus that logs handler panics through log.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{log: log}
}

// SubscribeCompleted registers a handler for TaskCompleted events.
func (b *Bus) SubscribeCompleted(h func(TaskCompleted)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// PublishCompleted delivers ev to every subscriber. A panicking handler is
// recovered and logged; remaining handlers still run.
func (b *Bus) PublishCompleted(ev TaskCompleted) {
	b.mu.Lock()
	handlers := make([]func(TaskCompleted), len(b.handlers))
	copy(handlers, b.handlers)
	b.mu.Unlock()

	for _, h := range handlers {
		b.deliver(h, ev)
	}
}

func (b *Bus) deliver(h func(TaskCompleted), ev TaskCompleted) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Warn().
				Str("task_id", ev.Task.ID).
				Interface("panic", r).
				Msg("completion handler panicked")
		}
	}()
	h(ev)
}
