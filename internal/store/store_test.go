package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/clock"
	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/events"
	"github.com/taskdeck/taskdeck/internal/models"
)

var testNow = time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

// memSnapshotter is an in-memory Snapshotter for store tests.
type memSnapshotter struct {
	tasks   []models.Task
	history []models.HistoryEntry
	loadErr error
	saves   int
}

func (m *memSnapshotter) Save(tasks []models.Task, history []models.HistoryEntry) error {
	m.tasks = append([]models.Task(nil), tasks...)
	m.history = append([]models.HistoryEntry(nil), history...)
	m.saves++
	return nil
}

func (m *memSnapshotter) Load() ([]models.Task, []models.HistoryEntry, error) {
	if m.loadErr != nil {
		return nil, nil, m.loadErr
	}
	return m.tasks, m.history, nil
}

// fakeSource scripts the remote task API.
type fakeSource struct {
	tasks []models.Task
	err   error
}

func (f *fakeSource) FetchTasks(context.Context) ([]models.Task, error) {
	return f.tasks, f.err
}

func newTestStore(t *testing.T) (*Store, *clock.Fixed, *[]events.TaskCompleted) {
	t.Helper()
	clk := clock.NewFixed(testNow)
	bus := events.NewBus(zerolog.Nop())
	var completed []events.TaskCompleted
	bus.SubscribeCompleted(func(ev events.TaskCompleted) {
		completed = append(completed, ev)
	})
	st := New(Options{Clock: clk, Bus: bus, Logger: zerolog.Nop()})
	return st, clk, &completed
}

func TestAddTask(t *testing.T) {
	t.Run("fills defaults and prepends", func(t *testing.T) {
		st, _, _ := newTestStore(t)

		first := st.AddTask(models.Task{Title: "first"})
		second := st.AddTask(models.Task{Title: "second"})

		assert.NotEmpty(t, first.ID)
		assert.Equal(t, models.StatusTodo, first.Status)
		assert.Equal(t, models.PriorityMedium, first.Priority)
		assert.Equal(t, testNow, first.CreatedAt)
		assert.Equal(t, first.CreatedAt, first.UpdatedAt)
		assert.Nil(t, first.TimerStartedAt)

		tasks := st.Tasks()
		require.Len(t, tasks, 2)
		assert.Equal(t, second.ID, tasks[0].ID)
		assert.Equal(t, first.ID, tasks[1].ID)
	})

	t.Run("records a create entry with a snapshot", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		history := st.History()
		require.Len(t, history, 1)
		assert.Equal(t, models.EntryCreate, history[0].Type)
		assert.Equal(t, task.ID, history[0].TaskID)
		require.NotNil(t, history[0].Payload.Fields)
		assert.Equal(t, "x", history[0].Payload.Fields.Title)
	})

	t.Run("re-adding an existing id is a no-op", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		original := st.AddTask(models.Task{ID: "shift-1", Title: "Morning shift"})
		again := st.AddTask(models.Task{ID: "shift-1", Title: "Renamed"})

		assert.Equal(t, original, again)
		assert.Len(t, st.Tasks(), 1)
		assert.Len(t, st.History(), 1)
	})
}

func TestReadIsolation(t *testing.T) {
	t.Run("writing through a returned due date pointer", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		due := testNow.Add(48 * time.Hour)
		task := st.AddTask(models.Task{Title: "deadline", DueDate: &due})

		got := st.Tasks()
		require.NotNil(t, got[0].DueDate)
		*got[0].DueDate = testNow.Add(-time.Hour)

		fresh, found := st.Task(task.ID)
		require.True(t, found)
		assert.Equal(t, due, *fresh.DueDate)
	})

	t.Run("writing through a history snapshot", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		st.AddTask(models.Task{Title: "audited"})

		history := st.History()
		require.NotNil(t, history[0].Payload.Fields)
		history[0].Payload.Fields.Title = "tampered"

		assert.Equal(t, "audited", st.History()[0].Payload.Fields.Title)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("applies patch and bumps UpdatedAt", func(t *testing.T) {
		st, clk, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "before"})
		clk.Advance(time.Minute)

		title := "after"
		require.NoError(t, st.UpdateTask(task.ID, models.Patch{Title: &title}))

		got, ok := st.Task(task.ID)
		require.True(t, ok)
		assert.Equal(t, "after", got.Title)
		assert.Equal(t, testNow.Add(time.Minute), got.UpdatedAt)

		history := st.History()
		require.Len(t, history, 2)
		assert.Equal(t, models.EntryUpdate, history[0].Type)
		assert.Equal(t, "before", history[0].Payload.Before.Title)
	})

	t.Run("status change records a status_changed entry", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		next := models.StatusInProgress
		require.NoError(t, st.UpdateTask(task.ID, models.Patch{Status: &next}))

		history := st.History()
		require.Len(t, history, 2)
		assert.Equal(t, models.EntryStatusChanged, history[0].Type)
		assert.Equal(t, models.StatusTodo, history[0].Payload.From)
		assert.Equal(t, models.StatusInProgress, history[0].Payload.To)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		title := "x"
		assert.NoError(t, st.UpdateTask("missing", models.Patch{Title: &title}))
		assert.Empty(t, st.History())
	})

	t.Run("leaving done is rejected", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		done := models.StatusDone
		require.NoError(t, st.UpdateTask(task.ID, models.Patch{Status: &done}))

		todo := models.StatusTodo
		err := st.UpdateTask(task.ID, models.Patch{Status: &todo})
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)

		// The rejected patch left no trace.
		got, _ := st.Task(task.ID)
		assert.Equal(t, models.StatusDone, got.Status)
	})
}

func TestCompletion(t *testing.T) {
	t.Run("first transition into done stamps and publishes once", func(t *testing.T) {
		st, clk, completed := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		clk.Advance(time.Hour)

		require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))

		got, _ := st.Task(task.ID)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, testNow.Add(time.Hour), *got.CompletedAt)

		require.Len(t, *completed, 1)
		assert.Equal(t, task.ID, (*completed)[0].Task.ID)
		assert.Equal(t, *got.CompletedAt, (*completed)[0].At)
	})

	t.Run("re-entering done never refreshes the stamp", func(t *testing.T) {
		st, clk, completed := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))
		first, _ := st.Task(task.ID)

		clk.Advance(time.Hour)
		require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))

		got, _ := st.Task(task.ID)
		assert.Equal(t, *first.CompletedAt, *got.CompletedAt)
		assert.Len(t, *completed, 1)
	})
}

func TestMoveTask(t *testing.T) {
	t.Run("reinserts at the requested index", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		a := st.AddTask(models.Task{Title: "a"})
		b := st.AddTask(models.Task{Title: "b"})
		c := st.AddTask(models.Task{Title: "c"})
		// board order is now c, b, a

		require.NoError(t, st.MoveTask(c.ID, models.StatusInProgress, 2))

		tasks := st.Tasks()
		require.Len(t, tasks, 3)
		assert.Equal(t, b.ID, tasks[0].ID)
		assert.Equal(t, a.ID, tasks[1].ID)
		assert.Equal(t, c.ID, tasks[2].ID)
		assert.Equal(t, models.StatusInProgress, tasks[2].Status)
	})

	t.Run("negative index means head", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		a := st.AddTask(models.Task{Title: "a"})
		st.AddTask(models.Task{Title: "b"})

		require.NoError(t, st.MoveTask(a.ID, models.StatusInProgress, -1))
		assert.Equal(t, a.ID, st.Tasks()[0].ID)
	})

	t.Run("out of range index clamps to head", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		a := st.AddTask(models.Task{Title: "a"})
		st.AddTask(models.Task{Title: "b"})

		require.NoError(t, st.MoveTask(a.ID, models.StatusTodo, 99))
		assert.Equal(t, a.ID, st.Tasks()[0].ID)
	})

	t.Run("leaving done is rejected", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))

		err := st.MoveTask(task.ID, models.StatusTodo, -1)
		assert.ErrorIs(t, err, errs.ErrIllegalTransition)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("removes the task and snapshots it", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		st.DeleteTask(task.ID)

		assert.Empty(t, st.Tasks())
		history := st.History()
		require.Len(t, history, 2)
		assert.Equal(t, models.EntryDelete, history[0].Type)
		require.NotNil(t, history[0].Payload.Snapshot)
		assert.Equal(t, "x", history[0].Payload.Snapshot.Title)
	})

	t.Run("deleting an unknown id appends no history", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		st.DeleteTask("missing")
		assert.Empty(t, st.History())
	})
}

func TestTimers(t *testing.T) {
	t.Run("start advance pause accumulates elapsed time", func(t *testing.T) {
		st, clk, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		st.StartTimer(task.ID)
		got, _ := st.Task(task.ID)
		require.NotNil(t, got.TimerStartedAt)

		clk.Advance(5 * time.Minute)
		st.PauseTimer(task.ID)

		got, _ = st.Task(task.ID)
		assert.Nil(t, got.TimerStartedAt)
		assert.Equal(t, (5 * time.Minute).Milliseconds(), got.TimeSpentMs)
	})

	t.Run("second start while running is a no-op", func(t *testing.T) {
		st, clk, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		st.StartTimer(task.ID)
		started, _ := st.Task(task.ID)
		clk.Advance(time.Minute)
		st.StartTimer(task.ID)

		got, _ := st.Task(task.ID)
		assert.Equal(t, *started.TimerStartedAt, *got.TimerStartedAt)
		assert.Len(t, st.History(), 2) // create + one start
	})

	t.Run("pause without a session is a no-op", func(t *testing.T) {
		st, _, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		st.PauseTimer(task.ID)
		assert.Len(t, st.History(), 1)
	})

	t.Run("sessions accumulate across restarts", func(t *testing.T) {
		st, clk, _ := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})

		st.StartTimer(task.ID)
		clk.Advance(5 * time.Minute)
		st.PauseTimer(task.ID)
		st.StartTimer(task.ID)
		clk.Advance(2 * time.Minute)
		st.StopTimer(task.ID, false)

		got, _ := st.Task(task.ID)
		assert.Equal(t, (7 * time.Minute).Milliseconds(), got.TimeSpentMs)
		assert.Nil(t, got.TimerStartedAt)
		assert.NotEqual(t, models.StatusDone, got.Status)
	})

	t.Run("stop with markDone completes in one entry", func(t *testing.T) {
		st, clk, completed := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		require.NoError(t, st.MoveTask(task.ID, models.StatusInProgress, -1))
		st.StartTimer(task.ID)
		clk.Advance(time.Minute)

		st.StopTimer(task.ID, true)

		got, _ := st.Task(task.ID)
		assert.Equal(t, models.StatusDone, got.Status)
		require.NotNil(t, got.CompletedAt)
		assert.Equal(t, time.Minute.Milliseconds(), got.TimeSpentMs)
		assert.Len(t, *completed, 1)

		// create, move, start, stop+done: exactly four entries
		history := st.History()
		require.Len(t, history, 4)
		assert.Equal(t, models.EntryStatusChanged, history[0].Type)
		assert.Equal(t, "stop", history[0].Payload.Timer)
		assert.Equal(t, time.Minute.Milliseconds(), history[0].Payload.AddMs)
	})

	t.Run("stop with markDone on a done task stays an update", func(t *testing.T) {
		st, _, completed := newTestStore(t)
		task := st.AddTask(models.Task{Title: "x"})
		require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))

		st.StopTimer(task.ID, true)

		history := st.History()
		assert.Equal(t, models.EntryUpdate, history[0].Type)
		assert.Len(t, *completed, 1) // only the original completion
	})
}

func TestHistoryOrdering(t *testing.T) {
	st, clk, _ := newTestStore(t)
	task := st.AddTask(models.Task{Title: "x"})
	clk.Advance(time.Second)
	require.NoError(t, st.MoveTask(task.ID, models.StatusInProgress, -1))
	clk.Advance(time.Second)
	st.StartTimer(task.ID)

	history := st.History()
	require.Len(t, history, 3)
	// Most recent first, timestamps non-increasing.
	for i := 0; i < len(history)-1; i++ {
		assert.False(t, history[i].At.Before(history[i+1].At))
	}
	assert.Equal(t, models.EntryCreate, history[len(history)-1].Type)
}

func TestPersistence(t *testing.T) {
	t.Run("every mutation writes through to the cache", func(t *testing.T) {
		snap := &memSnapshotter{}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Logger: zerolog.Nop()})

		task := st.AddTask(models.Task{Title: "x"})
		st.StartTimer(task.ID)
		st.DeleteTask(task.ID)

		assert.Equal(t, 3, snap.saves)
		assert.Empty(t, snap.tasks)
		assert.Len(t, snap.history, 3)
	})
}

func TestHydrate(t *testing.T) {
	cached := []models.Task{{ID: "c1", Title: "cached", Status: models.StatusTodo}}
	cachedHistory := []models.HistoryEntry{{ID: "h1", TaskID: "c1", Type: models.EntryCreate}}

	t.Run("remote wins when reachable, history stays local", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached, history: cachedHistory}
		src := &fakeSource{tasks: []models.Task{{ID: "r1", Title: "remote"}}}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Source: src, Logger: zerolog.Nop()})

		st.Hydrate(context.Background())

		require.True(t, st.Hydrated())
		tasks := st.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "r1", tasks[0].ID)
		assert.Len(t, st.History(), 1)
	})

	t.Run("falls back to cache when the remote fails", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached, history: cachedHistory}
		src := &fakeSource{err: errs.ErrRemoteUnavailable}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Source: src, Logger: zerolog.Nop()})

		st.Hydrate(context.Background())

		tasks := st.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "c1", tasks[0].ID)
	})

	t.Run("no source means cache only", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Logger: zerolog.Nop()})
		st.Hydrate(context.Background())
		assert.Len(t, st.Tasks(), 1)
	})

	t.Run("unreadable cache starts empty", func(t *testing.T) {
		snap := &memSnapshotter{loadErr: errors.New("corrupt")}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Logger: zerolog.Nop()})
		st.Hydrate(context.Background())
		assert.True(t, st.Hydrated())
		assert.Empty(t, st.Tasks())
	})

	t.Run("backfills completion stamps on legacy done tasks", func(t *testing.T) {
		updated := testNow.Add(-time.Hour)
		snap := &memSnapshotter{tasks: []models.Task{
			{ID: "d1", Status: models.StatusDone, UpdatedAt: updated},
			{ID: "d2", Status: models.StatusDone},
		}}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Logger: zerolog.Nop()})

		st.Hydrate(context.Background())

		tasks := st.Tasks()
		require.Len(t, tasks, 2)
		require.NotNil(t, tasks[0].CompletedAt)
		assert.Equal(t, updated, *tasks[0].CompletedAt)
		require.NotNil(t, tasks[1].CompletedAt)
		assert.Equal(t, testNow, *tasks[1].CompletedAt)
	})

	t.Run("sync forces a refresh after hydration", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached}
		src := &fakeSource{err: errs.ErrRemoteUnavailable}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Source: src, Logger: zerolog.Nop()})

		st.Hydrate(context.Background())
		require.Equal(t, "c1", st.Tasks()[0].ID)

		src.err = nil
		src.tasks = []models.Task{{ID: "r1", Title: "remote"}}
		require.NoError(t, st.Sync(context.Background()))

		tasks := st.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "r1", tasks[0].ID)
		assert.Equal(t, "r1", snap.tasks[0].ID) // persisted
	})

	t.Run("failed sync reports and keeps state", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached}
		src := &fakeSource{tasks: []models.Task{{ID: "r1"}}}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Source: src, Logger: zerolog.Nop()})
		st.Hydrate(context.Background())

		src.err = errs.ErrRemoteUnavailable
		err := st.Sync(context.Background())
		assert.ErrorIs(t, err, errs.ErrRemoteUnavailable)
		assert.Equal(t, "r1", st.Tasks()[0].ID)
	})

	t.Run("second hydrate is a no-op", func(t *testing.T) {
		snap := &memSnapshotter{tasks: cached}
		src := &fakeSource{tasks: []models.Task{{ID: "r1"}}}
		st := New(Options{Clock: clock.NewFixed(testNow), Cache: snap, Source: src, Logger: zerolog.Nop()})

		st.Hydrate(context.Background())
		src.tasks = []models.Task{{ID: "r2"}}
		st.Hydrate(context.Background())

		tasks := st.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, "r1", tasks[0].ID)
	})
}

func TestAnalyticsWrappers(t *testing.T) {
	st, clk, _ := newTestStore(t)
	task := st.AddTask(models.Task{Title: "x"})
	clk.Advance(2 * time.Hour)
	require.NoError(t, st.MoveTask(task.ID, models.StatusDone, -1))

	counts := st.WeeklyDoneCounts(1)
	require.Len(t, counts, 1)
	assert.Equal(t, 1, counts[0].Count)

	cycles := st.WeeklyCycleTime(1)
	require.Len(t, cycles, 1)
	assert.Equal(t, (2 * time.Hour).Milliseconds(), cycles[0].AvgCycleMs)

	stats := st.AssigneeStats()
	require.Len(t, stats, 1)
	assert.Equal(t, "Me", stats[0].Assignee)
	assert.Equal(t, 1, stats[0].Completed)
}
