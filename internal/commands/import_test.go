package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/models"
)

func TestShiftTask(t *testing.T) {
	starts := time.Date(2026, 8, 28, 8, 0, 0, 0, time.UTC)
	ends := starts.Add(8 * time.Hour)

	t.Run("same ref always yields the same id", func(t *testing.T) {
		a := shiftTask("SHIFT-20260828-A1", shiftRecord{Title: "Morning"})
		b := shiftTask("SHIFT-20260828-A1", shiftRecord{Title: "Renamed later"})
		c := shiftTask("SHIFT-20260828-B2", shiftRecord{Title: "Morning"})

		assert.Equal(t, a.ID, b.ID)
		assert.NotEqual(t, a.ID, c.ID)
	})

	t.Run("maps shift fields onto the task", func(t *testing.T) {
		task := shiftTask("SHIFT-20260828-A1", shiftRecord{
			Title:    "Morning shift",
			StartsAt: &starts,
			EndsAt:   &ends,
		})

		assert.Equal(t, "Morning shift", task.Title)
		assert.Contains(t, task.Description, "SHIFT-20260828-A1")
		assert.Equal(t, models.PriorityMedium, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.True(t, task.DueDate.Equal(ends))
		assert.Equal(t, 480, task.EstimateMinutes)
	})

	t.Run("missing title falls back to the ref", func(t *testing.T) {
		task := shiftTask("SHIFT-20260828-A1", shiftRecord{})
		assert.Equal(t, "Shift SHIFT-20260828-A1", task.Title)
		assert.Zero(t, task.EstimateMinutes)
	})
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", shortID("123456789abc"))
	assert.Equal(t, "short", shortID("short"))
}
