package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/taskdeck/taskdeck/internal/analytics"
	"github.com/taskdeck/taskdeck/internal/goals"
)

func TestRenderStats(t *testing.T) {
	report := StatsReport{
		Done: []analytics.WeekCount{
			{WeekStart: "2026-08-17", Count: 2},
			{WeekStart: "2026-08-24", Count: 5},
		},
		Cycle: []analytics.WeekCycle{
			{WeekStart: "2026-08-17", AvgCycleMs: (26 * time.Hour).Milliseconds()},
			{WeekStart: "2026-08-24", AvgCycleMs: 0},
		},
		OnTime: []analytics.WeekOnTime{
			{WeekStart: "2026-08-17", OnTimePct: 50},
			{WeekStart: "2026-08-24", OnTimePct: 100},
		},
		Assignee: analytics.AssigneeStat{
			Assignee:           "Me",
			Completed:          7,
			InProgress:         2,
			TotalTimeMs:        (3 * time.Hour).Milliseconds(),
			ThroughputThisWeek: 5,
		},
		Goals: goals.Snapshot{WeeklyGoal: 7, StreakDays: 3},
	}

	out := RenderStats(report)

	assert.Contains(t, out, "2026-08-17")
	assert.Contains(t, out, "2026-08-24")
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "1.1d") // 26h as days
	assert.Contains(t, out, "goal 7")
	assert.Contains(t, out, "streak")
}

func TestBarFor(t *testing.T) {
	assert.Equal(t, strings.Repeat("░", statsBarWidth), barFor(0, 10))
	assert.Equal(t, strings.Repeat("░", statsBarWidth), barFor(5, 0))
	assert.Equal(t, strings.Repeat("█", statsBarWidth), barFor(10, 10))

	half := barFor(5, 10)
	assert.Equal(t, statsBarWidth/2, strings.Count(half, "█"))

	// Tiny non-zero values still show at least one cell.
	assert.Equal(t, 1, strings.Count(barFor(1, 1000), "█"))
}

func TestFormatSpent(t *testing.T) {
	assert.Equal(t, "30s", FormatSpent(30*time.Second))
	assert.Equal(t, "5m", FormatSpent(5*time.Minute))
	assert.Equal(t, "1.5h", FormatSpent(90*time.Minute))
}

func TestFormatCycle(t *testing.T) {
	assert.Equal(t, "-", formatCycle(0))
	assert.Equal(t, "45m", formatCycle((45*time.Minute).Milliseconds()))
	assert.Equal(t, "2.5h", formatCycle((150*time.Minute).Milliseconds()))
	assert.Equal(t, "2.0d", formatCycle((48*time.Hour).Milliseconds()))
}
