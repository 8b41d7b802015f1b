package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/analytics"
	"github.com/taskdeck/taskdeck/internal/goals"
)

// StatsReport bundles everything the stats view renders.
type StatsReport struct {
	Done     []analytics.WeekCount
	Cycle    []analytics.WeekCycle
	OnTime   []analytics.WeekOnTime
	Assignee analytics.AssigneeStat
	Goals    goals.Snapshot
}

const statsBarWidth = 24

var (
	statsHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color(ColorAccentBright))
	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSecondaryText))
	statsBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorAccentMain))
	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorPrimaryText))
)

// RenderStats renders the weekly analytics report as plain terminal output.
func RenderStats(r StatsReport) string {
	var b strings.Builder

	b.WriteString(statsHeaderStyle.Render("Tasks completed per week"))
	b.WriteString("\n")
	maxDone := 0
	for _, w := range r.Done {
		if w.Count > maxDone {
			maxDone = w.Count
		}
	}
	for _, w := range r.Done {
		bar := barFor(w.Count, maxDone)
		fmt.Fprintf(&b, "  %s %s %s\n",
			statsLabelStyle.Render(w.WeekStart),
			statsBarStyle.Render(bar),
			statsValueStyle.Render(fmt.Sprintf("%d", w.Count)))
	}

	b.WriteString("\n")
	b.WriteString(statsHeaderStyle.Render("Average cycle time"))
	b.WriteString("\n")
	var maxCycle int64
	for _, w := range r.Cycle {
		if w.AvgCycleMs > maxCycle {
			maxCycle = w.AvgCycleMs
		}
	}
	for _, w := range r.Cycle {
		bar := barFor(int(w.AvgCycleMs/1000), int(maxCycle/1000))
		fmt.Fprintf(&b, "  %s %s %s\n",
			statsLabelStyle.Render(w.WeekStart),
			statsBarStyle.Render(bar),
			statsValueStyle.Render(formatCycle(w.AvgCycleMs)))
	}

	b.WriteString("\n")
	b.WriteString(statsHeaderStyle.Render("On-time completion rate"))
	b.WriteString("\n")
	for _, w := range r.OnTime {
		bar := barFor(w.OnTimePct, 100)
		fmt.Fprintf(&b, "  %s %s %s\n",
			statsLabelStyle.Render(w.WeekStart),
			statsBarStyle.Render(bar),
			statsValueStyle.Render(fmt.Sprintf("%d%%", w.OnTimePct)))
	}

	b.WriteString("\n")
	b.WriteString(statsHeaderStyle.Render("All time"))
	b.WriteString("\n")
	a := r.Assignee
	fmt.Fprintf(&b, "  %s completed, %s in progress\n",
		statsValueStyle.Render(fmt.Sprintf("%d", a.Completed)),
		statsValueStyle.Render(fmt.Sprintf("%d", a.InProgress)))
	fmt.Fprintf(&b, "  Tracked %s, average cycle %s\n",
		statsValueStyle.Render(FormatSpent(time.Duration(a.TotalTimeMs)*time.Millisecond)),
		statsValueStyle.Render(formatCycle(a.AvgCycleTimeMs)))
	fmt.Fprintf(&b, "  This week: %s done (goal %d), streak %s\n",
		statsValueStyle.Render(fmt.Sprintf("%d", a.ThroughputThisWeek)),
		r.Goals.WeeklyGoal,
		statsValueStyle.Render(fmt.Sprintf("%d day(s)", r.Goals.StreakDays)))

	return b.String()
}

// barFor scales value against max into a fixed-width bar.
func barFor(value, max int) string {
	if max <= 0 || value <= 0 {
		return strings.Repeat("░", statsBarWidth)
	}
	filled := value * statsBarWidth / max
	if filled < 1 {
		filled = 1
	}
	if filled > statsBarWidth {
		filled = statsBarWidth
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", statsBarWidth-filled)
}

// formatCycle renders an average cycle time in the largest sensible unit.
func formatCycle(ms int64) string {
	if ms <= 0 {
		return "-"
	}
	d := time.Duration(ms) * time.Millisecond
	switch {
	case d >= 24*time.Hour:
		return fmt.Sprintf("%.1fd", d.Hours()/24)
	case d >= time.Hour:
		return fmt.Sprintf("%.1fh", d.Hours())
	default:
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
}
