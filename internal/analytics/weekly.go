// Package analytics computes chart-ready weekly series over the task list.
// Every function here is pure: the task slice is read-only input, "now" is an
// explicit argument, and identical inputs always produce identical output.
package analytics

import (
	"math"
	"time"

	"github.com/taskdeck/taskdeck/internal/models"
)

// WeekKeyFormat is the bucket key layout: the ISO date of the week's Monday.
const WeekKeyFormat = "2006-01-02"

// WeekStart returns midnight of the Monday of the ISO week containing t,
// in t's location.
func WeekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

// WeekCount is one bucket of the throughput series.
type WeekCount struct {
	WeekStart string `json:"week_start"`
	Count     int    `json:"count"`
}

// WeekCycle is one bucket of the cycle-time series.
type WeekCycle struct {
	WeekStart  string `json:"week_start"`
	AvgCycleMs int64  `json:"avg_cycle_ms"`
}

// WeekOnTime is one bucket of the on-time series.
type WeekOnTime struct {
	WeekStart string `json:"week_start"`
	OnTimePct int    `json:"on_time_pct"`
}

// AssigneeStat is the whole-history snapshot for one assignee. The app is
// single-user, so callers always get exactly one entry.
type AssigneeStat struct {
	Assignee           string `json:"assignee"`
	Completed          int    `json:"completed"`
	InProgress         int    `json:"in_progress"`
	TotalTimeMs        int64  `json:"total_time_ms"`
	AvgCycleTimeMs     int64  `json:"avg_cycle_time_ms"`
	ThroughputThisWeek int    `json:"throughput_this_week"`
}

// weekKeys returns the bucket keys for the window: weeks consecutive ISO
// weeks ending with the week containing now, earliest first.
func weekKeys(now time.Time, weeks int) []string {
	if weeks <= 0 {
		return nil
	}
	first := WeekStart(now).AddDate(0, 0, -7*(weeks-1))
	keys := make([]string, weeks)
	for i := 0; i < weeks; i++ {
		keys[i] = first.AddDate(0, 0, 7*i).Format(WeekKeyFormat)
	}
	return keys
}

// keyIndex maps bucket key to its slice position.
func keyIndex(keys []string) map[string]int {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return idx
}

// WeeklyDoneCounts buckets completed tasks into the window and counts them.
// Tasks completing outside the window are excluded, not clamped.
func WeeklyDoneCounts(tasks []models.Task, now time.Time, weeks int) []WeekCount {
	keys := weekKeys(now, weeks)
	idx := keyIndex(keys)
	out := make([]WeekCount, len(keys))
	for i, k := range keys {
		out[i] = WeekCount{WeekStart: k}
	}
	for i := range tasks {
		t := &tasks[i]
		if t.Status != models.StatusDone {
			continue
		}
		k := WeekStart(t.CompletionInstant()).Format(WeekKeyFormat)
		if j, ok := idx[k]; ok {
			out[j].Count++
		}
	}
	return out
}

// WeeklyCycleTime reports the mean creation-to-completion duration per
// bucket in milliseconds. Non-positive cycles are dropped, not zeroed;
// empty buckets yield 0.
func WeeklyCycleTime(tasks []models.Task, now time.Time, weeks int) []WeekCycle {
	keys := weekKeys(now, weeks)
	idx := keyIndex(keys)
	sums := make([]float64, len(keys))
	counts := make([]int, len(keys))
	for i := range tasks {
		t := &tasks[i]
		if t.Status != models.StatusDone {
			continue
		}
		done := t.CompletionInstant()
		k := WeekStart(done).Format(WeekKeyFormat)
		j, ok := idx[k]
		if !ok {
			continue
		}
		cycle := done.Sub(t.CreatedAt)
		if cycle <= 0 {
			continue
		}
		sums[j] += float64(cycle.Milliseconds())
		counts[j]++
	}
	out := make([]WeekCycle, len(keys))
	for i, k := range keys {
		out[i] = WeekCycle{WeekStart: k}
		if counts[i] > 0 {
			out[i].AvgCycleMs = int64(math.Round(sums[i] / float64(counts[i])))
		}
	}
	return out
}

// WeeklyOnTimeRate reports the percentage of completed tasks per bucket that
// met their due date. Tasks without a due date count as on time, and exact
// equality with the due date is on time. Empty buckets yield 0.
func WeeklyOnTimeRate(tasks []models.Task, now time.Time, weeks int) []WeekOnTime {
	keys := weekKeys(now, weeks)
	idx := keyIndex(keys)
	ontime := make([]int, len(keys))
	totals := make([]int, len(keys))
	for i := range tasks {
		t := &tasks[i]
		if t.Status != models.StatusDone {
			continue
		}
		done := t.CompletionInstant()
		k := WeekStart(done).Format(WeekKeyFormat)
		j, ok := idx[k]
		if !ok {
			continue
		}
		totals[j]++
		if t.DueDate == nil || !done.After(*t.DueDate) {
			ontime[j]++
		}
	}
	out := make([]WeekOnTime, len(keys))
	for i, k := range keys {
		out[i] = WeekOnTime{WeekStart: k}
		if totals[i] > 0 {
			out[i].OnTimePct = int(math.Round(float64(ontime[i]) / float64(totals[i]) * 100))
		}
	}
	return out
}

// AssigneeStats returns the single-user snapshot across the whole task list.
func AssigneeStats(tasks []models.Task, assignee string, now time.Time) []AssigneeStat {
	stat := AssigneeStat{Assignee: assignee}
	thisWeek := WeekStart(now)

	var cycleSum float64
	var cycleCount int
	for i := range tasks {
		t := &tasks[i]
		switch t.Status {
		case models.StatusDone:
			stat.Completed++
		case models.StatusInProgress:
			stat.InProgress++
		}
		stat.TotalTimeMs += t.TimeSpentMs

		if t.Status != models.StatusDone {
			continue
		}
		done := t.CompletionInstant()
		if cycle := done.Sub(t.CreatedAt); cycle > 0 {
			cycleSum += float64(cycle.Milliseconds())
			cycleCount++
		}
		if !done.Before(thisWeek) {
			stat.ThroughputThisWeek++
		}
	}
	if cycleCount > 0 {
		stat.AvgCycleTimeMs = int64(math.Round(cycleSum / float64(cycleCount)))
	}
	return []AssigneeStat{stat}
}
