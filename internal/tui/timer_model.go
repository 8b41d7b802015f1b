package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
	"github.com/taskdeck/taskdeck/internal/store"
)

// timerTickMsg is sent every second to refresh the clock.
type timerTickMsg struct{}

// timerAction is what the user chose on exit.
type timerAction int

const (
	timerLeaveRunning timerAction = iota
	timerStop
	timerStopDone
	timerPause
)

// TimerModel is the fullscreen timer view for one running session.
type TimerModel struct {
	task       models.Task
	startedAt  time.Time
	baseSpent  time.Duration
	elapsed    time.Duration
	width      int
	height     int
	animations bool
	pulse      int

	action timerAction
}

// NewTimerModel builds the timer view for a task with a running session.
func NewTimerModel(task models.Task, animations bool) TimerModel {
	started := time.Now()
	if task.TimerStartedAt != nil {
		started = *task.TimerStartedAt
	}
	return TimerModel{
		task:       task,
		startedAt:  started,
		baseSpent:  time.Duration(task.TimeSpentMs) * time.Millisecond,
		elapsed:    time.Since(started),
		animations: animations,
	}
}

// Init starts the per-second ticker.
func (m TimerModel) Init() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return timerTickMsg{}
	})
}

// Update handles messages.
func (m TimerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case timerTickMsg:
		m.elapsed = time.Since(m.startedAt)
		if m.animations {
			m.pulse = (m.pulse + 1) % 2
		}
		return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
			return timerTickMsg{}
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "s":
			m.action = timerStop
			return m, tea.Quit
		case "d":
			m.action = timerStopDone
			return m, tea.Quit
		case "p":
			m.action = timerPause
			return m, tea.Quit
		case "ctrl+c", "esc", "q":
			m.action = timerLeaveRunning
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the timer.
func (m TimerModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := "TRACKING TIME"
	if m.animations && m.pulse == 1 {
		header = "● " + header + " ●"
	} else {
		header = "○ " + header + " ○"
	}

	parts := []string{
		lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render(header),
		lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorPrimaryText)).
			Render(m.task.Title),
		renderBigClock(m.elapsed),
		m.renderDetails(),
	}

	content := strings.Join(parts, "\n\n")
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)

	help := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("s stop · d stop & done · p pause · esc leave running")

	return body + "\n" + help
}

// renderDetails shows session start and accumulated time.
func (m TimerModel) renderDetails() string {
	total := m.baseSpent + m.elapsed
	lines := []string{
		fmt.Sprintf("Session started %s", m.startedAt.Format("15:04:05")),
		fmt.Sprintf("Total tracked %s", FormatSpent(total)),
	}
	if m.task.DueDate != nil {
		lines = append(lines, "Due "+parser.FormatDue(m.task.DueDate, time.Now()))
	}
	if m.task.EstimateMinutes > 0 {
		lines = append(lines, fmt.Sprintf("Estimate %dm", m.task.EstimateMinutes))
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Align(lipgloss.Center).
		Render(strings.Join(lines, "\n"))
}

// clockFont is a 5-row block font for the session clock.
var clockFont = map[rune][5]string{
	'0': {" ▄▄ ", "█  █", "█  █", "█  █", " ▀▀ "},
	'1': {" ▄  ", "▀█  ", " █  ", " █  ", "▄█▄ "},
	'2': {"▄▄▄ ", "   █", " ▄▄▀", "█   ", "▀▀▀▀"},
	'3': {"▄▄▄ ", "   █", " ▀▀█", "   █", "▀▀▀ "},
	'4': {"▄  ▄", "█  █", "▀▀▀█", "   █", "   ▀"},
	'5': {"▄▄▄▄", "█   ", "▀▀▀█", "   █", "▀▀▀ "},
	'6': {" ▄▄ ", "█   ", "█▀▀█", "█  █", " ▀▀ "},
	'7': {"▄▄▄▄", "   █", "  █ ", " █  ", " █  "},
	'8': {" ▄▄ ", "█  █", " ▀▀ ", "█  █", " ▀▀ "},
	'9': {" ▄▄ ", "█  █", " ▀▀█", "   █", " ▀▀ "},
	':': {"    ", " ▀  ", "    ", " ▀  ", "    "},
}

// renderBigClock draws elapsed as a large HH:MM:SS (or MM:SS) readout.
func renderBigClock(elapsed time.Duration) string {
	h := int(elapsed.Hours())
	min := int(elapsed.Minutes()) % 60
	sec := int(elapsed.Seconds()) % 60

	text := fmt.Sprintf("%02d:%02d", min, sec)
	if h > 0 {
		text = fmt.Sprintf("%02d:%02d:%02d", h, min, sec)
	}

	var rows [5]strings.Builder
	for _, ch := range text {
		glyph, ok := clockFont[ch]
		if !ok {
			continue
		}
		for i := 0; i < 5; i++ {
			rows[i].WriteString(glyph[i])
			rows[i].WriteString(" ")
		}
	}

	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccentBright))
	lines := make([]string, 5)
	for i := range rows {
		lines[i] = style.Render(rows[i].String())
	}
	return strings.Join(lines, "\n")
}

// FormatSpent renders a tracked duration compactly.
func FormatSpent(d time.Duration) string {
	switch {
	case d.Hours() >= 1:
		return fmt.Sprintf("%.1fh", d.Hours())
	case d.Minutes() >= 1:
		return fmt.Sprintf("%.0fm", d.Minutes())
	default:
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
}

// RunTimer opens the fullscreen timer for a task with a running session and
// applies the action chosen on exit.
func RunTimer(st *store.Store, task models.Task, animations bool) error {
	p := tea.NewProgram(NewTimerModel(task, animations), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(TimerModel)
	if !ok {
		return nil
	}

	switch m.action {
	case timerStop, timerStopDone:
		st.StopTimer(task.ID, m.action == timerStopDone)
		stopped, found := st.Task(task.ID)
		if !found {
			return nil
		}
		fmt.Printf("Stopped timer on %q (total %s)\n",
			stopped.Title, FormatSpent(time.Duration(stopped.TimeSpentMs)*time.Millisecond))
		if m.action == timerStopDone {
			fmt.Printf("Marked done: %s\n", stopped.Title)
		}

	case timerPause:
		st.PauseTimer(task.ID)
		paused, found := st.Task(task.ID)
		if !found {
			return nil
		}
		fmt.Printf("Paused timer on %q (total %s)\n",
			paused.Title, FormatSpent(time.Duration(paused.TimeSpentMs)*time.Millisecond))

	default:
		fmt.Printf("Timer still running for %q. Use 'taskdeck stop %s' to stop it.\n",
			task.Title, shortID(task.ID))
	}
	return nil
}

// shortID trims a task ID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
