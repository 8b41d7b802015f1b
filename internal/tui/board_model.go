package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/errs"
	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
	"github.com/taskdeck/taskdeck/internal/store"
)

// boardColumns fixes the left-to-right column order.
var boardColumns = []models.Status{
	models.StatusTodo,
	models.StatusInProgress,
	models.StatusDone,
}

var columnTitles = map[models.Status]string{
	models.StatusTodo:       "TODO",
	models.StatusInProgress: "IN PROGRESS",
	models.StatusDone:       "DONE",
}

// BoardModel is the interactive kanban board backed by the task store.
type BoardModel struct {
	store  *store.Store
	width  int
	height int

	columns [3][]models.Task
	col     int // selected column
	row     int // selected row within column

	shine  *ShineState
	notice string // transient message under the board
}

// NewBoardModel builds the board from the store's current state.
func NewBoardModel(st *store.Store, animations bool) BoardModel {
	m := BoardModel{
		store: st,
		shine: NewShineState(animations),
	}
	m.refresh()
	return m
}

// refresh rebuilds the columns from the store, preserving store order.
func (m *BoardModel) refresh() {
	for i := range m.columns {
		m.columns[i] = nil
	}
	for _, t := range m.store.Tasks() {
		for i, status := range boardColumns {
			if t.Status == status {
				m.columns[i] = append(m.columns[i], t)
			}
		}
	}
	m.clamp()
}

// clamp keeps the cursor on an existing card after mutations.
func (m *BoardModel) clamp() {
	if m.row >= len(m.columns[m.col]) {
		m.row = len(m.columns[m.col]) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// selected returns the task under the cursor, if any.
func (m *BoardModel) selected() (models.Task, bool) {
	col := m.columns[m.col]
	if m.row >= len(col) {
		return models.Task{}, false
	}
	return col[m.row], true
}

// Init starts the shine ticker when animations are on.
func (m BoardModel) Init() tea.Cmd {
	if !m.shine.Active() {
		return nil
	}
	return tea.Tick(m.shine.TickInterval(), func(time.Time) tea.Msg {
		return shineTickMsg{}
	})
}

// Update handles messages.
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case shineTickMsg:
		if m.shine.Active() {
			return m, tea.Tick(m.shine.TickInterval(), func(time.Time) tea.Msg {
				return shineTickMsg{}
			})
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		m.notice = ""
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit

		case "left", "h":
			if m.col > 0 {
				m.col--
				m.clamp()
				m.shine.Reset()
			}

		case "right", "l":
			if m.col < len(boardColumns)-1 {
				m.col++
				m.clamp()
				m.shine.Reset()
			}

		case "up", "k":
			if m.row > 0 {
				m.row--
				m.shine.Reset()
			}

		case "down", "j":
			if m.row < len(m.columns[m.col])-1 {
				m.row++
				m.shine.Reset()
			}

		case "enter", "m", "]":
			m.moveSelected(1)

		case "M", "[":
			m.moveSelected(-1)

		case "d":
			m.completeSelected()

		case "s":
			m.toggleTimer()

		case "x":
			if task, ok := m.selected(); ok {
				m.store.DeleteTask(task.ID)
				m.notice = fmt.Sprintf("Deleted %q", task.Title)
				m.refresh()
			}
		}
	}

	return m, nil
}

// moveSelected shifts the selected card one column in the given direction
// and follows it with the cursor.
func (m *BoardModel) moveSelected(dir int) {
	task, ok := m.selected()
	if !ok {
		return
	}
	next := m.col + dir
	if next < 0 || next >= len(boardColumns) {
		return
	}
	if err := m.store.MoveTask(task.ID, boardColumns[next], -1); err != nil {
		if errors.Is(err, errs.ErrIllegalTransition) {
			m.notice = "Done tasks cannot leave the done column"
		} else {
			m.notice = err.Error()
		}
		return
	}
	m.col = next
	m.row = 0
	m.shine.Reset()
	m.refresh()
}

func (m *BoardModel) completeSelected() {
	task, ok := m.selected()
	if !ok || task.Status == models.StatusDone {
		return
	}
	if err := m.store.MoveTask(task.ID, models.StatusDone, -1); err != nil {
		m.notice = err.Error()
		return
	}
	m.notice = fmt.Sprintf("Done: %s", task.Title)
	m.refresh()
}

func (m *BoardModel) toggleTimer() {
	task, ok := m.selected()
	if !ok {
		return
	}
	if task.TimerActive() {
		m.store.PauseTimer(task.ID)
		m.notice = fmt.Sprintf("Paused timer on %q", task.Title)
	} else {
		m.store.StartTimer(task.ID)
		m.notice = fmt.Sprintf("Tracking %q", task.Title)
	}
	m.refresh()
}

// View renders the board.
func (m BoardModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	colWidth := m.width/len(boardColumns) - 2
	if colWidth < 20 {
		colWidth = 20
	}

	rendered := make([]string, 0, len(boardColumns))
	for i := range boardColumns {
		rendered = append(rendered, m.renderColumn(i, colWidth))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)

	noticeLine := ""
	if m.notice != "" {
		noticeLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render(m.notice)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		"",
		board,
		noticeLine,
		m.renderHelpBar(),
	)
}

// renderColumn renders one status column with its cards.
func (m BoardModel) renderColumn(idx, width int) string {
	status := boardColumns[idx]
	var b strings.Builder

	headerColor := ColorSecondaryText
	if idx == m.col {
		headerColor = ColorAccentBright
	}
	header := fmt.Sprintf("%s (%d)", columnTitles[status], len(m.columns[idx]))
	b.WriteString(lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(headerColor)).
		Render(header))
	b.WriteString("\n\n")

	if len(m.columns[idx]) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDisabledText)).
			Italic(true).
			Render("empty"))
	}

	for row, task := range m.columns[idx] {
		selected := idx == m.col && row == m.row
		b.WriteString(m.renderCard(task, width-4, selected))
		b.WriteString("\n")
	}

	borderColor := ColorBorder
	if idx == m.col {
		borderColor = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(borderColor)).
		Width(width).
		Render(b.String())
}

// renderCard renders a single task card.
func (m BoardModel) renderCard(task models.Task, width int, selected bool) string {
	title := task.Title
	if len(title) > width-2 && width > 5 {
		title = title[:width-5] + "..."
	}
	if selected {
		title = m.shine.Render(title)
	}

	meta := []string{priorityBadge(task.Priority)}
	if task.DueDate != nil {
		meta = append(meta, dueBadge(task.DueDate))
	}
	if task.TimerActive() {
		meta = append(meta, lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning)).
			Render("[rec]"))
	}
	metaLine := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorSecondaryText)).
		Render(strings.Join(meta, " "))

	content := title + "\n" + metaLine

	cardBorder := ColorBorder
	if selected {
		cardBorder = ColorAccentMain
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(cardBorder)).
		Width(width).
		Padding(0, 1).
		Render(content)
}

// priorityBadge renders the priority marker for a card.
func priorityBadge(p models.Priority) string {
	color := ColorSecondaryText
	switch p {
	case models.PriorityUrgent:
		color = ColorError
	case models.PriorityHigh:
		color = ColorWarning
	case models.PriorityLow:
		color = ColorDisabledText
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render("!" + string(p))
}

// dueBadge renders the due marker, red when overdue.
func dueBadge(due *time.Time) string {
	text := parser.FormatDue(due, time.Now())
	color := ColorSecondaryText
	if text == "OVERDUE" {
		color = ColorError
	} else if text == "today" || text == "tomorrow" {
		color = ColorWarning
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(text)
}

func (m BoardModel) renderHelpBar() string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Align(lipgloss.Center).
		Width(m.width).
		Render("←/→ column · ↑/↓ card · ]/m move right · [/M move left · d done · s timer · x delete · q quit")
}

// RunBoard opens the kanban board TUI.
func RunBoard(st *store.Store, animations bool) error {
	p := tea.NewProgram(NewBoardModel(st, animations), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
