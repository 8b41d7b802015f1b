package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taskdeck/taskdeck/internal/models"
	"github.com/taskdeck/taskdeck/internal/parser"
)

// Form field indexes.
const (
	fieldTitle = iota
	fieldDescription
	fieldPriority
	fieldDue
	fieldEstimate
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Description",
	"Priority",
	"Due date",
	"Estimate",
}

// FormOptions configures the interactive task form.
type FormOptions struct {
	Title      string // heading, e.g. "New task"
	Task       models.Task
	Animations bool
}

// FormResult is what the form produced.
type FormResult struct {
	Cancelled bool
	Task      models.Task
}

// TaskFormModel is the add/edit form TUI model.
type TaskFormModel struct {
	heading string
	base    models.Task
	inputs  [fieldCount]textinput.Model
	focus   int
	width   int
	height  int

	shine *ShineState

	cancelled     bool
	submitted     bool
	validationErr string
	result        models.Task
}

// NewTaskFormModel builds the form prefilled from opts.Task.
func NewTaskFormModel(opts FormOptions) TaskFormModel {
	m := TaskFormModel{
		heading: opts.Title,
		base:    opts.Task,
		shine:   NewShineState(opts.Animations),
	}

	for i := range m.inputs {
		in := textinput.New()
		in.Width = 60
		in.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPrimaryText))
		in.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSecondaryText))
		in.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorAccentBright))
		m.inputs[i] = in
	}

	m.inputs[fieldTitle].Placeholder = "Task title (required)"
	m.inputs[fieldTitle].CharLimit = 200
	m.inputs[fieldDescription].Placeholder = "Description (Enter to skip)"
	m.inputs[fieldDescription].CharLimit = 500
	m.inputs[fieldPriority].Placeholder = "low/medium/high/urgent or 1-4 (Enter to skip)"
	m.inputs[fieldPriority].CharLimit = 10
	m.inputs[fieldDue].Placeholder = "dd/mm/yyyy, today, tomorrow, 3 days (Enter to skip)"
	m.inputs[fieldDue].CharLimit = 50
	m.inputs[fieldEstimate].Placeholder = "90m, 2h, 1h30m or minutes (Enter to skip)"
	m.inputs[fieldEstimate].CharLimit = 20

	t := opts.Task
	m.inputs[fieldTitle].SetValue(t.Title)
	m.inputs[fieldDescription].SetValue(t.Description)
	if t.Priority != "" {
		m.inputs[fieldPriority].SetValue(string(t.Priority))
	}
	if t.DueDate != nil {
		m.inputs[fieldDue].SetValue(t.DueDate.Format("02/01/2006"))
	}
	if t.EstimateMinutes > 0 {
		m.inputs[fieldEstimate].SetValue(fmt.Sprintf("%dm", t.EstimateMinutes))
	}

	m.inputs[fieldTitle].Focus()
	return m
}

// Init initializes the model.
func (m TaskFormModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.shine.Active() {
		cmds = append(cmds, tea.Tick(m.shine.TickInterval(), func(time.Time) tea.Msg {
			return shineTickMsg{}
		}))
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m TaskFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "up", "shift+tab":
			return m.setFocus(m.focus - 1), nil

		case "down", "tab":
			return m.setFocus(m.focus + 1), nil

		case "enter":
			if m.focus < fieldCount-1 {
				return m.setFocus(m.focus + 1), nil
			}
			return m.submit()

		case "ctrl+s":
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves focus to field i, wrapping around.
func (m TaskFormModel) setFocus(i int) TaskFormModel {
	m.inputs[m.focus].Blur()
	m.focus = ((i % fieldCount) + fieldCount) % fieldCount
	m.inputs[m.focus].Focus()
	m.shine.Reset()
	return m
}

// submit validates the inputs and quits on success.
func (m TaskFormModel) submit() (tea.Model, tea.Cmd) {
	task, err := m.buildTask()
	if err != nil {
		m.validationErr = err.Error()
		return m, nil
	}
	m.result = task
	m.submitted = true
	return m, tea.Quit
}

// buildTask parses the inputs on top of the base task.
func (m TaskFormModel) buildTask() (models.Task, error) {
	task := m.base

	title := strings.TrimSpace(m.inputs[fieldTitle].Value())
	if title == "" {
		return task, fmt.Errorf("title cannot be empty")
	}
	task.Title = title
	task.Description = strings.TrimSpace(m.inputs[fieldDescription].Value())

	if v := strings.TrimSpace(m.inputs[fieldPriority].Value()); v != "" {
		p, err := parser.ParsePriority(v)
		if err != nil {
			return task, err
		}
		task.Priority = p
	}

	if v := strings.TrimSpace(m.inputs[fieldDue].Value()); v != "" {
		due, err := parser.ParseDue(v, time.Now())
		if err != nil {
			return task, err
		}
		task.DueDate = due
	} else {
		task.DueDate = nil
	}

	if v := strings.TrimSpace(m.inputs[fieldEstimate].Value()); v != "" {
		minutes, err := parser.ParseEstimate(v)
		if err != nil {
			return task, err
		}
		task.EstimateMinutes = minutes
	} else {
		task.EstimateMinutes = 0
	}

	return task, nil
}

// View renders the form.
func (m TaskFormModel) View() string {
	var b strings.Builder

	heading := m.heading
	if m.shine.Active() {
		heading = m.shine.Render(heading)
	} else {
		heading = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorAccentBright)).
			Render(heading)
	}
	b.WriteString(heading)
	b.WriteString("\n\n")

	for i := range m.inputs {
		labelColor := ColorSecondaryText
		if i == m.focus {
			labelColor = ColorAccentBright
		}
		b.WriteString(lipgloss.NewStyle().
			Bold(i == m.focus).
			Foreground(lipgloss.Color(labelColor)).
			Render(fieldLabels[i]))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n\n")
	}

	if m.validationErr != "" {
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Render("✗ " + m.validationErr))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHelpText)).
		Italic(true).
		Render("tab/↑↓ fields · enter next · ctrl+s save · esc cancel"))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorBorder)).
		Padding(1, 2).
		Render(b.String())

	if m.width == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// RunTaskForm opens the interactive add/edit form and returns what the user
// entered, or Cancelled when they backed out.
func RunTaskForm(opts FormOptions) (FormResult, error) {
	p := tea.NewProgram(NewTaskFormModel(opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return FormResult{Cancelled: true}, err
	}
	m, ok := final.(TaskFormModel)
	if !ok || !m.submitted {
		return FormResult{Cancelled: true}, nil
	}
	return FormResult{Task: m.result}, nil
}
