// Package tui provides terminal user interface components for trainctl
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/workspace"
)

// Action represents the action to take after picker selection
type Action int

const (
	ActionNone Action = iota
	ActionShow
	ActionMonitor
	ActionDelete
	ActionQuit
)

// PickerResult holds the result of the picker
type PickerResult struct {
	Action Action
	Run    *workspace.Run
}

// runItem implements list.Item for run display
type runItem struct {
	run    *workspace.Run
	status health.Status
	age    string
}

func (i runItem) Title() string {
	return i.run.Name()
}

func (i runItem) Description() string {
	return fmt.Sprintf("%s %s | %d epochs | %s",
		StatusIcon(i.status),
		i.status,
		i.run.Metadata.TotalEpochs,
		i.age,
	)
}

func (i runItem) FilterValue() string {
	return i.run.Name()
}

// StatusIcon returns the display glyph for a run status.
func StatusIcon(status health.Status) string {
	switch status {
	case health.StatusRunning:
		return "▶"
	case health.StatusCompleted:
		return "✓"
	case health.StatusStale:
		return "⚠"
	case health.StatusAborted, health.StatusFailed:
		return "✗"
	default:
		return "○"
	}
}

func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	return "..." + path[len(path)-maxLen+3:]
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			MarginBottom(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)
)

// Model is the bubbletea model for the run picker
type Model struct {
	list     list.Model
	result   PickerResult
	quitting bool
	width    int
	height   int
}

// NewPicker creates a new run picker. Runs are grouped by derived
// status with non-selectable headers between groups.
func NewPicker(runs []*workspace.Run) Model {
	items := buildGroupedItems(runs)

	l := list.New(items, newGroupedDelegate(), 80, 20)
	l.Title = "trainctl - Select Run"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = titleStyle

	// Cursor starts on the first header; move it to a real entry.
	skipHeaders(&l, 1)

	return Model{
		list: l,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-4)
		return m, nil

	case tea.KeyMsg:
		// Don't handle keys if filtering
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(runItem); ok {
				m.result = PickerResult{
					Action: ActionShow,
					Run:    item.run,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "m":
			if item, ok := m.list.SelectedItem().(runItem); ok {
				m.result = PickerResult{
					Action: ActionMonitor,
					Run:    item.run,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "d":
			if item, ok := m.list.SelectedItem().(runItem); ok {
				m.result = PickerResult{
					Action: ActionDelete,
					Run:    item.run,
				}
				m.quitting = true
				return m, tea.Quit
			}

		case "q", "esc":
			m.result = PickerResult{Action: ActionQuit}
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)

	// Keep the cursor off group headers after navigation.
	if key, ok := msg.(tea.KeyMsg); ok && isHeaderSelected(&m.list) {
		skipHeaders(&m.list, navigationDirection(key))
	}
	return m, cmd
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	help := helpStyle.Render("[enter] Show  [m] Monitor  [d] Delete  [/] Filter  [q] Quit")

	return m.list.View() + "\n" + help
}

// Result returns the picker result
func (m Model) Result() PickerResult {
	return m.result
}

// RunPicker runs the interactive run picker
func RunPicker(runs []*workspace.Run) (PickerResult, error) {
	if len(runs) == 0 {
		return PickerResult{Action: ActionQuit}, nil
	}

	m := NewPicker(runs)
	p := tea.NewProgram(m, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return PickerResult{}, err
	}

	return finalModel.(Model).Result(), nil
}

// SimplePicker is a non-interactive picker that just lists runs
func SimplePicker(runs []*workspace.Run) string {
	var sb strings.Builder

	sb.WriteString("trainctl - Runs\n")
	sb.WriteString(strings.Repeat("─", 60) + "\n\n")

	if len(runs) == 0 {
		sb.WriteString("No runs found.\n")
		sb.WriteString("Create one with: trainctl run <config.json>\n")
		return sb.String()
	}

	for i, run := range runs {
		check := health.Check(run, health.DefaultStaleAfter)
		sb.WriteString(fmt.Sprintf("%d. %s %s (%s)\n",
			i+1, StatusIcon(check.Status), run.Name(), check.Status))
		sb.WriteString(fmt.Sprintf("   Checkpoints: %d | Config: %s\n\n",
			check.Checkpoints, truncatePath(run.Metadata.ConfigPath, 40)))
	}

	return sb.String()
}
