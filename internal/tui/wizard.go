package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cellvision/trainctl/internal/registry"
	"github.com/cellvision/trainctl/internal/workspace"
)

// ScaffoldOptions holds the values collected by the configuration wizard.
type ScaffoldOptions struct {
	Name      string
	Workspace string
	Model     string
	Ensemble  bool
	Epochs    int
	Batchsize int
	LR        float64
}

// Defaults for fields the user leaves blank.
const (
	defaultEpochs    = 90
	defaultBatchsize = 32
	defaultLR        = 0.01
)

// wizardStep identifies the current step.
type wizardStep int

const (
	stepWorkspace wizardStep = iota
	stepModel
	stepName
	stepAdvanced
	stepConfirm
)

// advancedField identifies a field in the advanced step.
type advancedField int

const (
	advEnsemble advancedField = iota
	advEpochs
	advBatchsize
	advLR
	advFieldCount
)

// wizardModel drives the multi-step configuration wizard.
type wizardModel struct {
	step wizardStep

	// Step 1: workspace path
	pathInput textinput.Model

	// Step 2: model architecture
	modelList list.Model

	// Step 3: config name
	nameInput textinput.Model

	// Step 4: advanced
	advCursor      advancedField
	ensemble       bool
	epochsInput    textinput.Model
	batchsizeInput textinput.Model
	lrInput        textinput.Model

	// Collected values
	selectedPath  string
	selectedModel string
	selectedName  string

	width  int
	height int
}

// modelItem implements list.Item for model selection.
type modelItem struct {
	name        string
	description string
}

func (m modelItem) Title() string       { return m.name }
func (m modelItem) Description() string { return m.description }
func (m modelItem) FilterValue() string { return m.name }

// wizardStyles
var (
	wizardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				MarginBottom(1)

	wizardStepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	wizardActiveStepStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39"))

	wizardLabelStyle = lipgloss.NewStyle().
				Bold(true).
				MarginBottom(1)

	wizardValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39"))

	wizardDimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

func newWizardModel() wizardModel {
	pi := textinput.New()
	pi.Placeholder = "/path/to/workspace"
	pi.Focus()
	pi.CharLimit = 256
	pi.Width = 60
	pi.ShowSuggestions = true

	ni := textinput.New()
	ni.Placeholder = "config-name"
	ni.CharLimit = 63
	ni.Width = 40

	ei := textinput.New()
	ei.Placeholder = strconv.Itoa(defaultEpochs)
	ei.CharLimit = 6
	ei.Width = 10

	bi := textinput.New()
	bi.Placeholder = strconv.Itoa(defaultBatchsize)
	bi.CharLimit = 6
	bi.Width = 10

	li := textinput.New()
	li.Placeholder = "0.01"
	li.CharLimit = 12
	li.Width = 12

	return wizardModel{
		step:           stepWorkspace,
		pathInput:      pi,
		nameInput:      ni,
		epochsInput:    ei,
		batchsizeInput: bi,
		lrInput:        li,
	}
}

func (w *wizardModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes a message and returns (done, opts, cmd).
// done=true with non-nil opts means the wizard completed successfully.
// done=true with nil opts means the wizard was cancelled.
func (w *wizardModel) Update(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlC:
			return true, nil, nil
		case tea.KeyEsc:
			return w.handleBack()
		}
	}

	switch w.step {
	case stepWorkspace:
		return w.updateWorkspace(msg)
	case stepModel:
		return w.updateModel(msg)
	case stepName:
		return w.updateName(msg)
	case stepAdvanced:
		return w.updateAdvanced(msg)
	case stepConfirm:
		return w.updateConfirm(msg)
	}

	return false, nil, nil
}

func (w *wizardModel) handleBack() (bool, *ScaffoldOptions, tea.Cmd) {
	switch w.step {
	case stepWorkspace:
		// Esc at first step cancels the wizard
		return true, nil, nil
	case stepModel:
		w.step = stepWorkspace
		w.pathInput.Focus()
		return false, nil, textinput.Blink
	case stepName:
		w.step = stepModel
		w.nameInput.Blur()
		return false, nil, nil
	case stepAdvanced:
		w.step = stepName
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	case stepConfirm:
		w.step = stepName
		w.nameInput.Focus()
		return false, nil, textinput.Blink
	}
	return false, nil, nil
}

func (w *wizardModel) updateWorkspace(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		path := strings.TrimSpace(w.pathInput.Value())
		if path == "" {
			return false, nil, nil
		}
		w.selectedPath = path
		w.step = stepModel
		w.pathInput.Blur()
		w.loadModels()
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.pathInput, cmd = w.pathInput.Update(msg)

	// Update path suggestions after each keystroke
	w.updatePathSuggestions()

	return false, nil, cmd
}

func (w *wizardModel) updateModel(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEnter {
		if item, ok := w.modelList.SelectedItem().(modelItem); ok {
			w.selectedModel = item.name
			w.step = stepName
			w.nameInput.Focus()
			// Auto-suggest name
			suggested := suggestName(w.selectedPath, w.selectedModel)
			w.nameInput.SetValue(suggested)
			return false, nil, textinput.Blink
		}
		return false, nil, nil
	}

	var cmd tea.Cmd
	w.modelList, cmd = w.modelList.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) updateName(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			name := strings.TrimSpace(w.nameInput.Value())
			if name == "" {
				return false, nil, nil
			}
			if err := workspace.ValidateRunName(name); err != nil {
				return false, nil, nil
			}
			w.selectedName = name
			w.step = stepConfirm
			w.nameInput.Blur()
			return false, nil, nil
		case tea.KeyCtrlA:
			w.selectedName = strings.TrimSpace(w.nameInput.Value())
			w.step = stepAdvanced
			w.nameInput.Blur()
			return false, nil, w.focusCurrentTextField()
		}
	}

	var cmd tea.Cmd
	w.nameInput, cmd = w.nameInput.Update(msg)
	return false, nil, cmd
}

func (w *wizardModel) isTextInputField() bool {
	return w.advCursor == advEpochs || w.advCursor == advBatchsize || w.advCursor == advLR
}

func (w *wizardModel) activeTextInput() *textinput.Model {
	switch w.advCursor {
	case advEpochs:
		return &w.epochsInput
	case advBatchsize:
		return &w.batchsizeInput
	case advLR:
		return &w.lrInput
	}
	return nil
}

func (w *wizardModel) blurAllAdvTextInputs() {
	w.epochsInput.Blur()
	w.batchsizeInput.Blur()
	w.lrInput.Blur()
}

func (w *wizardModel) focusCurrentTextField() tea.Cmd {
	w.blurAllAdvTextInputs()
	if ti := w.activeTextInput(); ti != nil {
		ti.Focus()
		return textinput.Blink
	}
	return nil
}

func (w *wizardModel) updateAdvanced(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	// If we're on a text input field, forward keystrokes to it
	if w.isTextInputField() {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.Type {
			case tea.KeyEnter:
				w.blurAllAdvTextInputs()
				w.step = stepConfirm
				return false, nil, nil
			case tea.KeyUp:
				w.blurAllAdvTextInputs()
				w.advCursor = (w.advCursor - 1 + advFieldCount) % advFieldCount
				return false, nil, w.focusCurrentTextField()
			case tea.KeyDown:
				w.blurAllAdvTextInputs()
				w.advCursor = (w.advCursor + 1) % advFieldCount
				return false, nil, w.focusCurrentTextField()
			case tea.KeyTab:
				w.blurAllAdvTextInputs()
				w.advCursor = (w.advCursor + 1) % advFieldCount
				return false, nil, w.focusCurrentTextField()
			}
		}
		// Forward to text input
		if ti := w.activeTextInput(); ti != nil {
			var cmd tea.Cmd
			*ti, cmd = ti.Update(msg)
			return false, nil, cmd
		}
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			w.step = stepConfirm
			return false, nil, nil
		case "j", "down":
			w.advCursor = (w.advCursor + 1) % advFieldCount
			return false, nil, w.focusCurrentTextField()
		case "k", "up":
			w.advCursor = (w.advCursor - 1 + advFieldCount) % advFieldCount
			return false, nil, w.focusCurrentTextField()
		case "tab":
			w.advCursor = (w.advCursor + 1) % advFieldCount
			return false, nil, w.focusCurrentTextField()
		case " ":
			if w.advCursor == advEnsemble {
				w.ensemble = !w.ensemble
			}
			return false, nil, nil
		}
	}
	return false, nil, nil
}

func (w *wizardModel) updateConfirm(msg tea.Msg) (bool, *ScaffoldOptions, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter", "y":
			return true, &ScaffoldOptions{
				Name:      w.selectedName,
				Workspace: w.selectedPath,
				Model:     w.selectedModel,
				Ensemble:  w.ensemble,
				Epochs:    parseIntOr(w.epochsInput.Value(), defaultEpochs),
				Batchsize: parseIntOr(w.batchsizeInput.Value(), defaultBatchsize),
				LR:        parseFloatOr(w.lrInput.Value(), defaultLR),
			}, nil
		case "n":
			// Restart wizard
			w.step = stepWorkspace
			w.pathInput.SetValue("")
			w.pathInput.Focus()
			w.selectedPath = ""
			w.selectedModel = ""
			w.selectedName = ""
			w.ensemble = false
			w.epochsInput.SetValue("")
			w.batchsizeInput.SetValue("")
			w.lrInput.SetValue("")
			return false, nil, textinput.Blink
		}
	}
	return false, nil, nil
}

func parseIntOr(s string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func parseFloatOr(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func (w *wizardModel) View() string {
	var b strings.Builder

	b.WriteString(wizardTitleStyle.Render("New Training Configuration"))
	b.WriteString("\n")
	b.WriteString(w.progressBar())
	b.WriteString("\n\n")

	switch w.step {
	case stepWorkspace:
		b.WriteString(wizardLabelStyle.Render("Workspace directory:"))
		b.WriteString("\n")
		b.WriteString(w.pathInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter the directory that will hold training runs. Tab to complete."))
	case stepModel:
		b.WriteString(wizardLabelStyle.Render("Select model architecture:"))
		b.WriteString("\n")
		b.WriteString(w.modelList.View())
	case stepName:
		b.WriteString(wizardLabelStyle.Render("Configuration name:"))
		b.WriteString("\n")
		b.WriteString(w.nameInput.View())
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Enter to confirm, Ctrl+A for training options."))
	case stepAdvanced:
		b.WriteString(wizardLabelStyle.Render("Training options:"))
		b.WriteString("\n\n")
		b.WriteString(w.renderToggle(advEnsemble, "Snapshot ensemble", "Cyclic LR annealing with one checkpoint per cycle"))
		b.WriteString("\n")
		b.WriteString(w.renderTextInput(advEpochs, "Epochs", "Total training epochs", &w.epochsInput))
		b.WriteString("\n")
		b.WriteString(w.renderTextInput(advBatchsize, "Batch size", "Samples per training batch", &w.batchsizeInput))
		b.WriteString("\n")
		b.WriteString(w.renderTextInput(advLR, "Learning rate", "Initial optimizer learning rate", &w.lrInput))
		b.WriteString("\n\n")
		b.WriteString(wizardDimStyle.Render("Space/type to edit, Enter to continue, Esc to go back."))
	case stepConfirm:
		b.WriteString(wizardLabelStyle.Render("Confirm:"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  Workspace: %s\n", wizardValueStyle.Render(w.selectedPath)))
		b.WriteString(fmt.Sprintf("  Model:     %s\n", wizardValueStyle.Render(w.selectedModel)))
		b.WriteString(fmt.Sprintf("  Name:      %s\n", wizardValueStyle.Render(w.selectedName)))
		if w.ensemble {
			b.WriteString(fmt.Sprintf("  Ensemble:  %s\n", wizardValueStyle.Render("snapshot")))
		}
		if v := strings.TrimSpace(w.epochsInput.Value()); v != "" {
			b.WriteString(fmt.Sprintf("  Epochs:    %s\n", wizardValueStyle.Render(v)))
		}
		if v := strings.TrimSpace(w.batchsizeInput.Value()); v != "" {
			b.WriteString(fmt.Sprintf("  Batch:     %s\n", wizardValueStyle.Render(v)))
		}
		if v := strings.TrimSpace(w.lrInput.Value()); v != "" {
			b.WriteString(fmt.Sprintf("  LR:        %s\n", wizardValueStyle.Render(v)))
		}
		b.WriteString("\n")
		b.WriteString(wizardDimStyle.Render("Enter to write config, n to restart, Esc to go back."))
	}

	return b.String()
}

func (w *wizardModel) progressBar() string {
	steps := []struct {
		num  int
		name string
	}{
		{1, "Workspace"},
		{2, "Model"},
		{3, "Name"},
		{4, "Confirm"},
	}

	var parts []string
	for _, s := range steps {
		label := fmt.Sprintf("%d. %s", s.num, s.name)
		currentStep := int(w.step) + 1
		// Map stepAdvanced to stepName for progress display
		if w.step == stepAdvanced {
			currentStep = int(stepName) + 1
		}
		if s.num == currentStep {
			parts = append(parts, wizardActiveStepStyle.Render(label))
		} else {
			parts = append(parts, wizardStepStyle.Render(label))
		}
	}

	return strings.Join(parts, wizardDimStyle.Render(" > "))
}

func (w *wizardModel) renderToggle(field advancedField, name, desc string) string {
	cursor := " "
	if w.advCursor == field {
		cursor = ">"
	}

	checked := " "
	if field == advEnsemble && w.ensemble {
		checked = "x"
	}

	line := fmt.Sprintf("  %s [%s] %s", cursor, checked, name)
	if w.advCursor == field {
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}

func (w *wizardModel) renderTextInput(field advancedField, name, desc string, ti *textinput.Model) string {
	cursor := " "
	if w.advCursor == field {
		cursor = ">"
	}

	val := strings.TrimSpace(ti.Value())
	if w.advCursor == field {
		// Show active text input
		line := fmt.Sprintf("  %s %s: %s", cursor, name, ti.View())
		return selectedStyle.Render(line) + "\n" + wizardDimStyle.Render("      "+desc)
	}
	if val == "" {
		line := fmt.Sprintf("  %s %s: (default)", cursor, name)
		return line + "\n" + wizardDimStyle.Render("      "+desc)
	}
	line := fmt.Sprintf("  %s %s: %s", cursor, name, val)
	return line + "\n" + wizardDimStyle.Render("      "+desc)
}

// modelDescriptions gives the picker list a line per known architecture.
var modelDescriptions = map[string]string{
	"gapnet":    "Global average pooling network",
	"gapnet_bn": "GAPNet with batch normalization",
}

func (w *wizardModel) loadModels() {
	var items []list.Item
	for _, name := range registry.Known(registry.KindModel) {
		desc := modelDescriptions[name]
		if desc == "" {
			desc = "Registered model"
		}
		items = append(items, modelItem{name: name, description: desc})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	l := list.New(items, delegate, 60, 10)
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	if w.width > 0 {
		l.SetWidth(w.width - 4)
	}
	if w.height > 0 {
		l.SetHeight(w.height - 10)
	}

	w.modelList = l
}

func (w *wizardModel) updatePathSuggestions() {
	val := w.pathInput.Value()
	if val == "" {
		w.pathInput.SetSuggestions(nil)
		return
	}

	// Expand ~ to home directory
	expanded := val
	if strings.HasPrefix(val, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			expanded = home + val[1:]
		}
	}

	dir := expanded
	prefix := ""

	info, err := os.Stat(expanded)
	if err != nil || !info.IsDir() {
		dir = filepath.Dir(expanded)
		prefix = filepath.Base(expanded)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.pathInput.SetSuggestions(nil)
		return
	}

	var suggestions []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix)) {
			continue
		}
		full := filepath.Join(dir, name)
		// Convert back to use ~ if original used ~
		if strings.HasPrefix(val, "~") {
			if home, err := os.UserHomeDir(); err == nil {
				full = "~" + strings.TrimPrefix(full, home)
			}
		}
		suggestions = append(suggestions, full)
	}

	w.pathInput.SetSuggestions(suggestions)
}

// sanitizeNameRegex matches characters not valid in config names.
var sanitizeNameRegex = regexp.MustCompile(`[^a-z0-9_-]`)

// suggestName generates a configuration name from the workspace path and
// model architecture.
func suggestName(path, model string) string {
	base := filepath.Base(path)
	base = strings.ToLower(base)
	base = sanitizeNameRegex.ReplaceAllString(base, "-")
	// Trim leading/trailing hyphens
	base = strings.Trim(base, "-")

	if base == "" {
		base = "train"
	}

	name := base + "-" + model
	// Truncate to 63 chars
	if len(name) > 63 {
		name = name[:63]
	}
	// Trim trailing hyphens from truncation
	name = strings.TrimRight(name, "-")

	return name
}

// wizardHost adapts wizardModel to the tea.Model interface.
type wizardHost struct {
	wizard *wizardModel
	opts   *ScaffoldOptions
}

func (h *wizardHost) Init() tea.Cmd {
	return h.wizard.Init()
}

func (h *wizardHost) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		h.wizard.width = size.Width
		h.wizard.height = size.Height
		return h, nil
	}

	done, opts, cmd := h.wizard.Update(msg)
	if done {
		h.opts = opts
		return h, tea.Quit
	}
	return h, cmd
}

func (h *wizardHost) View() string {
	return h.wizard.View()
}

// RunWizard runs the interactive configuration wizard. A nil result
// without error means the user cancelled.
func RunWizard() (*ScaffoldOptions, error) {
	w := newWizardModel()
	host := &wizardHost{wizard: &w}

	p := tea.NewProgram(host, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	return finalModel.(*wizardHost).opts, nil
}
