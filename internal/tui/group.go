package tui

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cellvision/trainctl/internal/health"
	"github.com/cellvision/trainctl/internal/workspace"
)

// headerItem is a non-selectable group separator in the picker list.
type headerItem struct {
	label string
}

func (h headerItem) FilterValue() string { return "" }
func (h headerItem) Title() string       { return h.label }
func (h headerItem) Description() string { return "" }

// statusOrder fixes the display order of status groups: active runs
// first, finished ones last.
var statusOrder = map[health.Status]int{
	health.StatusRunning:   0,
	health.StatusStale:     1,
	health.StatusCreated:   2,
	health.StatusCompleted: 3,
	health.StatusAborted:   4,
	health.StatusFailed:    5,
}

// buildGroupedItems groups runs by derived status and returns list items
// with headerItem separators.
func buildGroupedItems(runs []*workspace.Run) []list.Item {
	if len(runs) == 0 {
		return nil
	}

	// Group runs by status
	type group struct {
		status health.Status
		items  []runItem
	}
	groupMap := make(map[health.Status]*group)
	for _, run := range runs {
		check := health.Check(run, health.DefaultStaleAfter)
		g, ok := groupMap[check.Status]
		if !ok {
			g = &group{status: check.Status}
			groupMap[check.Status] = g
		}
		age := "no activity"
		if check.Age != "" {
			age = check.Age + " ago"
		}
		g.items = append(g.items, runItem{
			run:    run,
			status: check.Status,
			age:    age,
		})
	}

	// Sort groups by lifecycle order
	groups := make([]*group, 0, len(groupMap))
	for _, g := range groupMap {
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool {
		return statusOrder[groups[i].status] < statusOrder[groups[j].status]
	})

	// Build items with headers
	var items []list.Item
	for _, g := range groups {
		items = append(items, headerItem{label: string(g.status)})
		for _, item := range g.items {
			items = append(items, item)
		}
	}

	return items
}

// headerStyle is the style for group header items.
var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("241")).
	PaddingLeft(2)

// groupedDelegate renders both headerItem and runItem in the picker list.
type groupedDelegate struct {
	inner list.DefaultDelegate
}

// newGroupedDelegate creates a groupedDelegate wrapping a configured DefaultDelegate.
func newGroupedDelegate() groupedDelegate {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = selectedStyle
	delegate.Styles.SelectedDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	return groupedDelegate{inner: delegate}
}

func (d groupedDelegate) Height() int                             { return d.inner.Height() }
func (d groupedDelegate) Spacing() int                            { return d.inner.Spacing() }
func (d groupedDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d groupedDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	if h, ok := item.(headerItem); ok {
		str := headerStyle.Render(h.label)
		fmt.Fprint(w, str)
		return
	}

	d.inner.Render(w, m, index, item)
}

// skipHeaders adjusts the cursor position to skip headerItem entries.
// direction should be 1 (down) or -1 (up).
func skipHeaders(l *list.Model, direction int) {
	items := l.Items()
	if len(items) == 0 {
		return
	}

	idx := l.Index()
	if _, ok := items[idx].(headerItem); !ok {
		return
	}

	// Try to move in the given direction first
	next := idx + direction
	if next >= 0 && next < len(items) {
		if _, ok := items[next].(headerItem); !ok {
			l.Select(next)
			return
		}
	}

	// Fall back to the opposite direction
	opposite := idx - direction
	if opposite >= 0 && opposite < len(items) {
		if _, ok := items[opposite].(headerItem); !ok {
			l.Select(opposite)
			return
		}
	}

	// Search forward from current position for any non-header
	for i := 0; i < len(items); i++ {
		candidate := (idx + i*direction + len(items)) % len(items)
		if _, ok := items[candidate].(headerItem); !ok {
			l.Select(candidate)
			return
		}
	}
}

// isHeaderSelected returns true if the currently selected item is a headerItem.
func isHeaderSelected(l *list.Model) bool {
	if item := l.SelectedItem(); item != nil {
		_, ok := item.(headerItem)
		return ok
	}
	return false
}

// navigationDirection returns 1 for down/j keys, -1 for up/k keys.
func navigationDirection(msg tea.KeyMsg) int {
	switch {
	case msg.String() == "up" || msg.String() == "k":
		return -1
	default:
		return 1
	}
}
