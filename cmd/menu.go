package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/antopolskiy/skillz/internal/catalog"
	"github.com/antopolskiy/skillz/internal/selection"
)

// errMenuCanceled is returned when the user leaves the menu without confirming.
var errMenuCanceled = errors.New("selection canceled")

// selectSkills displays the interactive skill menu and returns the chosen
// names in the order they were picked.
func selectSkills(prompt string, items []catalog.Item, preselected *selection.Set, installed map[string]bool) ([]string, error) {
	m := newSelectModel(prompt, items, preselected, installed)

	p := tea.NewProgram(m, tea.WithOutput(os.Stderr))
	result, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("running menu: %w", err)
	}

	final := result.(selectModel)
	if final.canceled {
		return nil, errMenuCanceled
	}
	return final.selected.Names(), nil
}

// selectModel is a bubbletea model for the grouped skill multi-select.
type selectModel struct {
	prompt    string
	items     []catalog.Item // category-grouped display order
	selected  *selection.Set
	installed map[string]bool

	query     string
	searching bool
	visible   []int // indexes into items matching query
	cursor    int   // index into visible

	done     bool
	canceled bool
}

var (
	selectActiveStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectCheckStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	selectCategoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

func newSelectModel(prompt string, items []catalog.Item, preselected *selection.Set, installed map[string]bool) selectModel {
	var ordered []catalog.Item
	for _, g := range catalog.Group(items) {
		ordered = append(ordered, g.Items...)
	}
	if preselected == nil {
		preselected = selection.New()
	}
	m := selectModel{
		prompt:    prompt,
		items:     ordered,
		selected:  preselected,
		installed: installed,
	}
	m.refilter()
	return m
}

func (m *selectModel) refilter() {
	m.visible = nil
	for i, it := range m.items {
		if m.query == "" || catalog.MatchesSearch(it, m.query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

func (m selectModel) visibleItems() []catalog.Item {
	out := make([]catalog.Item, len(m.visible))
	for i, idx := range m.visible {
		out[i] = m.items[idx]
	}
	return out
}

func (m selectModel) current() (catalog.Item, bool) {
	if len(m.visible) == 0 {
		return catalog.Item{}, false
	}
	return m.items[m.visible[m.cursor]], true
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.searching {
		return m.updateSearch(keyMsg)
	}

	switch keyMsg.String() {
	case "j", "down":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case " ":
		if it, ok := m.current(); ok {
			m.selected.Toggle(it.Name)
		}
	case "a":
		m.toggleVisible()
	case "n":
		m.selected.Clear()
	case "c":
		if it, ok := m.current(); ok {
			m.selected.ToggleCategory(m.items, it.Group())
		}
	case "/":
		m.searching = true
	case "enter":
		m.done = true
		return m, tea.Quit
	case "q", "esc", "ctrl+c":
		m.done = true
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

func (m selectModel) updateSearch(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.Type {
	case tea.KeyEnter:
		m.searching = false
	case tea.KeyEsc:
		m.searching = false
		m.query = ""
	case tea.KeyCtrlC:
		m.done = true
		m.canceled = true
		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.query); len(r) > 0 {
			m.query = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.query += " "
	case tea.KeyRunes:
		m.query += string(keyMsg.Runes)
	}
	m.refilter()
	return m, nil
}

// toggleVisible deselects the visible items when all are selected and
// selects them otherwise.
func (m selectModel) toggleVisible() {
	visible := m.visibleItems()
	all := len(visible) > 0
	for _, it := range visible {
		if !m.selected.Has(it.Name) {
			all = false
			break
		}
	}
	if !all {
		m.selected.SelectMatching(visible)
		return
	}
	for _, it := range visible {
		m.selected.Remove(it.Name)
	}
}

func (m selectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.prompt + "\n")
	if m.searching || m.query != "" {
		cursor := ""
		if m.searching {
			cursor = "_"
		}
		fmt.Fprintf(&b, "  search: %s%s\n", m.query, cursor)
	}

	lastCategory := ""
	for i, idx := range m.visible {
		item := m.items[idx]
		if cat := item.Group(); cat != lastCategory {
			b.WriteString("\n  " + selectCategoryStyle.Render(cat) + "\n")
			lastCategory = cat
		}

		checkRendered := " "
		if m.selected.Has(item.Name) {
			checkRendered = selectCheckStyle.Render("✓")
		}

		cursor := " "
		label := item.Name
		if i == m.cursor {
			cursor = "›"
			label = selectActiveStyle.Render(label)
		}
		if m.installed[item.Name] {
			label += selectDimStyle.Render(" (installed)")
		}

		fmt.Fprintf(&b, "  %s [%s] %s — %s\n", cursor, checkRendered, label, selectDimStyle.Render(item.Description))
	}
	if len(m.visible) == 0 {
		b.WriteString(selectDimStyle.Render("  no skills match") + "\n")
	}

	fmt.Fprintf(&b, "\n  %d selected\n", m.selected.Len())
	b.WriteString(selectDimStyle.Render(
		"  ↑/↓ navigate • space toggle • a all • n none • c category • / search • enter confirm • esc cancel\n"))
	return b.String()
}
