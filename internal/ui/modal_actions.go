package ui

import (
	"fmt"

	"sbmonitor/internal/slicebox"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ActionMenuModal lists a table's actions for the current selection.
type ActionMenuModal struct {
	list    list.Model
	actions []ActionDescriptor
	Records []slicebox.Record
}

type actionItem string

func (a actionItem) FilterValue() string { return string(a) }
func (a actionItem) Title() string       { return string(a) }
func (a actionItem) Description() string { return "" }

// Ensure ActionMenuModal implements View.
var _ View = (*ActionMenuModal)(nil)

// NewActionMenuModal creates the menu for records.
func NewActionMenuModal(actions []ActionDescriptor, records []slicebox.Record) *ActionMenuModal {
	items := make([]list.Item, len(actions))
	for i, a := range actions {
		items[i] = actionItem(a.Name)
	}
	l := list.New(items, NewCompactListDelegate(), 32, len(items)+4)
	l.Title = fmt.Sprintf("Actions (%d selected)", len(records))
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &ActionMenuModal{list: l, actions: actions, Records: records}
}

// Actions returns the menu entries in display order.
func (m *ActionMenuModal) Actions() []ActionDescriptor {
	return m.actions
}

// Init implements View.
func (m *ActionMenuModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ActionMenuModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			i := m.list.Index()
			if i < 0 || i >= len(m.actions) {
				return m, nil
			}
			run := RunActionMsg{Action: m.actions[i], Records: m.Records}
			return m, func() tea.Msg { return run }
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *ActionMenuModal) View() string {
	help := "Enter: run  Esc: cancel"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
