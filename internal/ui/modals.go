package ui

import (
	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
)

// Modals builds the action closures the transaction tables put in their
// menus. Each closure is bound to a resource prefix up front and opens its
// modal for whatever records it is later called with.
type Modals struct {
	Actions EntityActions
}

// NewModals returns a factory whose modals act through actions.
func NewModals(actions EntityActions) *Modals {
	return &Modals{Actions: actions}
}

// OpenDeleteEntitiesModalFunction returns an action that asks to delete the
// given records under prefix. label names them in the prompt.
func (m *Modals) OpenDeleteEntitiesModalFunction(prefix, label string) ActionFunc {
	return func(records []slicebox.Record) tea.Cmd {
		if len(records) == 0 {
			return statusCmd("Nothing selected")
		}
		if m.Actions == nil {
			return errorStatusCmd("Not connected to a server")
		}
		modal := NewDeleteEntitiesModal(m.Actions, prefix, label, records)
		return func() tea.Msg { return ShowModalMsg{View: modal} }
	}
}

// OpenTagSeriesModalFunction returns an action that asks for tags to put on
// the series of the given records under prefix.
func (m *Modals) OpenTagSeriesModalFunction(prefix string) ActionFunc {
	return func(records []slicebox.Record) tea.Cmd {
		if len(records) == 0 {
			return statusCmd("Nothing selected")
		}
		if m.Actions == nil {
			return errorStatusCmd("Not connected to a server")
		}
		modal := NewTagSeriesModal(m.Actions, prefix, records)
		return func() tea.Msg { return ShowModalMsg{View: modal} }
	}
}
