package ui

import tea "github.com/charmbracelet/bubbletea"

// View is a screen, tab or modal with its own Elm-style model. Update may
// return a different View to replace itself.
type View interface {
	Init() tea.Cmd
	Update(tea.Msg) (View, tea.Cmd)
	View() string
}
