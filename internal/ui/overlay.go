package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Overlay is a modal shown above the current view. Modals close themselves
// by emitting DismissModalMsg.
type Overlay struct {
	View View
}

// OverlayStack holds the open modals; only the top one receives input.
type OverlayStack struct {
	Stack []Overlay
}

// Push opens o above everything else.
func (s *OverlayStack) Push(o Overlay) {
	s.Stack = append(s.Stack, o)
}

// Pop closes the top overlay. Popping an empty stack is a no-op.
func (s *OverlayStack) Pop() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	top := s.Stack[len(s.Stack)-1]
	s.Stack = s.Stack[:len(s.Stack)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (Overlay, bool) {
	if len(s.Stack) == 0 {
		return Overlay{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// Len returns the number of open overlays.
func (s *OverlayStack) Len() int {
	return len(s.Stack)
}

// Clear closes every overlay.
func (s *OverlayStack) Clear() {
	s.Stack = nil
}

// UpdateTop passes msg to the top overlay and keeps the view it returns.
// The caller must run the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.Stack) == 0 {
		return nil, false
	}
	top := &s.Stack[len(s.Stack)-1]
	newView, cmd := top.View.Update(msg)
	top.View = newView
	return cmd, true
}

// Render draws the top overlay under base, centered when width is known.
func (s *OverlayStack) Render(base string, width int) string {
	top, ok := s.Peek()
	if !ok {
		return base
	}
	modal := top.View.View()
	if width > 0 {
		modal = lipgloss.PlaceHorizontal(width, lipgloss.Center, modal)
	}
	return base + "\n" + modal
}
