package ui

import (
	"fmt"

	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmModal is a generic confirmation modal that can be used for various actions.
// Enter or y confirms; Esc cancels.
type ConfirmModal struct {
	Title       string
	Label       string
	Details     string // Optional warning details
	OnConfirm   tea.Cmd
	boxStyle    lipgloss.Style
	titleStyle  lipgloss.Style
	detailStyle lipgloss.Style
	// Set by NewDeleteEntitiesModal
	Target  string
	Records []slicebox.Record
	// submitted is set by the first confirm; later ones are ignored.
	submitted bool
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a generic confirmation modal.
func NewConfirmModal(title, label string, onConfirm tea.Cmd) *ConfirmModal {
	return &ConfirmModal{
		Title:       title,
		Label:       label,
		OnConfirm:   onConfirm,
		boxStyle:    Styles.BoxDanger,
		titleStyle:  Styles.TitleWarning,
		detailStyle: Styles.Details,
	}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewDeleteEntitiesModal asks before deleting records under prefix. label
// names the entities in plural, e.g. "incoming transactions".
func NewDeleteEntitiesModal(actions EntityActions, prefix, label string, records []slicebox.Record) *ConfirmModal {
	modal := NewConfirmModal(
		fmt.Sprintf("Delete %d %s?", len(records), label),
		deleteSummary(records),
		deleteEntitiesCmd(actions, prefix, label, records),
	)
	modal.Target = prefix
	modal.Records = records
	return modal.WithDetails("This cannot be undone")
}

func deleteSummary(records []slicebox.Record) string {
	ids, err := slicebox.IDs(records)
	if err != nil {
		return fmt.Sprintf("%d selected", len(records))
	}
	const shown = 8
	s := "ids:"
	for i, id := range ids {
		if i == shown {
			s += fmt.Sprintf(" … (+%d)", len(ids)-shown)
			break
		}
		s += fmt.Sprintf(" %d", id)
	}
	return s
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil && !m.submitted {
				m.submitted = true
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := m.titleStyle.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + m.detailStyle.Render(m.Details)
	}
	hint := "y/Enter: confirm  Esc: cancel"
	if m.submitted {
		hint = "Working…"
	}
	content += "\n\n" + Styles.Hint.Render(hint)
	return m.boxStyle.Render(content)
}
