package ui

import (
	"fmt"
	"strings"

	"sbmonitor/internal/slicebox"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TagSeriesModal asks for one or more comma-separated tags to put on the
// series of the selected entities.
type TagSeriesModal struct {
	input   textinput.Model
	actions EntityActions
	Target  string
	Records []slicebox.Record
	// submitted is set once tagging starts; the modal then only closes.
	submitted bool
}

// Ensure TagSeriesModal implements View.
var _ View = (*TagSeriesModal)(nil)

// NewTagSeriesModal creates a tagging modal for records under prefix.
func NewTagSeriesModal(actions EntityActions, prefix string, records []slicebox.Record) *TagSeriesModal {
	ti := textinput.New()
	ti.Placeholder = "tag, another tag"
	ti.Width = 40
	ti.Focus()
	return &TagSeriesModal{
		input:   ti,
		actions: actions,
		Target:  prefix,
		Records: records,
	}
}

// Tags returns the trimmed, non-empty tags typed so far.
func (m *TagSeriesModal) Tags() []string {
	var tags []string
	for _, part := range strings.Split(m.input.Value(), ",") {
		if t := strings.TrimSpace(part); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Init implements View.
func (m *TagSeriesModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *TagSeriesModal) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			tags := m.Tags()
			if len(tags) == 0 || m.submitted {
				return m, nil
			}
			m.submitted = true
			m.input.Blur()
			return m, tagSeriesCmd(m.actions, m.Target, m.Records, tags)
		}
		if m.submitted {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *TagSeriesModal) View() string {
	content := Styles.Title.Render("Tag series") + "\n"
	content += Styles.Muted.Render(fmt.Sprintf("%d selected", len(m.Records))) + "\n\n"
	content += m.input.View() + "\n\n"
	hint := "Enter: tag  Esc: cancel"
	if m.submitted {
		hint = "Tagging…"
	}
	content += Styles.Hint.Render(hint)
	return Styles.Box.Render(content)
}
