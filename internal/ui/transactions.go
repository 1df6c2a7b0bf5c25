package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TransactionsPath is where the transactions view is mounted.
const TransactionsPath = "/transactions"

// TransactionsTemplate names the layout rendered for TransactionsPath.
const TransactionsTemplate = "transactions"

// RegisterTransactionsRoute mounts the transactions view at TransactionsPath.
func RegisterTransactionsRoute(r *Router, deps ControllerDeps) {
	r.When(TransactionsPath, Route{
		Template: TransactionsTemplate,
		New: func(state *UiState) View {
			return NewTransactionsView(state, deps)
		},
	})
}

// TabController is what each transactions tab is driven by.
type TabController interface {
	View
	Key() string
	Table() *PageTable
	Destroy()
}

// TransactionsView hosts the incoming, outgoing and box log tabs. Only the
// active tab has a live controller; switching tabs destroys the old one and
// creates the next, while each table's position stays in UiState.
type TransactionsView struct {
	state   *UiState
	deps    ControllerDeps
	active  Tab
	current TabController
	width   int
	height  int
}

// Ensure TransactionsView implements View.
var _ View = (*TransactionsView)(nil)

// NewTransactionsView activates the shared tab state and opens the
// incoming tab.
func NewTransactionsView(state *UiState, deps ControllerDeps) *TransactionsView {
	if state == nil {
		state = NewUiState()
	}
	ActivateTransactions(state)
	v := &TransactionsView{
		state:  state,
		deps:   deps.withDefaults(),
		active: TabIncoming,
	}
	v.current = v.newController(v.active)
	return v
}

// Active returns the selected tab.
func (v *TransactionsView) Active() Tab {
	return v.active
}

// Current returns the live controller of the selected tab.
func (v *TransactionsView) Current() TabController {
	return v.current
}

func (v *TransactionsView) newController(t Tab) TabController {
	switch t {
	case TabOutgoing:
		return NewOutgoingCtrl(v.deps, v.state.OutgoingTableState)
	case TabBoxLog:
		return NewBoxLogCtrl(v.deps, v.state.BoxLogTableState)
	default:
		return NewIncomingCtrl(v.deps, v.state.IncomingTableState)
	}
}

// SwitchTab destroys the current tab's controller and activates t.
func (v *TransactionsView) SwitchTab(t Tab) tea.Cmd {
	if t == v.active && v.current != nil {
		return nil
	}
	if v.current != nil {
		v.current.Destroy()
	}
	v.active = t
	v.current = v.newController(t)
	cmds := []tea.Cmd{v.current.Init()}
	if v.width > 0 {
		size := tea.WindowSizeMsg{Width: v.width, Height: v.height}
		cmds = append(cmds, func() tea.Msg { return size })
	}
	return tea.Batch(cmds...)
}

// Destroy tears down the live controller. Called when the route is left.
func (v *TransactionsView) Destroy() {
	if v.current != nil {
		v.current.Destroy()
	}
}

// Init implements View.
func (v *TransactionsView) Init() tea.Cmd {
	return v.current.Init()
}

// Update implements View.
func (v *TransactionsView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case SwitchTabMsg:
		return v, v.SwitchTab(msg.Tab)
	case tea.WindowSizeMsg:
		v.width, v.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			return v, v.SwitchTab(Tabs[(int(v.active)+1)%len(Tabs)])
		case "shift+tab":
			return v, v.SwitchTab(Tabs[(int(v.active)+len(Tabs)-1)%len(Tabs)])
		case "1", "2", "3":
			return v, v.SwitchTab(Tabs[int(msg.String()[0]-'1')])
		}
	}
	_, cmd := v.current.Update(msg)
	return v, cmd
}

// View implements View.
func (v *TransactionsView) View() string {
	var tabs []string
	for i, t := range Tabs {
		label := string(rune('1'+i)) + " " + t.String()
		if t == v.active {
			tabs = append(tabs, Styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, Styles.TabInactive.Render(label))
		}
	}
	var b strings.Builder
	b.WriteString(Styles.Title.Render("Transactions") + "\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...) + "\n")
	b.WriteString(v.current.View())
	return b.String()
}
