package ui

import (
	"fmt"
	"strings"

	"sbmonitor/internal/ui/textutil"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Destroyable is implemented by views that own background work which must
// stop when the view is left.
type Destroyable interface {
	Destroy()
}

// AppModel is the root model. It owns the session UiState, routes between
// views and stacks modals on top of the current one.
type AppModel struct {
	Router     *Router
	State      *UiState
	Path       string
	Current    View
	KeyHandler *KeyHandler
	Overlays   OverlayStack
	Status     string
	StatusErr  bool
	width      int
	logger     *zap.Logger
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root model with the transactions route registered
// and opened.
func NewAppModel(deps ControllerDeps) *AppModel {
	deps = deps.withDefaults()
	router := NewRouter()
	RegisterTransactionsRoute(router, deps)

	reg := NewKeybindRegistry()
	quit := func() tea.Msg { return quitMsg{} }
	reg.BindWithDesc("q", quit, "Quit")
	reg.BindWithDesc("ctrl+c", quit, "Quit")
	reg.BindWithDesc("SPC q", quit, "Quit")
	reg.BindWithDesc("SPC r", func() tea.Msg { return ReloadMsg{} }, "Reload")
	reg.BindWithDesc("SPC a", func() tea.Msg { return OpenActionsMsg{} }, "Actions")
	reg.BindWithDesc("SPC t i", func() tea.Msg { return SwitchTabMsg{Tab: TabIncoming} }, "Incoming")
	reg.BindWithDesc("SPC t o", func() tea.Msg { return SwitchTabMsg{Tab: TabOutgoing} }, "Outgoing")
	reg.BindWithDesc("SPC t l", func() tea.Msg { return SwitchTabMsg{Tab: TabBoxLog} }, "Box log")
	reg.BindWithDesc("SPC g t", func() tea.Msg { return NavigateMsg{Path: TransactionsPath} }, "Transactions")

	m := &AppModel{
		Router:     router,
		State:      NewUiState(),
		KeyHandler: NewKeyHandler(reg),
		logger:     deps.Logger,
	}
	m.logger.Debug("routes registered", zap.Strings("paths", router.Paths()))
	if err := m.Navigate(TransactionsPath); err != nil {
		// The route is registered right above.
		panic(err)
	}
	return m
}

// Navigate leaves the current view, tearing down its background work, and
// builds the view registered for path.
func (m *AppModel) Navigate(path string) error {
	route, ok := m.Router.Lookup(path)
	if !ok {
		return fmt.Errorf("no route for %q", path)
	}
	m.leave()
	m.Path = path
	m.Current = route.New(m.State)
	m.logger.Debug("navigated", zap.String("path", path), zap.String("template", route.Template))
	return nil
}

func (m *AppModel) leave() {
	if d, ok := m.Current.(Destroyable); ok {
		d.Destroy()
	}
	m.Current = nil
	m.Overlays.Clear()
}

// Close tears down the current view. Safe to call more than once.
func (m *AppModel) Close() {
	m.leave()
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model.
func (a *appModelAdapter) Init() tea.Cmd {
	if a.Current == nil {
		return nil
	}
	return a.Current.Init()
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = size.Width
	}
	switch msg := msg.(type) {
	case quitMsg:
		a.Close()
		return a, tea.Quit
	case NavigateMsg:
		if err := a.Navigate(msg.Path); err != nil {
			a.setStatus(err.Error(), true)
			return a, nil
		}
		return a, a.Current.Init()
	case StatusMsg:
		a.setStatus(msg.Text, msg.Error)
		return a, nil
	case ShowModalMsg:
		a.Overlays.Push(Overlay{View: msg.View})
		return a, msg.View.Init()
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case RunActionMsg:
		a.Overlays.Pop()
		if msg.Action.Action == nil {
			return a, nil
		}
		return a, msg.Action.Action(msg.Records)
	case EntitiesDeletedMsg:
		a.Overlays.Pop()
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Delete failed: %v", msg.Err), true)
			a.logger.Warn("delete failed", zap.String("prefix", msg.Prefix), zap.Error(msg.Err))
		} else {
			a.setStatus(fmt.Sprintf("Deleted %d %s", msg.Count, msg.Label), false)
		}
		return a, a.forward(msg)
	case SeriesTaggedMsg:
		a.Overlays.Pop()
		if msg.Err != nil {
			a.setStatus(fmt.Sprintf("Tagging failed: %v", msg.Err), true)
			a.logger.Warn("tagging failed", zap.String("prefix", msg.Prefix), zap.Error(msg.Err))
		} else {
			a.setStatus(fmt.Sprintf("Tagged series of %d entries with %s", msg.Count, strings.Join(msg.Tags, ", ")), false)
		}
		return a, a.forward(msg)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.Close()
			return a, tea.Quit
		}
		// An open modal gets every key, so text inputs can receive q or space.
		if a.Overlays.Len() > 0 {
			cmd, _ := a.Overlays.UpdateTop(msg)
			return a, cmd
		}
		if a.KeyHandler != nil {
			if consumed, keyCmd := a.KeyHandler.Handle(msg); consumed {
				return a, keyCmd
			}
		}
		return a, a.forward(msg)
	}

	cmds := []tea.Cmd{a.forward(msg)}
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		cmds = append(cmds, cmd)
	}
	return a, tea.Batch(cmds...)
}

func (a *appModelAdapter) forward(msg tea.Msg) tea.Cmd {
	if a.Current == nil {
		return nil
	}
	v, cmd := a.Current.Update(msg)
	a.Current = v
	return cmd
}

func (a *appModelAdapter) setStatus(text string, isErr bool) {
	a.Status = text
	a.StatusErr = isErr
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	if a.Current == nil {
		return ""
	}
	base := a.Overlays.Render(a.Current.View(), a.width)
	if a.Status != "" {
		style := Styles.Status
		if a.StatusErr {
			style = Styles.Error
		}
		status := a.Status
		if a.width > 0 {
			status = textutil.Truncate(textutil.SingleLine(status), a.width)
		}
		base += "\n" + style.Render(status)
	}
	if a.KeyHandler != nil && a.KeyHandler.LeaderWaiting {
		base += "\n" + RenderKeybindHelp(a.KeyHandler)
	}
	return base
}
