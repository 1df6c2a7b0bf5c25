package ui

import (
	"context"
	"sync/atomic"
	"time"

	"sbmonitor/internal/poll"
	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Callbacks holds the handles tables register once mounted, by key. A
// missing entry means the table is not mounted yet (or any more).
type Callbacks map[string]Reloader

// ActionFunc opens the modal for an action on the given records.
type ActionFunc func(records []slicebox.Record) tea.Cmd

// ActionDescriptor is one entry of a table's action menu.
type ActionDescriptor struct {
	Name   string
	Action ActionFunc
}

// ControllerDeps is what every transactions controller is built from.
type ControllerDeps struct {
	// Parent bounds the lifetime of every poll task. Cancelling it stops
	// all controllers at once.
	Parent   context.Context
	Pages    PageSource
	Modals   *Modals
	Clock    poll.Clock
	Interval time.Duration
	PageSize int
	Logger   *zap.Logger
}

// PageSource is the read side of the Slicebox API the tabs page through.
type PageSource interface {
	LoadIncomingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection slicebox.SortDirection) (slicebox.Page, error)
	LoadOutgoingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection slicebox.SortDirection) (slicebox.Page, error)
	LoadLogPage(ctx context.Context, startIndex, count int) (slicebox.Page, error)
}

func (d ControllerDeps) withDefaults() ControllerDeps {
	if d.Parent == nil {
		d.Parent = context.Background()
	}
	if d.Clock == nil {
		d.Clock = poll.RealClock{}
	}
	if d.Interval <= 0 {
		d.Interval = poll.DefaultInterval
	}
	if d.PageSize <= 0 {
		d.PageSize = 20
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Modals == nil {
		d.Modals = &Modals{}
	}
	return d
}

var controllerIDs atomic.Uint64

// tableController is the lifecycle shared by the three transaction tabs:
// Active from construction (poll armed, empty callback slot) until Destroy.
type tableController struct {
	id        uint64
	key       string
	actions   []ActionDescriptor
	Callbacks Callbacks
	table     *PageTable
	task      *poll.Task
	fired     chan struct{}
	ctx       context.Context
	cancel    context.CancelFunc
	destroyed bool
	logger    *zap.Logger
}

func newTableController(deps ControllerDeps, key string, actions []ActionDescriptor, table *PageTable) *tableController {
	ctx, cancel := context.WithCancel(deps.Parent)
	c := &tableController{
		id:        controllerIDs.Add(1),
		key:       key,
		actions:   actions,
		Callbacks: Callbacks{},
		table:     table,
		fired:     make(chan struct{}, 1),
		ctx:       ctx,
		cancel:    cancel,
		logger:    deps.Logger.With(zap.String("table", key)),
	}
	// Fires coalesce: a tick that finds one already pending is dropped, so
	// at most one reload request waits per controller.
	c.task = poll.Start(ctx, deps.Clock, deps.Interval, func() {
		select {
		case c.fired <- struct{}{}:
		default:
		}
	})
	c.logger.Debug("controller active", zap.Duration("interval", deps.Interval))
	return c
}

// Key returns the callback key of this controller's table.
func (c *tableController) Key() string {
	return c.key
}

// Table returns the table widget the controller feeds.
func (c *tableController) Table() *PageTable {
	return c.table
}

// PollTask returns the controller's repeating reload task.
func (c *tableController) PollTask() *poll.Task {
	return c.task
}

// Destroyed reports whether Destroy has run.
func (c *tableController) Destroyed() bool {
	return c.destroyed
}

// OnPoll is what one poll period does: reload the mounted table, or
// nothing when no table has registered yet.
func (c *tableController) OnPoll() tea.Cmd {
	if c.destroyed {
		return nil
	}
	r, ok := c.Callbacks[c.key]
	if !ok || r == nil {
		return nil
	}
	return r.ReloadPage()
}

// waitForPoll blocks off-loop until the next fire or until the controller
// is destroyed, whichever comes first.
func (c *tableController) waitForPoll() tea.Cmd {
	ctx, fired, key, id := c.ctx, c.fired, c.key, c.id
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case <-fired:
			if ctx.Err() != nil {
				return nil
			}
			return PollFiredMsg{Key: key, Ctrl: id}
		}
	}
}

// Destroy cancels the poll task and waits for it to exit. After Destroy
// returns no reload is ever requested by this controller again.
func (c *tableController) Destroy() {
	if c.destroyed {
		return
	}
	c.destroyed = true
	c.cancel()
	c.task.Stop()
	delete(c.Callbacks, c.key)
	c.logger.Debug("controller destroyed")
}

// Init implements View.
func (c *tableController) Init() tea.Cmd {
	return tea.Batch(c.table.Init(), c.waitForPoll())
}

// Update implements View.
func (c *tableController) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case TableMountedMsg:
		if msg.Key == c.key && !c.destroyed {
			c.Callbacks[c.key] = msg.Table
		}
		return c, nil
	case PollFiredMsg:
		if msg.Ctrl != c.id || c.destroyed {
			return c, nil
		}
		return c, tea.Batch(c.OnPoll(), c.waitForPoll())
	case PageLoadedMsg:
		if msg.Err != nil && msg.Table == c.key {
			c.logger.Warn("page load failed", zap.Error(msg.Err))
		}
	case ReloadMsg:
		return c, c.table.ReloadPage()
	case OpenActionsMsg:
		return c, c.openActions(c.table.Selected())
	case ActionsRequestedMsg:
		if msg.Key != c.key {
			return c, nil
		}
		return c, c.openActions(msg.Records)
	case EntitiesDeletedMsg, SeriesTaggedMsg:
		return c, c.table.ReloadPage()
	}

	v, cmd := c.table.Update(msg)
	if t, ok := v.(*PageTable); ok {
		c.table = t
	}
	return c, cmd
}

func (c *tableController) openActions(records []slicebox.Record) tea.Cmd {
	if len(records) == 0 {
		return statusCmd("Nothing selected")
	}
	modal := NewActionMenuModal(c.actions, records)
	return func() tea.Msg { return ShowModalMsg{View: modal} }
}

// View implements View.
func (c *tableController) View() string {
	return c.table.View()
}
