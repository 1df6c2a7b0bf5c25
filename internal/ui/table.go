package ui

import (
	"fmt"
	"strings"
	"sync/atomic"

	"sbmonitor/internal/slicebox"
	"sbmonitor/internal/ui/textutil"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// Column maps one record attribute to a table column.
type Column struct {
	Title string
	Key   string
	Width int
}

// Reloader is the handle a mounted table exposes to its controller.
type Reloader interface {
	ReloadPage() tea.Cmd
}

// PageTable is a paginated, sortable, multi-select table over one paged
// Slicebox collection. Its position lives in a TableState owned by UiState.
//
// Keys: n/p next/previous page, s cycle sort column, S flip direction,
// x toggle row, a actions, r reload.
type PageTable struct {
	key      string
	columns  []Column
	load     PageLoader
	state    *TableState
	table    table.Model
	spinner  spinner.Model
	page     slicebox.Page
	selected map[int64]bool
	unsorted bool
	loading  bool
	err      error
	seq      uint64
}

// loadSeqs numbers page requests across every table of the process, so an
// answer meant for a destroyed table never matches its successor.
var loadSeqs atomic.Uint64

// Ensure PageTable implements View and Reloader.
var (
	_ View     = (*PageTable)(nil)
	_ Reloader = (*PageTable)(nil)
)

// NewPageTable creates a table registered under key. A zero PageSize in
// state is replaced by pageSize.
func NewPageTable(key string, columns []Column, load PageLoader, state *TableState, pageSize int) *PageTable {
	if state == nil {
		state = &TableState{}
	}
	if state.PageSize <= 0 {
		state.PageSize = pageSize
	}

	t := table.New(
		table.WithColumns(tableColumns(columns)),
		table.WithFocused(true),
		table.WithHeight(state.PageSize),
	)
	t.SetStyles(NewTableStyles())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status

	return &PageTable{
		key:      key,
		columns:  columns,
		load:     load,
		state:    state,
		table:    t,
		spinner:  s,
		selected: make(map[int64]bool),
	}
}

func tableColumns(columns []Column) []table.Column {
	out := make([]table.Column, 0, len(columns)+1)
	out = append(out, table.Column{Title: " ", Width: 1})
	for _, c := range columns {
		out = append(out, table.Column{Title: c.Title, Width: c.Width})
	}
	return out
}

// DisableSort turns off s/S for collections the server cannot sort.
func (p *PageTable) DisableSort() {
	p.unsorted = true
	p.state.OrderBy = ""
	p.state.Direction = slicebox.SortNone
}

// Key returns the callback key the table registers under.
func (p *PageTable) Key() string {
	return p.key
}

// State returns the table's persisted presentation state.
func (p *PageTable) State() *TableState {
	return p.state
}

// Page returns the page currently displayed.
func (p *PageTable) Page() slicebox.Page {
	return p.page
}

// Err returns the error of the last load, if it failed.
func (p *PageTable) Err() error {
	return p.err
}

// Loading reports whether a fetch is outstanding.
func (p *PageTable) Loading() bool {
	return p.loading
}

// Init implements View. Mounting announces the table to its controller and
// loads the page recorded in state.
func (p *PageTable) Init() tea.Cmd {
	mount := func() tea.Msg { return TableMountedMsg{Key: p.key, Table: p} }
	return tea.Batch(mount, p.ReloadPage(), p.spinner.Tick)
}

// ReloadPage fetches the current page again. Overlapping reloads are
// allowed; only the newest answer is applied.
func (p *PageTable) ReloadPage() tea.Cmd {
	p.seq = loadSeqs.Add(1)
	p.loading = true
	return loadPageCmd(p.key, p.seq, p.load, *p.state)
}

// Selected returns the records the user marked on this page, or the
// record under the cursor when nothing is marked.
func (p *PageTable) Selected() []slicebox.Record {
	var out []slicebox.Record
	for _, r := range p.page.Records {
		if id, err := r.ID(); err == nil && p.selected[id] {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}
	c := p.table.Cursor()
	if c >= 0 && c < len(p.page.Records) {
		return []slicebox.Record{p.page.Records[c]}
	}
	return nil
}

// Update implements View.
func (p *PageTable) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case PageLoadedMsg:
		if msg.Table != p.key || msg.Seq != p.seq {
			return p, nil
		}
		p.applyPage(msg)
		return p, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		return p, cmd
	case tea.WindowSizeMsg:
		h := msg.Height - 8
		if h < 3 {
			h = 3
		}
		p.table.SetHeight(h)
		p.table.SetWidth(msg.Width)
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "n":
			if !p.page.HasMore() {
				return p, nil
			}
			p.state.StartIndex += p.state.PageSize
			p.state.Cursor = 0
			return p, p.ReloadPage()
		case "p":
			if p.state.StartIndex == 0 {
				return p, nil
			}
			p.state.StartIndex -= p.state.PageSize
			if p.state.StartIndex < 0 {
				p.state.StartIndex = 0
			}
			p.state.Cursor = 0
			return p, p.ReloadPage()
		case "s", "S":
			if p.unsorted {
				return p, nil
			}
			if msg.String() == "s" {
				p.cycleSort()
			} else {
				p.flipDirection()
			}
			return p, p.ReloadPage()
		case "r":
			return p, p.ReloadPage()
		case "x":
			p.toggleCursorRow()
			return p, nil
		case "a":
			records := p.Selected()
			key := p.key
			return p, func() tea.Msg { return ActionsRequestedMsg{Key: key, Records: records} }
		}
	}

	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	p.state.Cursor = p.table.Cursor()
	return p, cmd
}

func (p *PageTable) applyPage(msg PageLoadedMsg) {
	p.loading = false
	if msg.Err != nil {
		// Keep showing the last good page under the error.
		p.err = msg.Err
		return
	}
	p.err = nil
	p.page = msg.Page

	live := make(map[int64]bool, len(p.selected))
	for _, r := range p.page.Records {
		if id, err := r.ID(); err == nil && p.selected[id] {
			live[id] = true
		}
	}
	p.selected = live
	p.refreshRows()

	cursor := p.state.Cursor
	if cursor >= len(p.page.Records) {
		cursor = len(p.page.Records) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	p.table.SetCursor(cursor)
	p.state.Cursor = cursor
}

func (p *PageTable) refreshRows() {
	rows := make([]table.Row, 0, len(p.page.Records))
	for _, r := range p.page.Records {
		mark := " "
		if id, err := r.ID(); err == nil && p.selected[id] {
			mark = "*"
		}
		row := table.Row{mark}
		for _, c := range p.columns {
			row = append(row, textutil.Cell(r.Text(c.Key), c.Width))
		}
		rows = append(rows, row)
	}
	p.table.SetRows(rows)
}

func (p *PageTable) toggleCursorRow() {
	c := p.table.Cursor()
	if c < 0 || c >= len(p.page.Records) {
		return
	}
	id, err := p.page.Records[c].ID()
	if err != nil {
		return
	}
	if p.selected[id] {
		delete(p.selected, id)
	} else {
		p.selected[id] = true
	}
	p.refreshRows()
}

// cycleSort moves the sort to the next column; after the last column the
// table is unsorted again.
func (p *PageTable) cycleSort() {
	if p.unsorted || len(p.columns) == 0 {
		return
	}
	next := 0
	for i, c := range p.columns {
		if c.Key == p.state.OrderBy {
			next = i + 1
			break
		}
	}
	if next >= len(p.columns) {
		p.state.OrderBy = ""
		p.state.Direction = slicebox.SortNone
		return
	}
	p.state.OrderBy = p.columns[next].Key
	if p.state.Direction == slicebox.SortNone {
		p.state.Direction = slicebox.SortAscending
	}
}

func (p *PageTable) flipDirection() {
	if p.unsorted || p.state.OrderBy == "" {
		return
	}
	if p.state.Direction == slicebox.SortDescending {
		p.state.Direction = slicebox.SortAscending
	} else {
		p.state.Direction = slicebox.SortDescending
	}
}

// View implements View.
func (p *PageTable) View() string {
	var b strings.Builder

	first := p.state.StartIndex + 1
	last := p.state.StartIndex + len(p.page.Records)
	header := fmt.Sprintf("Rows %d-%d", first, last)
	if len(p.page.Records) == 0 {
		header = fmt.Sprintf("Page from row %d", first)
	}
	if p.state.OrderBy != "" {
		header += fmt.Sprintf("  sort: %s %s", p.state.OrderBy, strings.ToLower(string(p.state.Direction)))
	}
	if n := len(p.selected); n > 0 {
		header += fmt.Sprintf("  %d selected", n)
	}
	if p.loading {
		header += " " + p.spinner.View()
	}
	b.WriteString(Styles.Muted.Render(header) + "\n")

	if len(p.page.Records) == 0 && !p.loading && p.err == nil {
		b.WriteString(Styles.Empty.Render("No entries") + "\n")
	} else {
		b.WriteString(p.table.View() + "\n")
	}
	if p.err != nil {
		b.WriteString(Styles.Error.Render("Load failed: "+p.err.Error()) + "\n")
	}
	b.WriteString(Styles.Hint.Render("n/p: page  s/S: sort  x: select  a: actions  r: reload"))
	return b.String()
}
