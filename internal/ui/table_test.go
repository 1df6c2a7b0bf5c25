package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testColumns = []Column{
	{Title: "Box", Key: "boxName", Width: 10},
	{Title: "Status", Key: "status", Width: 10},
}

func newTestTable(t *testing.T, pages *fakePages, state *TableState) *PageTable {
	t.Helper()
	load := func(ctx context.Context, startIndex, count int, orderBy string, dir slicebox.SortDirection) (slicebox.Page, error) {
		return pages.LoadIncomingPage(ctx, startIndex, count, orderBy, dir)
	}
	return NewPageTable(IncomingTableKey, testColumns, load, state, 2)
}

// apply runs cmd and feeds every message it produces back into the table.
func apply(t *testing.T, p *PageTable, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range drain(cmd) {
		_, _ = p.Update(msg)
	}
}

func TestPageTable_InitMountsAndLoads(t *testing.T) {
	pages := &fakePages{total: 3}
	p := newTestTable(t, pages, &TableState{})

	msgs := drain(p.Init())
	mounted, ok := firstMsg[TableMountedMsg](msgs)
	require.True(t, ok, "expected mount message, got %v", msgs)
	assert.Equal(t, IncomingTableKey, mounted.Key)
	assert.Same(t, p, mounted.Table)

	loaded, ok := firstMsg[PageLoadedMsg](msgs)
	require.True(t, ok)
	_, _ = p.Update(loaded)
	assert.False(t, p.Loading())
	assert.Len(t, p.Page().Records, 2)
	assert.Equal(t, []pageCall{{Endpoint: "incoming", StartIndex: 0, Count: 2}}, pages.Calls())
}

func TestPageTable_ZeroPageSizeTakesDefault(t *testing.T) {
	state := &TableState{}
	newTestTable(t, &fakePages{}, state)
	assert.Equal(t, 2, state.PageSize)

	kept := &TableState{PageSize: 7}
	newTestTable(t, &fakePages{}, kept)
	assert.Equal(t, 7, kept.PageSize)
}

func TestPageTable_Paging(t *testing.T) {
	pages := &fakePages{total: 3}
	state := &TableState{}
	p := newTestTable(t, pages, state)
	apply(t, p, p.ReloadPage())

	_, cmd := p.Update(keyMsg("n"))
	apply(t, p, cmd)
	assert.Equal(t, 2, state.StartIndex)
	require.Len(t, p.Page().Records, 1)

	// Short page: nothing follows.
	_, cmd = p.Update(keyMsg("n"))
	assert.Nil(t, cmd)
	assert.Equal(t, 2, state.StartIndex)

	_, cmd = p.Update(keyMsg("p"))
	apply(t, p, cmd)
	assert.Equal(t, 0, state.StartIndex)

	_, cmd = p.Update(keyMsg("p"))
	assert.Nil(t, cmd)

	calls := pages.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, []int{0, 2, 0}, []int{calls[0].StartIndex, calls[1].StartIndex, calls[2].StartIndex})
}

func TestPageTable_OnlyNewestReloadApplies(t *testing.T) {
	pages := &fakePages{total: 3}
	state := &TableState{}
	p := newTestTable(t, pages, state)

	first, _ := runCmd(p.ReloadPage(), time.Second)
	state.StartIndex = 2
	second, _ := runCmd(p.ReloadPage(), time.Second)

	_, _ = p.Update(second)
	_, _ = p.Update(first)

	require.Len(t, p.Page().Records, 1)
	id, err := p.Page().Records[0].ID()
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
}

func TestPageTable_IgnoresOtherTablesPages(t *testing.T) {
	p := newTestTable(t, &fakePages{}, &TableState{})
	_ = p.ReloadPage()

	_, _ = p.Update(PageLoadedMsg{Table: LogTableKey, Seq: p.seq, Page: slicebox.Page{Count: 2, Records: records(9)}})
	assert.Empty(t, p.Page().Records)
	assert.True(t, p.Loading())
}

func TestPageTable_ErrorKeepsLastPage(t *testing.T) {
	pages := &fakePages{total: 2}
	p := newTestTable(t, pages, &TableState{})
	apply(t, p, p.ReloadPage())
	require.Len(t, p.Page().Records, 2)

	pages.err = errors.New("connection refused")
	apply(t, p, p.ReloadPage())

	assert.Len(t, p.Page().Records, 2)
	require.Error(t, p.Err())
	assert.Contains(t, p.View(), "Load failed: connection refused")

	pages.err = nil
	apply(t, p, p.ReloadPage())
	assert.NoError(t, p.Err())
}

func TestPageTable_Selection(t *testing.T) {
	pages := &fakePages{total: 2}
	p := newTestTable(t, pages, &TableState{})
	apply(t, p, p.ReloadPage())

	// Nothing marked: the cursor row is the selection.
	sel := p.Selected()
	require.Len(t, sel, 1)
	id, _ := sel[0].ID()
	assert.Equal(t, int64(1), id)

	_, _ = p.Update(keyMsg("x"))
	_, _ = p.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, _ = p.Update(keyMsg("x"))
	ids, err := slicebox.IDs(p.Selected())
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, ids)

	// Toggle off.
	_, _ = p.Update(keyMsg("x"))
	ids, _ = slicebox.IDs(p.Selected())
	assert.Equal(t, []int64{1}, ids)

	_, cmd := p.Update(keyMsg("a"))
	msg, _ := runCmd(cmd, time.Second)
	req, ok := msg.(ActionsRequestedMsg)
	require.True(t, ok, "got %T", msg)
	assert.Equal(t, IncomingTableKey, req.Key)
	assert.Len(t, req.Records, 1)
}

func TestPageTable_SelectionDroppedWhenRowLeavesPage(t *testing.T) {
	pages := &fakePages{total: 4}
	state := &TableState{}
	p := newTestTable(t, pages, state)
	apply(t, p, p.ReloadPage())
	_, _ = p.Update(keyMsg("x"))

	_, cmd := p.Update(keyMsg("n"))
	apply(t, p, cmd)

	ids, _ := slicebox.IDs(p.Selected())
	assert.Equal(t, []int64{3}, ids, "only the cursor row remains")
}

func TestPageTable_SortCycle(t *testing.T) {
	pages := &fakePages{total: 2}
	state := &TableState{}
	p := newTestTable(t, pages, state)

	_, cmd := p.Update(keyMsg("s"))
	apply(t, p, cmd)
	assert.Equal(t, "boxName", state.OrderBy)
	assert.Equal(t, slicebox.SortAscending, state.Direction)

	_, cmd = p.Update(keyMsg("S"))
	apply(t, p, cmd)
	assert.Equal(t, slicebox.SortDescending, state.Direction)

	_, cmd = p.Update(keyMsg("s"))
	apply(t, p, cmd)
	assert.Equal(t, "status", state.OrderBy)

	_, cmd = p.Update(keyMsg("s"))
	apply(t, p, cmd)
	assert.Empty(t, state.OrderBy)
	assert.Equal(t, slicebox.SortNone, state.Direction)

	calls := pages.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, "boxName", calls[0].OrderBy)
	assert.Equal(t, slicebox.SortDescending, calls[1].Direction)
}

func TestPageTable_DisableSort(t *testing.T) {
	state := &TableState{OrderBy: "boxName", Direction: slicebox.SortAscending}
	p := newTestTable(t, &fakePages{}, state)
	p.DisableSort()

	assert.Empty(t, state.OrderBy)
	_, cmd := p.Update(keyMsg("s"))
	assert.Nil(t, cmd)
	_, cmd = p.Update(keyMsg("S"))
	assert.Nil(t, cmd)
	assert.Empty(t, state.OrderBy)
}

func TestPageTable_ViewEmpty(t *testing.T) {
	p := newTestTable(t, &fakePages{}, &TableState{})
	apply(t, p, p.ReloadPage())
	assert.Contains(t, p.View(), "No entries")
}

func TestPageTable_IgnoresAnswersForPredecessor(t *testing.T) {
	pages := &fakePages{total: 50}
	state := &TableState{StartIndex: 20}
	old := newTestTable(t, pages, state)
	stale, _ := runCmd(old.ReloadPage(), time.Second)

	state.StartIndex = 40
	fresh := newTestTable(t, pages, state)
	current, _ := runCmd(fresh.ReloadPage(), time.Second)

	_, _ = fresh.Update(stale)
	assert.Empty(t, fresh.Page().Records)
	assert.True(t, fresh.Loading())

	_, _ = fresh.Update(current)
	require.Len(t, fresh.Page().Records, 2)
	id, _ := fresh.Page().Records[0].ID()
	assert.Equal(t, int64(41), id)
}
