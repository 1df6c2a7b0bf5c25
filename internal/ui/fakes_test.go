package ui

import (
	"context"
	"sync"
	"testing"
	"time"

	"sbmonitor/internal/poll"
	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap/zaptest"
)

type pageCall struct {
	Endpoint   string
	StartIndex int
	Count      int
	OrderBy    string
	Direction  slicebox.SortDirection
}

// fakePages serves fixed-size pages of synthetic records and records every
// request it sees.
type fakePages struct {
	mu    sync.Mutex
	calls []pageCall
	total int
	err   error
}

func (f *fakePages) page(endpoint string, startIndex, count int, orderBy string, dir slicebox.SortDirection) (slicebox.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, pageCall{endpoint, startIndex, count, orderBy, dir})
	if f.err != nil {
		return slicebox.Page{}, f.err
	}
	var records []slicebox.Record
	for i := startIndex; i < startIndex+count && i < f.total; i++ {
		records = append(records, slicebox.Record{"id": int64(i + 1), "boxName": "box", "message": "msg"})
	}
	return slicebox.Page{StartIndex: startIndex, Count: count, Records: records}, nil
}

func (f *fakePages) LoadIncomingPage(_ context.Context, startIndex, count int, orderBy string, dir slicebox.SortDirection) (slicebox.Page, error) {
	return f.page("incoming", startIndex, count, orderBy, dir)
}

func (f *fakePages) LoadOutgoingPage(_ context.Context, startIndex, count int, orderBy string, dir slicebox.SortDirection) (slicebox.Page, error) {
	return f.page("outgoing", startIndex, count, orderBy, dir)
}

func (f *fakePages) LoadLogPage(_ context.Context, startIndex, count int) (slicebox.Page, error) {
	return f.page("log", startIndex, count, "", slicebox.SortNone)
}

func (f *fakePages) Calls() []pageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]pageCall(nil), f.calls...)
}

type actionCall struct {
	Op     string
	Prefix string
	IDs    []int64
	Tags   []string
}

type fakeActions struct {
	mu    sync.Mutex
	calls []actionCall
	err   error
}

func (f *fakeActions) DeleteEntities(_ context.Context, prefix string, ids []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, actionCall{Op: "delete", Prefix: prefix, IDs: ids})
	return f.err
}

func (f *fakeActions) TagSeries(_ context.Context, prefix string, ids []int64, tags []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, actionCall{Op: "tag", Prefix: prefix, IDs: ids, Tags: tags})
	return f.err
}

func (f *fakeActions) Calls() []actionCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]actionCall(nil), f.calls...)
}

func testDeps(t *testing.T, clock *poll.FakeClock, pages *fakePages, actions *fakeActions) ControllerDeps {
	t.Helper()
	return ControllerDeps{
		Parent:   context.Background(),
		Pages:    pages,
		Modals:   NewModals(actions),
		Clock:    clock,
		Interval: poll.DefaultInterval,
		PageSize: 2,
		Logger:   zaptest.NewLogger(t),
	}
}

func newFakeClock() *poll.FakeClock {
	return poll.NewFakeClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func records(ids ...int64) []slicebox.Record {
	out := make([]slicebox.Record, len(ids))
	for i, id := range ids {
		out[i] = slicebox.Record{"id": id}
	}
	return out
}

// runCmd runs cmd and returns its message, or false when it blocks longer
// than wait.
func runCmd(cmd tea.Cmd, wait time.Duration) (tea.Msg, bool) {
	if cmd == nil {
		return nil, true
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg, true
	case <-time.After(wait):
		return nil, false
	}
}

// drain runs cmd and every command batched inside it, collecting the
// messages that arrive promptly. Blocking commands such as poll waits are
// skipped.
func drain(cmd tea.Cmd) []tea.Msg {
	msg, ok := runCmd(cmd, 200*time.Millisecond)
	if !ok || msg == nil {
		return nil
	}
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func firstMsg[T any](msgs []tea.Msg) (T, bool) {
	for _, m := range msgs {
		if v, ok := m.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
