package ui

import (
	"context"
	"fmt"

	"sbmonitor/internal/slicebox"

	tea "github.com/charmbracelet/bubbletea"
)

// PageLoader fetches one page for a table. Loaders that cannot sort simply
// ignore orderBy and dir.
type PageLoader func(ctx context.Context, startIndex, count int, orderBy string, dir slicebox.SortDirection) (slicebox.Page, error)

// EntityActions is the server side of the bulk actions offered by the
// transaction tables.
type EntityActions interface {
	DeleteEntities(ctx context.Context, prefix string, ids []int64) error
	TagSeries(ctx context.Context, prefix string, ids []int64, tags []string) error
}

// loadPageCmd runs one page fetch off the event loop. In-flight fetches are
// not cancelled when the owning controller goes away; a late answer is
// simply not claimed by any table.
func loadPageCmd(table string, seq uint64, load PageLoader, st TableState) tea.Cmd {
	return func() tea.Msg {
		page, err := load(context.Background(), st.StartIndex, st.PageSize, st.OrderBy, st.Direction)
		return PageLoadedMsg{Table: table, Seq: seq, Page: page, Err: err}
	}
}

// deleteEntitiesCmd deletes every record under prefix.
func deleteEntitiesCmd(actions EntityActions, prefix, label string, records []slicebox.Record) tea.Cmd {
	return func() tea.Msg {
		ids, err := slicebox.IDs(records)
		if err != nil {
			return EntitiesDeletedMsg{Prefix: prefix, Label: label, Err: err}
		}
		err = actions.DeleteEntities(context.Background(), prefix, ids)
		return EntitiesDeletedMsg{Prefix: prefix, Label: label, Count: len(ids), Err: err}
	}
}

// tagSeriesCmd tags the series of every record under prefix.
func tagSeriesCmd(actions EntityActions, prefix string, records []slicebox.Record, tags []string) tea.Cmd {
	return func() tea.Msg {
		ids, err := slicebox.IDs(records)
		if err != nil {
			return SeriesTaggedMsg{Prefix: prefix, Tags: tags, Err: err}
		}
		err = actions.TagSeries(context.Background(), prefix, ids, tags)
		return SeriesTaggedMsg{Prefix: prefix, Count: len(ids), Tags: tags, Err: err}
	}
}

func statusCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return StatusMsg{Text: text} }
}

func errorStatusCmd(format string, args ...any) tea.Cmd {
	text := fmt.Sprintf(format, args...)
	return func() tea.Msg { return StatusMsg{Text: text, Error: true} }
}
