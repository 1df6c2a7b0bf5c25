package ui

import "sbmonitor/internal/slicebox"

// TableState is the presentation state a PageTable keeps between visits:
// which page it shows, how it is sorted, and where the cursor is.
// The zero value is the first page, unsorted, cursor at top.
type TableState struct {
	StartIndex int
	PageSize   int
	OrderBy    string
	Direction  slicebox.SortDirection
	Cursor     int
}

// UiState is the session-scoped state shared by the transaction tabs. The
// root model owns it and injects it into every view it builds, so table
// positions survive navigation away from a tab and back.
type UiState struct {
	IncomingTableState *TableState
	OutgoingTableState *TableState
	BoxLogTableState   *TableState
}

// NewUiState returns an empty, not yet activated state.
func NewUiState() *UiState {
	return &UiState{}
}

// ActivateTransactions prepares the per-tab table states on first entry to
// the transactions route. When the states already exist nothing is touched,
// so a returning user lands on the page they left.
func ActivateTransactions(state *UiState) {
	if state == nil {
		return
	}
	if state.IncomingTableState == nil {
		state.IncomingTableState = &TableState{}
		state.OutgoingTableState = &TableState{}
		state.BoxLogTableState = &TableState{}
	}
}
