package ui

import "sbmonitor/internal/slicebox"

// NavigateMsg switches the app to the view registered for Path (SPC g).
// Navigating to the current path rebuilds its view from UiState.
type NavigateMsg struct {
	Path string
}

// SwitchTabMsg selects a tab of the transactions view.
type SwitchTabMsg struct {
	Tab Tab
}

// ReloadMsg asks the visible table to reload its current page (SPC r).
type ReloadMsg struct{}

// OpenActionsMsg asks the visible table to open the action menu (SPC a).
type OpenActionsMsg struct{}

// PageLoadedMsg carries the result of one page fetch. Seq is unique per
// request, so a table drops answers to requests it has since superseded and
// answers addressed to an earlier table under the same key.
type PageLoadedMsg struct {
	Table string
	Seq   uint64
	Page  slicebox.Page
	Err   error
}

// TableMountedMsg is emitted by a PageTable once it is live. The owning
// controller registers it as the callback for Key.
type TableMountedMsg struct {
	Key   string
	Table *PageTable
}

// PollFiredMsg is delivered once per poll period while a controller is active.
type PollFiredMsg struct {
	Key  string
	Ctrl uint64
}

// ActionsRequestedMsg asks the controller owning Key for its action menu.
type ActionsRequestedMsg struct {
	Key     string
	Records []slicebox.Record
}

// ShowModalMsg pushes a modal on top of the current view.
type ShowModalMsg struct {
	View View
}

// RunActionMsg is sent when the user picks an entry from the action menu.
type RunActionMsg struct {
	Action  ActionDescriptor
	Records []slicebox.Record
}

// EntitiesDeletedMsg reports the outcome of a bulk delete.
type EntitiesDeletedMsg struct {
	Prefix string
	Label  string
	Count  int
	Err    error
}

// SeriesTaggedMsg reports the outcome of tagging the series of some entities.
type SeriesTaggedMsg struct {
	Prefix string
	Count  int
	Tags   []string
	Err    error
}

// StatusMsg sets the one-line status shown under the current view.
type StatusMsg struct {
	Text  string
	Error bool
}

// DismissModalMsg is sent when user cancels a modal (Esc).
type DismissModalMsg struct{}

// quitMsg tears down the current view before the program exits.
type quitMsg struct{}
