// Package ui is the Bubble Tea front end of sbmonitor.
//
// Core abstractions:
//   - View: a screen or modal with its own Init/Update/View (Elm-style)
//   - Router: maps paths to the views built for them
//   - UiState: session state injected into every view the router builds
//   - PageTable: a polled, paginated table over one Slicebox collection
//   - tableController: arms a poll task per visible table, owns its actions
//   - Overlay: modal views stacked over the current view
package ui
