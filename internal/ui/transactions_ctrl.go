package ui

import (
	"context"

	"sbmonitor/internal/slicebox"
)

// Callback keys the transaction tables register under.
const (
	IncomingTableKey = "incomingTable"
	OutgoingTableKey = "outgoingTable"
	LogTableKey      = "logTable"
)

var incomingColumns = []Column{
	{Title: "Box", Key: "boxName", Width: 20},
	{Title: "Received", Key: "receivedImageCount", Width: 9},
	{Title: "Added", Key: "addedImageCount", Width: 7},
	{Title: "Total", Key: "totalImageCount", Width: 7},
	{Title: "Status", Key: "status", Width: 12},
	{Title: "Updated", Key: "lastUpdated", Width: 14},
}

var outgoingColumns = []Column{
	{Title: "Box", Key: "boxName", Width: 20},
	{Title: "Sent", Key: "sentImageCount", Width: 7},
	{Title: "Total", Key: "totalImageCount", Width: 7},
	{Title: "Status", Key: "status", Width: 12},
	{Title: "Updated", Key: "lastUpdated", Width: 14},
}

var logColumns = []Column{
	{Title: "Created", Key: "created", Width: 14},
	{Title: "Type", Key: "entryType", Width: 6},
	{Title: "Subject", Key: "subject", Width: 8},
	{Title: "Message", Key: "message", Width: 60},
}

// IncomingCtrl drives the incoming box transactions tab.
type IncomingCtrl struct {
	*tableController
	ObjectActions []ActionDescriptor
	pages         PageSource
}

// NewIncomingCtrl builds the tab's actions, arms its poll task and creates
// its table.
func NewIncomingCtrl(deps ControllerDeps, state *TableState) *IncomingCtrl {
	deps = deps.withDefaults()
	c := &IncomingCtrl{pages: deps.Pages}
	c.ObjectActions = []ActionDescriptor{
		{
			Name:   "Delete",
			Action: deps.Modals.OpenDeleteEntitiesModalFunction(slicebox.IncomingResource, "incoming transactions"),
		},
		{
			Name:   "Tag Series",
			Action: deps.Modals.OpenTagSeriesModalFunction(slicebox.IncomingResource),
		},
	}
	table := NewPageTable(IncomingTableKey, incomingColumns, c.LoadIncomingPage, state, deps.PageSize)
	c.tableController = newTableController(deps, IncomingTableKey, c.ObjectActions, table)
	return c
}

// LoadIncomingPage is the table's page loader. Sort arguments are passed
// through and dropped by the API client.
func (c *IncomingCtrl) LoadIncomingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection slicebox.SortDirection) (slicebox.Page, error) {
	return c.pages.LoadIncomingPage(ctx, startIndex, count, orderByProperty, orderByDirection)
}

// OutgoingCtrl drives the outgoing box transactions tab.
type OutgoingCtrl struct {
	*tableController
	ObjectActions []ActionDescriptor
	pages         PageSource
}

// NewOutgoingCtrl builds the tab's actions, arms its poll task and creates
// its table.
func NewOutgoingCtrl(deps ControllerDeps, state *TableState) *OutgoingCtrl {
	deps = deps.withDefaults()
	c := &OutgoingCtrl{pages: deps.Pages}
	c.ObjectActions = []ActionDescriptor{
		{
			Name:   "Delete",
			Action: deps.Modals.OpenDeleteEntitiesModalFunction(slicebox.OutgoingResource, "outgoing transactions"),
		},
		{
			Name:   "Tag Series",
			Action: deps.Modals.OpenTagSeriesModalFunction(slicebox.OutgoingResource),
		},
	}
	table := NewPageTable(OutgoingTableKey, outgoingColumns, c.LoadOutgoingPage, state, deps.PageSize)
	c.tableController = newTableController(deps, OutgoingTableKey, c.ObjectActions, table)
	return c
}

// LoadOutgoingPage is the table's page loader.
func (c *OutgoingCtrl) LoadOutgoingPage(ctx context.Context, startIndex, count int, orderByProperty string, orderByDirection slicebox.SortDirection) (slicebox.Page, error) {
	return c.pages.LoadOutgoingPage(ctx, startIndex, count, orderByProperty, orderByDirection)
}

// BoxLogCtrl drives the box log tab.
type BoxLogCtrl struct {
	*tableController
	Actions []ActionDescriptor
	pages   PageSource
}

// NewBoxLogCtrl builds the tab's single delete action, arms its poll task
// and creates its table.
func NewBoxLogCtrl(deps ControllerDeps, state *TableState) *BoxLogCtrl {
	deps = deps.withDefaults()
	c := &BoxLogCtrl{pages: deps.Pages}
	c.Actions = []ActionDescriptor{
		{
			Name:   "Delete",
			Action: deps.Modals.OpenDeleteEntitiesModalFunction(slicebox.LogResource, "log message(s)"),
		},
	}
	load := func(ctx context.Context, startIndex, count int, _ string, _ slicebox.SortDirection) (slicebox.Page, error) {
		return c.LoadLogPage(ctx, startIndex, count)
	}
	table := NewPageTable(LogTableKey, logColumns, load, state, deps.PageSize)
	table.DisableSort()
	c.tableController = newTableController(deps, LogTableKey, c.Actions, table)
	return c
}

// LoadLogPage is the table's page loader. The log cannot be sorted.
func (c *BoxLogCtrl) LoadLogPage(ctx context.Context, startIndex, count int) (slicebox.Page, error) {
	return c.pages.LoadLogPage(ctx, startIndex, count)
}
