package ui

// Tab identifies one of the transactions views.
type Tab int

const (
	TabIncoming Tab = iota
	TabOutgoing
	TabBoxLog
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabIncoming, TabOutgoing, TabBoxLog}

func (t Tab) String() string {
	switch t {
	case TabIncoming:
		return "Incoming"
	case TabOutgoing:
		return "Outgoing"
	case TabBoxLog:
		return "Box log"
	default:
		return "Unknown"
	}
}
