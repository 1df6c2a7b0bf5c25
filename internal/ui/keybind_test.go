package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestKeybindRegistry_BindLookup(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	reg.Bind("space q", tea.Quit)
	reg.Bind("j", nil)

	if reg.Lookup("q") == nil {
		t.Error("expected q to be bound")
	}
	if reg.Lookup("SPC q") == nil {
		t.Error("expected SPC q to be bound")
	}
	if reg.Lookup("unknown") != nil {
		t.Error("expected unknown to be unbound")
	}
}

func TestKeyHandler_LeaderKey(t *testing.T) {
	reg := NewKeybindRegistry()
	var executed bool
	reg.Bind("SPC r", func() tea.Msg {
		executed = true
		return ReloadMsg{}
	})
	h := NewKeyHandler(reg)

	// Press space -> leader waiting (Bubble Tea reports space as " ")
	consumed, cmd := h.Handle(keyMsg(" "))
	if !consumed || cmd != nil {
		t.Errorf("space: consumed=%v cmd=%v", consumed, cmd)
	}
	if !h.LeaderWaiting {
		t.Error("expected leader waiting after space")
	}

	// Press r -> execute SPC r
	consumed, cmd = h.Handle(keyMsg("r"))
	if !consumed {
		t.Errorf("r: expected consumed")
	}
	if h.LeaderWaiting {
		t.Error("leader should not be waiting after completing sequence")
	}
	if cmd == nil {
		t.Fatal("expected a command for SPC r")
	}
	if _, ok := cmd().(ReloadMsg); !ok || !executed {
		t.Error("expected SPC r to produce ReloadMsg")
	}
}

func TestKeyHandler_NestedSequence(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC t l", func() tea.Msg { return SwitchTabMsg{Tab: TabBoxLog} })
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("t"))
	if !consumed || cmd != nil || !h.LeaderWaiting {
		t.Fatalf("SPC t: consumed=%v cmd=%v waiting=%v", consumed, cmd, h.LeaderWaiting)
	}
	_, cmd = h.Handle(keyMsg("l"))
	if cmd == nil {
		t.Fatal("expected command for SPC t l")
	}
	if msg, ok := cmd().(SwitchTabMsg); !ok || msg.Tab != TabBoxLog {
		t.Errorf("got %#v", cmd())
	}
}

func TestKeyHandler_UnknownLeaderSequenceResets(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC t l", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	consumed, cmd := h.Handle(keyMsg("z"))
	if !consumed || cmd != nil {
		t.Errorf("z: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting || len(h.Buffer) != 0 {
		t.Error("unknown sequence should leave leader mode")
	}
}

func TestKeybindRegistry_LeaderHints(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC t i", tea.Quit, "Incoming")
	reg.BindWithDesc("SPC t l", tea.Quit, "Box log")
	reg.Bind("SPC x", tea.Quit)

	top := reg.LeaderHints("")
	if top["q"] != "Quit" || top["t"] != "Tab" || top["x"] != "SPC x" {
		t.Errorf("first level hints: %v", top)
	}
	sub := reg.LeaderHints("SPC t")
	if len(sub) != 2 || sub["i"] != "Incoming" || sub["l"] != "Box log" {
		t.Errorf("SPC t hints: %v", sub)
	}
}

func TestRenderKeybindHelp(t *testing.T) {
	if RenderKeybindHelp(nil) != "" {
		t.Error("nil handler renders nothing")
	}
	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC t o", tea.Quit, "Outgoing")
	h := NewKeyHandler(reg)
	h.Handle(keyMsg(" "))
	h.Handle(keyMsg("t"))

	out := RenderKeybindHelp(h)
	for _, want := range []string{"SPC t", "Outgoing", "cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestKeyHandler_EscCancelsLeader(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("SPC q", tea.Quit)
	h := NewKeyHandler(reg)

	h.Handle(keyMsg(" "))
	if !h.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}

	consumed, cmd := h.Handle(keyMsg("esc"))
	if !consumed || cmd != nil {
		t.Errorf("esc: consumed=%v cmd=%v", consumed, cmd)
	}
	if h.LeaderWaiting {
		t.Error("esc should cancel leader mode")
	}
}

func TestKeyHandler_SingleKey(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	consumed, cmd := h.Handle(keyMsg("q"))
	if !consumed || cmd == nil {
		t.Errorf("q: consumed=%v cmd=%v", consumed, cmd)
	}
}

func TestKeyHandler_UnboundFallsThrough(t *testing.T) {
	reg := NewKeybindRegistry()
	reg.Bind("q", tea.Quit)
	h := NewKeyHandler(reg)

	// Table keys such as n and x must reach the view.
	for _, k := range []string{"n", "x", "esc"} {
		if consumed, _ := h.Handle(keyMsg(k)); consumed {
			t.Errorf("unbound %s should not be consumed", k)
		}
	}
}

// keyMsg builds the tea.KeyMsg whose String() is s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "space", " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}
