package app

import (
	"errors"
	"testing"

	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/script"
)

func newBootstrapped(t *testing.T) (*script.Scheduler, *editor.State) {
	t.Helper()
	state := editor.New()
	sched := script.NewScheduler(state, nil)
	Bootstrap(sched, state)
	drain(t, sched)
	return sched, state
}

func drain(t *testing.T, sched *script.Scheduler) script.Status {
	t.Helper()
	for i := 0; i < 1000; i++ {
		status, err := sched.Tick()
		if err != nil {
			t.Fatalf("Tick: %v", err)
		}
		if status == script.Idle || status == script.Quit {
			return status
		}
	}
	t.Fatalf("scheduler did not go idle")
	return script.Idle
}

func sendKey(t *testing.T, sched *script.Scheduler, key string) script.Status {
	t.Helper()
	sched.EnqueueHook(editor.KeyEventPayload{Key: key}, nil)
	return drain(t, sched)
}

func activeContent(t *testing.T, state *editor.State) string {
	t.Helper()
	buf, err := state.ActiveBuffer()
	if err != nil {
		t.Fatalf("ActiveBuffer: %v", err)
	}
	return buf.Content()
}

func TestBootstrapOpensMessagePane(t *testing.T) {
	_, state := newBootstrapped(t)
	root := state.Panes.Root()
	leaf, err := state.Panes.IsLeaf(root)
	if err != nil {
		t.Fatalf("IsLeaf: %v", err)
	}
	if leaf {
		t.Fatalf("root still a leaf after bootstrap")
	}
	if state.ActivePane != 0 {
		t.Fatalf("active pane = %d, want 0", state.ActivePane)
	}
	bottom, ok, err := state.Panes.Child(root, false)
	if err != nil || !ok {
		t.Fatalf("bottom pane: %v, %v", ok, err)
	}
	bufID, err := state.Panes.BufferID(bottom)
	if err != nil || bufID == 0 {
		t.Fatalf("message buffer = %d, %v, want a fresh buffer", bufID, err)
	}
}

func TestUnmappedKeyEchoesIntoBuffer(t *testing.T) {
	sched, state := newBootstrapped(t)
	sendKey(t, sched, "q")
	if got := activeContent(t, state); got != "q" {
		t.Fatalf("content = %q, want %q", got, "q")
	}
}

func TestDefaultEditingKeys(t *testing.T) {
	sched, state := newBootstrapped(t)
	for _, key := range []string{"a", "b", "Left", "Backspace"} {
		sendKey(t, sched, key)
	}
	if got := activeContent(t, state); got != "b" {
		t.Fatalf("content = %q, want %q", got, "b")
	}

	sendKey(t, sched, "Enter")
	sendKey(t, sched, "x")
	if got := activeContent(t, state); got != "\nxb" {
		t.Fatalf("content = %q, want %q", got, "\nxb")
	}
}

func TestNamedKeysDoNotEcho(t *testing.T) {
	sched, state := newBootstrapped(t)
	sendKey(t, sched, "Esc")
	sendKey(t, sched, "C+e")
	if got := activeContent(t, state); got != "" {
		t.Fatalf("content = %q, want empty", got)
	}
}

func TestTabRespectsExpandOption(t *testing.T) {
	sched, state := newBootstrapped(t)
	sendKey(t, sched, "Tab")
	if got := activeContent(t, state); got != "\t" {
		t.Fatalf("content = %q, want a tab", got)
	}

	buf, _ := state.ActiveBuffer()
	buf.Clear()
	state.Options.ExpandTabs = true
	state.Options.TabWidth = 2
	sendKey(t, sched, "Tab")
	if got := activeContent(t, state); got != "  " {
		t.Fatalf("content = %q, want two spaces", got)
	}
}

func TestCtrlQQuits(t *testing.T) {
	sched, _ := newBootstrapped(t)
	if status := sendKey(t, sched, "C+q"); status != script.Quit {
		t.Fatalf("status = %v, want Quit", status)
	}
}

func TestErrorAppearsInMessagePane(t *testing.T) {
	sched, state := newBootstrapped(t)
	sched.Spawn(func(y *script.Yielder) (any, error) {
		return nil, errors.New("something broke")
	})
	drain(t, sched)

	root := state.Panes.Root()
	bottom, _, _ := state.Panes.Child(root, false)
	bufID, _ := state.Panes.BufferID(bottom)
	buf, err := state.Buffer(bufID)
	if err != nil {
		t.Fatalf("message buffer: %v", err)
	}
	if got := buf.Content(); got != "something broke" {
		t.Fatalf("message = %q, want %q", got, "something broke")
	}

	// A second error replaces the first.
	sched.Spawn(func(y *script.Yielder) (any, error) {
		return nil, errors.New("again")
	})
	drain(t, sched)
	if got := buf.Content(); got != "again" {
		t.Fatalf("message = %q, want %q", got, "again")
	}
}
