package keymap

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestFromTcellStringForm(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'a', 0), "a"},
		{tcell.NewEventKey(tcell.KeyRune, 'Q', 0), "Q"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, 0), "Enter"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, 0), "Backspace"},
		{tcell.NewEventKey(tcell.KeyDelete, 0, 0), "Delete"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, 0), "Left"},
		{tcell.NewEventKey(tcell.KeyRight, 0, 0), "Right"},
		{tcell.NewEventKey(tcell.KeyTab, 0, 0), "Tab"},
		{tcell.NewEventKey(tcell.KeyEsc, 0, 0), "Esc"},
		{tcell.NewEventKey(tcell.KeyCtrlE, 'e', tcell.ModCtrl), "C+e"},
		{tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModCtrl), "C+Delete"},
		{tcell.NewEventKey(tcell.KeyCtrlW, 'w', tcell.ModCtrl), "C+w"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "A+x"},
		{tcell.NewEventKey(tcell.KeyF5, 0, 0), "F5"},
	}
	for _, c := range cases {
		if got := FromTcell(c.ev); got != c.want {
			t.Fatalf("FromTcell = %q, want %q", got, c.want)
		}
	}
}

func TestLookupWalksParents(t *testing.T) {
	root := NewNode(nil)
	root.Bind("q", Fn{Callback: 1})
	root.Bind("x", Fn{Callback: 2})

	child := NewNode(root)
	child.Bind("x", Fn{Callback: 3})

	if b := child.Lookup("x").(Fn); b.Callback != 3 {
		t.Fatalf("child x = %d, want shadowing 3", b.Callback)
	}
	if b := child.Lookup("q").(Fn); b.Callback != 1 {
		t.Fatalf("inherited q = %d, want 1", b.Callback)
	}
	if b := root.Lookup("q").(Fn); b.Callback != 1 {
		t.Fatalf("root q = %d, want 1", b.Callback)
	}
	if b := child.Lookup("unbound"); b != nil {
		t.Fatalf("unbound = %v, want nil", b)
	}
}

func TestFallbackResolution(t *testing.T) {
	root := NewNode(nil)
	root.SetFallback(Fn{Callback: 9})
	child := NewNode(root)

	if b := child.Lookup("anything").(Fn); b.Callback != 9 {
		t.Fatalf("fallback = %d, want inherited 9", b.Callback)
	}
	child.SetFallback(Fn{Callback: 4})
	if b := child.Lookup("anything").(Fn); b.Callback != 4 {
		t.Fatalf("fallback = %d, want own 4", b.Callback)
	}
	// Explicit entries anywhere in the chain beat fallbacks.
	root.Bind("k", Fn{Callback: 7})
	if b := child.Lookup("k").(Fn); b.Callback != 7 {
		t.Fatalf("explicit k = %d, want 7", b.Callback)
	}
}

func TestSubmapBinding(t *testing.T) {
	root := NewNode(nil)
	sub := NewNode(root)
	sub.Bind("s", Fn{Callback: 11})
	root.Bind("C+w", Submap{Node: sub})

	b, ok := root.Lookup("C+w").(Submap)
	if !ok {
		t.Fatalf("C+w = %T, want Submap", root.Lookup("C+w"))
	}
	if fn := b.Node.Lookup("s").(Fn); fn.Callback != 11 {
		t.Fatalf("submap s = %d, want 11", fn.Callback)
	}
}
