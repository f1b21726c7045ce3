// Package keymap carries the key-event string form crossing the script
// bridge and the parent-linked keymap node tree scripts build their modal
// bindings from.
package keymap

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Modifier prefixes of the key-event string form, e.g. "C+e", "C+Delete".
// Shift is folded into the rune itself.
const (
	ControlPrefix = "C+"
	AltPrefix     = "A+"
	MetaPrefix    = "M+"
)

var keyNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyLeft:       "Left",
	tcell.KeyRight:      "Right",
	tcell.KeyUp:         "Up",
	tcell.KeyDown:       "Down",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "BackTab",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyEsc:        "Esc",
}

// FromTcell converts a terminal key event into the bridge's string form.
// The core passes these strings through unchanged.
func FromTcell(ev *tcell.EventKey) string {
	var prefix string
	mods := ev.Modifiers()
	if mods&tcell.ModCtrl != 0 {
		prefix += ControlPrefix
	}
	if mods&tcell.ModAlt != 0 {
		prefix += AltPrefix
	}
	if mods&tcell.ModMeta != 0 {
		prefix += MetaPrefix
	}

	key := ev.Key()
	if name, ok := keyNames[key]; ok {
		return prefix + name
	}
	if key >= tcell.KeyF1 && key <= tcell.KeyF64 {
		return prefix + fmt.Sprintf("F%d", int(key-tcell.KeyF1)+1)
	}
	// tcell folds Ctrl+letter into dedicated keys with a control rune;
	// recover the letter so scripts see "C+a" rather than a control byte.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		return prefix + string(rune('a')+rune(key-tcell.KeyCtrlA))
	}
	if key == tcell.KeyRune {
		return prefix + string(ev.Rune())
	}
	return prefix + fmt.Sprintf("Key(%d)", int(key))
}

// Binding is what a key string resolves to in a keymap node.
type Binding interface {
	binding()
}

// Fn binds a key to a script callback handle.
type Fn struct {
	Callback int
}

// Submap chains a key to a nested keymap node.
type Submap struct {
	Node *Node
}

func (Fn) binding()     {}
func (Submap) binding() {}

// Node is one keymap in a parent-linked tree. Lookup walks parents, so a
// child map shadows its ancestors; the fallback is the node's default
// handler for unmapped keys.
type Node struct {
	parent   *Node
	entries  map[string]Binding
	fallback Binding
}

func NewNode(parent *Node) *Node {
	return &Node{parent: parent, entries: make(map[string]Binding)}
}

func (n *Node) Bind(event string, b Binding) {
	n.entries[event] = b
}

func (n *Node) SetFallback(b Binding) {
	n.fallback = b
}

// Lookup resolves an event string: explicit entries win over fallbacks, and
// both are searched up the parent chain.
func (n *Node) Lookup(event string) Binding {
	for at := n; at != nil; at = at.parent {
		if b, ok := at.entries[event]; ok {
			return b
		}
	}
	for at := n; at != nil; at = at.parent {
		if at.fallback != nil {
			return at.fallback
		}
	}
	return nil
}
