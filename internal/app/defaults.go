package app

import (
	"strings"

	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/keymap"
	"github.com/badred/badred/internal/logger"
	"github.com/badred/badred/internal/script"
)

// defaults is the native key behavior every session starts with. Hooks that
// scripts register through set_hook run alongside these: set_hook only adds
// entries, so the defaults stay registered. Without an interpreter they make
// the editor usable on their own.
type defaults struct {
	root    *keymap.Node
	pending *keymap.Node
	actions []func(y *script.Yielder, key string) error
	msgBuf  int
}

// Bootstrap registers the default keymap, the error hook and the bottom
// message pane.
func Bootstrap(sched *script.Scheduler, state *editor.State) {
	d := &defaults{msgBuf: -1}
	d.root = keymap.NewNode(nil)
	d.bindDefaults()

	keyHandle := sched.RegisterCallback(func(y *script.Yielder, p editor.Payload) (any, error) {
		return nil, d.handleKey(y, p.(editor.KeyEventPayload).Key)
	})
	state.Hooks.Add(editor.HookKeyEvent, keyHandle, nil)

	errHandle := sched.RegisterCallback(func(y *script.Yielder, p editor.Payload) (any, error) {
		return nil, d.showMessage(y, p.(editor.ErrorPayload).Description)
	})
	state.Hooks.Add(editor.HookError, errHandle, nil)

	secHandle := sched.RegisterCallback(func(y *script.Yielder, p editor.Payload) (any, error) {
		logger.Error("secondary error", "error", p.(editor.ErrorPayload).Description)
		return nil, nil
	})
	state.Hooks.Add(editor.HookSecondaryError, secHandle, nil)

	sched.Spawn(d.openMessagePane)
}

// bind registers an action body and maps a key to it.
func (d *defaults) bind(key string, action func(y *script.Yielder, key string) error) {
	d.actions = append(d.actions, action)
	d.root.Bind(key, keymap.Fn{Callback: len(d.actions) - 1})
}

func (d *defaults) bindDefaults() {
	d.bind("Left", d.moveChar(-1))
	d.bind("Right", d.moveChar(1))
	d.bind("Up", d.moveLine(-1))
	d.bind("Down", d.moveLine(1))
	d.bind("Enter", d.insertText("\n"))
	d.bind("Tab", d.insertTab)
	d.bind("Backspace", d.backspace)
	d.bind("Delete", d.deleteForward)
	d.bind("C+q", func(y *script.Yielder, _ string) error {
		_, err := y.Call(script.EditorExit{})
		return err
	})

	d.actions = append(d.actions, d.echoKey)
	d.root.SetFallback(keymap.Fn{Callback: len(d.actions) - 1})
}

// handleKey resolves one key event against the keymap, honoring a pending
// submap from a previous key.
func (d *defaults) handleKey(y *script.Yielder, key string) error {
	node := d.root
	if d.pending != nil {
		node = d.pending
		d.pending = nil
	}
	switch b := node.Lookup(key).(type) {
	case keymap.Fn:
		return d.actions[b.Callback](y, key)
	case keymap.Submap:
		d.pending = b.Node
		return nil
	default:
		return nil
	}
}

func activeBuffer(y *script.Yielder) (int, error) {
	resp, err := y.Call(script.CurrentBufferID{})
	if err != nil {
		return 0, err
	}
	return resp.(script.BufferRef).ID, nil
}

func (d *defaults) moveChar(delta int) func(y *script.Yielder, key string) error {
	return func(y *script.Yielder, _ string) error {
		id, err := activeBuffer(y)
		if err != nil {
			return err
		}
		resp, err := y.Call(script.BufferCursorMovedByChar{Buffer: id, CharCount: delta})
		if err != nil {
			return err
		}
		_, err = y.Call(script.BufferSetCursor{Buffer: id, Index: resp.(script.ByteIndex).Value})
		return err
	}
}

func (d *defaults) moveLine(delta int) func(y *script.Yielder, key string) error {
	return func(y *script.Yielder, _ string) error {
		id, err := activeBuffer(y)
		if err != nil {
			return err
		}
		resp, err := y.Call(script.BufferCursorLine{Buffer: id})
		if err != nil {
			return err
		}
		line := resp.(script.LineIndex).Value + delta
		if line < 0 {
			line = 0
		}
		_, err = y.Call(script.BufferSetCursorLine{Buffer: id, Line: line})
		return err
	}
}

func (d *defaults) insertText(text string) func(y *script.Yielder, key string) error {
	return func(y *script.Yielder, _ string) error {
		id, err := activeBuffer(y)
		if err != nil {
			return err
		}
		_, err = y.Call(script.BufferInsert{Buffer: id, Content: text})
		return err
	}
}

func (d *defaults) insertTab(y *script.Yielder, _ string) error {
	id, err := activeBuffer(y)
	if err != nil {
		return err
	}
	text := "\t"
	resp, err := y.Call(script.EditorOptions{})
	if err != nil {
		return err
	}
	if opts := resp.(script.OptionsValue).Options; opts.ExpandTabs {
		text = strings.Repeat(" ", int(opts.TabWidth))
	}
	_, err = y.Call(script.BufferInsert{Buffer: id, Content: text})
	return err
}

func (d *defaults) backspace(y *script.Yielder, _ string) error {
	id, err := activeBuffer(y)
	if err != nil {
		return err
	}
	cur, err := y.Call(script.BufferCursor{Buffer: id})
	if err != nil {
		return err
	}
	moved, err := y.Call(script.BufferCursorMovedByChar{Buffer: id, CharCount: -1})
	if err != nil {
		return err
	}
	if moved.(script.ByteIndex).Value == cur.(script.ByteIndex).Value {
		return nil
	}
	if _, err := y.Call(script.BufferSetCursor{Buffer: id, Index: moved.(script.ByteIndex).Value}); err != nil {
		return err
	}
	_, err = y.Call(script.BufferDelete{Buffer: id, CharCount: 1})
	return err
}

func (d *defaults) deleteForward(y *script.Yielder, _ string) error {
	id, err := activeBuffer(y)
	if err != nil {
		return err
	}
	_, err = y.Call(script.BufferDelete{Buffer: id, CharCount: 1})
	return err
}

// echoKey is the root fallback: unmapped single-rune keys insert
// themselves; named keys are dropped.
func (d *defaults) echoKey(y *script.Yielder, key string) error {
	if len([]rune(key)) != 1 {
		return nil
	}
	id, err := activeBuffer(y)
	if err != nil {
		return err
	}
	_, err = y.Call(script.BufferInsert{Buffer: id, Content: key})
	return err
}

// openMessagePane carves a one-row pane off the bottom of the root and
// binds it to a fresh buffer for error display.
func (d *defaults) openMessagePane(y *script.Yielder) (any, error) {
	resp, err := y.Call(script.BufferOpen{})
	if err != nil {
		return nil, err
	}
	bufID := resp.(script.BufferRef).ID

	resp, err = y.Call(script.RootPaneIndex{})
	if err != nil {
		return nil, err
	}
	oldRoot := resp.(script.PaneRef).ID
	if _, err := y.Call(script.PaneHSplit{Pane: oldRoot}); err != nil {
		return nil, err
	}
	resp, err = y.Call(script.RootPaneIndex{})
	if err != nil {
		return nil, err
	}
	newRoot := resp.(script.PaneRef).ID
	resp, err = y.Call(script.PaneIndexDownFrom{Pane: newRoot, ToFirst: false})
	if err != nil {
		return nil, err
	}
	bottom := resp.(script.PaneMaybe)
	if !bottom.OK {
		return nil, nil
	}
	if _, err := y.Call(script.PaneSetBuffer{Pane: bottom.ID, Buffer: bufID}); err != nil {
		return nil, err
	}
	if _, err := y.Call(script.PaneSetSplitFixed{Pane: newRoot, Size: 1, OnFirst: false}); err != nil {
		return nil, err
	}
	d.msgBuf = bufID
	return nil, nil
}

// showMessage replaces the message buffer's content with the description.
func (d *defaults) showMessage(y *script.Yielder, desc string) error {
	if d.msgBuf < 0 {
		logger.Error("script error with no message pane", "error", desc)
		return nil
	}
	if _, err := y.Call(script.BufferSetCursor{Buffer: d.msgBuf, Index: 0}); err != nil {
		return err
	}
	resp, err := y.Call(script.BufferLength{Buffer: d.msgBuf})
	if err != nil {
		return err
	}
	if _, err := y.Call(script.BufferDelete{Buffer: d.msgBuf, CharCount: resp.(script.IntValue).Value}); err != nil {
		return err
	}
	_, err = y.Call(script.BufferInsert{Buffer: d.msgBuf, Content: strings.Split(desc, "\n")[0]})
	return err
}
