package editor

import "fmt"

// HookKind names an extension point where registered callbacks run as new
// tasks.
type HookKind int

const (
	HookKeyEvent HookKind = iota
	HookBufferFileLinked
	HookPaneClosed
	HookPaneBufferChanged
	HookError
	HookSecondaryError
)

func (k HookKind) String() string {
	switch k {
	case HookKeyEvent:
		return "key_event"
	case HookBufferFileLinked:
		return "buffer_file_linked"
	case HookPaneClosed:
		return "pane_closed"
	case HookPaneBufferChanged:
		return "pane_buffer_changed"
	case HookError:
		return "error"
	case HookSecondaryError:
		return "secondary_error"
	default:
		return fmt.Sprintf("HookKind(%d)", int(k))
	}
}

func ParseHookKind(s string) (HookKind, error) {
	for _, k := range []HookKind{
		HookKeyEvent, HookBufferFileLinked, HookPaneClosed,
		HookPaneBufferChanged, HookError, HookSecondaryError,
	} {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown hook kind %q", s)
}

// Payload is the single argument a hook task is spawned with.
type Payload interface {
	HookKind() HookKind
}

type KeyEventPayload struct {
	Key string
}

func (KeyEventPayload) HookKind() HookKind { return HookKeyEvent }

type LinkType int

const (
	Linked LinkType = iota
	Unlinked
)

type BufferFileLinkedPayload struct {
	LinkType LinkType
	BufferID int
	FileID   int
}

func (BufferFileLinkedPayload) HookKind() HookKind { return HookBufferFileLinked }

type PaneClosedPayload struct {
	PaneID int
}

func (PaneClosedPayload) HookKind() HookKind { return HookPaneClosed }

type PaneBufferChangedPayload struct {
	PaneID   int
	BufferID int
}

func (PaneBufferChangedPayload) HookKind() HookKind { return HookPaneBufferChanged }

type ErrorPayload struct {
	Description string
	Secondary   bool
}

func (p ErrorPayload) HookKind() HookKind {
	if p.Secondary {
		return HookSecondaryError
	}
	return HookError
}

type hookEntry struct {
	callback int
	// scope restricts the entry to events carrying this id, for
	// scope-bound hooks like pane_closed. nil matches everything.
	scope *int
}

// HookMap is the registry from hook kind to registered callback handles, in
// registration order.
type HookMap struct {
	entries map[HookKind][]hookEntry
}

func NewHookMap() *HookMap {
	return &HookMap{entries: make(map[HookKind][]hookEntry)}
}

func (m *HookMap) Add(kind HookKind, callback int, scope *int) {
	m.entries[kind] = append(m.entries[kind], hookEntry{callback: callback, scope: scope})
}

// Callbacks returns the callback handles to fire for an event. Unscoped
// entries always match; scoped entries match only the given scope id.
// Scope-bound entries are one-shot: a matched scoped entry is removed.
func (m *HookMap) Callbacks(kind HookKind, scope *int) []int {
	var out []int
	kept := m.entries[kind][:0]
	for _, e := range m.entries[kind] {
		switch {
		case e.scope == nil:
			out = append(out, e.callback)
			kept = append(kept, e)
		case scope != nil && *e.scope == *scope:
			out = append(out, e.callback)
		default:
			kept = append(kept, e)
		}
	}
	m.entries[kind] = kept
	return out
}
