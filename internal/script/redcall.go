// Package script implements the cooperative script side of the editor: the
// task model, the single-threaded scheduler, and the typed RedCall bridge
// tasks use to talk to the editor state.
package script

import (
	"github.com/badred/badred/internal/buffer"
	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/styling"
)

// Call is one request on the typed script↔editor bridge. Emitting a Call is
// a task's only suspension point. The set is closed; each variant has a
// matching Response shape.
type Call interface {
	call()
}

// Editor-level calls.

type EditorExit struct{}
type EditorOptions struct{}
type UpdateOptions struct{ Changes editor.OptionChanges }
type SetTextStyle struct {
	Name       string
	Foreground styling.Color
	Background *styling.Color
}

// RunScript spawns a new task from interpreter source.
type RunScript struct{ Source string }

// SetHook registers a callback handle for a hook kind, optionally bound to
// a scope id.
type SetHook struct {
	Kind     editor.HookKind
	Callback int
	Scope    *int
}

// Yield parks the task until the scheduler's next pass without asking the
// editor for anything.
type Yield struct{}

// Pane calls.

type CurrentBufferID struct{}
type ActivePaneIndex struct{}
type RootPaneIndex struct{}
type SetActivePane struct{ Pane int }
type PaneIsFirst struct{ Pane int }
type PaneIndexUpFrom struct{ Pane int }
type PaneIndexDownFrom struct {
	Pane    int
	ToFirst bool
}
type PaneType struct{ Pane int }
type PaneBufferIndex struct{ Pane int }
type PaneSetBuffer struct{ Pane, Buffer int }
type PaneVSplit struct{ Pane int }
type PaneHSplit struct{ Pane int }
type PaneCloseChild struct {
	Pane       int
	FirstChild bool
}
type PaneSetSplitPercent struct {
	Pane    int
	Percent float64
	// OnFirst is accepted for signature compatibility; a percent split
	// always sizes the first child.
	OnFirst bool
}
type PaneSetSplitFixed struct {
	Pane    int
	Size    uint16
	OnFirst bool
}
type PaneTopLine struct{ Pane int }
type PaneSetTopLine struct {
	Pane int
	Line uint16
}
type PaneFrame struct{ Pane int }
type PaneWrap struct{ Pane int }
type PaneSetWrap struct {
	Pane int
	Wrap bool
}

// Buffer calls.

type BufferOpen struct{}
type BufferClose struct{ Buffer int }
type BufferInsert struct {
	Buffer  int
	Content string
}
type BufferDelete struct {
	Buffer    int
	CharCount int
}
type BufferCursor struct{ Buffer int }
type BufferCursorLine struct{ Buffer int }
type BufferCursorMovedByChar struct {
	Buffer    int
	CharCount int
}
type BufferIndexMovedByChar struct {
	Buffer    int
	Index     int
	CharCount int
}
type BufferSetCursor struct {
	Buffer  int
	Index   int
	KeepCol bool
}
type BufferSetCursorLine struct {
	Buffer int
	Line   int
}
type BufferLength struct{ Buffer int }
type BufferLineCount struct{ Buffer int }
type BufferContent struct{ Buffer int }
type BufferContentAt struct {
	Buffer    int
	Index     int
	CharCount int
}
type BufferLineContent struct {
	Buffer int
	Line   int
}
type BufferLineContaining struct {
	Buffer int
	Index  int
}
type BufferLineLength struct {
	Buffer int
	Line   int
}
type BufferLineStart struct {
	Buffer int
	Line   int
}
type BufferLineEnd struct {
	Buffer int
	Line   int
}
type BufferLinkFile struct {
	Buffer    int
	File      int
	Overwrite bool
}
type BufferUnlinkFile struct {
	Buffer int
	Force  bool
}
type BufferWriteToFile struct{ Buffer int }
type BufferCurrentFile struct{ Buffer int }
type BufferType struct{ Buffer int }
type BufferSetType struct {
	Buffer int
	Type   buffer.Type
}
type BufferClearStyles struct{ Buffer int }
type BufferPushStyle struct {
	Buffer int
	Name   string
	Regex  string
}

// File calls.

type FileOpen struct{ Path string }
type FileClose struct {
	File  int
	Force bool
}
type FileExtension struct{ File int }
type FileCurrentBuffer struct{ File int }

func (EditorExit) call()              {}
func (EditorOptions) call()           {}
func (UpdateOptions) call()           {}
func (SetTextStyle) call()            {}
func (RunScript) call()               {}
func (SetHook) call()                 {}
func (Yield) call()                   {}
func (CurrentBufferID) call()         {}
func (ActivePaneIndex) call()         {}
func (RootPaneIndex) call()           {}
func (SetActivePane) call()           {}
func (PaneIsFirst) call()             {}
func (PaneIndexUpFrom) call()         {}
func (PaneIndexDownFrom) call()       {}
func (PaneType) call()                {}
func (PaneBufferIndex) call()         {}
func (PaneSetBuffer) call()           {}
func (PaneVSplit) call()              {}
func (PaneHSplit) call()              {}
func (PaneCloseChild) call()          {}
func (PaneSetSplitPercent) call()     {}
func (PaneSetSplitFixed) call()       {}
func (PaneTopLine) call()             {}
func (PaneSetTopLine) call()          {}
func (PaneFrame) call()               {}
func (PaneWrap) call()                {}
func (PaneSetWrap) call()             {}
func (BufferOpen) call()              {}
func (BufferClose) call()             {}
func (BufferInsert) call()            {}
func (BufferDelete) call()            {}
func (BufferCursor) call()            {}
func (BufferCursorLine) call()        {}
func (BufferCursorMovedByChar) call() {}
func (BufferIndexMovedByChar) call()  {}
func (BufferSetCursor) call()         {}
func (BufferSetCursorLine) call()     {}
func (BufferLength) call()            {}
func (BufferLineCount) call()         {}
func (BufferContent) call()           {}
func (BufferContentAt) call()         {}
func (BufferLineContent) call()       {}
func (BufferLineContaining) call()    {}
func (BufferLineLength) call()        {}
func (BufferLineStart) call()         {}
func (BufferLineEnd) call()           {}
func (BufferLinkFile) call()          {}
func (BufferUnlinkFile) call()        {}
func (BufferWriteToFile) call()       {}
func (BufferCurrentFile) call()       {}
func (BufferType) call()              {}
func (BufferSetType) call()           {}
func (BufferClearStyles) call()       {}
func (BufferPushStyle) call()         {}
func (FileOpen) call()                {}
func (FileClose) call()               {}
func (FileExtension) call()           {}
func (FileCurrentBuffer) call()       {}
