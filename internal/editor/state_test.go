package editor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/badred/badred/internal/pane"
)

func TestNewStateHasBufferZeroAndRootPane(t *testing.T) {
	s := New()
	if _, err := s.Buffer(0); err != nil {
		t.Fatalf("Buffer(0): %v", err)
	}
	id, err := s.ActiveBufferID()
	if err != nil || id != 0 {
		t.Fatalf("ActiveBufferID = %d, %v, want 0, nil", id, err)
	}
	if s.Options.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", s.Options.TabWidth)
	}
}

func TestBufferLifecycle(t *testing.T) {
	s := New()
	id := s.CreateBuffer()
	if id != 1 {
		t.Fatalf("CreateBuffer = %d, want 1", id)
	}
	if err := s.RemoveBuffer(id); err != nil {
		t.Fatalf("RemoveBuffer: %v", err)
	}
	_, err := s.Buffer(id)
	if kind, ok := KindOf(err); !ok || kind != InvalidBuffer {
		t.Fatalf("Buffer after remove err = %v, want InvalidBuffer", err)
	}
	if err := s.RemoveBuffer(id); err == nil {
		t.Fatalf("double remove: err = nil, want InvalidBuffer")
	}
}

func TestOpenFileTwiceRefused(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "a.txt")
	id, err := s.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if id != 0 {
		t.Fatalf("file id = %d, want 0", id)
	}
	if _, err := s.OpenFile(path); err == nil {
		t.Fatalf("second OpenFile: err = nil, want error")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("open did not touch the file: %v", err)
	}
}

func TestLinkPopulatesAndWriteRoundTrip(t *testing.T) {
	s := New()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("from disk"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	fileID, err := s.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := s.LinkBuffer(0, fileID, true); err != nil {
		t.Fatalf("LinkBuffer: %v", err)
	}
	buf, _ := s.Buffer(0)
	if got := buf.Content(); got != "from disk" {
		t.Fatalf("Content = %q, want %q", got, "from disk")
	}

	buf.Insert("! ")
	if err := s.WriteBuffer(0); err != nil {
		t.Fatalf("WriteBuffer: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "! from disk" {
		t.Fatalf("on disk = %q, want %q", data, "! from disk")
	}
	if buf.ContentDirty() {
		t.Fatalf("buffer still dirty after write")
	}
}

func TestLinkTwiceIsAlreadyLinked(t *testing.T) {
	s := New()
	dir := t.TempDir()
	f1, _ := s.OpenFile(filepath.Join(dir, "one"))
	f2, _ := s.OpenFile(filepath.Join(dir, "two"))
	if err := s.LinkBuffer(0, f1, false); err != nil {
		t.Fatalf("LinkBuffer: %v", err)
	}
	err := s.LinkBuffer(0, f2, false)
	if kind, ok := KindOf(err); !ok || kind != AlreadyLinked {
		t.Fatalf("second link err = %v, want AlreadyLinked", err)
	}
	other := s.CreateBuffer()
	err = s.LinkBuffer(other, f1, false)
	if kind, ok := KindOf(err); !ok || kind != AlreadyLinked {
		t.Fatalf("link to taken file err = %v, want AlreadyLinked", err)
	}
}

func TestUnlinkSemantics(t *testing.T) {
	s := New()
	_, err := s.UnlinkBuffer(0, false)
	if kind, ok := KindOf(err); !ok || kind != NotLinked {
		t.Fatalf("unlink unlinked err = %v, want NotLinked", err)
	}

	fileID, _ := s.OpenFile(filepath.Join(t.TempDir(), "f"))
	if err := s.LinkBuffer(0, fileID, false); err != nil {
		t.Fatalf("LinkBuffer: %v", err)
	}
	buf, _ := s.Buffer(0)
	buf.Insert("dirty")
	if _, err := s.UnlinkBuffer(0, false); err == nil {
		t.Fatalf("unlink dirty unforced: err = nil, want error")
	}
	got, err := s.UnlinkBuffer(0, true)
	if err != nil || got != fileID {
		t.Fatalf("forced unlink = %d, %v, want %d, nil", got, err, fileID)
	}
	if _, ok := s.FileFor(0); ok {
		t.Fatalf("FileFor still reports a link")
	}
	if err := s.WriteBuffer(0); err == nil {
		t.Fatalf("write after unlink: err = nil, want NotLinked")
	}
}

func TestCloseFileUnlinksBuffer(t *testing.T) {
	s := New()
	fileID, _ := s.OpenFile(filepath.Join(t.TempDir(), "f"))
	if err := s.LinkBuffer(0, fileID, false); err != nil {
		t.Fatalf("LinkBuffer: %v", err)
	}
	buf, _ := s.Buffer(0)
	buf.Insert("pending")
	if err := s.CloseFile(fileID, false); err == nil {
		t.Fatalf("close with dirty buffer: err = nil, want error")
	}
	if err := s.CloseFile(fileID, true); err != nil {
		t.Fatalf("forced close: %v", err)
	}
	_, err := s.File(fileID)
	if kind, ok := KindOf(err); !ok || kind != InvalidFile {
		t.Fatalf("File after close err = %v, want InvalidFile", err)
	}
	if _, ok := s.BufferFor(fileID); ok {
		t.Fatalf("BufferFor still reports a link")
	}
}

func TestSplitAndCloseMovesActive(t *testing.T) {
	s := New()
	splitID, err := s.Split(0, pane.Vertical)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if s.ActivePane != 0 {
		t.Fatalf("active after split = %d, want 0 (first child keeps focus)", s.ActivePane)
	}

	second, _, _ := s.Panes.Child(splitID, false)
	if err := s.SetActivePane(second); err != nil {
		t.Fatalf("SetActivePane: %v", err)
	}
	closed, err := s.CloseChild(splitID, false)
	if err != nil {
		t.Fatalf("CloseChild: %v", err)
	}
	if closed != second {
		t.Fatalf("closed = %d, want %d", closed, second)
	}
	if s.ActivePane != 0 {
		t.Fatalf("active after close = %d, want 0", s.ActivePane)
	}
	err = s.SetActivePane(second)
	if kind, ok := KindOf(err); !ok || kind != InvalidPane {
		t.Fatalf("SetActivePane on closed err = %v, want InvalidPane", err)
	}
}

func TestSplitSeedsSecondChildWithSameBuffer(t *testing.T) {
	s := New()
	bufID := s.CreateBuffer()
	if err := s.Panes.SetBuffer(0, bufID); err != nil {
		t.Fatalf("SetBuffer: %v", err)
	}
	splitID, _ := s.Split(0, pane.Horizontal)
	second, _, _ := s.Panes.Child(splitID, false)
	got, err := s.Panes.BufferID(second)
	if err != nil || got != bufID {
		t.Fatalf("second child buffer = %d, %v, want %d", got, err, bufID)
	}
}

func TestOptionsUpdateMerges(t *testing.T) {
	s := New()
	width := uint16(2)
	s.Options.Update(OptionChanges{TabWidth: &width})
	if s.Options.TabWidth != 2 || s.Options.ExpandTabs {
		t.Fatalf("options = %+v, want tab width 2, expand false", s.Options)
	}
	expand := true
	s.Options.Update(OptionChanges{ExpandTabs: &expand})
	if s.Options.TabWidth != 2 || !s.Options.ExpandTabs {
		t.Fatalf("options = %+v, want tab width 2, expand true", s.Options)
	}
}

func TestHookCallbacksOrderAndScope(t *testing.T) {
	m := NewHookMap()
	m.Add(HookKeyEvent, 1, nil)
	m.Add(HookKeyEvent, 2, nil)
	got := m.Callbacks(HookKeyEvent, nil)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("Callbacks = %v, want [1 2] in registration order", got)
	}

	paneID := 4
	otherID := 5
	m.Add(HookPaneClosed, 10, nil)
	m.Add(HookPaneClosed, 11, &paneID)
	m.Add(HookPaneClosed, 12, &otherID)

	got = m.Callbacks(HookPaneClosed, &paneID)
	if len(got) != 2 || got[0] != 10 || got[1] != 11 {
		t.Fatalf("scoped Callbacks = %v, want [10 11]", got)
	}
	// The matched scoped entry is one-shot; the unscoped and unmatched ones
	// survive.
	got = m.Callbacks(HookPaneClosed, &paneID)
	if len(got) != 1 || got[0] != 10 {
		t.Fatalf("second fire = %v, want [10]", got)
	}
	got = m.Callbacks(HookPaneClosed, &otherID)
	if len(got) != 2 || got[1] != 12 {
		t.Fatalf("other scope = %v, want [10 12]", got)
	}
}

func TestConvertMapsSentinels(t *testing.T) {
	s := New()
	_, err := s.Buffer(42)
	if kind, ok := KindOf(err); !ok || kind != InvalidBuffer {
		t.Fatalf("kind = %v, %v, want InvalidBuffer", kind, ok)
	}
	buf, _ := s.Buffer(0)
	buf.Insert("é")
	err = Convert(buf.SetCursor(1, false))
	if kind, ok := KindOf(err); !ok || kind != BoundaryViolation {
		t.Fatalf("kind = %v, want BoundaryViolation", kind)
	}
	_, lineErr := buf.LineContent(9)
	err = Convert(lineErr)
	if kind, ok := KindOf(err); !ok || kind != OutOfBounds {
		t.Fatalf("kind = %v, want OutOfBounds", kind)
	}
}

func TestFileExtension(t *testing.T) {
	f := &File{path: "/tmp/notes.md"}
	if got := f.Extension(); got != "md" {
		t.Fatalf("Extension = %q, want %q", got, "md")
	}
	f = &File{path: "/tmp/Makefile"}
	if got := f.Extension(); got != "" {
		t.Fatalf("Extension = %q, want empty", got)
	}
}
