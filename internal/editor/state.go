// Package editor owns the aggregate editor state: buffers, panes, files,
// the hook registry and process-wide options. RedCall handlers are the only
// mutators; between handler invocations the state is quiescent, so nothing
// here locks.
package editor

import (
	"bytes"

	"github.com/badred/badred/internal/buffer"
	"github.com/badred/badred/internal/pane"
	"github.com/badred/badred/internal/styling"
)

type State struct {
	Panes      *pane.Tree
	ActivePane int

	Options Options
	Styles  styling.TextStyleMap
	Hooks   *HookMap

	buffers []*buffer.Buffer
	files   []*File

	// buffer↔file linkage is kept one-to-one in both directions.
	bufferToFile map[int]int
	fileToBuffer map[int]int
}

// New builds the startup state: one empty buffer shown by a single root
// pane.
func New() *State {
	return &State{
		Panes:        pane.NewTree(0),
		buffers:      []*buffer.Buffer{buffer.New()},
		Options:      Options{TabWidth: 8},
		Styles:       make(styling.TextStyleMap),
		Hooks:        NewHookMap(),
		bufferToFile: make(map[int]int),
		fileToBuffer: make(map[int]int),
	}
}

// Buffer resolves a buffer id, failing on closed or unknown ids.
func (s *State) Buffer(id int) (*buffer.Buffer, error) {
	if id < 0 || id >= len(s.buffers) || s.buffers[id] == nil {
		return nil, Errorf(InvalidBuffer, "no buffer at id %d", id)
	}
	return s.buffers[id], nil
}

// ActiveBuffer returns the buffer shown by the active pane.
func (s *State) ActiveBuffer() (*buffer.Buffer, error) {
	id, err := s.ActiveBufferID()
	if err != nil {
		return nil, err
	}
	return s.Buffer(id)
}

// ActiveBufferID returns the id of the buffer shown by the active pane.
func (s *State) ActiveBufferID() (int, error) {
	id, err := s.Panes.BufferID(s.ActivePane)
	if err != nil {
		return 0, Convert(err)
	}
	return id, nil
}

func (s *State) CreateBuffer() int {
	s.buffers = append(s.buffers, buffer.New())
	return len(s.buffers) - 1
}

func (s *State) RemoveBuffer(id int) error {
	if _, err := s.Buffer(id); err != nil {
		return err
	}
	delete(s.fileToBuffer, s.bufferToFile[id])
	delete(s.bufferToFile, id)
	s.buffers[id] = nil
	return nil
}

// BufferCount reports the id ceiling, closed slots included.
func (s *State) BufferCount() int {
	return len(s.buffers)
}

// File resolves a file id, failing on closed or unknown ids.
func (s *State) File(id int) (*File, error) {
	if id < 0 || id >= len(s.files) || s.files[id] == nil {
		return nil, Errorf(InvalidFile, "no file at id %d", id)
	}
	return s.files[id], nil
}

// OpenFile registers a path as a file handle. Opening a path twice is
// refused.
func (s *State) OpenFile(path string) (int, error) {
	expanded, err := expandHome(path)
	if err != nil {
		return 0, Errorf(IoFailure, "open %s: %v", path, err)
	}
	for id, f := range s.files {
		if f != nil && f.Path() == expanded {
			return 0, Errorf(IoFailure, "file already open: %s (id %d)", path, id)
		}
	}
	f, err := OpenPath(path)
	if err != nil {
		return 0, Errorf(IoFailure, "open %s: %v", path, err)
	}
	s.files = append(s.files, f)
	return len(s.files) - 1, nil
}

// CloseFile drops a file handle, unlinking any linked buffer. A dirty linked
// buffer refuses to let go unless forced.
func (s *State) CloseFile(id int, force bool) error {
	if _, err := s.File(id); err != nil {
		return err
	}
	if bufID, ok := s.fileToBuffer[id]; ok {
		buf, err := s.Buffer(bufID)
		if err == nil && buf.ContentDirty() && !force {
			return Errorf(IoFailure, "file %d is linked to dirty buffer %d", id, bufID)
		}
		if err == nil {
			buf.MarkClean()
		}
		delete(s.fileToBuffer, id)
		delete(s.bufferToFile, bufID)
	}
	s.files[id] = nil
	return nil
}

// LinkBuffer ties a buffer to a file. With overwrite the buffer content is
// replaced by the file's bytes.
func (s *State) LinkBuffer(bufferID, fileID int, overwrite bool) error {
	if _, linked := s.bufferToFile[bufferID]; linked {
		return Errorf(AlreadyLinked, "buffer %d already has a linked file", bufferID)
	}
	if _, linked := s.fileToBuffer[fileID]; linked {
		return Errorf(AlreadyLinked, "file %d already has a linked buffer", fileID)
	}
	buf, err := s.Buffer(bufferID)
	if err != nil {
		return err
	}
	f, err := s.File(fileID)
	if err != nil {
		return err
	}
	s.bufferToFile[bufferID] = fileID
	s.fileToBuffer[fileID] = bufferID

	if overwrite {
		data, err := f.Read()
		if err != nil {
			return Errorf(IoFailure, "read %s: %v", f.Path(), err)
		}
		if err := buf.PopulateFrom(bytes.NewReader(data)); err != nil {
			return Errorf(IoFailure, "populate from %s: %v", f.Path(), err)
		}
	}
	return nil
}

// UnlinkBuffer severs a buffer's file link and returns the freed file id. A
// dirty buffer refuses unless forced.
func (s *State) UnlinkBuffer(bufferID int, force bool) (int, error) {
	buf, err := s.Buffer(bufferID)
	if err != nil {
		return 0, err
	}
	fileID, linked := s.bufferToFile[bufferID]
	if !linked {
		return 0, Errorf(NotLinked, "buffer %d has no linked file", bufferID)
	}
	if buf.ContentDirty() && !force {
		return 0, Errorf(IoFailure, "buffer %d has unwritten changes", bufferID)
	}
	buf.MarkClean()
	delete(s.bufferToFile, bufferID)
	delete(s.fileToBuffer, fileID)
	return fileID, nil
}

// WriteBuffer flushes a linked buffer's content to its file. Clean buffers
// skip the write.
func (s *State) WriteBuffer(bufferID int) error {
	buf, err := s.Buffer(bufferID)
	if err != nil {
		return err
	}
	fileID, linked := s.bufferToFile[bufferID]
	if !linked {
		return Errorf(NotLinked, "buffer %d has no linked file", bufferID)
	}
	if !buf.ContentDirty() {
		return nil
	}
	f, err := s.File(fileID)
	if err != nil {
		return err
	}
	if err := f.Write([]byte(buf.Content())); err != nil {
		return Errorf(IoFailure, "write %s: %v", f.Path(), err)
	}
	buf.MarkClean()
	return nil
}

// FileFor returns the file linked to a buffer.
func (s *State) FileFor(bufferID int) (int, bool) {
	id, ok := s.bufferToFile[bufferID]
	return id, ok
}

// BufferFor returns the buffer linked to a file.
func (s *State) BufferFor(fileID int) (int, bool) {
	id, ok := s.fileToBuffer[fileID]
	return id, ok
}

// Split replaces the pane with a split node. The active pane follows the
// first child, which keeps its id, so no adjustment is needed.
func (s *State) Split(id int, o pane.Orientation) (int, error) {
	splitID, err := s.Panes.SplitPane(id, o)
	if err != nil {
		return 0, Convert(err)
	}
	return splitID, nil
}

// CloseChild closes one child of a split. If the active pane sat inside the
// removed subtree (or was the split itself), it moves to the surviving
// pane. Returns the closed child id for hook dispatch.
func (s *State) CloseChild(id int, firstChild bool) (closed int, err error) {
	closed, removed, survivor, err := s.Panes.CloseChild(id, firstChild)
	if err != nil {
		return 0, Convert(err)
	}
	for _, r := range removed {
		if s.ActivePane == r {
			s.ActivePane = survivor
			break
		}
	}
	return closed, nil
}

// SetActivePane moves focus, validating the id.
func (s *State) SetActivePane(id int) error {
	if !s.Panes.Valid(id) {
		return Errorf(InvalidPane, "no pane at id %d", id)
	}
	s.ActivePane = id
	return nil
}
