package script

import (
	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/pane"
	"github.com/badred/badred/internal/styling"
)

// eval matches one request against the editor state and produces the
// response. Handlers never invoke scripts synchronously; hooks that fire
// here only spawn tasks for later resumes. Every failure comes back as a
// typed error response, never as a scheduler fault.
func (s *Scheduler) eval(c Call) (Response, error) {
	st := s.state
	switch c := c.(type) {
	case Yield:
		return Ack{}, nil

	case EditorOptions:
		return OptionsValue{Options: st.Options}, nil
	case UpdateOptions:
		st.Options.Update(c.Changes)
		return Ack{}, nil
	case SetTextStyle:
		st.Styles[c.Name] = styling.TextStyle{Foreground: c.Foreground, Background: c.Background}
		return Ack{}, nil

	case SetHook:
		st.Hooks.Add(c.Kind, c.Callback, c.Scope)
		return Ack{}, nil
	case RunScript:
		if s.interp == nil {
			return nil, editor.Errorf(editor.ScriptFault, "no interpreter available for run_script")
		}
		body, err := s.interp.Compile(c.Source)
		if err != nil {
			return nil, editor.Errorf(editor.ScriptFault, "compile script: %v", err)
		}
		s.Spawn(body)
		return Ack{}, nil

	case CurrentBufferID:
		id, err := st.ActiveBufferID()
		if err != nil {
			return nil, err
		}
		return BufferRef{ID: id}, nil
	case ActivePaneIndex:
		return PaneRef{ID: st.ActivePane}, nil
	case RootPaneIndex:
		return PaneRef{ID: st.Panes.Root()}, nil
	case SetActivePane:
		if err := st.SetActivePane(c.Pane); err != nil {
			return nil, err
		}
		return Ack{}, nil

	case PaneIsFirst:
		isFirst, hasParent, err := st.Panes.IsFirst(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return BoolMaybe{Value: isFirst, OK: hasParent}, nil
	case PaneIndexUpFrom:
		parent, ok, err := st.Panes.Parent(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return PaneMaybe{ID: parent, OK: ok}, nil
	case PaneIndexDownFrom:
		child, ok, err := st.Panes.Child(c.Pane, c.ToFirst)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return PaneMaybe{ID: child, OK: ok}, nil
	case PaneType:
		leaf, split, orient, err := st.Panes.Describe(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return PaneNodeType{Leaf: leaf, Split: split, Orientation: orient}, nil
	case PaneBufferIndex:
		id, err := st.Panes.BufferID(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return BufferRef{ID: id}, nil
	case PaneSetBuffer:
		if _, err := st.Buffer(c.Buffer); err != nil {
			return nil, err
		}
		if err := st.Panes.SetBuffer(c.Pane, c.Buffer); err != nil {
			return nil, editor.Convert(err)
		}
		s.spawnHookTasks(editor.PaneBufferChangedPayload{PaneID: c.Pane, BufferID: c.Buffer}, nil)
		return Ack{}, nil
	case PaneVSplit:
		if _, err := st.Split(c.Pane, pane.Vertical); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case PaneHSplit:
		if _, err := st.Split(c.Pane, pane.Horizontal); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case PaneSetSplitPercent:
		if err := st.Panes.SetSplitPercent(c.Pane, c.Percent); err != nil {
			return nil, editor.Convert(err)
		}
		return Ack{}, nil
	case PaneSetSplitFixed:
		if err := st.Panes.SetSplitFixed(c.Pane, c.Size, c.OnFirst); err != nil {
			return nil, editor.Convert(err)
		}
		return Ack{}, nil
	case PaneTopLine:
		line, ok, err := st.Panes.TopLine(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return TopLineMaybe{Value: line, OK: ok}, nil
	case PaneSetTopLine:
		if err := st.Panes.SetTopLine(c.Pane, c.Line); err != nil {
			return nil, editor.Convert(err)
		}
		return Ack{}, nil
	case PaneFrame:
		f, err := st.Panes.Frame(c.Pane, s.rootFrame)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return FrameValue{Frame: f}, nil
	case PaneWrap:
		wrap, ok, err := st.Panes.Wrap(c.Pane)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return BoolMaybe{Value: wrap, OK: ok}, nil
	case PaneSetWrap:
		if err := st.Panes.SetWrap(c.Pane, c.Wrap); err != nil {
			return nil, editor.Convert(err)
		}
		return Ack{}, nil

	case BufferOpen:
		return BufferRef{ID: st.CreateBuffer()}, nil
	case BufferClose:
		if err := st.RemoveBuffer(c.Buffer); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case BufferInsert:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		buf.Insert(c.Content)
		return Ack{}, nil
	case BufferDelete:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return Str{Value: buf.Delete(c.CharCount)}, nil
	case BufferCursor:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return ByteIndex{Value: buf.Cursor()}, nil
	case BufferCursorLine:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return LineIndex{Value: buf.CursorLine()}, nil
	case BufferCursorMovedByChar:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return ByteIndex{Value: buf.CursorMovedByChar(c.CharCount)}, nil
	case BufferIndexMovedByChar:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return ByteIndex{Value: buf.IndexMovedByChar(c.Index, c.CharCount)}, nil
	case BufferSetCursor:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		if err := buf.SetCursor(c.Index, c.KeepCol); err != nil {
			return nil, editor.Convert(err)
		}
		return Ack{}, nil
	case BufferSetCursorLine:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		buf.SetCursorLine(c.Line)
		return Ack{}, nil
	case BufferLength:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return IntValue{Value: buf.Length()}, nil
	case BufferLineCount:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return IntValue{Value: buf.LineCount()}, nil
	case BufferContent:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return Str{Value: buf.Content()}, nil
	case BufferContentAt:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		content, err := buf.ContentAt(c.Index, c.CharCount)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return Str{Value: content}, nil
	case BufferLineContent:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		content, err := buf.LineContent(c.Line)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return Str{Value: content}, nil
	case BufferLineContaining:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		line, err := buf.LineForIndex(c.Index)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return LineIndex{Value: line}, nil
	case BufferLineLength:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		length, err := buf.LineLength(c.Line)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return IntValue{Value: length}, nil
	case BufferLineStart:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		start, err := buf.LineStart(c.Line)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return ByteIndex{Value: start}, nil
	case BufferLineEnd:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		end, err := buf.LineEnd(c.Line)
		if err != nil {
			return nil, editor.Convert(err)
		}
		return ByteIndex{Value: end}, nil

	case BufferLinkFile:
		if err := st.LinkBuffer(c.Buffer, c.File, c.Overwrite); err != nil {
			return nil, err
		}
		s.spawnHookTasks(editor.BufferFileLinkedPayload{
			LinkType: editor.Linked, BufferID: c.Buffer, FileID: c.File,
		}, nil)
		return Ack{}, nil
	case BufferUnlinkFile:
		fileID, err := st.UnlinkBuffer(c.Buffer, c.Force)
		if err != nil {
			return nil, err
		}
		s.spawnHookTasks(editor.BufferFileLinkedPayload{
			LinkType: editor.Unlinked, BufferID: c.Buffer, FileID: fileID,
		}, nil)
		return FileRef{ID: fileID}, nil
	case BufferWriteToFile:
		if err := st.WriteBuffer(c.Buffer); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case BufferCurrentFile:
		if _, err := st.Buffer(c.Buffer); err != nil {
			return nil, err
		}
		fileID, ok := st.FileFor(c.Buffer)
		if !ok {
			return nil, editor.Errorf(editor.NotLinked, "buffer %d has no linked file", c.Buffer)
		}
		return FileRef{ID: fileID}, nil

	case BufferType:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		return BufferTypeValue{Type: buf.Type()}, nil
	case BufferSetType:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		buf.SetType(c.Type)
		return Ack{}, nil
	case BufferClearStyles:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		buf.ClearStyles()
		return Ack{}, nil
	case BufferPushStyle:
		buf, err := st.Buffer(c.Buffer)
		if err != nil {
			return nil, err
		}
		if err := buf.PushStyle(c.Name, c.Regex); err != nil {
			return nil, editor.Errorf(editor.ScriptFault, "push style: %v", err)
		}
		return Ack{}, nil

	case FileOpen:
		id, err := st.OpenFile(c.Path)
		if err != nil {
			return nil, err
		}
		return FileRef{ID: id}, nil
	case FileClose:
		if err := st.CloseFile(c.File, c.Force); err != nil {
			return nil, err
		}
		return Ack{}, nil
	case FileExtension:
		f, err := st.File(c.File)
		if err != nil {
			return nil, err
		}
		return Str{Value: f.Extension()}, nil
	case FileCurrentBuffer:
		if _, err := st.File(c.File); err != nil {
			return nil, err
		}
		bufID, ok := st.BufferFor(c.File)
		if !ok {
			return nil, editor.Errorf(editor.NotLinked, "file %d has no linked buffer", c.File)
		}
		return BufferRef{ID: bufID}, nil

	default:
		return nil, editor.Errorf(editor.ScriptFault, "unhandled bridge call %T", c)
	}
}
