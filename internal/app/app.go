// Package app is the event-loop glue: it polls the terminal for key
// events, feeds them to the hook registry as script tasks, drains the
// scheduler until quiescent and triggers a render.
package app

import (
	"runtime"

	"github.com/gdamore/tcell/v2"

	"github.com/badred/badred/internal/config"
	"github.com/badred/badred/internal/display"
	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/keymap"
	"github.com/badred/badred/internal/logger"
	"github.com/badred/badred/internal/pane"
	"github.com/badred/badred/internal/script"
	"github.com/badred/badred/internal/session"
)

// App is the top-level runtime for badred.
type App struct {
	args   []string
	interp script.Interpreter
}

func New(args []string) *App {
	return &App{args: args}
}

// SetInterpreter wires in the embedded script interpreter. Without one the
// editor still runs on its native default keymap.
func (a *App) SetInterpreter(i script.Interpreter) {
	a.interp = i
}

func (a *App) Run() error {
	runtime.LockOSThread()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Debug); err != nil {
		return err
	}
	defer logger.Close()

	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	defer s.Fini()

	state := editor.New()
	state.Options.TabWidth = cfg.Editor.TabWidth
	state.Options.ExpandTabs = cfg.Editor.ExpandTabs
	sched := script.NewScheduler(state, a.interp)

	sm, err := session.NewManager()
	if err != nil {
		logger.Warn("session persistence unavailable", "error", err.Error())
	} else {
		defer sm.Stop()
	}

	Bootstrap(sched, state)
	startupFile := -1
	for _, path := range a.args {
		fileID, err := state.OpenFile(path)
		if err != nil {
			return err
		}
		if startupFile < 0 {
			startupFile = fileID
		}
		// Link the startup file the way a script would, so the
		// buffer_file_linked hook observes it.
		sched.Spawn(func(y *script.Yielder) (any, error) {
			_, err := y.Call(script.BufferLinkFile{Buffer: 0, File: fileID, Overwrite: true})
			return nil, err
		})
	}
	if sm != nil && startupFile >= 0 {
		if f, err := state.File(startupFile); err == nil {
			if saved, ok := sm.GetFileState(f.Path()); ok {
				sched.Spawn(restorePosition(saved))
			}
		}
	}

	w, h := s.Size()
	sched.SetRootFrame(pane.Frame{Rows: uint16(h), Cols: uint16(w)})

	for {
		for sched.Busy() {
			status, err := sched.Tick()
			if err != nil {
				return err
			}
			if status == script.Quit {
				if sm != nil && startupFile >= 0 {
					rememberPosition(sm, state, startupFile)
				}
				return nil
			}
		}
		display.Render(s, state)

		switch ev := s.PollEvent().(type) {
		case *tcell.EventKey:
			key := keymap.FromTcell(ev)
			logger.Debug("key event", "key", key)
			sched.EnqueueHook(editor.KeyEventPayload{Key: key}, nil)
		case *tcell.EventResize:
			w, h := s.Size()
			sched.SetRootFrame(pane.Frame{Rows: uint16(h), Cols: uint16(w)})
			s.Sync()
		}
	}
}

// restorePosition replays a saved cursor and scroll position through the
// bridge, skipping positions the file no longer has room for.
func restorePosition(saved session.FileState) script.Body {
	return func(y *script.Yielder) (any, error) {
		resp, err := y.Call(script.BufferLength{Buffer: 0})
		if err != nil {
			return nil, err
		}
		if saved.CursorByte <= resp.(script.IntValue).Value {
			// A stale offset can land mid-codepoint when the file changed
			// since last run; the rejection is ignored.
			_, _ = y.Call(script.BufferSetCursor{Buffer: 0, Index: saved.CursorByte})
		}
		active, err := y.Call(script.ActivePaneIndex{})
		if err != nil {
			return nil, err
		}
		_, err = y.Call(script.PaneSetTopLine{Pane: active.(script.PaneRef).ID, Line: saved.TopLine})
		return nil, err
	}
}

// rememberPosition records the startup file's cursor and scroll for the
// next run.
func rememberPosition(sm *session.Manager, state *editor.State, fileID int) {
	f, err := state.File(fileID)
	if err != nil {
		return
	}
	bufID, ok := state.BufferFor(fileID)
	if !ok {
		return
	}
	buf, err := state.Buffer(bufID)
	if err != nil {
		return
	}
	topLine, _, _ := state.Panes.TopLine(state.ActivePane)
	sm.SetFileState(f.Path(), session.FileState{
		CursorByte: buf.Cursor(),
		TopLine:    topLine,
	})
}
