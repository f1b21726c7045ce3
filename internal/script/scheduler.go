package script

import (
	"fmt"

	"github.com/badred/badred/internal/editor"
	"github.com/badred/badred/internal/logger"
	"github.com/badred/badred/internal/pane"
)

// Status reports what a scheduler tick did.
type Status int

const (
	// Idle means no task was ready.
	Idle Status = iota
	// Ran means at least one task made progress.
	Ran
	// Quit means a task asked the editor to exit.
	Quit
)

// Interpreter turns script source into a runnable body. It is an external
// collaborator; a scheduler without one rejects RunScript with a script
// fault.
type Interpreter interface {
	Compile(src string) (Body, error)
}

type entry struct {
	task    *Task
	pending Call
	// ready holds a precomputed resume value when the task was parked
	// behind preempting hook tasks.
	ready *resumeMsg
	// blockedOn lists tasks that must finish before this entry resumes.
	blockedOn []TaskID
}

type hookEvent struct {
	payload editor.Payload
	scope   *int
}

// Scheduler is the single-threaded cooperative dispatcher. It exclusively
// owns all tasks, matches their RedCall requests against the editor state,
// and spawns hook tasks for editor events.
type Scheduler struct {
	state  *editor.State
	interp Interpreter

	queue     []*entry
	hookQ     []hookEvent
	callbacks []Callback
	finished  map[TaskID]bool
	nextID    TaskID

	rootFrame pane.Frame
	quit      bool
}

func NewScheduler(state *editor.State, interp Interpreter) *Scheduler {
	return &Scheduler{
		state:     state,
		interp:    interp,
		finished:  make(map[TaskID]bool),
		rootFrame: pane.Frame{Rows: 24, Cols: 80},
	}
}

// RegisterCallback stores a script-side callback and returns its opaque
// handle for hook registration.
func (s *Scheduler) RegisterCallback(cb Callback) int {
	s.callbacks = append(s.callbacks, cb)
	return len(s.callbacks) - 1
}

// SetRootFrame tells the scheduler the terminal rectangle pane frames are
// computed against.
func (s *Scheduler) SetRootFrame(f pane.Frame) {
	s.rootFrame = f
}

// Spawn queues a new task. It will not run before the next tick.
func (s *Scheduler) Spawn(body Body) TaskID {
	id := s.nextID
	s.nextID++
	s.queue = append(s.queue, &entry{task: start(id, causeNone, body)})
	return id
}

// EnqueueHook records an editor event for the next tick, which spawns one
// task per matching registered callback, in registration order.
func (s *Scheduler) EnqueueHook(payload editor.Payload, scope *int) {
	s.hookQ = append(s.hookQ, hookEvent{payload: payload, scope: scope})
}

// Busy reports whether any task or queued hook event is outstanding.
func (s *Scheduler) Busy() bool {
	return len(s.queue) > 0 || len(s.hookQ) > 0
}

// spawnHookTasks spawns the hook tasks for an event right away and returns
// their ids.
func (s *Scheduler) spawnHookTasks(payload editor.Payload, scope *int) []TaskID {
	var ids []TaskID
	for _, handle := range s.state.Hooks.Callbacks(payload.HookKind(), scope) {
		if handle < 0 || handle >= len(s.callbacks) {
			logger.Warn("hook references unknown callback", "handle", handle, "kind", payload.HookKind().String())
			continue
		}
		cb := s.callbacks[handle]
		p := payload
		id := s.nextID
		s.nextID++
		body := func(y *Yielder) (any, error) { return cb(y, p) }
		s.queue = append(s.queue, &entry{task: start(id, p.HookKind(), body)})
		ids = append(ids, id)
	}
	return ids
}

// Tick runs one scheduler pass: drain the incoming hook queue in FIFO
// order, then resume each ready task exactly once. Editor state mutations
// are visible immediately between resumes.
func (s *Scheduler) Tick() (Status, error) {
	for _, h := range s.hookQ {
		s.spawnHookTasks(h.payload, h.scope)
	}
	s.hookQ = nil

	if len(s.queue) == 0 {
		return Idle, nil
	}
	n := len(s.queue)
	for i := 0; i < n; i++ {
		e := s.queue[0]
		s.queue = s.queue[1:]
		if s.isBlocked(e) {
			s.queue = append(s.queue, e)
			continue
		}
		if err := s.step(e); err != nil {
			return Ran, err
		}
		if s.quit {
			return Quit, nil
		}
	}
	return Ran, nil
}

func (s *Scheduler) isBlocked(e *entry) bool {
	for _, id := range e.blockedOn {
		if !s.finished[id] {
			return true
		}
	}
	e.blockedOn = nil
	return false
}

// step resumes one task: answer its pending request, hand the response
// over, and collect its next suspension or its terminal result.
func (s *Scheduler) step(e *entry) error {
	var msg resumeMsg
	switch {
	case e.ready != nil:
		msg = *e.ready
		e.ready = nil
	case e.pending == nil:
		// First resume only starts the body.
		msg = resumeMsg{resp: Ack{}}
	default:
		if _, isExit := e.pending.(EditorExit); isExit {
			s.quit = true
			return nil
		}
		if cc, isClose := e.pending.(PaneCloseChild); isClose {
			s.closeChild(e, cc)
			return nil
		}
		resp, err := s.eval(e.pending)
		msg = resumeMsg{resp: resp, err: err}
	}
	return s.resume(e, msg)
}

// closeChild handles the one call whose hooks preempt the caller: the
// pane_closed tasks are spawned and the causing task parks behind them so
// cleanup observes the pre-replacement state before the caller continues.
func (s *Scheduler) closeChild(e *entry, c PaneCloseChild) {
	closed, err := s.state.CloseChild(c.Pane, c.FirstChild)
	if err != nil {
		e.pending = nil
		e.ready = &resumeMsg{err: err}
		s.queue = append(s.queue, e)
		return
	}
	spawned := s.spawnHookTasks(editor.PaneClosedPayload{PaneID: closed}, &closed)
	e.pending = nil
	e.ready = &resumeMsg{resp: Ack{}}
	e.blockedOn = spawned
	s.queue = append(s.queue, e)
}

func (s *Scheduler) resume(e *entry, msg resumeMsg) error {
	e.task.res <- msg
	sm := <-e.task.susp
	if sm.done {
		return s.finish(e.task, sm)
	}
	e.pending = sm.call
	s.queue = append(s.queue, e)
	return nil
}

// finish retires a task. An uncaught error fires the error hook; a fault in
// an error-hook task escalates to secondary_error; a fault there is
// unrecoverable.
func (s *Scheduler) finish(t *Task, sm suspendMsg) error {
	s.finished[t.id] = true

	if sm.err == nil {
		if sm.result != nil {
			logger.Debug("task returned value", "task", int(t.id), "value", fmt.Sprint(sm.result))
		}
		return nil
	}

	desc := sm.err.Error()
	switch t.cause {
	case editor.HookError:
		if ids := s.spawnHookTasks(editor.ErrorPayload{Description: desc, Secondary: true}, nil); len(ids) == 0 {
			logger.Error("error hook failed with no secondary_error hook set", "error", desc)
		}
	case editor.HookSecondaryError:
		return fmt.Errorf("secondary error hook failed: %s", desc)
	default:
		if ids := s.spawnHookTasks(editor.ErrorPayload{Description: desc}, nil); len(ids) == 0 {
			logger.Warn("task failed with no error hook set", "error", desc)
		}
	}
	return nil
}
