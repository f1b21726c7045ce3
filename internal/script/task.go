package script

import (
	"fmt"

	"github.com/badred/badred/internal/editor"
)

type TaskID int

// Body is one resumable script computation. Bodies run on their own
// goroutine but only ever between Yielder handoffs, so exactly one body
// makes progress at any instant and the scheduler stays cooperative and
// deterministic.
type Body func(y *Yielder) (any, error)

// Callback is a script-side hook body referenced by an opaque handle. The
// payload is the event that fired it.
type Callback func(y *Yielder, payload editor.Payload) (any, error)

type suspendMsg struct {
	call   Call
	done   bool
	result any
	err    error
}

type resumeMsg struct {
	resp Response
	err  error
}

// causeNone marks tasks not spawned by a hook.
const causeNone editor.HookKind = -1

// Task is a suspendable unit of work owned exclusively by the scheduler. Its
// slot is either a pending Call (parked), a resume value in flight, or the
// terminal result.
type Task struct {
	id    TaskID
	cause editor.HookKind

	susp chan suspendMsg
	res  chan resumeMsg
}

// Yielder is a task's handle on the bridge. Call is the task's only
// suspension point.
type Yielder struct {
	t *Task
}

// Call suspends the task on a bridge request and returns the editor's
// response. Within a task, request/response pairs observe program order.
func (y *Yielder) Call(c Call) (Response, error) {
	y.t.susp <- suspendMsg{call: c}
	r := <-y.t.res
	return r.resp, r.err
}

// Yield parks the task until the scheduler's next pass.
func (y *Yielder) Yield() {
	y.t.susp <- suspendMsg{call: Yield{}}
	<-y.t.res
}

// start launches the task goroutine. The body does not run until the
// scheduler's first resume; a panicking body converts to a script fault.
func start(id TaskID, cause editor.HookKind, body Body) *Task {
	t := &Task{
		id:    id,
		cause: cause,
		susp:  make(chan suspendMsg),
		res:   make(chan resumeMsg),
	}
	go func() {
		<-t.res
		var (
			result any
			err    error
		)
		func() {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("script panic: %v", r)
				}
			}()
			result, err = body(&Yielder{t: t})
		}()
		t.susp <- suspendMsg{done: true, result: result, err: err}
	}()
	return t
}
