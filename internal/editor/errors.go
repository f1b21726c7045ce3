package editor

import (
	"errors"
	"fmt"

	"github.com/badred/badred/internal/buffer"
	"github.com/badred/badred/internal/pane"
)

// Kind classifies every error the bridge can report back to a script.
type Kind int

const (
	InvalidBuffer Kind = iota
	InvalidPane
	InvalidFile
	AlreadyLinked
	NotLinked
	OutOfBounds
	BoundaryViolation
	IoFailure
	ScriptFault
)

func (k Kind) String() string {
	switch k {
	case InvalidBuffer:
		return "invalid_buffer"
	case InvalidPane:
		return "invalid_pane"
	case InvalidFile:
		return "invalid_file"
	case AlreadyLinked:
		return "already_linked"
	case NotLinked:
		return "not_linked"
	case OutOfBounds:
		return "out_of_bounds"
	case BoundaryViolation:
		return "boundary_violation"
	case IoFailure:
		return "io_failure"
	case ScriptFault:
		return "script_fault"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the typed failure crossing the script bridge.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return e.Kind.String() + ": " + e.Msg
}

func Errorf(k Kind, format string, args ...any) *Error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the taxonomy kind from an error chain.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Convert maps sentinel errors from the buffer and pane layers onto the
// bridge taxonomy. Already-typed errors pass through.
func Convert(err error) error {
	if err == nil {
		return nil
	}
	var typed *Error
	if errors.As(err, &typed) {
		return err
	}
	switch {
	case errors.Is(err, buffer.ErrOutOfBounds):
		return &Error{Kind: OutOfBounds, Msg: err.Error()}
	case errors.Is(err, buffer.ErrBoundary):
		return &Error{Kind: BoundaryViolation, Msg: err.Error()}
	case errors.Is(err, pane.ErrInvalidPane), errors.Is(err, pane.ErrNotLeaf):
		return &Error{Kind: InvalidPane, Msg: err.Error()}
	default:
		return &Error{Kind: IoFailure, Msg: err.Error()}
	}
}
