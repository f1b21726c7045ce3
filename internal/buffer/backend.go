package buffer

import "errors"

// Backend is a mutable byte container behind the buffer engine. All
// positional arguments are raw byte offsets; backends never check codepoint
// boundaries, that discipline belongs to Buffer.
//
// Lines are separated by '\n'. Line 0 always exists: an empty backend has one
// line of length 0. LineEnd returns the offset of the line's terminating '\n',
// or Len for the last line. A byte offset equal to Len belongs to the last
// line; an offset pointing at a '\n' belongs to the line it terminates.
type Backend interface {
	Insert(byteIndex int, b []byte)
	Delete(byteIndex, count int) []byte
	Slice(byteIndex, count int) []byte
	Len() int

	LineCount() int
	LineStart(line int) int
	LineEnd(line int) int
	LineContaining(byteIndex int) int
}

var (
	// ErrOutOfBounds reports a line or byte index outside the permitted range.
	ErrOutOfBounds = errors.New("index out of bounds")
	// ErrBoundary reports a byte index that does not sit on a UTF-8 codepoint
	// boundary.
	ErrBoundary = errors.New("byte index not on a codepoint boundary")
)
