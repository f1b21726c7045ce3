// Package styling holds the regex style stack carried by buffers and the
// named text styles scripts register. Matching itself happens in the display
// layer; the core only stores and validates the rules.
package styling

import (
	"fmt"
	"regexp"
)

// Style is one named rule on a buffer's style stack. The pattern is anchored
// at compile time so the display layer can probe it at arbitrary offsets.
type Style struct {
	Name  string
	Regex *regexp.Regexp
}

// Stack is the ordered list of styles pushed onto a buffer. Later pushes win
// on overlap.
type Stack struct {
	styles []Style
}

func (s *Stack) Push(name, expr string) error {
	re, err := regexp.Compile("^(" + expr + ")")
	if err != nil {
		return fmt.Errorf("compile style %q: %w", name, err)
	}
	s.styles = append(s.styles, Style{Name: name, Regex: re})
	return nil
}

func (s *Stack) Clear() {
	s.styles = nil
}

func (s *Stack) Styles() []Style {
	return s.styles
}

type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// TextStyle is the terminal appearance bound to a style name. A nil
// background keeps the pane background.
type TextStyle struct {
	Foreground Color
	Background *Color
}

type TextStyleMap map[string]TextStyle
